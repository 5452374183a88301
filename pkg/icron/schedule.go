package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger describes the upcoming fire of a cron expression.
type Trigger struct {
	Expression string
	Next       time.Time
	Until      time.Duration
}

// standardParser matches the format accepted by cron.New: five fields
// plus descriptors such as @hourly.
var standardParser = cron.NewParser(cron.Minute | cron.Hour |
	cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NextTrigger parses a cron expression and reports when it fires next
// relative to refTime.
func NextTrigger(expr string, refTime time.Time) (*Trigger, error) {
	schedule, err := standardParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	next := schedule.Next(refTime)
	return &Trigger{
		Expression: expr,
		Next:       next,
		Until:      next.Sub(refTime),
	}, nil
}
