package batch

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/nuttapol-k/doctran/pkg/icron"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// WatchService re-runs a batch on a cron schedule. Because runs are
// idempotent (existing outputs are skipped), a fire that finds nothing
// new is cheap; overlapping fires collapse into the run already in
// flight.
type WatchService struct {
	runner *Runner
	cron   *cron.Cron
	expr   string

	group singleflight.Group
}

// NewWatchService wraps a runner with a cron trigger.
func NewWatchService(runner *Runner, c *cron.Cron, expr string) *WatchService {
	return &WatchService{
		runner: runner,
		cron:   c,
		expr:   expr,
	}
}

// Schedule registers the batch run with the cron instance. The caller
// starts the cron loop.
func (s *WatchService) Schedule(ctx context.Context) error {
	trigger, err := icron.NextTrigger(s.expr, time.Now())
	if err != nil {
		return err
	}
	log.Info("Scheduling batch runs with cron expression %q, next run at %s (in %s)",
		s.expr, trigger.Next.Format(time.RFC3339), trigger.Until.Round(time.Second))

	runFunc := func() {
		_, _, _ = s.group.Do("run", func() (any, error) {
			if err := s.runner.Run(ctx); err != nil {
				log.Error("Scheduled batch run failed: %v", err)
			}
			return nil, nil
		})
	}
	_, err = s.cron.AddFunc(s.expr, runFunc)
	return err
}
