package icron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTrigger(t *testing.T) {
	ref := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)

	trigger, err := NextTrigger("@hourly", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), trigger.Next)
	assert.Equal(t, 45*time.Minute, trigger.Until)

	trigger, err = NextTrigger("30 2 * * *", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 2, 30, 0, 0, time.UTC), trigger.Next)
}

func TestNextTrigger_InvalidExpression(t *testing.T) {
	_, err := NextTrigger("every tuesday", time.Now())
	require.Error(t, err)
}
