package scheduler

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewScheduler(func(ctx context.Context) error { return nil }, logger)
}

func TestSchedulerRejectsBadCronExpression(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.ScheduleAnalysis("not a cron expression"))
}

func TestSchedulerStartRequiresJobs(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start())
}

func TestSchedulerLifecycle(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleAnalysis("0 6 * * *"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start(), "double start")
	assert.Error(t, s.ScheduleAnalysis("0 7 * * *"), "cannot schedule while running")

	next := s.NextRuns()
	require.Len(t, next, 1)
	assert.False(t, next[0].IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop(), "stop is idempotent")
}
