package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsImmediately(t *testing.T) {
	var runs atomic.Int32
	s := New(time.Hour, time.Second, true, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerWaitsForSchedule(t *testing.T) {
	var runs atomic.Int32
	s := New(time.Hour, time.Second, false, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("should not run yet")
	})

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestSchedulerWithoutJob(t *testing.T) {
	s := New(0, 0, true, nil)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.NoError(t, s.Start())
	s.Stop()
}
