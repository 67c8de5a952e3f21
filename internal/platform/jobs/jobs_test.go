package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/srgjo27/seat_reservation/internal/platform/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJob(t *testing.T) {
	s, err := jobs.NewScheduler(nil)
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.Every("tick", 20*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	}))

	s.Start()
	defer s.Shutdown()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestLockSweep(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var calls int
	task := jobs.LockSweep("DATABASE", func(ctx context.Context) (int64, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("db down")
		}
		return 2, nil
	}, logger)

	assert.NotPanics(t, func() { task(context.Background()) })
	assert.NotPanics(t, func() { task(context.Background()) })
	assert.Equal(t, 2, calls)
}
