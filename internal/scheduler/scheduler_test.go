package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciae/discovery-core/internal/services"
)

type fakeRecomputer struct {
	calls  atomic.Int32
	window time.Duration
	err    error
}

func (f *fakeRecomputer) RecomputeScores(ctx context.Context, window time.Duration) (*services.RecomputeReport, error) {
	f.calls.Add(1)
	f.window = window
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	return &services.RecomputeReport{WindowHours: window.Hours(), Skipped: []services.SkippedItem{}}, nil
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New("every tuesday", &fakeRecomputer{}, time.Hour, time.Minute)
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	rec := &fakeRecomputer{}
	s, err := New("*/15 * * * *", rec, 6*time.Hour, time.Minute)
	require.NoError(t, err)

	report, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6.0, report.WindowHours)
	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Equal(t, 6*time.Hour, rec.window)
}

func TestRunOncePropagatesFailure(t *testing.T) {
	rec := &fakeRecomputer{err: errors.New("database is gone")}
	s, err := New("@hourly", rec, time.Hour, time.Minute)
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "database is gone")
}

func TestScheduledRuns(t *testing.T) {
	rec := &fakeRecomputer{}
	s, err := New("@every 1s", rec, time.Hour, time.Minute)
	require.NoError(t, err)

	s.Start()
	assert.False(t, s.Next().IsZero())
	assert.Eventually(t, func() bool { return rec.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()
}
