package job

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maheshrc27/autopost/internal/service"
	"github.com/stretchr/testify/assert"
)

type blockingRunner struct {
	calls   atomic.Int32
	release chan struct{}
}

func (r *blockingRunner) RunDue(ctx context.Context) (*service.RunResult, error) {
	r.calls.Add(1)
	<-r.release
	return &service.RunResult{}, nil
}

type recordingScheduler struct {
	dates []time.Time
}

func (s *recordingScheduler) ScheduleDay(ctx context.Context, date time.Time) (*service.ScheduleResult, error) {
	s.dates = append(s.dates, date)
	return &service.ScheduleResult{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunDue_DropsOverlappingTicks(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	j := NewPipelineJob(&recordingScheduler{}, runner, time.UTC, time.Minute, discardLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		j.RunDue()
	}()

	assert.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	j.RunDue()
	assert.Equal(t, int32(1), runner.calls.Load())

	close(runner.release)
	wg.Wait()

	j.RunDue()
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestScheduleToday_UsesLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)
	sched := &recordingScheduler{}
	j := NewPipelineJob(sched, &blockingRunner{}, loc, time.Minute, discardLogger())
	// 18:30 UTC is already the next day in Jakarta.
	j.now = func() time.Time { return time.Date(2026, 10, 13, 18, 30, 0, 0, time.UTC) }

	j.ScheduleToday()

	if assert.Len(t, sched.dates, 1) {
		y, m, d := sched.dates[0].Date()
		assert.Equal(t, 2026, y)
		assert.Equal(t, time.October, m)
		assert.Equal(t, 14, d)
	}
}
