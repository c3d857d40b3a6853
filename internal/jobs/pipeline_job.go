package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/service"
)

// PipelineJob exposes the scheduler and the runner as cron callbacks. Ticks
// that arrive while a previous one is still running are dropped.
type PipelineJob struct {
	ss      service.SchedulerService
	rs      service.RunnerService
	loc     *time.Location
	timeout time.Duration
	logger  *slog.Logger

	scheduleMu sync.Mutex
	runMu      sync.Mutex
	now        func() time.Time
}

func NewPipelineJob(ss service.SchedulerService, rs service.RunnerService, loc *time.Location, timeout time.Duration, logger *slog.Logger) *PipelineJob {
	if timeout <= 0 {
		timeout = time.Hour
	}
	return &PipelineJob{
		ss:      ss,
		rs:      rs,
		loc:     loc,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// ScheduleToday plans the current local day.
func (j *PipelineJob) ScheduleToday() {
	if !j.scheduleMu.TryLock() {
		j.logger.Warn("previous schedule tick still running", "event", "schedule_tick_skipped")
		return
	}
	defer j.scheduleMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.ss.ScheduleDay(ctx, j.now().In(j.loc)); err != nil {
		j.logger.Error("schedule tick failed", "event", "schedule_tick_failed", "error", err)
	}
}

// RunDue processes the jobs that are due now.
func (j *PipelineJob) RunDue() {
	if !j.runMu.TryLock() {
		j.logger.Warn("previous runner tick still running", "event", "runner_tick_skipped")
		return
	}
	defer j.runMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.rs.RunDue(ctx); err != nil {
		j.logger.Error("runner tick failed", "event", "runner_tick_failed", "error", err)
	}
}
