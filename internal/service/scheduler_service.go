package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type ScheduleResult struct {
	Date    string  `json:"date"`
	Created int     `json:"created"`
	Slots   []Slot  `json:"slots"`
	Errors  []error `json:"-"`
}

type SchedulerService interface {
	ScheduleDay(ctx context.Context, date time.Time) (*ScheduleResult, error)
}

type schedulerService struct {
	planner *Planner
	jobs    repository.JobRepository
	logger  *slog.Logger
}

func NewSchedulerService(planner *Planner, jobs repository.JobRepository, logger *slog.Logger) SchedulerService {
	return &schedulerService{
		planner: planner,
		jobs:    jobs,
		logger:  logger,
	}
}

// ScheduleDay stores a pending job for every planned slot that is not stored
// yet. A failing slot does not stop the others; the failures come back
// joined in the returned error. The result is nil when nothing could be
// attempted.
func (s *schedulerService) ScheduleDay(ctx context.Context, date time.Time) (*ScheduleResult, error) {
	slots, err := s.planner.PlanDay(date)
	if err != nil {
		s.logger.Error("plan day failed", "event", "schedule_plan_failed", "error", err)
		return nil, err
	}

	from, to := s.planner.DayBounds(date)
	result := &ScheduleResult{Date: from.Format("2006-01-02"), Slots: slots}

	existing, err := s.jobs.ListRunTimes(ctx, from, to)
	if err != nil {
		s.logger.Error("load existing run times failed", "event", "schedule_lookup_failed", "error", err)
		return nil, fmt.Errorf("load existing jobs: %w", err)
	}
	taken := make(map[int64]bool, len(existing))
	for _, t := range existing {
		taken[t.Unix()] = true
	}

	for _, slot := range slots {
		if taken[slot.RunAt.Unix()] {
			continue
		}
		_, err := s.jobs.Create(ctx, &models.Job{
			RunAt:    slot.RunAt,
			Topic:    slot.Topic,
			City:     slot.City,
			Category: slot.Category,
			Service:  slot.Service,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			s.logger.Error("create job failed", "event", "schedule_create_failed",
				"run_at", slot.RunAt, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("slot %s: %w", slot.RunAt.Format(time.RFC3339), err))
			continue
		}
		result.Created++
		s.logger.Info("job scheduled", "event", "job_scheduled",
			"run_at", slot.RunAt, "category", slot.Category, "topic", slot.Topic, "city", slot.City)
	}

	s.logger.Info("day scheduled", "event", "schedule_done",
		"date", result.Date, "slots", len(slots), "created", result.Created, "errors", len(result.Errors))
	return result, errors.Join(result.Errors...)
}
