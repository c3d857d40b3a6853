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

var ErrInvalidStatus = errors.New("invalid job status")

type JobService interface {
	List(ctx context.Context, status string, date time.Time) ([]*models.Job, error)
	Reset(ctx context.Context, id string) (*models.Job, error)
}

type jobService struct {
	jobs   repository.JobRepository
	loc    *time.Location
	logger *slog.Logger
}

func NewJobService(jobs repository.JobRepository, loc *time.Location, logger *slog.Logger) JobService {
	return &jobService{jobs: jobs, loc: loc, logger: logger}
}

// List filters by status and by the local calendar day of date. Zero values
// disable a filter.
func (s *jobService) List(ctx context.Context, status string, date time.Time) ([]*models.Job, error) {
	if status != "" && !models.ValidJobStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	filter := repository.JobFilter{Status: status, Limit: 500}
	if !date.IsZero() {
		y, m, d := date.In(s.loc).Date()
		filter.From = time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		filter.To = filter.From.AddDate(0, 0, 1)
	}
	return s.jobs.List(ctx, filter)
}

// Reset puts a failed job back to pending so the next run picks it up.
func (s *jobService) Reset(ctx context.Context, id string) (*models.Job, error) {
	if err := s.jobs.ResetFailed(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("job reset by operator", "event", "job_reset", "job_id", id)
	return s.jobs.GetByID(ctx, id)
}
