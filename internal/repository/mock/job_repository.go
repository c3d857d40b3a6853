package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

// JobRepository is an in-memory repository.JobRepository. The Func fields
// override the default behaviour when set.
type JobRepository struct {
	mu   sync.Mutex
	jobs map[string]*models.Job

	CreateFunc       func(ctx context.Context, job *models.Job) (string, error)
	ListRunTimesFunc func(ctx context.Context, from, to time.Time) ([]time.Time, error)
	ListDueFunc      func(ctx context.Context, now time.Time) ([]*models.Job, error)
	ClaimFunc        func(ctx context.Context, id string) (bool, error)
	MarkDoneFunc     func(ctx context.Context, id, postID string) error
	MarkFailedFunc   func(ctx context.Context, id, errorMessage string) error
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[string]*models.Job)}
}

// Seed stores jobs as they are, keeping their status.
func (r *JobRepository) Seed(jobs ...*models.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		if job.Status == "" {
			job.Status = models.JobStatusPending
		}
		cp := *job
		r.jobs[job.ID] = &cp
	}
}

// All returns copies of every stored job ordered by run time.
func (r *JobRepository) All() []*models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(*models.Job) bool { return true })
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) (string, error) {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, job)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.jobs {
		if existing.RunAt.Equal(job.RunAt) {
			return "", repository.ErrDuplicate
		}
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp := *job
	cp.Status = models.JobStatusPending
	cp.CreatedAt, cp.UpdatedAt = now, now
	r.jobs[cp.ID] = &cp
	return cp.ID, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *JobRepository) List(ctx context.Context, filter repository.JobFilter) ([]*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := r.sorted(func(j *models.Job) bool {
		if filter.Status != "" && j.Status != filter.Status {
			return false
		}
		if !filter.From.IsZero() && j.RunAt.Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && !j.RunAt.Before(filter.To) {
			return false
		}
		return true
	})
	if filter.Limit > 0 && len(jobs) > filter.Limit {
		jobs = jobs[:filter.Limit]
	}
	return jobs, nil
}

func (r *JobRepository) ListRunTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if r.ListRunTimesFunc != nil {
		return r.ListRunTimesFunc(ctx, from, to)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := r.sorted(func(j *models.Job) bool {
		return !j.RunAt.Before(from) && j.RunAt.Before(to)
	})
	times := make([]time.Time, 0, len(jobs))
	for _, j := range jobs {
		times = append(times, j.RunAt)
	}
	return times, nil
}

func (r *JobRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Job, error) {
	if r.ListDueFunc != nil {
		return r.ListDueFunc(ctx, now)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(j *models.Job) bool {
		return j.Status == models.JobStatusPending && !j.RunAt.After(now)
	}), nil
}

func (r *JobRepository) Claim(ctx context.Context, id string) (bool, error) {
	if r.ClaimFunc != nil {
		return r.ClaimFunc(ctx, id)
	}
	err := r.transition(id, models.JobStatusPending, models.JobStatusProcessing, func(*models.Job) {})
	if err == repository.ErrInvalidTransition {
		return false, nil
	}
	return err == nil, err
}

func (r *JobRepository) MarkDone(ctx context.Context, id, postID string) error {
	if r.MarkDoneFunc != nil {
		return r.MarkDoneFunc(ctx, id, postID)
	}
	return r.transition(id, models.JobStatusProcessing, models.JobStatusDone, func(j *models.Job) {
		j.ResultPostID = postID
	})
}

func (r *JobRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	if r.MarkFailedFunc != nil {
		return r.MarkFailedFunc(ctx, id, errorMessage)
	}
	return r.transition(id, models.JobStatusProcessing, models.JobStatusFailed, func(j *models.Job) {
		j.ErrorMessage = errorMessage
	})
}

func (r *JobRepository) ResetFailed(ctx context.Context, id string) error {
	return r.transition(id, models.JobStatusFailed, models.JobStatusPending, func(j *models.Job) {
		j.ErrorMessage = ""
	})
}

func (r *JobRepository) transition(id, from, to string, apply func(*models.Job)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if job.Status != from {
		return repository.ErrInvalidTransition
	}
	job.Status = to
	job.UpdatedAt = time.Now().UTC()
	apply(job)
	return nil
}

func (r *JobRepository) sorted(keep func(*models.Job) bool) []*models.Job {
	var out []*models.Job
	for _, j := range r.jobs {
		if keep(j) {
			cp := *j
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].RunAt.Before(out[b].RunAt) })
	return out
}
