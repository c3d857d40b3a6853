package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/autopost/internal/models"
)

type JobFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (string, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*models.Job, error)
	ListRunTimes(ctx context.Context, from, to time.Time) ([]time.Time, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Job, error)
	Claim(ctx context.Context, id string) (bool, error)
	MarkDone(ctx context.Context, id, postID string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	ResetFailed(ctx context.Context, id string) error
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, run_at, topic, city, category, service, status, result_post_id, error_message, created_at, updated_at`

// Create inserts a pending job. A job with the same run_at already present
// yields ErrDuplicate.
func (r *jobRepository) Create(ctx context.Context, job *models.Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	query := `
		INSERT INTO scheduled_jobs (id, run_at, topic, city, category, service, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, job.ID, job.RunAt.UTC(), job.Topic, job.City, string(job.Category), job.Service, models.JobStatusPending).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDuplicate
		}
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]*models.Job, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.UTC())
		conds = append(conds, fmt.Sprintf("run_at >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.UTC())
		conds = append(conds, fmt.Sprintf("run_at < $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY run_at ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.query(ctx, query, args...)
}

// ListRunTimes returns the run times already scheduled in [from, to).
func (r *jobRepository) ListRunTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `SELECT run_at FROM scheduled_jobs WHERE run_at >= $1 AND run_at < $2 ORDER BY run_at`
	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *jobRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM scheduled_jobs WHERE status = $1 AND run_at <= $2 ORDER BY run_at ASC`
	return r.query(ctx, query, models.JobStatusPending, now.UTC())
}

// Claim moves a job from pending to processing. It reports false when the
// job was no longer pending, so concurrent runners never both own a job.
func (r *jobRepository) Claim(ctx context.Context, id string) (bool, error) {
	err := r.transition(ctx, id, models.JobStatusPending, models.JobStatusProcessing, "", "")
	if errors.Is(err, ErrInvalidTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *jobRepository) MarkDone(ctx context.Context, id, postID string) error {
	return r.transition(ctx, id, models.JobStatusProcessing, models.JobStatusDone, postID, "")
}

func (r *jobRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	return r.transition(ctx, id, models.JobStatusProcessing, models.JobStatusFailed, "", errorMessage)
}

// ResetFailed is the operator escape hatch that puts a failed job back in
// the queue. The runner never calls it.
func (r *jobRepository) ResetFailed(ctx context.Context, id string) error {
	query := `
		UPDATE scheduled_jobs
		SET status = $1, error_message = '', updated_at = $2
		WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, models.JobStatusPending, time.Now().UTC(), id, models.JobStatusFailed)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return r.checkAffected(ctx, res, id)
}

func (r *jobRepository) transition(ctx context.Context, id, from, to, postID, errorMessage string) error {
	if !models.CanTransition(from, to) {
		return ErrInvalidTransition
	}
	query := `
		UPDATE scheduled_jobs
		SET status = $1,
			result_post_id = CASE WHEN $2 = '' THEN result_post_id ELSE $2 END,
			error_message = CASE WHEN $3 = '' THEN error_message ELSE $3 END,
			updated_at = $4
		WHERE id = $5 AND status = $6
	`
	res, err := r.db.ExecContext(ctx, query, to, postID, errorMessage, time.Now().UTC(), id, from)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return r.checkAffected(ctx, res, id)
}

// checkAffected tells a missing job apart from one in the wrong status.
func (r *jobRepository) checkAffected(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM scheduled_jobs WHERE id = $1`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidTransition
}

func (r *jobRepository) query(ctx context.Context, query string, args ...any) ([]*models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	var category string
	err := row.Scan(&job.ID, &job.RunAt, &job.Topic, &job.City, &category, &job.Service, &job.Status, &job.ResultPostID, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	job.Category = models.Category(category)
	return &job, nil
}
