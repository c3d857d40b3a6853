package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/content"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

const maxErrorMessageLength = 2000

type RunResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

type RunnerService interface {
	RunDue(ctx context.Context) (*RunResult, error)
}

type runnerService struct {
	jobs      repository.JobRepository
	images    ImageService
	publisher PublisherService
	cfg       config.Publish
	now       func() time.Time
	logger    *slog.Logger
}

func NewRunnerService(
	jobs repository.JobRepository,
	images ImageService,
	publisher PublisherService,
	cfg config.Publish,
	logger *slog.Logger) RunnerService {
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &runnerService{
		jobs:      jobs,
		images:    images,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

// RunDue processes every due pending job one after another. It only returns
// an error when the due jobs cannot be listed.
func (s *runnerService) RunDue(ctx context.Context) (*RunResult, error) {
	due, err := s.jobs.ListDue(ctx, s.now())
	if err != nil {
		s.logger.Error("list due jobs failed", "event", "runner_list_failed", "error", err)
		return nil, fmt.Errorf("list due jobs: %w", err)
	}

	result := &RunResult{}
	for _, job := range due {
		if ctx.Err() != nil {
			break
		}
		switch s.runJob(ctx, job) {
		case models.JobStatusDone:
			result.Processed++
		case models.JobStatusFailed:
			result.Failed++
		default:
			result.Skipped++
		}
	}

	s.logger.Info("runner finished", "event", "runner_done",
		"due", len(due), "processed", result.Processed, "failed", result.Failed, "skipped", result.Skipped)
	return result, nil
}

// runJob returns the status the job ended in, or "" when it was not claimed.
func (s *runnerService) runJob(ctx context.Context, job *models.Job) string {
	log := s.logger.With("job_id", job.ID)

	claimed, err := s.jobs.Claim(ctx, job.ID)
	if err != nil {
		log.Error("claim failed", "event", "job_claim_failed", "error", err)
		return ""
	}
	if !claimed {
		log.Info("job already taken", "event", "job_skipped")
		return ""
	}

	if strings.TrimSpace(job.Topic) == "" || strings.TrimSpace(job.City) == "" {
		return s.fail(ctx, log, job, errors.New("job has a blank topic or city"))
	}

	generated := content.Generate(content.Input{
		Topic:    job.Topic,
		City:     job.City,
		Category: job.Category,
		Service:  job.Service,
	})

	imageURL, imageAlt := s.image(ctx, log, job, generated)

	req := PublishRequest{
		Content:       generated,
		AuthorID:      s.cfg.AuthorID,
		OriginCountry: s.cfg.OriginCountry,
		ImageURL:      imageURL,
		ImageAlt:      imageAlt,
		City:          job.City,
		Topic:         job.Topic,
		Category:      job.Category,
		Service:       job.Service,
	}

	published, err := s.publishWithRetry(ctx, log, req)
	if err != nil {
		return s.fail(ctx, log, job, err)
	}

	err = s.updateStatus(ctx, log, "mark_done", func(ctx context.Context) error {
		return s.jobs.MarkDone(ctx, job.ID, published.PostID)
	})
	if err != nil {
		// The post exists but the job could not be recorded as done.
		log.Error("mark done failed", "event", "job_mark_done_failed", "post_id", published.PostID, "error", err)
		return models.JobStatusFailed
	}
	log.Info("job done", "event", "job_done", "post_id", published.PostID, "url", published.CanonicalURL)
	return models.JobStatusDone
}

func (s *runnerService) image(ctx context.Context, log *slog.Logger, job *models.Job, generated models.GeneratedPostContent) (string, string) {
	if s.images != nil {
		asset, err := s.images.Produce(ctx, ImageRequest{Content: generated, Topic: job.Topic, City: job.City})
		if err == nil {
			return asset.URL, asset.Alt
		}
		if errors.Is(err, ErrImageDisabled) {
			log.Info("image generation disabled, using fallback", "event", "image_fallback")
		} else {
			log.Warn("image generation failed, using fallback", "event", "image_fallback", "error", err)
		}
	}

	if s.cfg.FallbackImageURL == "" {
		return "", ""
	}
	alt := s.cfg.FallbackImageAlt
	if alt == "" {
		alt = ImageAlt(job.Topic, job.City)
	}
	return s.cfg.FallbackImageURL, alt
}

func (s *runnerService) publishWithRetry(ctx context.Context, log *slog.Logger, req PublishRequest) (*PublishResult, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		result, err := s.publisher.Publish(attemptCtx, req)
		cancel()
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Warn("publish attempt failed", "event", "publish_retry", "attempt", attempt, "error", err)

		if attempt == s.cfg.RetryAttempts {
			break
		}
		if err := sleepContext(ctx, s.cfg.RetryDelay); err != nil {
			return nil, fmt.Errorf("publish interrupted after %d attempts: %w", attempt, lastErr)
		}
	}
	return nil, fmt.Errorf("publish failed after %d attempts: %w", s.cfg.RetryAttempts, lastErr)
}

func (s *runnerService) fail(ctx context.Context, log *slog.Logger, job *models.Job, cause error) string {
	msg := truncateMessage(cause.Error(), maxErrorMessageLength)
	err := s.updateStatus(ctx, log, "mark_failed", func(ctx context.Context) error {
		return s.jobs.MarkFailed(ctx, job.ID, msg)
	})
	if err != nil {
		log.Error("mark failed failed", "event", "job_mark_failed_failed", "error", err)
	}
	log.Error("job failed", "event", "job_failed", "error", msg)
	return models.JobStatusFailed
}

// updateStatus retries a status write with the publish attempt budget. It
// runs detached from ctx so a cancelled batch still settles the claimed job.
func (s *runnerService) updateStatus(ctx context.Context, log *slog.Logger, op string, update func(context.Context) error) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		err = update(attemptCtx)
		cancel()
		if err == nil || errors.Is(err, repository.ErrInvalidTransition) || errors.Is(err, repository.ErrNotFound) {
			return err
		}
		log.Warn("status update attempt failed", "event", "status_update_retry", "op", op, "attempt", attempt, "error", err)
		if attempt < s.cfg.RetryAttempts {
			sleepContext(ctx, s.cfg.RetryDelay)
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, s.cfg.RetryAttempts, err)
}
