package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	calls     []PublishRequest
	PublishFn func(req PublishRequest) (*PublishResult, error)
}

func (p *stubPublisher) Publish(_ context.Context, req PublishRequest) (*PublishResult, error) {
	p.calls = append(p.calls, req)
	if p.PublishFn != nil {
		return p.PublishFn(req)
	}
	return &PublishResult{PostID: "post-" + req.Content.Slug, Slug: req.Content.Slug}, nil
}

type stubImages struct {
	asset *models.ImageAsset
	err   error
}

func (s *stubImages) Produce(context.Context, ImageRequest) (*models.ImageAsset, error) {
	return s.asset, s.err
}

func testPublishConfig() config.Publish {
	return config.Publish{
		RetryAttempts:    3,
		RetryDelay:       0,
		Timeout:          time.Second,
		FallbackImageURL: "https://cdn.example.com/fallback.jpg",
		AuthorID:         "autopublisher",
		OriginCountry:    "ID",
	}
}

func newTestRunner(jobs *mock.JobRepository, images ImageService, pub PublisherService, cfg config.Publish) *runnerService {
	r := NewRunnerService(jobs, images, pub, cfg, discardLogger()).(*runnerService)
	r.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }
	return r
}

func dueJob(id string, minutesAgo int, topic, city string) *models.Job {
	return &models.Job{
		ID:       id,
		RunAt:    time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute),
		Topic:    topic,
		City:     city,
		Category: models.CategoryMassage,
	}
}

func TestRunDue_BandungScenario(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 5, "deep tissue massage benefits", "Bandung"))
	pub := &stubPublisher{}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{Processed: 1}, result)

	require.Len(t, pub.calls, 1)
	req := pub.calls[0]
	assert.Contains(t, req.Content.Title, "Bandung")
	assert.True(t, strings.HasPrefix(req.Content.Slug, "deep-tissue-massage-benefits-bandung"))
	assert.Equal(t, "autopublisher", req.AuthorID)
	assert.Equal(t, "ID", req.OriginCountry)

	job, err := jobs.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDone, job.Status)
	assert.NotEmpty(t, job.ResultPostID)
}

func TestRunDue_FaultIsolation(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(
		dueJob("job-1", 30, "day spa packages", "Ubud"),
		dueJob("job-2", 20, "hot stone therapy", "Jakarta"),
		dueJob("job-3", 10, "reflexology for stress", "Medan"),
	)
	pub := &stubPublisher{PublishFn: func(req PublishRequest) (*PublishResult, error) {
		if req.City == "Jakarta" {
			return nil, errors.New("store rejected document")
		}
		return &PublishResult{PostID: "post-" + req.City, Slug: req.Content.Slug}, nil
	}}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)

	// 1 + 3 attempts + 1
	assert.Len(t, pub.calls, 5)

	statuses := map[string]string{}
	for _, j := range jobs.All() {
		statuses[j.ID] = j.Status
	}
	assert.Equal(t, models.JobStatusDone, statuses["job-1"])
	assert.Equal(t, models.JobStatusFailed, statuses["job-2"])
	assert.Equal(t, models.JobStatusDone, statuses["job-3"])

	failed, err := jobs.GetByID(context.Background(), "job-2")
	require.NoError(t, err)
	assert.Contains(t, failed.ErrorMessage, "store rejected document")
}

func TestRunDue_TerminalJobsAreNotReselected(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(
		dueJob("job-ok", 10, "facial treatments", "Sanur"),
		dueJob("job-bad", 5, "aromatherapy", "Kuta"),
	)
	pub := &stubPublisher{PublishFn: func(req PublishRequest) (*PublishResult, error) {
		if req.City == "Kuta" {
			return nil, errors.New("boom")
		}
		return &PublishResult{PostID: "p1"}, nil
	}}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	_, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	calls := len(pub.calls)

	second, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{}, second)
	assert.Len(t, pub.calls, calls)
}

func TestRunDue_RetriesThenSucceeds(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 1, "couples massage", "Seminyak"))
	attempts := 0
	pub := &stubPublisher{PublishFn: func(req PublishRequest) (*PublishResult, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient")
		}
		return &PublishResult{PostID: "p-3"}, nil
	}}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 3, attempts)

	job, _ := jobs.GetByID(context.Background(), "job-1")
	assert.Equal(t, "p-3", job.ResultPostID)
}

func TestRunDue_SkipsLostClaims(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 1, "spa etiquette", "Malang"))
	jobs.ClaimFunc = func(ctx context.Context, id string) (bool, error) { return false, nil }
	pub := &stubPublisher{}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{Skipped: 1}, result)
	assert.Empty(t, pub.calls)
}

func TestRunDue_BlankTopicFails(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 1, "  ", "Malang"))
	pub := &stubPublisher{}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, pub.calls)

	job, _ := jobs.GetByID(context.Background(), "job-1")
	assert.Equal(t, models.JobStatusFailed, job.Status)
}

func TestRunDue_ImageFallback(t *testing.T) {
	tests := []struct {
		name    string
		images  ImageService
		wantURL string
		wantAlt string
	}{
		{
			name:    "generated image",
			images:  &stubImages{asset: &models.ImageAsset{URL: "/images/blog/a.png", Alt: "Hot Stone Therapy in Ubud"}},
			wantURL: "/images/blog/a.png",
			wantAlt: "Hot Stone Therapy in Ubud",
		},
		{
			name:    "provider failure",
			images:  &stubImages{err: errors.New("quota exceeded")},
			wantURL: "https://cdn.example.com/fallback.jpg",
			wantAlt: "Hot Stone Therapy in Ubud",
		},
		{
			name:    "disabled",
			images:  &stubImages{err: ErrImageDisabled},
			wantURL: "https://cdn.example.com/fallback.jpg",
			wantAlt: "Hot Stone Therapy in Ubud",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := mock.NewJobRepository()
			jobs.Seed(dueJob("job-1", 1, "hot stone therapy", "Ubud"))
			pub := &stubPublisher{}
			runner := newTestRunner(jobs, tt.images, pub, testPublishConfig())

			result, err := runner.RunDue(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, result.Processed)
			require.Len(t, pub.calls, 1)
			assert.Equal(t, tt.wantURL, pub.calls[0].ImageURL)
			assert.Equal(t, tt.wantAlt, pub.calls[0].ImageAlt)
		})
	}
}

func TestRunDue_NoFallbackConfigured(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 1, "hot stone therapy", "Ubud"))
	pub := &stubPublisher{}
	cfg := testPublishConfig()
	cfg.FallbackImageURL = ""
	runner := newTestRunner(jobs, &stubImages{err: errors.New("down")}, pub, cfg)

	_, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	require.Len(t, pub.calls, 1)
	assert.Empty(t, pub.calls[0].ImageURL)
	assert.Empty(t, pub.calls[0].ImageAlt)
}

func TestRunDue_TruncatesErrorMessage(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 1, "spa etiquette", "Malang"))
	pub := &stubPublisher{PublishFn: func(PublishRequest) (*PublishResult, error) {
		return nil, errors.New(strings.Repeat("x", 5000))
	}}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	_, err := runner.RunDue(context.Background())
	require.NoError(t, err)

	job, _ := jobs.GetByID(context.Background(), "job-1")
	assert.Len(t, job.ErrorMessage, maxErrorMessageLength)
}

func TestRunDue_ListFailure(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.ListDueFunc = func(ctx context.Context, now time.Time) ([]*models.Job, error) {
		return nil, errors.New("connection refused")
	}
	runner := newTestRunner(jobs, nil, &stubPublisher{}, testPublishConfig())

	_, err := runner.RunDue(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestRunDue_IgnoresFutureJobs(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("later", -30, "spa etiquette", "Malang"))
	pub := &stubPublisher{}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{}, result)
	job, _ := jobs.GetByID(context.Background(), "later")
	assert.Equal(t, models.JobStatusPending, job.Status)
}

func TestTruncateMessage(t *testing.T) {
	assert.Equal(t, "short", truncateMessage("short", 10))
	assert.Equal(t, "ab", truncateMessage("abcdef", 2))
	// "é" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "a", truncateMessage("aé", 2))
}

func TestRunDue_RetriesMarkDone(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 5, "thai massage", "Bandung"))
	calls := 0
	jobs.MarkDoneFunc = func(ctx context.Context, id, postID string) error {
		calls++
		if calls == 1 {
			return errors.New("connection reset by peer")
		}
		jobs.MarkDoneFunc = nil
		return jobs.MarkDone(ctx, id, postID)
	}
	runner := newTestRunner(jobs, nil, &stubPublisher{}, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{Processed: 1}, result)
	assert.Equal(t, 2, calls)

	job, err := jobs.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDone, job.Status)
	assert.NotEmpty(t, job.ResultPostID)
}

func TestRunDue_MarkDoneExhaustedIsNotProcessed(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 5, "thai massage", "Bandung"))
	calls := 0
	jobs.MarkDoneFunc = func(context.Context, string, string) error {
		calls++
		return errors.New("connection reset by peer")
	}
	runner := newTestRunner(jobs, nil, &stubPublisher{}, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{Failed: 1}, result)
	assert.Equal(t, 3, calls)
}

func TestRunDue_RetriesMarkFailed(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 5, "  ", "Bandung"))
	calls := 0
	jobs.MarkFailedFunc = func(ctx context.Context, id, msg string) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset by peer")
		}
		jobs.MarkFailedFunc = nil
		return jobs.MarkFailed(ctx, id, msg)
	}
	runner := newTestRunner(jobs, nil, &stubPublisher{}, testPublishConfig())

	result, err := runner.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &RunResult{Failed: 1}, result)
	assert.Equal(t, 3, calls)

	job, err := jobs.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, job.Status)
	assert.NotEmpty(t, job.ErrorMessage)
}

func TestRunDue_StatusUpdateSurvivesCancellation(t *testing.T) {
	jobs := mock.NewJobRepository()
	jobs.Seed(dueJob("job-1", 5, "thai massage", "Bandung"))
	ctx, cancel := context.WithCancel(context.Background())
	pub := &stubPublisher{PublishFn: func(req PublishRequest) (*PublishResult, error) {
		cancel()
		return &PublishResult{PostID: "post-1", Slug: req.Content.Slug}, nil
	}}
	runner := newTestRunner(jobs, nil, pub, testPublishConfig())

	result, err := runner.RunDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	job, err := jobs.GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDone, job.Status)
	assert.Equal(t, "post-1", job.ResultPostID)
}
