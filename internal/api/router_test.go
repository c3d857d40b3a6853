package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository/mock"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type testEnv struct {
	app   *fiber.App
	jobs  *mock.JobRepository
	posts *mock.PostRepository
	token string
}

func newTestEnv(t *testing.T, db handlers.Pinger) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	planner, err := service.NewPlanner(config.Schedule{
		MinPostsPerDay: 3,
		MaxPostsPerDay: 5,
		GapMinMinutes:  120,
		GapMaxMinutes:  240,
		WindowStart:    "00:01",
		WindowEnd:      "23:59",
		Timezone:       "Asia/Jakarta",
	})
	require.NoError(t, err)

	jobs := mock.NewJobRepository()
	posts := mock.NewPostRepository()
	publisher := service.NewPublisherService(posts, nil, nil, nil, "https://www.indastreetmassage.com", logger)
	runner := service.NewRunnerService(jobs, nil, publisher, config.Publish{
		RetryAttempts: 1,
		Timeout:       time.Second,
		AuthorID:      "autopublisher",
		OriginCountry: "ID",
	}, logger)

	app := api.NewApp(api.Handlers{
		Health: handlers.NewHealthHandler(db),
		Jobs: handlers.NewJobHandler(
			service.NewJobService(jobs, planner.Location(), logger),
			service.NewSchedulerService(planner, jobs, logger),
			runner,
			planner.Location(),
		),
		Posts: handlers.NewPostHandler(service.NewPostService(posts)),
	}, testSecret, false)

	token, err := utils.GenerateToken(testSecret, "ops", time.Hour)
	require.NoError(t, err)

	return &testEnv{app: app, jobs: jobs, posts: posts, token: token}
}

func (e *testEnv) do(t *testing.T, method, target string, auth bool) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, fakeDB{})
	status, body := env.do(t, http.MethodGet, "/health", false)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	down := newTestEnv(t, fakeDB{err: errors.New("connection refused")})
	status, _ = down.do(t, http.MethodGet, "/health", false)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestAPI_RequiresToken(t *testing.T) {
	env := newTestEnv(t, fakeDB{})

	status, _ := env.do(t, http.MethodGet, "/api/jobs", false)
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ScheduleThenList(t *testing.T) {
	env := newTestEnv(t, fakeDB{})

	status, body := env.do(t, http.MethodPost, "/api/schedule?date=2026-10-14", true)
	require.Equal(t, http.StatusOK, status)
	created := int(body["created"].(float64))
	assert.GreaterOrEqual(t, created, 3)

	status, body = env.do(t, http.MethodGet, "/api/jobs?date=2026-10-14&status=pending", true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(created), body["count"])

	status, body = env.do(t, http.MethodGet, "/api/jobs?date=2026-10-15", true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])

	status, _ = env.do(t, http.MethodGet, "/api/jobs?status=bogus", true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/api/schedule?date=14-10-2026", true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_RunAndReadPosts(t *testing.T) {
	env := newTestEnv(t, fakeDB{})
	env.jobs.Seed(&models.Job{
		ID:       "job-1",
		RunAt:    time.Now().Add(-time.Minute),
		Topic:    "deep tissue massage benefits",
		City:     "Bandung",
		Category: models.CategoryMassage,
	})

	status, body := env.do(t, http.MethodPost, "/api/run", true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["processed"])

	posts := env.posts.All()
	require.Len(t, posts, 1)

	status, body = env.do(t, http.MethodGet, "/api/posts/"+posts[0].Slug, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bandung", body["city"])

	status, _ = env.do(t, http.MethodGet, "/api/posts/missing-slug", true)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ResetJob(t *testing.T) {
	env := newTestEnv(t, fakeDB{})
	env.jobs.Seed(
		&models.Job{ID: "failed-1", RunAt: time.Now(), Topic: "t", City: "c", Status: models.JobStatusFailed, ErrorMessage: "boom"},
		&models.Job{ID: "done-1", RunAt: time.Now().Add(time.Hour), Topic: "t", City: "c", Status: models.JobStatusDone},
	)

	status, body := env.do(t, http.MethodPost, "/api/jobs/reset?id=failed-1", true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.JobStatusPending, body["status"])

	status, _ = env.do(t, http.MethodPost, "/api/jobs/reset?id=done-1", true)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, http.MethodPost, "/api/jobs/reset?id=nope", true)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, "/api/jobs/reset", true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_ScheduleStatus(t *testing.T) {
	env := newTestEnv(t, fakeDB{})
	env.jobs.ListRunTimesFunc = func(context.Context, time.Time, time.Time) ([]time.Time, error) {
		return nil, errors.New("connection refused")
	}
	status, body := env.do(t, http.MethodPost, "/api/schedule?date=2026-10-14", true)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "created")

	env.jobs.ListRunTimesFunc = nil
	calls := 0
	env.jobs.CreateFunc = func(context.Context, *models.Job) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("store unavailable")
		}
		return "id", nil
	}
	status, body = env.do(t, http.MethodPost, "/api/schedule?date=2026-10-14", true)
	assert.Equal(t, http.StatusMultiStatus, status)
	assert.Equal(t, float64(calls-1), body["created"])
	assert.Contains(t, body["error"], "store unavailable")
}
