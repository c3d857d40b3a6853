package queue

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// coalesceWindow is how long a queued regeneration absorbs further requests.
const coalesceWindow = time.Minute

type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueSitemap queues one sitemap rebuild. Requests arriving while one is
// already waiting are folded into it.
func EnqueueSitemap(client Enqueuer, reason string) error {
	taskPayload, err := json.Marshal(SitemapPayload{Reason: reason, RequestedAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeSitemapRegenerate, taskPayload)

	_, err = client.Enqueue(task,
		asynq.Unique(coalesceWindow),
		asynq.ProcessIn(coalesceWindow),
		asynq.MaxRetry(3),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("sitemap task queued", "reason", reason)
	return nil
}
