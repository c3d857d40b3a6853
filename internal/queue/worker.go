package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandleSitemapTask(ctx context.Context, task *asynq.Task) error {
	var payload SitemapPayload
	dec := json.NewDecoder(bytes.NewReader(task.Payload()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("decode sitemap payload: %v: %w", err, asynq.SkipRetry)
	}

	return q.RegenerateSitemap(ctx, payload.Reason)
}

// RegenerateSitemap runs the configured command and waits for it to exit.
func (q *Queue) RegenerateSitemap(ctx context.Context, reason string) error {
	if len(q.command) == 0 {
		return fmt.Errorf("no sitemap command configured: %w", asynq.SkipRetry)
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	started := time.Now()
	cmd := exec.CommandContext(ctx, q.command[0], q.command[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		q.logger.Error("sitemap regeneration failed", "event", "sitemap_failed",
			"reason", reason, "error", err, "output", tail(out, 512))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("sitemap command timed out after %s", q.timeout)
		}
		return fmt.Errorf("sitemap command: %w", err)
	}

	q.logger.Info("sitemap regenerated", "event", "sitemap_done",
		"reason", reason, "duration", time.Since(started).String())
	return nil
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
