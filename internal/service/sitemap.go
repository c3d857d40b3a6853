package service

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/maheshrc27/autopost/internal/queue"
)

// SitemapTrigger asks for the sitemap to be rebuilt. It never reports
// failure to the caller.
type SitemapTrigger interface {
	Regenerate(ctx context.Context, reason string)
}

type noopSitemapTrigger struct{}

func NewNoopSitemapTrigger() SitemapTrigger { return noopSitemapTrigger{} }

func (noopSitemapTrigger) Regenerate(context.Context, string) {}

type execSitemapTrigger struct {
	command []string
	logger  *slog.Logger
}

// NewExecSitemapTrigger starts command on every call without waiting for it.
func NewExecSitemapTrigger(command []string, logger *slog.Logger) SitemapTrigger {
	return &execSitemapTrigger{command: command, logger: logger}
}

func (t *execSitemapTrigger) Regenerate(_ context.Context, reason string) {
	if len(t.command) == 0 {
		return
	}
	cmd := exec.Command(t.command[0], t.command[1:]...)
	if err := cmd.Start(); err != nil {
		t.logger.Warn("sitemap command did not start", "event", "sitemap_start_failed", "reason", reason, "error", err)
		return
	}
	t.logger.Info("sitemap command started", "event", "sitemap_started", "reason", reason, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			t.logger.Warn("sitemap command failed", "event", "sitemap_failed", "reason", reason, "error", err)
		}
	}()
}

type queueSitemapTrigger struct {
	client queue.Enqueuer
	logger *slog.Logger
}

// NewQueueSitemapTrigger hands the rebuild to the asynq worker.
func NewQueueSitemapTrigger(client queue.Enqueuer, logger *slog.Logger) SitemapTrigger {
	return &queueSitemapTrigger{client: client, logger: logger}
}

func (t *queueSitemapTrigger) Regenerate(_ context.Context, reason string) {
	if err := queue.EnqueueSitemap(t.client, reason); err != nil {
		t.logger.Warn("sitemap task not queued", "event", "sitemap_enqueue_failed", "reason", reason, "error", err)
	}
}
