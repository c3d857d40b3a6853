package queue

import (
	"log/slog"
	"time"
)

// Queue handles the background tasks fanned out after a post is published.
type Queue struct {
	command []string
	timeout time.Duration
	logger  *slog.Logger
}

func NewQueue(command []string, timeout time.Duration, logger *slog.Logger) *Queue {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Queue{
		command: command,
		timeout: timeout,
		logger:  logger,
	}
}

const TaskTypeSitemapRegenerate = "sitemap:regenerate"

type SitemapPayload struct {
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}
