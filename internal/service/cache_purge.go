package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/redis/go-redis/v9"
)

// CachePurger drops cached copies of a published URL. Failures are logged,
// never returned.
type CachePurger interface {
	Purge(ctx context.Context, canonicalURL string)
}

type noopCachePurger struct{}

func NewNoopCachePurger() CachePurger { return noopCachePurger{} }

func (noopCachePurger) Purge(context.Context, string) {}

// blogIndexPath lists the newest posts and goes stale on every publish.
const blogIndexPath = "/blog"

type redisCachePurger struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCachePurger deletes the page cache entries the site keeps in Redis
// under "{prefix}{path}".
func NewRedisCachePurger(redisURL, prefix string, logger *slog.Logger) (CachePurger, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &redisCachePurger{client: redis.NewClient(opts), prefix: prefix, logger: logger}, nil
}

func (p *redisCachePurger) Purge(ctx context.Context, canonicalURL string) {
	keys := pageCacheKeys(p.prefix, canonicalURL)
	n, err := p.client.Del(ctx, keys...).Result()
	if err != nil {
		p.logger.Warn("cache purge failed", "event", "cache_purge_failed", "url", canonicalURL, "error", err)
		return
	}
	p.logger.Info("cache purged", "event", "cache_purged", "url", canonicalURL, "keys", n)
}

func (p *redisCachePurger) Close() error {
	return p.client.Close()
}

func pageCacheKeys(prefix, canonicalURL string) []string {
	path := canonicalURL
	if u, err := url.Parse(canonicalURL); err == nil && u.Path != "" {
		path = u.Path
	}
	return []string{prefix + path, prefix + blogIndexPath}
}
