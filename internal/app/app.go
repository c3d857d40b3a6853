// Package app wires the pipeline services from configuration. Both the
// batch CLI and the daemon build their dependencies here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
)

const pageCachePrefix = "page:"

type App struct {
	DB        *sql.DB
	Planner   *service.Planner
	Jobs      repository.JobRepository
	Posts     repository.PostRepository
	Scheduler service.SchedulerService
	Runner    service.RunnerService
	JobSvc    service.JobService
	PostSvc   service.PostService

	closers []func() error
}

// Build connects to the database and assembles every service. Optional
// integrations fall back to no-ops when they are not configured.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.PostgresURI == "" {
		return nil, fmt.Errorf("POSTGRES_URI is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	planner, err := service.NewPlanner(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(ctx, cfg.PostgresURI)
	if err != nil {
		return nil, err
	}
	a := &App{DB: db, Planner: planner}
	a.closers = append(a.closers, db.Close)

	a.Jobs = repository.NewJobRepository(db)
	a.Posts = repository.NewPostRepository(db)

	images, err := a.imageService(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	sitemap, err := a.sitemapTrigger(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	purger, err := a.cachePurger(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	indexer, err := indexNotifier(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	publisher := service.NewPublisherService(a.Posts, sitemap, purger, indexer, cfg.Publish.SiteBaseURL, logger)
	a.Scheduler = service.NewSchedulerService(planner, a.Jobs, logger)
	a.Runner = service.NewRunnerService(a.Jobs, images, publisher, cfg.Publish, logger)
	a.JobSvc = service.NewJobService(a.Jobs, planner.Location(), logger)
	a.PostSvc = service.NewPostService(a.Posts)
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) imageService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.ImageService, error) {
	provider := service.NewImageProvider(cfg.Image)
	if provider == nil {
		return service.NewImageService(nil, nil, cfg.Image, cfg.Publish.OriginCountry, logger), nil
	}

	var storage service.ImageStorage
	switch cfg.Image.Storage {
	case "r2":
		r2, err := service.NewR2Service(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		storage = r2
	default:
		fs, err := service.NewFileStorage(cfg.Image.LocalDir, cfg.Image.PublicPath)
		if err != nil {
			return nil, err
		}
		storage = fs
	}
	return service.NewImageService(provider, storage, cfg.Image, cfg.Publish.OriginCountry, logger), nil
}

func (a *App) sitemapTrigger(cfg *config.Config, logger *slog.Logger) (service.SitemapTrigger, error) {
	switch cfg.SideEffects.SitemapMode {
	case "exec":
		return service.NewExecSitemapTrigger(strings.Fields(cfg.SideEffects.SitemapCommand), logger), nil
	case "queue":
		opt, err := asynq.ParseRedisURI(cfg.RedisURI)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URI: %w", err)
		}
		client := asynq.NewClient(opt)
		a.closers = append(a.closers, client.Close)
		return service.NewQueueSitemapTrigger(client, logger), nil
	}
	return service.NewNoopSitemapTrigger(), nil
}

func (a *App) cachePurger(cfg *config.Config, logger *slog.Logger) (service.CachePurger, error) {
	if cfg.SideEffects.CachePurge != "redis" {
		return service.NewNoopCachePurger(), nil
	}
	purger, err := service.NewRedisCachePurger(cfg.RedisURI, pageCachePrefix, logger)
	if err != nil {
		return nil, err
	}
	if c, ok := purger.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}
	return purger, nil
}

func indexNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IndexNotifier, error) {
	if cfg.SideEffects.GoogleIndexingCredentials == "" {
		return service.NewNoopIndexNotifier(), nil
	}
	return service.NewGoogleIndexNotifier(ctx, cfg.SideEffects.GoogleIndexingCredentials, logger)
}
