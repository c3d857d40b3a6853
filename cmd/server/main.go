package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/app"
	job "github.com/maheshrc27/autopost/internal/jobs"
	"github.com/maheshrc27/autopost/internal/queue"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	if err := repository.Migrate(cfg.PostgresURI); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	// cron jobs
	pipeline := job.NewPipelineJob(a.Scheduler, a.Runner, a.Planner.Location(), time.Hour, logger)

	c := cron.NewWithLocation(a.Planner.Location())
	if err := c.AddFunc(cfg.SchedulerSpec, pipeline.ScheduleToday); err != nil {
		log.Fatalf("Invalid SCHEDULER_SPEC %q: %v", cfg.SchedulerSpec, err)
	}
	if err := c.AddFunc(cfg.RunnerSpec, pipeline.RunDue); err != nil {
		log.Fatalf("Invalid RUNNER_SPEC %q: %v", cfg.RunnerSpec, err)
	}
	c.Start()

	// today's plan may have been missed while the daemon was down
	go pipeline.ScheduleToday()

	var worker *asynq.Server
	if cfg.SideEffects.SitemapMode == "queue" {
		redisConn, err := asynq.ParseRedisURI(cfg.RedisURI)
		if err != nil {
			log.Fatalf("Invalid REDIS_URI: %v", err)
		}
		queueW := queue.NewQueue(strings.Fields(cfg.SideEffects.SitemapCommand), 5*time.Minute, logger)

		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 1,
		})
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSitemapRegenerate, queueW.HandleSitemapTask)

		go func() {
			log.Println("Starting the Asynq server...")
			if err := worker.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	}

	server := api.NewApp(api.Handlers{
		Health: handlers.NewHealthHandler(a.DB),
		Jobs:   handlers.NewJobHandler(a.JobSvc, a.Scheduler, a.Runner, a.Planner.Location()),
		Posts:  handlers.NewPostHandler(a.PostSvc),
	}, cfg.SecretKey, true)

	go func() {
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	c.Stop()
	if worker != nil {
		worker.Shutdown()
	}
	if err := server.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	log.Println("Server shutdown complete.")
}
