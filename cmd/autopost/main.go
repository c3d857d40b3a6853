package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/app"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/pkg/utils"
)

const usage = `usage: autopost <command> [flags]

commands:
  schedule [-date YYYY-MM-DD]   plan and store the jobs of a day (default today)
  run                           publish every due job
  migrate                       apply database migrations
  token [-subject name] [-ttl]  mint an operator API token
  secret [-bytes 32]            print a random SECRET_KEY
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "schedule":
		err = runSchedule(ctx, cfg, logger, args)
	case "run":
		err = runDue(ctx, cfg, logger)
	case "migrate":
		err = repository.Migrate(cfg.PostgresURI)
	case "token":
		err = runToken(cfg, args)
	case "secret":
		err = runSecret(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		exitWithError(err)
	}
}

func runSchedule(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	dateFlag := fs.String("date", "", "day to schedule as YYYY-MM-DD (default today)")
	fs.Parse(args)

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	date := time.Now().In(a.Planner.Location())
	if *dateFlag != "" {
		date, err = time.ParseInLocation("2006-01-02", *dateFlag, a.Planner.Location())
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
	}

	result, err := a.Scheduler.ScheduleDay(ctx, date)
	if result != nil {
		printJSON(result)
	}
	return err
}

func runDue(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Runner.RunDue(ctx)
	if err != nil {
		return err
	}
	printJSON(result)
	return nil
}

func runToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "ops", "operator name stored in the token")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	fs.Parse(args)

	token, err := utils.GenerateToken(cfg.SecretKey, *subject, *ttl)
	if err != nil {
		return fmt.Errorf("generate token (is SECRET_KEY set?): %w", err)
	}
	fmt.Println(token)
	return nil
}

func runSecret(args []string) error {
	fs := flag.NewFlagSet("secret", flag.ExitOnError)
	size := fs.Int("bytes", 32, "number of random bytes")
	fs.Parse(args)

	key, err := utils.GenerateSecretKey(*size)
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "autopost: %v\n", err)
	os.Exit(1)
}
