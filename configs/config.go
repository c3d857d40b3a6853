package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Schedule struct {
	MinPostsPerDay int
	MaxPostsPerDay int
	GapMinMinutes  int
	GapMaxMinutes  int
	WindowStart    string // HH:MM local time
	WindowEnd      string // HH:MM local time
	Timezone       string
	Cities         []string
}

type Publish struct {
	RetryAttempts    int
	RetryDelay       time.Duration
	Timeout          time.Duration
	FallbackImageURL string
	FallbackImageAlt string
	AuthorID         string
	OriginCountry    string
	SiteBaseURL      string
}

type Image struct {
	APIURL     string
	APIKey     string
	Model      string
	Size       string
	Timeout    time.Duration
	Storage    string // local, r2
	LocalDir   string
	PublicPath string
}

type SideEffects struct {
	SitemapMode               string // exec, queue, none
	SitemapCommand            string
	CachePurge                string // none, redis
	GoogleIndexingCredentials string
}

type Config struct {
	PostgresURI   string
	RedisURI      string
	Port          string
	SecretKey     string
	SchedulerSpec string
	RunnerSpec    string
	Schedule      Schedule
	Publish       Publish
	Image         Image
	SideEffects   SideEffects
	R2            R2
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", ""),
		Port:          getEnv("PORT", "3000"),
		SecretKey:     getEnv("SECRET_KEY", ""),
		SchedulerSpec: getEnv("SCHEDULER_SPEC", "0 1 0 * * *"),
		RunnerSpec:    getEnv("RUNNER_SPEC", "@every 15m"),
		Schedule: Schedule{
			MinPostsPerDay: getEnvInt("MIN_POSTS_PER_DAY", 3),
			MaxPostsPerDay: getEnvInt("MAX_POSTS_PER_DAY", 5),
			GapMinMinutes:  getEnvInt("PUBLISH_GAP_MIN_MINUTES", 120),
			GapMaxMinutes:  getEnvInt("PUBLISH_GAP_MAX_MINUTES", 240),
			WindowStart:    getEnv("SCHEDULE_WINDOW_START", "00:01"),
			WindowEnd:      getEnv("SCHEDULE_WINDOW_END", "23:59"),
			Timezone:       getEnv("TIMEZONE", "Asia/Jakarta"),
			Cities:         getEnvList("CITY_POOL", nil),
		},
		Publish: Publish{
			RetryAttempts:    getEnvInt("PUBLISH_RETRY_ATTEMPTS", 3),
			RetryDelay:       getEnvDuration("PUBLISH_RETRY_DELAY", 2*time.Second),
			Timeout:          getEnvDuration("PUBLISH_TIMEOUT", 30*time.Second),
			FallbackImageURL: getEnv("FALLBACK_IMAGE_URL", ""),
			FallbackImageAlt: getEnv("FALLBACK_IMAGE_ALT", ""),
			AuthorID:         getEnv("AUTHOR_ID", "autopublisher"),
			OriginCountry:    getEnv("ORIGIN_COUNTRY", "ID"),
			SiteBaseURL:      strings.TrimRight(getEnv("SITE_BASE_URL", "https://www.indastreetmassage.com"), "/"),
		},
		Image: Image{
			APIURL:     getEnv("IMAGE_API_URL", "https://api.openai.com/v1"),
			APIKey:     getEnv("IMAGE_API_KEY", ""),
			Model:      getEnv("IMAGE_MODEL", "dall-e-3"),
			Size:       getEnv("IMAGE_SIZE", "1024x1024"),
			Timeout:    getEnvDuration("IMAGE_TIMEOUT", 60*time.Second),
			Storage:    getEnv("IMAGE_STORAGE", "local"),
			LocalDir:   getEnv("IMAGE_LOCAL_DIR", "./public/images"),
			PublicPath: getEnv("IMAGE_PUBLIC_PATH", "/images"),
		},
		SideEffects: SideEffects{
			SitemapMode:               getEnv("SITEMAP_MODE", "none"),
			SitemapCommand:            getEnv("SITEMAP_COMMAND", ""),
			CachePurge:                getEnv("CACHE_PURGE", "none"),
			GoogleIndexingCredentials: getEnv("GOOGLE_INDEXING_CREDENTIALS", ""),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  strings.TrimRight(getEnv("R2_PUBLIC_URL", ""), "/"),
		},
	}
}

// Validate checks ranges and the settings that depend on each other.
func (c *Config) Validate() error {
	s := c.Schedule
	if s.MinPostsPerDay < 1 || s.MaxPostsPerDay < s.MinPostsPerDay {
		return fmt.Errorf("posts per day range %d-%d is invalid", s.MinPostsPerDay, s.MaxPostsPerDay)
	}
	if s.GapMinMinutes < 1 || s.GapMaxMinutes < s.GapMinMinutes {
		return fmt.Errorf("publish gap range %d-%d is invalid", s.GapMinMinutes, s.GapMaxMinutes)
	}
	start, err := ParseClock(s.WindowStart)
	if err != nil {
		return fmt.Errorf("SCHEDULE_WINDOW_START: %w", err)
	}
	end, err := ParseClock(s.WindowEnd)
	if err != nil {
		return fmt.Errorf("SCHEDULE_WINDOW_END: %w", err)
	}
	if end <= start {
		return fmt.Errorf("schedule window %s-%s is empty", s.WindowStart, s.WindowEnd)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	if c.Publish.RetryAttempts < 1 {
		return fmt.Errorf("PUBLISH_RETRY_ATTEMPTS must be at least 1")
	}
	if c.Publish.Timeout <= 0 || c.Image.Timeout <= 0 {
		return fmt.Errorf("publish and image timeouts must be positive")
	}
	switch c.Image.Storage {
	case "local", "r2":
	default:
		return fmt.Errorf("IMAGE_STORAGE must be local or r2, got %q", c.Image.Storage)
	}
	switch c.SideEffects.SitemapMode {
	case "none":
	case "exec":
		if c.SideEffects.SitemapCommand == "" {
			return fmt.Errorf("SITEMAP_COMMAND is required when SITEMAP_MODE=exec")
		}
	case "queue":
		if c.RedisURI == "" {
			return fmt.Errorf("REDIS_URI is required when SITEMAP_MODE=queue")
		}
	default:
		return fmt.Errorf("SITEMAP_MODE must be exec, queue or none, got %q", c.SideEffects.SitemapMode)
	}
	switch c.SideEffects.CachePurge {
	case "none":
	case "redis":
		if c.RedisURI == "" {
			return fmt.Errorf("REDIS_URI is required when CACHE_PURGE=redis")
		}
	default:
		return fmt.Errorf("CACHE_PURGE must be redis or none, got %q", c.SideEffects.CachePurge)
	}
	return nil
}

// ParseClock parses HH:MM into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
