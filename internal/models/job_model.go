package models

import (
	"fmt"
	"strings"
	"time"
)

type Job struct {
	ID           string    `db:"id" json:"id"`
	RunAt        time.Time `db:"run_at" json:"run_at"`
	Topic        string    `db:"topic" json:"topic"`
	City         string    `db:"city" json:"city"`
	Category     Category  `db:"category" json:"category"`
	Service      string    `db:"service" json:"service,omitempty"`
	Status       string    `db:"status" json:"status"` // pending, processing, done, failed
	ResultPostID string    `db:"result_post_id" json:"result_post_id,omitempty"`
	ErrorMessage string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// jobTransitions lists the forward edges of the job lifecycle. A job never
// returns to pending once processing has started.
var jobTransitions = map[string][]string{
	JobStatusPending:    {JobStatusProcessing},
	JobStatusProcessing: {JobStatusDone, JobStatusFailed},
}

func CanTransition(from, to string) bool {
	for _, s := range jobTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return status == JobStatusDone || status == JobStatusFailed
}

func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusPending, JobStatusProcessing, JobStatusDone, JobStatusFailed:
		return true
	}
	return false
}

type Category string

const (
	CategoryMassage     Category = "massage"
	CategoryFacial      Category = "facial"
	CategorySpa         Category = "spa"
	CategoryHomeService Category = "home-service"
	CategoryAuthority   Category = "authority"
	CategoryEngagement  Category = "engagement"
	CategoryConversion  Category = "conversion"
	CategoryTrending    Category = "trending"
)

// Categories is the closed set in planning order.
var Categories = []Category{
	CategoryMassage,
	CategoryFacial,
	CategorySpa,
	CategoryHomeService,
	CategoryAuthority,
	CategoryEngagement,
	CategoryConversion,
	CategoryTrending,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
