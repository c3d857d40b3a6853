package models

import "time"

// GeneratedPostContent is produced by the content generator and consumed
// immediately by the publisher. It is never persisted on its own.
type GeneratedPostContent struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	BaseSlug    string   `json:"base_slug"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Hashtags    []string `json:"hashtags"`
	ImagePrompt string   `json:"image_prompt"`
	Seed        uint64   `json:"seed"`
}

type Post struct {
	ID            string    `db:"id" json:"id"`
	Slug          string    `db:"slug" json:"slug"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Body          string    `db:"body" json:"body"`
	Hashtags      []string  `db:"hashtags" json:"hashtags"`
	ImagePrompt   string    `db:"image_prompt" json:"image_prompt"`
	ImageURL      string    `db:"image_url" json:"image_url,omitempty"`
	ImageAlt      string    `db:"image_alt" json:"image_alt,omitempty"`
	AuthorID      string    `db:"author_id" json:"author_id"`
	OriginCountry string    `db:"origin_country" json:"origin_country"`
	Published     bool      `db:"published" json:"published"`
	City          string    `db:"city" json:"city"`
	Topic         string    `db:"topic" json:"topic"`
	Category      Category  `db:"category" json:"category"`
	Service       string    `db:"service" json:"service,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ImageAsset struct {
	URL         string `json:"url"`
	Alt         string `json:"alt"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}
