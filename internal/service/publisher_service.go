package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/autopost/internal/content"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

const sideEffectTimeout = 10 * time.Second

type PublishRequest struct {
	Content       models.GeneratedPostContent
	AuthorID      string
	OriginCountry string
	ImageURL      string
	ImageAlt      string
	City          string
	Topic         string
	Category      models.Category
	Service       string
}

type PublishResult struct {
	PostID          string `json:"post_id"`
	Slug            string `json:"slug"`
	CanonicalURL    string `json:"canonical_url"`
	SlugWasAdjusted bool   `json:"slug_was_adjusted"`
}

type PublisherService interface {
	Publish(ctx context.Context, req PublishRequest) (*PublishResult, error)
}

type publisherService struct {
	posts     repository.PostRepository
	sitemap   SitemapTrigger
	purger    CachePurger
	indexer   IndexNotifier
	baseURL   string
	newSuffix func() string
	logger    *slog.Logger
}

func NewPublisherService(
	posts repository.PostRepository,
	sitemap SitemapTrigger,
	purger CachePurger,
	indexer IndexNotifier,
	baseURL string,
	logger *slog.Logger) PublisherService {
	if sitemap == nil {
		sitemap = NewNoopSitemapTrigger()
	}
	if purger == nil {
		purger = NewNoopCachePurger()
	}
	if indexer == nil {
		indexer = NewNoopIndexNotifier()
	}
	return &publisherService{
		posts:     posts,
		sitemap:   sitemap,
		purger:    purger,
		indexer:   indexer,
		baseURL:   baseURL,
		newSuffix: content.NewSuffix,
		logger:    logger,
	}
}

// CanonicalURL is the public address of a post.
func CanonicalURL(baseURL, slug string) string {
	return fmt.Sprintf("%s/post/%s", baseURL, slug)
}

// Publish stores the post under a slug no other post uses, then fans out the
// best-effort side effects.
func (s *publisherService) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if req.Content.Slug == "" {
		return nil, errors.New("content has no slug")
	}

	slug, adjusted, err := s.uniqueSlug(ctx, req.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Slug:          slug,
		Title:         req.Content.Title,
		Description:   req.Content.Description,
		Body:          req.Content.Body,
		Hashtags:      req.Content.Hashtags,
		ImagePrompt:   req.Content.ImagePrompt,
		ImageURL:      req.ImageURL,
		ImageAlt:      req.ImageAlt,
		AuthorID:      req.AuthorID,
		OriginCountry: req.OriginCountry,
		Published:     true,
		City:          req.City,
		Topic:         req.Topic,
		Category:      req.Category,
		Service:       req.Service,
	}
	postID, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	result := &PublishResult{
		PostID:          postID,
		Slug:            slug,
		CanonicalURL:    CanonicalURL(s.baseURL, slug),
		SlugWasAdjusted: adjusted,
	}
	s.logger.Info("post published", "event", "post_published",
		"post_id", postID, "slug", slug, "slug_adjusted", adjusted)

	s.fanOut(ctx, result.CanonicalURL)
	return result, nil
}

func (s *publisherService) uniqueSlug(ctx context.Context, c models.GeneratedPostContent) (string, bool, error) {
	base := c.BaseSlug
	if base == "" {
		base = c.Slug
	}
	slug := c.Slug
	adjusted := false
	for {
		exists, err := s.posts.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", false, fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !exists {
			return slug, adjusted, nil
		}
		slug = content.WithSuffix(base, s.newSuffix())
		adjusted = true
	}
}

func (s *publisherService) fanOut(ctx context.Context, canonicalURL string) {
	run := func(fn func(context.Context)) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
		defer cancel()
		fn(ctx)
	}
	run(func(ctx context.Context) { s.sitemap.Regenerate(ctx, "post_published") })
	run(func(ctx context.Context) { s.purger.Purge(ctx, canonicalURL) })
	run(func(ctx context.Context) { s.indexer.Notify(ctx, canonicalURL) })
}
