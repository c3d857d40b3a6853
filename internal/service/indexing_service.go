package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/indexing/v3"
	"google.golang.org/api/option"
)

// IndexNotifier tells search engines that a URL has new content.
type IndexNotifier interface {
	Notify(ctx context.Context, canonicalURL string)
}

type noopIndexNotifier struct{}

func NewNoopIndexNotifier() IndexNotifier { return noopIndexNotifier{} }

func (noopIndexNotifier) Notify(context.Context, string) {}

type googleIndexNotifier struct {
	svc    *indexing.Service
	logger *slog.Logger
}

// NewGoogleIndexNotifier builds an Indexing API client from a service
// account key file.
func NewGoogleIndexNotifier(ctx context.Context, credentialsFile string, logger *slog.Logger) (IndexNotifier, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read indexing credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, indexing.IndexingScope)
	if err != nil {
		return nil, fmt.Errorf("parse indexing credentials: %w", err)
	}
	svc, err := indexing.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create indexing client: %w", err)
	}
	return &googleIndexNotifier{svc: svc, logger: logger}, nil
}

func (n *googleIndexNotifier) Notify(ctx context.Context, canonicalURL string) {
	_, err := n.svc.UrlNotifications.Publish(&indexing.UrlNotification{
		Url:  canonicalURL,
		Type: "URL_UPDATED",
	}).Context(ctx).Do()
	if err != nil {
		n.logger.Warn("indexing notification failed", "event", "index_notify_failed", "url", canonicalURL, "error", err)
		return
	}
	n.logger.Info("indexing notified", "event", "index_notified", "url", canonicalURL)
}
