package service

import (
	"context"

	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type PostService interface {
	List(ctx context.Context, limit int) ([]*models.Post, error)
	PostInfo(ctx context.Context, slug string) (*models.Post, error)
}

type postService struct {
	pr repository.PostRepository
}

func NewPostService(pr repository.PostRepository) PostService {
	return &postService{pr: pr}
}

func (s *postService) List(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.pr.ListRecent(ctx, limit)
}

func (s *postService) PostInfo(ctx context.Context, slug string) (*models.Post, error) {
	return s.pr.GetBySlug(ctx, slug)
}
