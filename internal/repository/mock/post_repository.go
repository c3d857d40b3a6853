package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

// PostRepository is an in-memory repository.PostRepository.
type PostRepository struct {
	mu    sync.Mutex
	posts []*models.Post

	CreateFunc       func(ctx context.Context, post *models.Post) (string, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

// All returns copies of the stored posts in insertion order.
func (r *PostRepository) All() []*models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, post)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	cp := *post
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.posts = append(r.posts, &cp)
	return cp.ID, nil
}

func (r *PostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if r.ExistsBySlugFunc != nil {
		return r.ExistsBySlugFunc(ctx, slug)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	all := r.All()
	sort.SliceStable(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
