package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/maheshrc27/autopost/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (string, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, slug, title, description, body, hashtags, image_prompt, image_url, image_alt, author_id, origin_country, published, city, topic, category, service, created_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	hashtags := post.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	query := `
		INSERT INTO blog_posts (id, slug, title, description, body, hashtags, image_prompt, image_url, image_alt,
			author_id, origin_country, published, city, topic, category, service)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Description, post.Body, pq.Array(hashtags),
		post.ImagePrompt, post.ImageURL, post.ImageAlt, post.AuthorID, post.OriginCountry,
		post.Published, post.City, post.Topic, string(post.Category), post.Service,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return id, nil
}

func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := "SELECT 1 FROM blog_posts WHERE slug = $1 LIMIT 1"

	var result int
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1 ORDER BY created_at LIMIT 1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE published ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var category string
	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Description, &post.Body, pq.Array(&post.Hashtags),
		&post.ImagePrompt, &post.ImageURL, &post.ImageAlt, &post.AuthorID, &post.OriginCountry,
		&post.Published, &post.City, &post.Topic, &category, &post.Service, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.Category = models.Category(category)
	return &post, nil
}
