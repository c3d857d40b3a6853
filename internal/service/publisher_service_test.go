package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maheshrc27/autopost/internal/content"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSideEffects struct {
	sitemaps []string
	purged   []string
	notified []string
}

func (r *recordingSideEffects) Regenerate(_ context.Context, reason string) {
	r.sitemaps = append(r.sitemaps, reason)
}

func (r *recordingSideEffects) Purge(_ context.Context, url string) {
	r.purged = append(r.purged, url)
}

func (r *recordingSideEffects) Notify(_ context.Context, url string) {
	r.notified = append(r.notified, url)
}

func newTestPublisher(posts *mock.PostRepository, fx *recordingSideEffects) *publisherService {
	return NewPublisherService(posts, fx, fx, fx, "https://www.indastreetmassage.com", discardLogger()).(*publisherService)
}

func bandungContent(suffix string) models.GeneratedPostContent {
	return content.Generate(content.Input{
		Topic:      "deep tissue massage benefits",
		City:       "Bandung",
		Category:   models.CategoryMassage,
		SlugSuffix: suffix,
	})
}

func TestPublish_StoresPublishedPost(t *testing.T) {
	posts := mock.NewPostRepository()
	fx := &recordingSideEffects{}
	pub := newTestPublisher(posts, fx)

	c := bandungContent("abc123")
	result, err := pub.Publish(context.Background(), PublishRequest{
		Content:       c,
		AuthorID:      "autopublisher",
		OriginCountry: "ID",
		ImageURL:      "/images/blog/x.png",
		ImageAlt:      "Deep Tissue Massage Benefits in Bandung",
		City:          "Bandung",
		Topic:         "deep tissue massage benefits",
		Category:      models.CategoryMassage,
	})
	require.NoError(t, err)

	assert.Equal(t, "deep-tissue-massage-benefits-bandung-abc123", result.Slug)
	assert.Equal(t, "https://www.indastreetmassage.com/post/deep-tissue-massage-benefits-bandung-abc123", result.CanonicalURL)
	assert.False(t, result.SlugWasAdjusted)
	assert.NotEmpty(t, result.PostID)

	stored := posts.All()
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Published)
	assert.Equal(t, c.Title, stored[0].Title)
	assert.Equal(t, "ID", stored[0].OriginCountry)
	assert.Equal(t, models.CategoryMassage, stored[0].Category)

	assert.Equal(t, []string{"post_published"}, fx.sitemaps)
	assert.Equal(t, []string{result.CanonicalURL}, fx.purged)
	assert.Equal(t, []string{result.CanonicalURL}, fx.notified)
}

func TestPublish_AdjustsCollidingSlug(t *testing.T) {
	posts := mock.NewPostRepository()
	pub := newTestPublisher(posts, &recordingSideEffects{})
	suffixes := []string{"zzz111", "zzz222"}
	pub.newSuffix = func() string {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}

	c := bandungContent("same01")
	first, err := pub.Publish(context.Background(), PublishRequest{Content: c})
	require.NoError(t, err)
	second, err := pub.Publish(context.Background(), PublishRequest{Content: c})
	require.NoError(t, err)

	assert.False(t, first.SlugWasAdjusted)
	assert.True(t, second.SlugWasAdjusted)
	assert.Equal(t, "deep-tissue-massage-benefits-bandung-zzz111", second.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.NotEqual(t, first.PostID, second.PostID)
}

func TestPublish_RetriesUntilSlugIsFree(t *testing.T) {
	posts := mock.NewPostRepository()
	checks := 0
	posts.ExistsBySlugFunc = func(ctx context.Context, slug string) (bool, error) {
		checks++
		return checks < 3, nil
	}
	pub := newTestPublisher(posts, &recordingSideEffects{})

	result, err := pub.Publish(context.Background(), PublishRequest{Content: bandungContent("taken1")})
	require.NoError(t, err)
	assert.True(t, result.SlugWasAdjusted)
	assert.Equal(t, 3, checks)
	assert.Regexp(t, `^deep-tissue-massage-benefits-bandung-[a-z0-9]{6}$`, result.Slug)
}

func TestPublish_StoreFailure(t *testing.T) {
	posts := mock.NewPostRepository()
	posts.CreateFunc = func(ctx context.Context, post *models.Post) (string, error) {
		return "", errors.New("insert failed")
	}
	fx := &recordingSideEffects{}
	pub := newTestPublisher(posts, fx)

	_, err := pub.Publish(context.Background(), PublishRequest{Content: bandungContent("x1y2z3")})
	require.Error(t, err)
	assert.Empty(t, fx.sitemaps, "side effects only run after a successful insert")
	assert.Empty(t, fx.purged)
}

func TestPublish_ExistsCheckFailure(t *testing.T) {
	posts := mock.NewPostRepository()
	posts.ExistsBySlugFunc = func(ctx context.Context, slug string) (bool, error) {
		return false, errors.New("query failed")
	}
	pub := newTestPublisher(posts, &recordingSideEffects{})

	_, err := pub.Publish(context.Background(), PublishRequest{Content: bandungContent("x1y2z3")})
	assert.ErrorContains(t, err, "query failed")
	assert.Empty(t, posts.All())
}

func TestPageCacheKeys(t *testing.T) {
	keys := pageCacheKeys("page:", "https://www.indastreetmassage.com/post/spa-ubud-abc123")
	assert.Equal(t, []string{"page:/post/spa-ubud-abc123", "page:/blog"}, keys)
}
