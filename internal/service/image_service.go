package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrImageDisabled = errors.New("image generation is not configured")

var countryNames = map[string]string{
	"ID": "Indonesia",
	"MY": "Malaysia",
	"SG": "Singapore",
	"TH": "Thailand",
	"PH": "the Philippines",
}

type ImageRequest struct {
	Content models.GeneratedPostContent
	Topic   string
	City    string
}

type ImageService interface {
	Produce(ctx context.Context, req ImageRequest) (*models.ImageAsset, error)
}

type fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type imageService struct {
	provider      ImageProvider
	storage       ImageStorage
	fetcher       fetcher
	size          string
	timeout       time.Duration
	originCountry string
	logger        *slog.Logger
}

func NewImageService(provider ImageProvider, storage ImageStorage, cfg config.Image, originCountry string, logger *slog.Logger) ImageService {
	return &imageService{
		provider:      provider,
		storage:       storage,
		fetcher:       newImageFetcher(cfg.Timeout),
		size:          cfg.Size,
		timeout:       cfg.Timeout,
		originCountry: originCountry,
		logger:        logger,
	}
}

// Produce generates, downloads and stores the hero image of a post.
func (s *imageService) Produce(ctx context.Context, req ImageRequest) (*models.ImageAsset, error) {
	if s.provider == nil || s.storage == nil {
		return nil, ErrImageDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	location, err := s.provider.Generate(ctx, s.localizePrompt(req.Content.ImagePrompt), s.size)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	data, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown || !filetype.IsImage(data) {
		return nil, errors.New("generated file is not a supported image")
	}

	fileName := imageFileName(req.Content.BaseSlug, data, kind.Extension)
	url, err := s.storage.Save(ctx, fileName, data, kind.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	s.logger.Info("image stored", "event", "image_stored", "file", fileName, "bytes", len(data))
	return &models.ImageAsset{
		URL:         url,
		Alt:         ImageAlt(req.Topic, req.City),
		FileName:    fileName,
		ContentType: kind.MIME.Value,
	}, nil
}

func (s *imageService) localizePrompt(prompt string) string {
	name, ok := countryNames[strings.ToUpper(s.originCountry)]
	if !ok {
		return prompt
	}
	return prompt + ", in " + name
}

// imageFileName names the stored object after the post so the URL carries
// the same keywords as the slug.
func imageFileName(baseSlug string, data []byte, ext string) string {
	if baseSlug == "" {
		baseSlug = "post"
	}
	return fmt.Sprintf("blog/%s-%08x.%s", baseSlug, uint32(xxhash.Sum64(data)), ext)
}

// ImageAlt is the alt text shared by generated and fallback images.
func ImageAlt(topic, city string) string {
	topic = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(topic), "?"))
	return fmt.Sprintf("%s in %s", cases.Title(language.English).String(topic), strings.TrimSpace(city))
}
