package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/transfer"
)

// ImageProvider turns a prompt into an image location. The result is either
// a fetchable URL or a data: URL carrying the encoded bytes.
type ImageProvider interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

type httpImageProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewImageProvider returns a client for an OpenAI-compatible images API, or
// nil when no API key is configured.
func NewImageProvider(cfg config.Image) ImageProvider {
	if cfg.APIKey == "" {
		return nil
	}
	return &httpImageProvider{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *httpImageProvider) Generate(ctx context.Context, prompt, size string) (string, error) {
	payload, err := json.Marshal(transfer.ImageGenerationRequest{
		Model:  p.model,
		Prompt: prompt,
		N:      1,
		Size:   size,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr transfer.ImageErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("image api error: %s (status code: %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("image api error: %s (status code: %d)", body, resp.StatusCode)
	}

	var result transfer.ImageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}
	if len(result.Data) == 0 {
		return "", errors.New("image api returned no images")
	}

	img := result.Data[0]
	switch {
	case img.URL != "":
		return img.URL, nil
	case img.B64JSON != "":
		return "data:application/octet-stream;base64," + img.B64JSON, nil
	}
	return "", errors.New("image api returned an empty image")
}

// imageFetcher downloads generated images with a size cap.
type imageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func newImageFetcher(timeout time.Duration) *imageFetcher {
	return &imageFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: 10 << 20,
	}
}

func (f *imageFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "data:") {
		return decodeDataURL(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("download image: larger than %d bytes", f.maxBytes)
	}
	return data, nil
}
