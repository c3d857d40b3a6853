package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/autopost/configs"
)

// ImageStorage persists image bytes and returns their public URL.
type ImageStorage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Service struct {
	bucket    string
	publicURL string
	client    objectPutter
}

func NewR2Service(ctx context.Context, r2 cfg.R2) (*R2Service, error) {
	if r2.AccountID == "" || r2.BucketName == "" {
		return nil, errors.New("r2 account id and bucket name are required")
	}
	if r2.PublicURL == "" {
		return nil, errors.New("R2_PUBLIC_URL is required to serve stored images")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})
	return &R2Service{bucket: r2.BucketName, publicURL: r2.PublicURL, client: client}, nil
}

// Save uploads the object to the bucket and returns its URL under the
// bucket's public domain.
func (r *R2Service) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("upload to r2: %w", err)
	}

	return r.publicURL + "/" + key, nil
}
