package photostore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"penduduk_backend/internal/feature/residents/usecase"
)

// S3Store stores photos in a single S3-compatible bucket (AWS S3 or MinIO).
// Keys map to object keys directly.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ usecase.PhotoStore = (*S3Store)(nil)

// S3Config holds explicit construction parameters. For production the values
// come from environment variables via NewS3StoreFromEnv.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO-style deployments
	PathStyle bool
	BaseURL   string // public URL prefix for stored objects
}

// NewS3Store creates an S3 photo store from config.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}
	return &S3Store{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// NewS3StoreFromEnv constructs an S3 store from the process environment:
//
//	PHOTO_S3_BUCKET (required), PHOTO_S3_REGION, PHOTO_S3_ENDPOINT,
//	PHOTO_S3_PATH_STYLE=true|false, PHOTO_BASE_URL
func NewS3StoreFromEnv(ctx context.Context) (*S3Store, error) {
	bucket := os.Getenv("PHOTO_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("PHOTO_S3_BUCKET required for s3 photo storage")
	}
	return NewS3Store(ctx, S3Config{
		Bucket:    bucket,
		Region:    os.Getenv("PHOTO_S3_REGION"),
		Endpoint:  os.Getenv("PHOTO_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("PHOTO_S3_PATH_STYLE"), "true"),
		BaseURL:   os.Getenv("PHOTO_BASE_URL"),
	})
}

// Save uploads the photo content under key.
func (s *S3Store) Save(ctx context.Context, key string, content []byte, contentType string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(k),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	return err
}

// Delete removes the object stored under key. S3 deletes are idempotent, so
// a missing key is not distinguishable here; that is acceptable for the
// best-effort deletion paths.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	})
	return err
}

// URL returns the public URL for a stored key.
func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}
