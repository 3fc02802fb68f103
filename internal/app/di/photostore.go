package di

import (
	"context"
	"fmt"
	"os"

	"penduduk_backend/internal/feature/residents/usecase"
	"penduduk_backend/internal/platform/photostore"
)

// NewPhotoStore selects a PhotoStore implementation from the environment:
//
//	PHOTO_DRIVER: fs|s3|memory (default fs)
//	PHOTO_FS_ROOT: directory root when driver=fs (default ./storage/public)
//	PHOTO_BASE_URL: public URL prefix for stored photos
//	(S3 specific variables documented in photostore/s3.go)
func NewPhotoStore(ctx context.Context) (usecase.PhotoStore, error) {
	driver := os.Getenv("PHOTO_DRIVER")
	if driver == "" {
		driver = "fs"
	}
	switch driver {
	case "fs":
		return photostore.NewFSStore(os.Getenv("PHOTO_FS_ROOT"), os.Getenv("PHOTO_BASE_URL"))
	case "s3":
		return photostore.NewS3StoreFromEnv(ctx)
	case "memory":
		return photostore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown photo driver %s", driver)
	}
}
