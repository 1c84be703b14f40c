// Package storage implements the asset uploader over a MinIO (S3-compatible)
// object store. Profile photos and resumes live in the same bucket under
// distinct folders; resumes are stored as opaque binaries so non-image
// content survives byte-for-byte.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	photoFolder  = "profile"
	resumeFolder = "resume"

	bootstrapTimeout = 10 * time.Second
)

// Config captures the settings for the object store connection.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally dereferenceable base (scheme + host) used
	// to build returned asset URLs.
	PublicURL string
}

// Store is the MinIO-backed ports.AssetUploader implementation.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	exists, err := client.BucketExists(bootCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(bootCtx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %w", err)
		}
	}

	return &Store{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// UploadImage stores an in-memory image buffer under the profile folder,
// keeping its content type so browsers render it inline.
func (s *Store) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	object := fmt.Sprintf("%s/%s%s", photoFolder, uuid.NewString(), imageExt(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, object,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return s.objectURL(object), nil
}

// UploadRaw streams an opaque binary under the resume folder. The original
// filename is kept in the object key so downloads stay recognizable.
func (s *Store) UploadRaw(ctx context.Context, r io.Reader, size int64, filename string) (string, error) {
	object := fmt.Sprintf("%s/%s_%s", resumeFolder, uuid.NewString(), path.Base(filename))

	_, err := s.client.PutObject(ctx, s.bucket, object, r, size,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("upload raw: %w", err)
	}

	return s.objectURL(object), nil
}

func (s *Store) objectURL(object string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, object)
}

func imageExt(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
