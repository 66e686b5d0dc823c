package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/orbitmeetai/orbitmeet/pkg/config"
)

// ArchiveStore keeps the raw uploaded transcript files so the canonical text
// in the document store can always be traced back to its source.
type ArchiveStore struct {
	client *minio.Client
	bucket string
}

// NewArchiveStore creates a MinIO-backed archive store and ensures the bucket
// exists.
func NewArchiveStore(ctx context.Context, cfg *config.StorageConfig) (*ArchiveStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &ArchiveStore{client: minioClient, bucket: cfg.BucketName}

	exists, err := minioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// ArchiveTranscript stores the original uploaded file under
// <recordID>/<filename> and returns the object key.
func (s *ArchiveStore) ArchiveTranscript(ctx context.Context, recordID, filename string, data []byte, contentType string) (string, error) {
	objectKey := path.Join(recordID, filename)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive transcript file: %w", err)
	}

	return objectKey, nil
}
