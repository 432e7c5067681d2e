// Package minio stores raw procurement document uploads in S3-compatible
// object storage. Extracted text lives in PostgreSQL; the original bytes are
// kept here for audit and re-extraction.
package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/procurelens/ProcureLens/internal/config"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
)

// Store implements documents.ObjectStore on a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	logger logging.Logger
}

// NewStore connects to the configured MinIO endpoint.
func NewStore(cfg config.MinIOConfig, log logging.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "connect to object storage")
	}
	return &Store{client: client, bucket: cfg.Bucket, logger: log}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
// Called once at startup.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "check bucket").WithDetail(s.bucket)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "create bucket").WithDetail(s.bucket)
	}
	s.logger.Info("created object storage bucket", logging.String("bucket", s.bucket))
	return nil
}

// Put stores data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentStoreFailed, "store object").WithDetail(key)
	}
	return nil
}

// Get reads the object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "fetch object").WithDetail(key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "read object").WithDetail(key)
	}
	return data, nil
}
