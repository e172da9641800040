package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MediaStore keeps receipt scans and institution logos in an S3-compatible
// bucket. Records reference objects by the opaque key returned from Upload,
// the database never stores bytes.
type MediaStore struct {
	client *minio.Client
	bucket string
}

type MediaConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewMediaStore(ctx context.Context, cfg MediaConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "bucket check")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "bucket create")
		}
	}

	return &MediaStore{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores one object and returns its generated key.
func (s *MediaStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	key := uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}
	return key, nil
}

func (s *MediaStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "get object")
	}
	// GetObject is lazy, surface missing keys now
	if _, err := obj.Stat(); err != nil {
		return nil, errors.Wrap(err, "stat object")
	}
	return obj, nil
}

func (s *MediaStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
