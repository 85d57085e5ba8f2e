// Package storage keeps serialized model artifacts in MinIO.
package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ModelStore struct {
	client *minio.Client
	bucket string
}

// NewModelStore creates the client and makes sure the bucket exists.
// hostPort is e.g. "127.0.0.1:9000".
func NewModelStore(hostPort, accessKey, secretKey, bucket string, useSSL bool) (*ModelStore, error) {
	c, err := minio.New(hostPort, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &ModelStore{client: c, bucket: bucket}, nil
}

// UploadModel puts a local artifact file into the bucket under key.
func (s *ModelStore) UploadModel(ctx context.Context, key, path string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

// FetchModel downloads the artifact to destPath.
func (s *ModelStore) FetchModel(ctx context.Context, key, destPath string) error {
	return s.client.FGetObject(ctx, s.bucket, key, destPath, minio.GetObjectOptions{})
}
