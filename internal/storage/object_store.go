package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"
	contractimporterrors "github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport/errors"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var _ contractimport.ObjectStore = (*MinioStore)(nil)

var ErrInvalidRef = errors.New("invalid object reference")

const s3Scheme = "s3://"

// Ref locates one object.
type Ref struct {
	Bucket string
	Key    string
}

// ParseRef accepts "s3://bucket/key" or a bare key that lives in
// defaultBucket.
func ParseRef(ref, defaultBucket string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Ref{}, ErrInvalidRef
	}
	if !strings.HasPrefix(ref, s3Scheme) {
		key := strings.TrimLeft(ref, "/")
		if key == "" || defaultBucket == "" {
			return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
		}
		return Ref{Bucket: defaultBucket, Key: key}, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return Ref{Bucket: bucket, Key: key}, nil
}

// MinioStore reports a missing object as ErrSourceNotFound and an oversized
// one as ErrFileTooLarge.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	maxBytes int64
	logger   *zap.Logger
}

func NewMinioStore(client *minio.Client, bucket string, maxBytes int64, logger ...*zap.Logger) *MinioStore {
	l := zap.L().Named("storage.minio")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.minio")
	}
	return &MinioStore{client: client, bucket: bucket, maxBytes: maxBytes, logger: l}
}

func (s *MinioStore) Download(ctx context.Context, ref string) ([]byte, error) {
	r, err := ParseRef(ref, s.bucket)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, r.Bucket, r.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapErr(r, err)
	}
	defer obj.Close()

	var src io.Reader = obj
	if s.maxBytes > 0 {
		src = io.LimitReader(obj, s.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, s.mapErr(r, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %s/%s", contractimporterrors.ErrFileTooLarge, r.Bucket, r.Key)
	}

	s.logger.Debug("object downloaded",
		zap.String("bucket", r.Bucket),
		zap.String("key", r.Key),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}

// Delete reports false when the object was already gone.
func (s *MinioStore) Delete(ctx context.Context, ref string) (bool, error) {
	r, err := ParseRef(ref, s.bucket)
	if err != nil {
		return false, err
	}

	if _, err := s.client.StatObject(ctx, r.Bucket, r.Key, minio.StatObjectOptions{}); err != nil {
		if errors.Is(s.mapErr(r, err), contractimporterrors.ErrSourceNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.client.RemoveObject(ctx, r.Bucket, r.Key, minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete object: %w", err)
	}
	s.logger.Info("source object deleted", zap.String("bucket", r.Bucket), zap.String("key", r.Key))
	return true, nil
}

func (s *MinioStore) mapErr(r Ref, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s/%s", contractimporterrors.ErrSourceNotFound, r.Bucket, r.Key)
	}
	return fmt.Errorf("failed to read object %s/%s: %w", r.Bucket, r.Key, err)
}
