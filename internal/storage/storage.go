// Package storage archives submitted source code in object storage.
// Archiving is optional: when no driver is configured the service runs
// without it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/skillmatch-io/apiserver/config"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Archive wraps an ObjectStorage backend with submission-oriented helpers.
type Archive struct {
	backend ObjectStorage
}

// NewArchive constructs an Archive over the provided backend.
func NewArchive(backend ObjectStorage) *Archive {
	return &Archive{backend: backend}
}

// NewArchiveFromConfig builds an Archive for the configured driver, or
// returns (nil, nil) when archiving is disabled.
func NewArchiveFromConfig(ctx context.Context, cfg config.StorageConfig) (*Archive, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "":
		return nil, nil
	case "minio":
		backend, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return NewArchive(backend), nil
	case "gcs":
		backend, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return NewArchive(backend), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// EnsureBucket ensures the configured bucket exists.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	return a.backend.EnsureBucket(ctx)
}

// PutCode stores one submission's source under a fresh key
// "submissions/<kind>/<uuid>" and returns the key.
func (a *Archive) PutCode(ctx context.Context, kind, code string) (string, error) {
	if strings.TrimSpace(kind) == "" {
		return "", errors.New("archive kind is required")
	}
	key := fmt.Sprintf("submissions/%s/%s", kind, uuid.NewString())
	reader := strings.NewReader(code)
	if err := a.backend.Put(ctx, key, reader, int64(len(code)), "text/plain"); err != nil {
		return "", err
	}
	return key, nil
}

// GetCode opens a reader for an archived submission.
func (a *Archive) GetCode(ctx context.Context, key string) (io.ReadCloser, error) {
	return a.backend.Get(ctx, key)
}

// Delete removes an archived object.
func (a *Archive) Delete(ctx context.Context, key string) error {
	return a.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (a *Archive) Bucket() string {
	return a.backend.Bucket()
}
