package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

// DiskStore writes uploads into a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

var _ ports.UploadStore = (*DiskStore)(nil)

// Save copies the upload to <dir>/<uuid>-<name> and returns that file name.
// A partially written file is removed on failure.
func (s *DiskStore) Save(ctx context.Context, upload ports.ScriptUpload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if upload.Content == nil {
		return "", fmt.Errorf("save upload: empty content")
	}

	name := objectName(upload.FileName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, upload.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	metrics.UploadsStoredTotal.WithLabelValues("disk").Inc()
	return name, nil
}
