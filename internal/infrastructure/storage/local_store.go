package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"agency_quotes/internal/infrastructure/logger"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// LocalStore keeps artifacts on disk for development. The HTTP server exposes
// Dir under BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
	log     logrus.FieldLogger
}

var _ interfaces.IArtifactStore = (*LocalStore)(nil)

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL, log: logger.Get().WithField("module", "local_store")}
}

func (s *LocalStore) Put(ctx context.Context, objectPath string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	objectPath, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.Dir, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrArtifactExists, objectPath)
	}
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}

	s.log.WithFields(logrus.Fields{"path": objectPath, "size": len(data)}).Info("artifact stored")
	return joinURL(s.BaseURL, objectPath), nil
}
