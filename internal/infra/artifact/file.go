package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const defaultName = "output.mp3"

// Mirror receives a copy of every artifact written locally.
type Mirror interface {
	Put(ctx context.Context, key string, data []byte) error
}

// FileStore keeps a single audio artifact at a fixed path. Each write
// replaces the previous file atomically; concurrent writers race and the last
// rename wins.
type FileStore struct {
	dir    string
	name   string
	mirror Mirror
	logger *slog.Logger
}

// NewFileStore builds a store writing <dir>/<name>. mirror may be nil.
func NewFileStore(dir, name string, mirror Mirror, logger *slog.Logger) *FileStore {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if strings.TrimSpace(name) == "" {
		name = defaultName
	}
	return &FileStore{
		dir:    dir,
		name:   name,
		mirror: mirror,
		logger: logger.With("component", "artifact.file"),
	}
}

// Path returns the artifact location.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, s.name)
}

// Write implements narration.ArtifactStore.
func (s *FileStore) Write(ctx context.Context, audio []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+s.name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("chmod artifact: %w", err)
	}
	path := s.Path()
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", fmt.Errorf("replace artifact: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, s.name, audio); err != nil {
			s.logger.Warn("artifact mirror failed", "key", s.name, "error", err)
		}
	}
	return path, nil
}

// Open returns the current artifact for reading. ErrNotFound is returned
// until the first successful write.
func (s *FileStore) Open() (*os.File, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}

// ErrNotFound reports that no artifact has been written yet.
var ErrNotFound = errors.New("artifact not found")
