package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNotFound is returned when a snapshot does not exist in a store.
var ErrNotFound = errors.New("snapshot not found")

// Info describes a stored snapshot.
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
	// ETag is a content identifier when the backend provides one.
	ETag string
}

// Version identifies one revision of a snapshot for caching purposes.
func (i Info) Version() string {
	if i.ETag != "" {
		return i.ETag
	}
	return fmt.Sprintf("%d-%d", i.Size, i.ModTime.UnixNano())
}

// Store persists snapshot documents by name.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Stat(ctx context.Context, name string) (Info, error)
	List(ctx context.Context) ([]string, error)
}

// FileStore stores snapshots on the local filesystem. Relative names are
// resolved against Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir ("" means the working directory).
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	if filepath.IsAbs(name) || s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// Read returns the raw snapshot document.
func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the snapshot document, creating parent directories.
func (s *FileStore) Write(ctx context.Context, name string, data []byte) error {
	p := s.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	return nil
}

// Stat returns size and modification time.
func (s *FileStore) Stat(ctx context.Context, name string) (Info, error) {
	fi, err := os.Stat(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Info{}, fmt.Errorf("failed to stat snapshot %s: %w", name, err)
	}
	return Info{Name: name, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

// List returns the snapshot documents directly under Dir, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSnapshotName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and decodes a snapshot. The format follows the name's extension.
func Load(ctx context.Context, store Store, name string) ([]TypeRecord, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decode(FormatFor(name), data)
}

// Save encodes and writes a snapshot. The format follows the name's extension.
func Save(ctx context.Context, store Store, name string, records []TypeRecord) error {
	data, err := Encode(FormatFor(name), records)
	if err != nil {
		return err
	}
	return store.Write(ctx, name, data)
}
