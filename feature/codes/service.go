package codes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"codesync/core/catalog"
	"codesync/core/reconcile"
	"codesync/core/snapshot"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrCancelled is returned when the user declines to pick a snapshot.
var ErrCancelled = errors.New("operation cancelled")

// Status is the terminal state of an operation.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// StatusOf maps an operation error to its terminal status. Entry-level
// problems do not fail an operation.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSucceeded
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// Service runs code operations against one catalog. Operations that open a
// session are serialized.
type Service struct {
	catalog     catalog.Catalog
	store       snapshot.Store
	cache       *reconcile.IndexCache
	logger      *zap.Logger
	fallbackDir string

	mu sync.Mutex
	sf singleflight.Group
}

// NewService creates a new codes service. cacheTTL of zero disables index caching.
func NewService(cat catalog.Catalog, store snapshot.Store, cacheTTL time.Duration, fallbackDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:     cat,
		store:       store,
		cache:       reconcile.NewIndexCache(cacheTTL),
		logger:      logger,
		fallbackDir: fallbackDir,
	}
}

// Catalog returns the catalog the service works on.
func (s *Service) Catalog() catalog.Catalog {
	return s.catalog
}

// DefaultSnapshotName is where Export writes when no name is given: next to
// the catalog for file stores, the bare file name for object stores.
func (s *Service) DefaultSnapshotName() string {
	if _, ok := s.store.(*snapshot.FileStore); ok {
		return snapshot.ExportPath(s.catalog.Title(), s.catalog.SourcePath(), s.fallbackDir)
	}
	return snapshot.FileName(s.catalog.Title())
}

// Records exports the catalog's codes. Concurrent callers share one read.
func (s *Service) Records(ctx context.Context, parameter string) ([]snapshot.TypeRecord, error) {
	result, err, shared := s.sf.Do("export|"+parameter, func() (interface{}, error) {
		return ExportRecords(ctx, s.catalog, parameter, s.logger)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Export shared with a concurrent request")
	}
	return result.([]snapshot.TypeRecord), nil
}

// Export writes the catalog's codes to the snapshot store and returns the
// name written and the number of records.
func (s *Service) Export(ctx context.Context, name, parameter string) (string, int, error) {
	if name == "" {
		name = s.DefaultSnapshotName()
	}

	records, err := s.Records(ctx, parameter)
	if err != nil {
		return "", 0, err
	}
	if err := snapshot.Save(ctx, s.store, name, records); err != nil {
		return "", 0, err
	}

	s.logger.Info("Exported codes",
		zap.String("snapshot", name),
		zap.Int("records", len(records)),
	)
	return name, len(records), nil
}

// Snapshots lists the snapshot names held by the store.
func (s *Service) Snapshots(ctx context.Context) ([]string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// LoadIndex returns the index for a stored snapshot, from cache when the
// snapshot revision is unchanged.
func (s *Service) LoadIndex(ctx context.Context, name string) (*reconcile.CodeIndex, error) {
	info, err := s.store.Stat(ctx, name)
	if err != nil {
		return nil, err
	}

	key := reconcile.CacheKey(name, info.Version())
	return s.cache.GetOrBuild(ctx, key, func(ctx context.Context) (*reconcile.CodeIndex, error) {
		s.logger.Debug("Building code index", zap.String("snapshot", name))
		return reconcile.LoadIndex(ctx, s.store, name, s.logger)
	})
}

// Import applies a stored snapshot to the catalog.
func (s *Service) Import(ctx context.Context, name string, opts reconcile.Options) (*reconcile.Summary, error) {
	if name == "" {
		return nil, ErrCancelled
	}

	index, err := s.LoadIndex(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, index, opts)
}

// ImportRecords applies records that did not come from the store.
func (s *Service) ImportRecords(ctx context.Context, records []snapshot.TypeRecord, opts reconcile.Options) (*reconcile.Summary, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	index, err := reconcile.BuildIndex(records, opts.Logger)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, index, opts)
}

// Apply runs the reconciliation engine with index.
func (s *Service) Apply(ctx context.Context, index *reconcile.CodeIndex, opts reconcile.Options) (*reconcile.Summary, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	summary, err := reconcile.Run(ctx, s.catalog, index, opts)
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}

	s.logger.Info("Imported codes",
		zap.Int("visited", summary.Visited),
		zap.Int("updated", summary.Updated),
		zap.Int("already_correct", summary.AlreadyCorrect),
		zap.Int("no_match", summary.NoMatch),
		zap.Int("problems", len(summary.Problems)),
		zap.Bool("dry_run", summary.DryRun),
		zap.Duration("duration", time.Since(start)),
	)
	return summary, nil
}

// DeriveNames composes full names on the catalog's instances.
func (s *Service) DeriveNames(ctx context.Context, opts NameOptions) (*reconcile.Summary, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := DeriveNames(ctx, s.catalog, opts)
	if err != nil {
		return nil, fmt.Errorf("name derivation failed: %w", err)
	}

	s.logger.Info("Derived names",
		zap.Int("visited", summary.Visited),
		zap.Int("updated", summary.Updated),
		zap.Int("no_match", summary.NoMatch),
		zap.Int("problems", len(summary.Problems)),
		zap.Bool("dry_run", summary.DryRun),
	)
	return summary, nil
}
