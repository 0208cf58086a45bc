package cmd

import (
	"context"
	"fmt"
	"time"

	"codesync/core/config"
	"codesync/core/database"
	"codesync/core/logger"
	"codesync/core/snapshot"
	"codesync/core/storage"
	"codesync/feature/catalogdb"
	"codesync/feature/codes"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   snapshot.Store
	service *codes.Service
}

// newApp loads configuration, connects the catalog database and opens the
// snapshot store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l, _ = logger.WithRunID(l)

	db, err := database.Connect(cfg.Catalog.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	cat := catalogdb.New(db, cfg.Catalog.Title, cfg.Catalog.SourcePath(), l)
	ttl := time.Duration(cfg.Snapshot.CacheTTLSeconds) * time.Second

	return &app{
		cfg:     cfg,
		logger:  l,
		db:      db,
		store:   store,
		service: codes.NewService(cat, store, ttl, cfg.Catalog.ExportDir, l),
	}, nil
}

func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("Failed to close catalog database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// openStore returns the snapshot store selected by snapshot.backend.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	if !cfg.Snapshot.IsValidBackend() {
		return nil, fmt.Errorf("unknown snapshot backend: %q", cfg.Snapshot.Backend)
	}

	if cfg.Snapshot.Backend == snapshot.BackendFile {
		return snapshot.NewFileStore(cfg.Snapshot.Dir), nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, err
	}
	return snapshot.NewObjectStore(client, cfg.Storage.Bucket, cfg.Snapshot.Prefix), nil
}
