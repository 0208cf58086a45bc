// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface so that the
// object snapshot backend (core/snapshot.ObjectStore) can be exercised
// against AWS S3, a self-hosted MinIO instance, or the testify mock in
// core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the snapshot bucket on first use.
//   - PutObject / GetObject: upload and download snapshot documents.
//   - StatObject: read the ETag used to key the code index cache.
//   - ListObjects: list stored snapshots.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
