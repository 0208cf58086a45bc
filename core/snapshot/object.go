package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"codesync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore stores snapshots in an object storage bucket under Prefix.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an ObjectStore.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *ObjectStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Read downloads the snapshot document.
func (s *ObjectStore) Read(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, s.wrap(name, err)
	}
	return data, nil
}

// Write uploads the snapshot document.
func (s *ObjectStore) Write(ctx context.Context, name string, data []byte) error {
	contentType := "application/json"
	if FormatFor(name) == FormatYAML {
		contentType = "application/yaml"
	}

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		s.key(name),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return nil
}

// Stat returns object metadata, including the ETag.
func (s *ObjectStore) Stat(ctx context.Context, name string) (Info, error) {
	obj, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		return Info{}, s.wrap(name, err)
	}
	return Info{
		Name:    name,
		Size:    obj.Size,
		ModTime: obj.LastModified,
		ETag:    obj.ETag,
	}, nil
}

// List returns the snapshot names stored under the prefix.
func (s *ObjectStore) List(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, opts.Prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *ObjectStore) wrap(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("failed to access snapshot %s: %w", name, err)
}
