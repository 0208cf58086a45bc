package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"codesync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_Write(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "/snapshots/")

	client.On("PutObject", ctx, "codesync", "snapshots/Project_TypeCodes.json", mock.Anything, int64(2),
		minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil)
	client.On("PutObject", ctx, "codesync", "snapshots/codes.yaml", mock.Anything, mock.Anything,
		minio.PutObjectOptions{ContentType: "application/yaml"}).Return(minio.UploadInfo{}, nil)

	require.NoError(t, store.Write(ctx, "Project_TypeCodes.json", []byte("[]")))
	require.NoError(t, store.Write(ctx, "codes.yaml", []byte("[]")))
	client.AssertExpectations(t)
}

func TestObjectStore_WriteFails(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "")

	client.On("PutObject", ctx, "codesync", "a.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	err := store.Write(ctx, "a.json", []byte("[]"))
	assert.ErrorContains(t, err, "failed to upload snapshot a.json")
}

func TestObjectStore_Read(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "snapshots")

	body := io.NopCloser(bytes.NewReader([]byte(`[{"Category":"Walls","TypeName":"Basic Wall","Code":"A1010"}]`)))
	client.On("GetObject", ctx, "codesync", "snapshots/a.json", minio.GetObjectOptions{}).Return(body, nil)

	records, err := Load(ctx, store, "a.json")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords[:1], records)
}

func TestObjectStore_NotFound(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "snapshots")

	notFound := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	client.On("GetObject", ctx, "codesync", "snapshots/missing.json", mock.Anything).Return(nil, notFound)
	client.On("StatObject", ctx, "codesync", "snapshots/missing.json", mock.Anything).Return(minio.ObjectInfo{}, notFound)

	_, err := store.Read(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Stat(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectStore_Stat(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "")

	modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	client.On("StatObject", ctx, "codesync", "a.json", minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{Size: 42, LastModified: modified, ETag: "etag-1"}, nil)

	info, err := store.Stat(ctx, "a.json")
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "a.json", Size: 42, ModTime: modified, ETag: "etag-1"}, info)
	assert.Equal(t, "etag-1", info.Version())
}

func TestObjectStore_List(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	store := NewObjectStore(client, "codesync", "snapshots")

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "snapshots/a.json"}
	ch <- minio.ObjectInfo{Key: "snapshots/team/"}
	ch <- minio.ObjectInfo{Key: "snapshots/team/b.yaml"}
	close(ch)
	client.On("ListObjects", ctx, "codesync", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "team/b.yaml"}, names)
}
