package storage_test

import (
	"context"
	"errors"
	"testing"

	"codesync/core/storage"
	"codesync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "codesync",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:       "https://s3.amazonaws.com",
			AccessKey:      "testkey",
			SecretKey:      "testsecret",
			UseSSL:         true,
			Region:         "us-east-1",
			TimeoutSeconds: 5,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "codesync").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, client, "codesync", "us-east-1"))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "codesync").Return(false, nil)
		client.On("MakeBucket", ctx, "codesync", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, client, "codesync", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "codesync").Return(false, errors.New("unreachable"))

		err := storage.EnsureBucket(ctx, client, "codesync", "")
		assert.ErrorContains(t, err, "failed to check bucket")
	})

	t.Run("CreateFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "codesync").Return(false, nil)
		client.On("MakeBucket", ctx, "codesync", mock.Anything).Return(errors.New("denied"))

		err := storage.EnsureBucket(ctx, client, "codesync", "")
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}
