package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nexload-backend/internal/infrastructure/storage"
)

// ObjectStorageMock is a testify mock of storage.ObjectStorage.
type ObjectStorageMock struct {
	mock.Mock
}

func (m *ObjectStorageMock) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *ObjectStorageMock) PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *ObjectStorageMock) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *ObjectStorageMock) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *ObjectStorageMock) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ObjectInfo), args.Error(1)
}
