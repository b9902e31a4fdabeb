package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nexload-backend/internal/domains/resource/model"
)

// ResourceRepositoryMock is a testify mock of
// repository.ResourceRepository.
type ResourceRepositoryMock struct {
	mock.Mock
}

func (m *ResourceRepositoryMock) Create(ctx context.Context, res *model.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ResourceRepositoryMock) List(ctx context.Context, offset, limit int) ([]model.Resource, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) Search(ctx context.Context, query string) ([]model.Resource, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) GetByID(ctx context.Context, id int64) (*model.ResourceWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceWithOwner), args.Error(1)
}

func (m *ResourceRepositoryMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceRepositoryMock) Update(ctx context.Context, res *model.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ResourceRepositoryMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ResourceRepositoryMock) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ResourceRepositoryMock) AggregateStats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *ResourceRepositoryMock) AllObjectURLs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
