package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nexload-backend/internal/domains/resource/model"
)

// ResourceServiceMock is a testify mock of service.ServiceInterface.
type ResourceServiceMock struct {
	mock.Mock
}

func (m *ResourceServiceMock) Upload(ctx context.Context, userID uuid.UUID, req model.UploadRequest) (*model.Resource, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceServiceMock) SignUpload(ctx context.Context, req model.SignUploadRequest) (*model.SignUploadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SignUploadResponse), args.Error(1)
}

func (m *ResourceServiceMock) List(ctx context.Context, page, limit int) ([]model.Resource, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceServiceMock) Search(ctx context.Context, query string) ([]model.Resource, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceServiceMock) Get(ctx context.Context, id int64) (*model.ResourceWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceWithOwner), args.Error(1)
}

func (m *ResourceServiceMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *ResourceServiceMock) Update(ctx context.Context, userID uuid.UUID, id int64, req model.UpdateRequest) (*model.Resource, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *ResourceServiceMock) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *ResourceServiceMock) IssueDownload(ctx context.Context, id int64) (*model.DownloadGrant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DownloadGrant), args.Error(1)
}

func (m *ResourceServiceMock) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}
