package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"nexload-backend/internal/domains/resource/model"
)

// ServiceInterface is the resource business logic contract.
type ServiceInterface interface {
	Upload(ctx context.Context, userID uuid.UUID, req model.UploadRequest) (*model.Resource, error)
	SignUpload(ctx context.Context, req model.SignUploadRequest) (*model.SignUploadResponse, error)
	List(ctx context.Context, page, limit int) ([]model.Resource, error)
	Search(ctx context.Context, query string) ([]model.Resource, error)
	Get(ctx context.Context, id int64) (*model.ResourceWithOwner, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, req model.UpdateRequest) (*model.Resource, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	IssueDownload(ctx context.Context, id int64) (*model.DownloadGrant, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// TaskEnqueuer is the slice of *asynq.Client the service needs, kept
// as an interface so tests can mock it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
