package repository

import (
	"context"

	"github.com/google/uuid"

	"nexload-backend/internal/domains/resource/model"
)

// ResourceRepository is the persistence contract for the resources
// table.
type ResourceRepository interface {
	// Create inserts a new resource and fills in the generated id.
	Create(ctx context.Context, res *model.Resource) error

	// List returns up to limit resources ordered by created_at
	// descending, skipping offset rows.
	List(ctx context.Context, offset, limit int) ([]model.Resource, error)

	// Search returns resources whose title or description contains
	// query as a case-insensitive substring, newest first.
	Search(ctx context.Context, query string) ([]model.Resource, error)

	// GetByID fetches a resource joined with its owner's public
	// profile. Returns model.ErrResourceNotFound when absent.
	GetByID(ctx context.Context, id int64) (*model.ResourceWithOwner, error)

	// ListByUser returns a user's own resources, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error)

	// Update rewrites the mutable columns of a resource.
	Update(ctx context.Context, res *model.Resource) error

	// Delete removes a resource row. Returns
	// model.ErrResourceNotFound when no row matched.
	Delete(ctx context.Context, id int64) error

	// IncrementDownloads atomically bumps the download counter and
	// returns the new value.
	IncrementDownloads(ctx context.Context, id int64) (int64, error)

	// AggregateStats returns marketplace totals.
	AggregateStats(ctx context.Context) (*model.Stats, error)

	// AllObjectURLs returns every image_url and file_url currently
	// referenced by a resource row. Used by the orphan sweep.
	AllObjectURLs(ctx context.Context) ([]string, error)
}
