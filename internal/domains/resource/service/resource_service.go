package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"nexload-backend/internal/domains/resource/model"
	"nexload-backend/internal/domains/resource/repository"
	"nexload-backend/internal/infrastructure/storage"
	"nexload-backend/internal/shared"
)

const (
	// DefaultLimit is the page size when the client supplies none.
	DefaultLimit = 8
	// MaxLimit caps client-supplied page sizes.
	MaxLimit = 100

	downloadURLExpiry = 60 * time.Second
	uploadURLExpiry   = 15 * time.Minute
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type resourceService struct {
	repo    repository.ResourceRepository
	storage storage.ObjectStorage
	tasks   TaskEnqueuer
}

func NewResourceService(
	repo repository.ResourceRepository,
	objectStorage storage.ObjectStorage,
	tasks TaskEnqueuer,
) ServiceInterface {
	return &resourceService{
		repo:    repo,
		storage: objectStorage,
		tasks:   tasks,
	}
}

// =====================================================
// UPLOAD
// =====================================================

func (s *resourceService) Upload(ctx context.Context, userID uuid.UUID, req model.UploadRequest) (*model.Resource, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// Step 2: Build the resource entity
	res := &model.Resource{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        model.ParseTags(req.Tags),
		Author:      req.Author,
		ImageURL:    req.ImageURL,
		FileURL:     req.FilePath,
		Downloads:   0,
		CreatedAt:   time.Now().UTC(),
		UserID:      &userID,
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}

func (s *resourceService) SignUpload(ctx context.Context, req model.SignUploadRequest) (*model.SignUploadResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// One prefix per upload keeps file and cover together and makes
	// collisions impossible.
	prefix := uuid.New().String()
	fileKey := fmt.Sprintf("files/%s/%s", prefix, req.FileName)
	imageKey := fmt.Sprintf("covers/%s/%s", prefix, req.ImageName)

	fileUploadURL, err := s.storage.PresignedPutURL(ctx, fileKey, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign file upload: %w", err)
	}

	imageUploadURL, err := s.storage.PresignedPutURL(ctx, imageKey, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign image upload: %w", err)
	}

	return &model.SignUploadResponse{
		FileKey:        fileKey,
		FileUploadURL:  fileUploadURL,
		FileURL:        s.storage.PublicURL(fileKey),
		ImageKey:       imageKey,
		ImageUploadURL: imageUploadURL,
		ImageURL:       s.storage.PublicURL(imageKey),
	}, nil
}

// =====================================================
// LIST / SEARCH / GET
// =====================================================

// ClampPaging normalizes client paging inputs: non-positive limits
// fall back to the default, oversized ones are capped, negative pages
// become the first page.
func ClampPaging(page, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 0 {
		page = 0
	}
	return page, limit
}

func (s *resourceService) List(ctx context.Context, page, limit int) ([]model.Resource, error) {
	page, limit = ClampPaging(page, limit)
	return s.repo.List(ctx, page*limit, limit)
}

func (s *resourceService) Search(ctx context.Context, query string) ([]model.Resource, error) {
	// An empty query yields an empty result set without touching the
	// store, not "all resources".
	if query == "" {
		return []model.Resource{}, nil
	}

	return s.repo.Search(ctx, query)
}

func (s *resourceService) Get(ctx context.Context, id int64) (*model.ResourceWithOwner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *resourceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error) {
	return s.repo.ListByUser(ctx, userID)
}

// =====================================================
// UPDATE
// =====================================================

func (s *resourceService) Update(ctx context.Context, userID uuid.UUID, id int64, req model.UpdateRequest) (*model.Resource, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// Step 2: Fetch and verify ownership
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID == nil || *existing.UserID != userID {
		return nil, model.ErrNotOwner
	}

	// Step 3: Apply only the supplied fields; object references are
	// preserved when not part of the request.
	res := existing.Resource
	if req.Title != nil {
		res.Title = *req.Title
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Category != nil {
		res.Category = *req.Category
	}
	if req.Tags != nil {
		res.Tags = model.ParseTags(*req.Tags)
	}
	if req.Author != nil {
		res.Author = *req.Author
	}
	if req.ImageURL != nil {
		res.ImageURL = *req.ImageURL
	}
	if req.FileURL != nil {
		res.FileURL = *req.FileURL
	}

	// Step 4: Persist
	if err := s.repo.Update(ctx, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *resourceService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	// Step 1: Fetch and verify ownership
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID == nil || *existing.UserID != userID {
		return model.ErrNotOwner
	}

	// Step 2: Remove the row
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Step 3: Hand object cleanup to the worker. Best effort: a lost
	// task is picked up later by the orphan sweep.
	s.enqueueObjectCleanup(id, existing.ImageURL, existing.FileURL)

	return nil
}

func (s *resourceService) enqueueObjectCleanup(id int64, urls ...string) {
	if s.tasks == nil {
		return
	}

	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if key := storage.ObjectKeyFromURL(u); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	payload, err := json.Marshal(shared.DeleteObjectsPayload{ResourceID: id, Keys: keys})
	if err != nil {
		log.Error().Err(err).Int64("resource_id", id).Msg("Failed to marshal cleanup payload")
		return
	}

	task := asynq.NewTask(shared.TypeDeleteObjects, payload)
	if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(5)); err != nil {
		log.Error().Err(err).Int64("resource_id", id).Msg("Failed to enqueue object cleanup")
	}
}

// =====================================================
// DOWNLOAD
// =====================================================

// IssueDownload returns a short-lived signed URL for the stored object
// and bumps the download counter server-side. The increment is atomic
// at the store level, so concurrent downloads are all counted.
func (s *resourceService) IssueDownload(ctx context.Context, id int64) (*model.DownloadGrant, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKeyFromURL(res.FileURL)
	url, err := s.storage.PresignedGetURL(ctx, key, downloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	downloads, err := s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.DownloadGrant{URL: url, Downloads: downloads}, nil
}

// =====================================================
// STATS
// =====================================================

func (s *resourceService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.AggregateStats(ctx)
}
