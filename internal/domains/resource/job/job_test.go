package job_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nexload-backend/internal/domains/resource/job"
	repomocks "nexload-backend/internal/domains/resource/repository/mocks"
	"nexload-backend/internal/infrastructure/storage"
	storagemocks "nexload-backend/internal/infrastructure/storage/mocks"
	"nexload-backend/internal/shared"
)

func TestDeleteObjectsHandler(t *testing.T) {
	store := new(storagemocks.ObjectStorageMock)
	store.On("Delete", mock.Anything, "files/a/f.zip", "covers/a/c.png").Return(nil)

	h := job.NewDeleteObjectsHandler(store)

	payload, err := json.Marshal(shared.DeleteObjectsPayload{
		ResourceID: 7,
		Keys:       []string{"files/a/f.zip", "covers/a/c.png"},
	})
	require.NoError(t, err)

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteObjects, payload))
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestDeleteObjectsHandlerBadPayload(t *testing.T) {
	h := job.NewDeleteObjectsHandler(new(storagemocks.ObjectStorageMock))

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteObjects, []byte("{bad")))
	require.Error(t, err)
}

func TestSweepOrphansHandler(t *testing.T) {
	now := time.Now().UTC()
	old := now.Add(-48 * time.Hour)

	repo := new(repomocks.ResourceRepositoryMock)
	repo.On("AllObjectURLs", mock.Anything).Return([]string{
		"http://localhost:9000/resources/files/a/kept.zip",
	}, nil)

	store := new(storagemocks.ObjectStorageMock)
	store.On("List", mock.Anything, "").Return([]storage.ObjectInfo{
		{Key: "files/a/kept.zip", LastModified: old},   // referenced
		{Key: "files/b/orphan.zip", LastModified: old}, // orphan, past grace
		{Key: "files/c/recent.zip", LastModified: now}, // orphan, within grace
	}, nil)
	store.On("Delete", mock.Anything, "files/b/orphan.zip").Return(nil)

	h := job.NewSweepOrphansHandler(repo, store, 24)

	payload, err := json.Marshal(shared.SweepOrphansPayload{GraceHours: 24})
	require.NoError(t, err)

	err = h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphans, payload))
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSweepOrphansHandlerNothingToDelete(t *testing.T) {
	repo := new(repomocks.ResourceRepositoryMock)
	repo.On("AllObjectURLs", mock.Anything).Return([]string{
		"http://localhost:9000/resources/files/a/kept.zip",
	}, nil)

	store := new(storagemocks.ObjectStorageMock)
	store.On("List", mock.Anything, "").Return([]storage.ObjectInfo{
		{Key: "files/a/kept.zip", LastModified: time.Now().Add(-48 * time.Hour)},
	}, nil)

	h := job.NewSweepOrphansHandler(repo, store, 24)

	payload, _ := json.Marshal(shared.SweepOrphansPayload{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSweepOrphans, payload))
	require.NoError(t, err)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
