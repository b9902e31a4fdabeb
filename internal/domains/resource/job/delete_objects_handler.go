package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"nexload-backend/internal/infrastructure/storage"
	"nexload-backend/internal/shared"
)

// DeleteObjectsHandler removes a resource's stored objects after the
// row has been deleted.
type DeleteObjectsHandler struct {
	storage storage.ObjectStorage
}

func NewDeleteObjectsHandler(objectStorage storage.ObjectStorage) *DeleteObjectsHandler {
	return &DeleteObjectsHandler{
		storage: objectStorage,
	}
}

// ProcessTask deletes the object keys carried in the payload.
func (h *DeleteObjectsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteObjectsPayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteObjects payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Int64("resource_id", payload.ResourceID).
		Int("keys", len(payload.Keys)).
		Msg("Deleting resource objects")

	if err := h.storage.Delete(ctx, payload.Keys...); err != nil {
		log.Error().
			Err(err).
			Int64("resource_id", payload.ResourceID).
			Msg("Failed to delete resource objects")
		return fmt.Errorf("delete objects: %w", err)
	}

	log.Info().
		Int64("resource_id", payload.ResourceID).
		Msg("Resource objects deleted successfully")

	return nil
}
