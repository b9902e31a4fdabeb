package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"nexload-backend/internal/domains/resource/repository"
	"nexload-backend/internal/infrastructure/storage"
	"nexload-backend/internal/shared"
)

// SweepOrphansHandler removes stored objects no resource row
// references anymore. Uploads are presigned before the row exists, so
// objects younger than the grace period are always kept.
type SweepOrphansHandler struct {
	repo       repository.ResourceRepository
	storage    storage.ObjectStorage
	graceHours int
}

func NewSweepOrphansHandler(repo repository.ResourceRepository, objectStorage storage.ObjectStorage, graceHours int) *SweepOrphansHandler {
	return &SweepOrphansHandler{
		repo:       repo,
		storage:    objectStorage,
		graceHours: graceHours,
	}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SweepOrphansPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SweepOrphans payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	graceHours := payload.GraceHours
	if graceHours <= 0 {
		graceHours = h.graceHours
	}
	cutoff := time.Now().UTC().Add(-time.Duration(graceHours) * time.Hour)

	urls, err := h.repo.AllObjectURLs(ctx)
	if err != nil {
		return fmt.Errorf("load referenced urls: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key := storage.ObjectKeyFromURL(u); key != "" {
			referenced[key] = struct{}{}
		}
	}

	objects, err := h.storage.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	var orphans []string
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Key)
	}

	if len(orphans) == 0 {
		log.Info().Int("scanned", len(objects)).Msg("Orphan sweep found nothing to delete")
		return nil
	}

	if err := h.storage.Delete(ctx, orphans...); err != nil {
		log.Error().Err(err).Int("orphans", len(orphans)).Msg("Failed to delete orphan objects")
		return fmt.Errorf("delete orphans: %w", err)
	}

	log.Info().
		Int("scanned", len(objects)).
		Int("deleted", len(orphans)).
		Msg("Orphan sweep completed")

	return nil
}
