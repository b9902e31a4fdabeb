package main

import (
	"github.com/hibiken/asynq"

	resourceJob "nexload-backend/internal/domains/resource/job"
	"nexload-backend/internal/shared"
	"nexload-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	deleteObjects *resourceJob.DeleteObjectsHandler
	sweepOrphans  *resourceJob.SweepOrphansHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deleteObjects: resourceJob.NewDeleteObjectsHandler(c.Storage),
		sweepOrphans: resourceJob.NewSweepOrphansHandler(
			c.ResourceRepo,
			c.Storage,
			c.Config.Worker.OrphanGraceHours,
		),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeleteObjects, h.deleteObjects.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphans, h.sweepOrphans.ProcessTask)
}
