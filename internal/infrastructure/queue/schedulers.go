package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"nexload-backend/internal/config"
	"nexload-backend/internal/shared"
	"nexload-backend/pkg/logger"
)

type Scheduler struct {
	scheduler    *asynq.Scheduler
	workerConfig config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, workerConfig config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		workerConfig: workerConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerSweepOrphansJob()
}

// ================================================
// JOB: Sweep orphaned storage objects
// ================================================
func (s *Scheduler) registerSweepOrphansJob() error {
	payload, err := json.Marshal(shared.SweepOrphansPayload{
		GraceHours: s.workerConfig.OrphanGraceHours,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphans, payload)

	_, err = s.scheduler.Register(
		s.workerConfig.OrphanSweepSchedule,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register SweepOrphans job", err)
		return err
	}

	logger.Info("Registered SweepOrphans job", map[string]interface{}{
		"schedule": s.workerConfig.OrphanSweepSchedule,
	})
	return nil
}

func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
