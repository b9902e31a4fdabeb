package shared

// Asynq task types.
const (
	TypeDeleteObjects = "storage:delete_objects"
	TypeSweepOrphans  = "storage:sweep_orphans"
)

// Asynq queue names, in priority order.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteObjectsPayload carries the object keys to remove after a
// resource record has been deleted.
type DeleteObjectsPayload struct {
	ResourceID int64    `json:"resourceId"`
	Keys       []string `json:"keys"`
}

// SweepOrphansPayload parameterizes the scheduled orphan sweep.
type SweepOrphansPayload struct {
	GraceHours int `json:"graceHours"`
}
