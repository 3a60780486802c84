package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeIntegrityScan is the task type for the reference integrity scan.
	TaskTypeIntegrityScan = "integrity:scan"
)

// IntegrityScanPayload configures one scan run.
type IntegrityScanPayload struct {
	// ReportOnly keeps the scan from being treated as a failure when
	// dangling references are found.
	ReportOnly bool `json:"report_only"`
}

// NewIntegrityScanTask constructs an Asynq task.
func NewIntegrityScanTask(payload IntegrityScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeIntegrityScan, data), nil
}
