package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskFxRefresh is the task type for refreshing the exchange rate table.
	TaskFxRefresh = "fx:refresh"
)

// FxRefreshPayload describes one rate refresh request.
type FxRefreshPayload struct {
	Forced bool `json:"forced"`
}

// NewFxRefreshTask constructs an Asynq task for a rate refresh.
func NewFxRefreshTask(forced bool) (*asynq.Task, error) {
	body, err := json.Marshal(FxRefreshPayload{Forced: forced})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFxRefresh, body, asynq.Queue(QueueDefault)), nil
}
