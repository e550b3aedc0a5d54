package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeQuotationEmail sends a completed quotation PDF to a customer.
	TaskTypeQuotationEmail = "quotation:email"
	// TaskTypeCatalogWarmup refreshes the catalog cache.
	TaskTypeCatalogWarmup = "catalog:warmup"
)

// QuotationEmailPayload identifies the quotation to render and its recipient.
type QuotationEmailPayload struct {
	QuotationID int64  `json:"quotation_id"`
	Recipient   string `json:"recipient"`
}

// NewQuotationEmailTask constructs an Asynq task for sharing a quotation.
func NewQuotationEmailTask(payload QuotationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeQuotationEmail, data), nil
}

// NewCatalogWarmupTask constructs the scheduled cache-warmup task.
func NewCatalogWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeCatalogWarmup, nil)
}
