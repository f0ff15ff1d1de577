package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ValidationRun is the persisted record of one completed walk-forward run.
// FullResults holds the serialized WalkForwardResult for later inspection.
type ValidationRun struct {
	ID                    uuid.UUID       `json:"id"`
	RunDate               time.Time       `json:"run_date"`
	Symbols               []string        `json:"symbols"`
	StartDate             time.Time       `json:"start_date"`
	EndDate               time.Time       `json:"end_date"`
	TrainMonths           int             `json:"train_months"`
	ValidateMonths        int             `json:"validate_months"`
	WindowCount           int             `json:"window_count"`
	FailedWindows         int             `json:"failed_windows"`
	DegradationPercentage float64         `json:"degradation_percentage"`
	Partial               bool            `json:"partial"`
	FullResults           json.RawMessage `json:"full_results"`
	CreatedAt             time.Time       `json:"created_at"`
}
