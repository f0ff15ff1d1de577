package walkforward

import (
	"fmt"
	"time"
)

// ValidationWindow is one rolling train/validate window pair. Windows are
// contiguous (ValidateStart == TrainEnd), whole-month aligned, 0-indexed, and
// strictly ordered by start date.
type ValidationWindow struct {
	Index         int       `json:"index"`
	TrainStart    time.Time `json:"train_start"`
	TrainEnd      time.Time `json:"train_end"`
	ValidateStart time.Time `json:"validate_start"`
	ValidateEnd   time.Time `json:"validate_end"`
}

// TrainRange returns the in-sample period as [TrainStart, TrainEnd)
func (w ValidationWindow) TrainRange() (time.Time, time.Time) {
	return w.TrainStart, w.TrainEnd
}

// ValidateRange returns the out-of-sample period as [ValidateStart, ValidateEnd)
func (w ValidationWindow) ValidateRange() (time.Time, time.Time) {
	return w.ValidateStart, w.ValidateEnd
}

// GenerateWindows partitions the configured date range into rolling windows.
// Each window's train period spans TrainMonths, its validate period the
// following ValidateMonths, and the next window's train start advances by
// ValidateMonths. Generation continues while validate_end <= overall end, so
// no partial-month window is ever produced. An overall range shorter than one
// train+validate pair fails with ErrInsufficientData.
func GenerateWindows(cfg Config) ([]ValidationWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	windows := []ValidationWindow{}
	for trainStart := cfg.StartDate; ; trainStart = trainStart.AddDate(0, cfg.ValidateMonths, 0) {
		trainEnd := trainStart.AddDate(0, cfg.TrainMonths, 0)
		validateEnd := trainEnd.AddDate(0, cfg.ValidateMonths, 0)
		if validateEnd.After(cfg.EndDate) {
			break
		}
		windows = append(windows, ValidationWindow{
			Index:         len(windows),
			TrainStart:    trainStart,
			TrainEnd:      trainEnd,
			ValidateStart: trainEnd,
			ValidateEnd:   validateEnd,
		})
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: need %d months from %s, have until %s",
			ErrInsufficientData, cfg.TrainMonths+cfg.ValidateMonths,
			cfg.StartDate.Format("2006-01-02"), cfg.EndDate.Format("2006-01-02"))
	}
	return windows, nil
}
