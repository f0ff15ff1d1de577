package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/walkforward/internal/models"
)

// TradeRepository provides access to historical settled trades
type TradeRepository interface {
	Create(ctx context.Context, trade *models.Trade) error
	GetByRange(ctx context.Context, symbols []string, start, end time.Time) ([]*models.Trade, error)
	CountByRange(ctx context.Context, symbols []string, start, end time.Time) (int, error)
}

// ValidationRunRepository persists completed walk-forward runs
type ValidationRunRepository interface {
	Save(ctx context.Context, run *models.ValidationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ValidationRun, error)
	GetLatest(ctx context.Context, limit int) ([]*models.ValidationRun, error)
}
