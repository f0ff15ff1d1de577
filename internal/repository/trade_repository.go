package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/walkforward/internal/database"
	"github.com/yourusername/walkforward/internal/models"
)

const errScanTrade = "failed to scan trade: %w"

// PostgresTradeRepository implements TradeRepository for PostgreSQL
type PostgresTradeRepository struct {
	db *database.DB
}

// NewPostgresTradeRepository creates a new trade repository
func NewPostgresTradeRepository(db *database.DB) TradeRepository {
	return &PostgresTradeRepository{db: db}
}

// Create inserts a settled trade
func (r *PostgresTradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	query := `
		INSERT INTO trades (id, symbol, direction, entry_time, exit_time, entry_price,
			exit_price, quantity, profit_loss, r_multiple, config_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		trade.ID, trade.Symbol, trade.Direction, trade.EntryTime, trade.ExitTime,
		trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.ProfitLoss,
		trade.RMultiple, trade.ConfigHash, trade.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// GetByRange retrieves settled trades for the given symbols whose exit time
// falls within [start, end), ordered by exit time
func (r *PostgresTradeRepository) GetByRange(ctx context.Context, symbols []string, start, end time.Time) ([]*models.Trade, error) {
	query := `
		SELECT id, symbol, direction, entry_time, exit_time, entry_price,
		       exit_price, quantity, profit_loss, r_multiple, config_hash, created_at
		FROM trades
		WHERE symbol = ANY($1) AND exit_time >= $2 AND exit_time < $3
		ORDER BY exit_time
	`

	rows, err := r.db.GetPool().Query(ctx, query, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		trade := &models.Trade{}
		if err := rows.Scan(
			&trade.ID, &trade.Symbol, &trade.Direction, &trade.EntryTime, &trade.ExitTime,
			&trade.EntryPrice, &trade.ExitPrice, &trade.Quantity, &trade.ProfitLoss,
			&trade.RMultiple, &trade.ConfigHash, &trade.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanTrade, err)
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// CountByRange counts settled trades for the given symbols within [start, end)
func (r *PostgresTradeRepository) CountByRange(ctx context.Context, symbols []string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM trades
		WHERE symbol = ANY($1) AND exit_time >= $2 AND exit_time < $3
	`

	var count int
	err := r.db.GetPool().QueryRow(ctx, query, symbols, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}
