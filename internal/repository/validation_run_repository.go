package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/walkforward/internal/database"
	"github.com/yourusername/walkforward/internal/models"
)

const errScanValidationRun = "failed to scan validation run: %w"

// PostgresValidationRunRepository implements ValidationRunRepository for PostgreSQL
type PostgresValidationRunRepository struct {
	db *database.DB
}

// NewPostgresValidationRunRepository creates a new validation run repository
func NewPostgresValidationRunRepository(db *database.DB) ValidationRunRepository {
	return &PostgresValidationRunRepository{db: db}
}

// Save inserts a completed validation run
func (r *PostgresValidationRunRepository) Save(ctx context.Context, run *models.ValidationRun) error {
	query := `
		INSERT INTO validation_runs (id, run_date, symbols, start_date, end_date,
			train_months, validate_months, window_count, failed_windows,
			degradation_percentage, partial, full_results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		run.ID, run.RunDate, run.Symbols, run.StartDate, run.EndDate,
		run.TrainMonths, run.ValidateMonths, run.WindowCount, run.FailedWindows,
		run.DegradationPercentage, run.Partial, run.FullResults, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save validation run: %w", err)
	}
	return nil
}

// GetByID retrieves a validation run by ID
func (r *PostgresValidationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ValidationRun, error) {
	query := `
		SELECT id, run_date, symbols, start_date, end_date, train_months,
		       validate_months, window_count, failed_windows, degradation_percentage,
		       partial, full_results, created_at
		FROM validation_runs WHERE id = $1
	`

	run := &models.ValidationRun{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&run.ID, &run.RunDate, &run.Symbols, &run.StartDate, &run.EndDate,
		&run.TrainMonths, &run.ValidateMonths, &run.WindowCount, &run.FailedWindows,
		&run.DegradationPercentage, &run.Partial, &run.FullResults, &run.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get validation run: %w", err)
	}

	return run, nil
}

// GetLatest retrieves the most recent validation runs
func (r *PostgresValidationRunRepository) GetLatest(ctx context.Context, limit int) ([]*models.ValidationRun, error) {
	query := `
		SELECT id, run_date, symbols, start_date, end_date, train_months,
		       validate_months, window_count, failed_windows, degradation_percentage,
		       partial, full_results, created_at
		FROM validation_runs ORDER BY run_date DESC LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ValidationRun
	for rows.Next() {
		run := &models.ValidationRun{}
		if err := rows.Scan(
			&run.ID, &run.RunDate, &run.Symbols, &run.StartDate, &run.EndDate,
			&run.TrainMonths, &run.ValidateMonths, &run.WindowCount, &run.FailedWindows,
			&run.DegradationPercentage, &run.Partial, &run.FullResults, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanValidationRun, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
