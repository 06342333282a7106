package repository

import (
	"context"
	"fmt"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BillingFilter narrows FindAll results; nil fields match everything.
type BillingFilter struct {
	PaymentStatus *entity.PaymentStatus
	OccupancyID   *uuid.UUID
}

type BillingRepository interface {
	Create(ctx context.Context, billing *entity.Billing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Billing, error)
	FindByOccupancyID(ctx context.Context, occupancyID uuid.UUID) (*entity.Billing, error)
	FindAll(ctx context.Context, filter BillingFilter, limit, offset int) ([]*entity.Billing, error)
	CountAll(ctx context.Context, filter BillingFilter) (int64, error)
	FindPaid(ctx context.Context, start, end *time.Time) ([]*entity.Billing, error)
	SumPaidAmount(ctx context.Context, start, end *time.Time) (float64, error)
	Update(ctx context.Context, billing *entity.Billing) error
}

type billingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBillingRepository(db database.Querier, log *zap.Logger) BillingRepository {
	return &billingRepository{
		db:  db,
		log: log.With(zap.String("repository", "billing")),
	}
}

func (r *billingRepository) Create(ctx context.Context, billing *entity.Billing) error {
	query := `
		INSERT INTO billing (id, occupancy_id, user_id, amount, payment_time, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		billing.ID,
		billing.OccupancyID,
		billing.UserID,
		billing.Amount,
		billing.PaymentTime,
		billing.PaymentStatus,
		billing.CreatedAt,
		billing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create billing record",
			zap.Error(err),
			zap.String("occupancy_id", billing.OccupancyID.String()),
		)
		return fmt.Errorf("create billing for occupancy %s: %w", billing.OccupancyID.String(), err)
	}

	return nil
}

func (r *billingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Billing, error) {
	query := `
		SELECT id, occupancy_id, user_id, amount, payment_time, payment_status, created_at, updated_at
		FROM billing
		WHERE id = $1
	`

	var billing entity.Billing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&billing.ID,
		&billing.OccupancyID,
		&billing.UserID,
		&billing.Amount,
		&billing.PaymentTime,
		&billing.PaymentStatus,
		&billing.CreatedAt,
		&billing.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find billing by ID",
			zap.Error(err),
			zap.String("billing_id", id.String()),
		)
		return nil, fmt.Errorf("find billing by ID %s: %w", id.String(), err)
	}

	return &billing, nil
}

func (r *billingRepository) FindByOccupancyID(ctx context.Context, occupancyID uuid.UUID) (*entity.Billing, error) {
	query := `
		SELECT id, occupancy_id, user_id, amount, payment_time, payment_status, created_at, updated_at
		FROM billing
		WHERE occupancy_id = $1
	`

	var billing entity.Billing
	err := r.db.QueryRow(ctx, query, occupancyID).Scan(
		&billing.ID,
		&billing.OccupancyID,
		&billing.UserID,
		&billing.Amount,
		&billing.PaymentTime,
		&billing.PaymentStatus,
		&billing.CreatedAt,
		&billing.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find billing by occupancy ID",
			zap.Error(err),
			zap.String("occupancy_id", occupancyID.String()),
		)
		return nil, fmt.Errorf("find billing by occupancy ID %s: %w", occupancyID.String(), err)
	}

	return &billing, nil
}

func (r *billingRepository) FindAll(ctx context.Context, filter BillingFilter, limit, offset int) ([]*entity.Billing, error) {
	query := `
		SELECT id, occupancy_id, user_id, amount, payment_time, payment_status, created_at, updated_at
		FROM billing
		WHERE 1=1
	`

	var args []any
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filter.OccupancyID != nil {
		args = append(args, *filter.OccupancyID)
		query += fmt.Sprintf(" AND occupancy_id = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find billing records", zap.Error(err))
		return nil, fmt.Errorf("find billing records: %w", err)
	}
	defer rows.Close()

	return scanBillings(rows, r.log)
}

func (r *billingRepository) CountAll(ctx context.Context, filter BillingFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM billing WHERE 1=1`

	var args []any
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filter.OccupancyID != nil {
		args = append(args, *filter.OccupancyID)
		query += fmt.Sprintf(" AND occupancy_id = $%d", len(args))
	}

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count billing records", zap.Error(err))
		return 0, fmt.Errorf("count billing records: %w", err)
	}

	return count, nil
}

func (r *billingRepository) FindPaid(ctx context.Context, start, end *time.Time) ([]*entity.Billing, error) {
	query := `
		SELECT id, occupancy_id, user_id, amount, payment_time, payment_status, created_at, updated_at
		FROM billing
		WHERE payment_status = $1
	`

	args := []any{entity.PaymentStatusPaid}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND payment_time >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND payment_time <= $%d", len(args))
	}
	query += " ORDER BY payment_time DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find paid billing records", zap.Error(err))
		return nil, fmt.Errorf("find paid billing records: %w", err)
	}
	defer rows.Close()

	return scanBillings(rows, r.log)
}

func (r *billingRepository) SumPaidAmount(ctx context.Context, start, end *time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM billing WHERE payment_status = $1`

	args := []any{entity.PaymentStatusPaid}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND payment_time >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND payment_time <= $%d", len(args))
	}

	var total float64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum paid amounts", zap.Error(err))
		return 0, fmt.Errorf("sum paid amounts: %w", err)
	}

	return total, nil
}

func (r *billingRepository) Update(ctx context.Context, billing *entity.Billing) error {
	query := `
		UPDATE billing
		SET amount = $2, payment_time = $3, payment_status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		billing.ID,
		billing.Amount,
		billing.PaymentTime,
		billing.PaymentStatus,
		billing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update billing record",
			zap.Error(err),
			zap.String("billing_id", billing.ID.String()),
		)
		return fmt.Errorf("update billing %s: %w", billing.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("billing %s not found", billing.ID.String())
	}

	return nil
}

func scanBillings(rows pgx.Rows, log *zap.Logger) ([]*entity.Billing, error) {
	var billings []*entity.Billing
	for rows.Next() {
		var billing entity.Billing
		err := rows.Scan(
			&billing.ID,
			&billing.OccupancyID,
			&billing.UserID,
			&billing.Amount,
			&billing.PaymentTime,
			&billing.PaymentStatus,
			&billing.CreatedAt,
			&billing.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan billing row", zap.Error(err))
			return nil, fmt.Errorf("scan billing row: %w", err)
		}
		billings = append(billings, &billing)
	}

	return billings, nil
}
