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

// OccupancyFilter narrows FindAll results; nil fields match everything.
type OccupancyFilter struct {
	Status    *entity.OccupancyStatus
	SpaceID   *uuid.UUID
	VehicleID *uuid.UUID
}

// HistoryFilter narrows completed-occupancy queries by vehicle and entry window.
type HistoryFilter struct {
	VehicleID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type OccupancyRepository interface {
	Create(ctx context.Context, occupancy *entity.Occupancy) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Occupancy, error)
	FindAll(ctx context.Context, filter OccupancyFilter, limit, offset int) ([]*entity.Occupancy, error)
	CountAll(ctx context.Context, filter OccupancyFilter) (int64, error)
	FindActive(ctx context.Context, spaceID, vehicleID *uuid.UUID) ([]*entity.Occupancy, error)
	FindHistory(ctx context.Context, filter HistoryFilter) ([]*entity.Occupancy, error)
	Update(ctx context.Context, occupancy *entity.Occupancy) error
}

type occupancyRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOccupancyRepository(db database.Querier, log *zap.Logger) OccupancyRepository {
	return &occupancyRepository{
		db:  db,
		log: log.With(zap.String("repository", "occupancy")),
	}
}

func (r *occupancyRepository) Create(ctx context.Context, occupancy *entity.Occupancy) error {
	query := `
		INSERT INTO occupancies (id, space_id, vehicle_id, user_id, entry_time, exit_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		occupancy.ID,
		occupancy.SpaceID,
		occupancy.VehicleID,
		occupancy.UserID,
		occupancy.EntryTime,
		occupancy.ExitTime,
		occupancy.Status,
		occupancy.CreatedAt,
		occupancy.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create occupancy",
			zap.Error(err),
			zap.String("space_id", occupancy.SpaceID.String()),
		)
		return fmt.Errorf("create occupancy for space %s: %w", occupancy.SpaceID.String(), err)
	}

	return nil
}

func (r *occupancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Occupancy, error) {
	query := `
		SELECT id, space_id, vehicle_id, user_id, entry_time, exit_time, status, created_at, updated_at
		FROM occupancies
		WHERE id = $1
	`

	var occupancy entity.Occupancy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&occupancy.ID,
		&occupancy.SpaceID,
		&occupancy.VehicleID,
		&occupancy.UserID,
		&occupancy.EntryTime,
		&occupancy.ExitTime,
		&occupancy.Status,
		&occupancy.CreatedAt,
		&occupancy.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find occupancy by ID",
			zap.Error(err),
			zap.String("occupancy_id", id.String()),
		)
		return nil, fmt.Errorf("find occupancy by ID %s: %w", id.String(), err)
	}

	return &occupancy, nil
}

func (r *occupancyRepository) FindAll(ctx context.Context, filter OccupancyFilter, limit, offset int) ([]*entity.Occupancy, error) {
	query := `
		SELECT id, space_id, vehicle_id, user_id, entry_time, exit_time, status, created_at, updated_at
		FROM occupancies
		WHERE 1=1
	`

	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SpaceID != nil {
		args = append(args, *filter.SpaceID)
		query += fmt.Sprintf(" AND space_id = $%d", len(args))
	}
	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}

	query += " ORDER BY entry_time DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find occupancies", zap.Error(err))
		return nil, fmt.Errorf("find occupancies: %w", err)
	}
	defer rows.Close()

	return scanOccupancies(rows, r.log)
}

func (r *occupancyRepository) CountAll(ctx context.Context, filter OccupancyFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM occupancies WHERE 1=1`

	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SpaceID != nil {
		args = append(args, *filter.SpaceID)
		query += fmt.Sprintf(" AND space_id = $%d", len(args))
	}
	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count occupancies", zap.Error(err))
		return 0, fmt.Errorf("count occupancies: %w", err)
	}

	return count, nil
}

func (r *occupancyRepository) FindActive(ctx context.Context, spaceID, vehicleID *uuid.UUID) ([]*entity.Occupancy, error) {
	query := `
		SELECT id, space_id, vehicle_id, user_id, entry_time, exit_time, status, created_at, updated_at
		FROM occupancies
		WHERE status = $1
	`

	args := []any{entity.OccupancyStatusActive}
	if spaceID != nil {
		args = append(args, *spaceID)
		query += fmt.Sprintf(" AND space_id = $%d", len(args))
	}
	if vehicleID != nil {
		args = append(args, *vehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	query += " ORDER BY entry_time DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find active occupancies", zap.Error(err))
		return nil, fmt.Errorf("find active occupancies: %w", err)
	}
	defer rows.Close()

	return scanOccupancies(rows, r.log)
}

func (r *occupancyRepository) FindHistory(ctx context.Context, filter HistoryFilter) ([]*entity.Occupancy, error) {
	query := `
		SELECT id, space_id, vehicle_id, user_id, entry_time, exit_time, status, created_at, updated_at
		FROM occupancies
		WHERE status = $1
	`

	args := []any{entity.OccupancyStatusCompleted}
	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND entry_time >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND entry_time <= $%d", len(args))
	}
	query += " ORDER BY entry_time DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find occupancy history", zap.Error(err))
		return nil, fmt.Errorf("find occupancy history: %w", err)
	}
	defer rows.Close()

	return scanOccupancies(rows, r.log)
}

func (r *occupancyRepository) Update(ctx context.Context, occupancy *entity.Occupancy) error {
	query := `
		UPDATE occupancies
		SET space_id = $2, vehicle_id = $3, user_id = $4, entry_time = $5,
		    exit_time = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		occupancy.ID,
		occupancy.SpaceID,
		occupancy.VehicleID,
		occupancy.UserID,
		occupancy.EntryTime,
		occupancy.ExitTime,
		occupancy.Status,
		occupancy.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update occupancy",
			zap.Error(err),
			zap.String("occupancy_id", occupancy.ID.String()),
		)
		return fmt.Errorf("update occupancy %s: %w", occupancy.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("occupancy %s not found", occupancy.ID.String())
	}

	return nil
}

func scanOccupancies(rows pgx.Rows, log *zap.Logger) ([]*entity.Occupancy, error) {
	var occupancies []*entity.Occupancy
	for rows.Next() {
		var occupancy entity.Occupancy
		err := rows.Scan(
			&occupancy.ID,
			&occupancy.SpaceID,
			&occupancy.VehicleID,
			&occupancy.UserID,
			&occupancy.EntryTime,
			&occupancy.ExitTime,
			&occupancy.Status,
			&occupancy.CreatedAt,
			&occupancy.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan occupancy row", zap.Error(err))
			return nil, fmt.Errorf("scan occupancy row: %w", err)
		}
		occupancies = append(occupancies, &occupancy)
	}

	return occupancies, nil
}
