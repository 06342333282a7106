package repository

import (
	"context"
	"fmt"

	"parking-facility/internal/data/entity"
	"parking-facility/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	FindAll(ctx context.Context) ([]*entity.Lot, error)
	Update(ctx context.Context, lot *entity.Lot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lotRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLotRepository(db database.Querier, log *zap.Logger) LotRepository {
	return &lotRepository{
		db:  db,
		log: log.With(zap.String("repository", "lot")),
	}
}

func (r *lotRepository) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO parking_lots (id, name, location, capacity, base_rate, geo_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Location,
		lot.Capacity,
		lot.BaseRate,
		lot.GeoLocation,
		lot.CreatedAt,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create lot",
			zap.Error(err),
			zap.String("name", lot.Name),
		)
		return fmt.Errorf("create lot %s: %w", lot.Name, err)
	}

	return nil
}

func (r *lotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	query := `
		SELECT id, name, location, capacity, base_rate, geo_location, created_at, updated_at
		FROM parking_lots
		WHERE id = $1
	`

	var lot entity.Lot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lot.ID,
		&lot.Name,
		&lot.Location,
		&lot.Capacity,
		&lot.BaseRate,
		&lot.GeoLocation,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lot by ID",
			zap.Error(err),
			zap.String("lot_id", id.String()),
		)
		return nil, fmt.Errorf("find lot by ID %s: %w", id.String(), err)
	}

	return &lot, nil
}

func (r *lotRepository) FindAll(ctx context.Context) ([]*entity.Lot, error) {
	query := `
		SELECT id, name, location, capacity, base_rate, geo_location, created_at, updated_at
		FROM parking_lots
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find lots", zap.Error(err))
		return nil, fmt.Errorf("find lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		var lot entity.Lot
		err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Location,
			&lot.Capacity,
			&lot.BaseRate,
			&lot.GeoLocation,
			&lot.CreatedAt,
			&lot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan lot row", zap.Error(err))
			return nil, fmt.Errorf("scan lot row: %w", err)
		}
		lots = append(lots, &lot)
	}

	return lots, nil
}

func (r *lotRepository) Update(ctx context.Context, lot *entity.Lot) error {
	query := `
		UPDATE parking_lots
		SET name = $2, location = $3, capacity = $4, base_rate = $5,
		    geo_location = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Location,
		lot.Capacity,
		lot.BaseRate,
		lot.GeoLocation,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update lot",
			zap.Error(err),
			zap.String("lot_id", lot.ID.String()),
		)
		return fmt.Errorf("update lot %s: %w", lot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lot %s not found", lot.ID.String())
	}

	return nil
}

func (r *lotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM parking_lots WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete lot",
			zap.Error(err),
			zap.String("lot_id", id.String()),
		)
		return fmt.Errorf("delete lot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lot %s not found", id.String())
	}

	r.log.Info("Lot deleted", zap.String("lot_id", id.String()))
	return nil
}
