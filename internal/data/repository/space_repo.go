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

// SpaceFilter narrows FindAll results; nil fields match everything.
type SpaceFilter struct {
	LotID     *uuid.UUID
	SpaceType *entity.SpaceType
	State     *entity.SpaceState
}

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error)
	FindAll(ctx context.Context, filter SpaceFilter) ([]*entity.Space, error)
	Update(ctx context.Context, space *entity.Space) error
	Delete(ctx context.Context, id uuid.UUID) error

	// State transitions. UpdateStateIf is the conditional write that
	// serializes concurrent claims: it succeeds only when the row is still
	// in the expected state, so the loser of a race sees ok=false.
	UpdateStateIf(ctx context.Context, id uuid.UUID, from, to entity.SpaceState, reservedUntil *time.Time) (bool, error)
	UpdateState(ctx context.Context, id uuid.UUID, to entity.SpaceState) error
	ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error)

	CountBusyByLot(ctx context.Context, lotID uuid.UUID) (int64, error)
}

type spaceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSpaceRepository(db database.Querier, log *zap.Logger) SpaceRepository {
	return &spaceRepository{
		db:  db,
		log: log.With(zap.String("repository", "space")),
	}
}

func (r *spaceRepository) Create(ctx context.Context, space *entity.Space) error {
	query := `
		INSERT INTO parking_spaces (id, lot_id, space_type, state, extra_charge, reserved_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		space.ID,
		space.LotID,
		space.SpaceType,
		space.State,
		space.ExtraCharge,
		space.ReservedUntil,
		space.CreatedAt,
		space.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create space",
			zap.Error(err),
			zap.String("lot_id", space.LotID.String()),
			zap.String("space_type", string(space.SpaceType)),
		)
		return fmt.Errorf("create space in lot %s: %w", space.LotID.String(), err)
	}

	return nil
}

func (r *spaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	query := `
		SELECT id, lot_id, space_type, state, extra_charge, reserved_until, created_at, updated_at
		FROM parking_spaces
		WHERE id = $1
	`

	var space entity.Space
	err := r.db.QueryRow(ctx, query, id).Scan(
		&space.ID,
		&space.LotID,
		&space.SpaceType,
		&space.State,
		&space.ExtraCharge,
		&space.ReservedUntil,
		&space.CreatedAt,
		&space.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find space by ID",
			zap.Error(err),
			zap.String("space_id", id.String()),
		)
		return nil, fmt.Errorf("find space by ID %s: %w", id.String(), err)
	}

	return &space, nil
}

func (r *spaceRepository) FindAll(ctx context.Context, filter SpaceFilter) ([]*entity.Space, error) {
	query := `
		SELECT id, lot_id, space_type, state, extra_charge, reserved_until, created_at, updated_at
		FROM parking_spaces
		WHERE 1=1
	`

	var args []any
	if filter.LotID != nil {
		args = append(args, *filter.LotID)
		query += fmt.Sprintf(" AND lot_id = $%d", len(args))
	}
	if filter.SpaceType != nil {
		args = append(args, *filter.SpaceType)
		query += fmt.Sprintf(" AND space_type = $%d", len(args))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find spaces", zap.Error(err))
		return nil, fmt.Errorf("find spaces: %w", err)
	}
	defer rows.Close()

	var spaces []*entity.Space
	for rows.Next() {
		var space entity.Space
		err := rows.Scan(
			&space.ID,
			&space.LotID,
			&space.SpaceType,
			&space.State,
			&space.ExtraCharge,
			&space.ReservedUntil,
			&space.CreatedAt,
			&space.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan space row", zap.Error(err))
			return nil, fmt.Errorf("scan space row: %w", err)
		}
		spaces = append(spaces, &space)
	}

	return spaces, nil
}

func (r *spaceRepository) Update(ctx context.Context, space *entity.Space) error {
	// State and reserved_until are owned by the availability tracker and are
	// deliberately absent here.
	query := `
		UPDATE parking_spaces
		SET lot_id = $2, space_type = $3, extra_charge = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		space.ID,
		space.LotID,
		space.SpaceType,
		space.ExtraCharge,
		space.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update space",
			zap.Error(err),
			zap.String("space_id", space.ID.String()),
		)
		return fmt.Errorf("update space %s: %w", space.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("space %s not found", space.ID.String())
	}

	return nil
}

func (r *spaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM parking_spaces WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete space",
			zap.Error(err),
			zap.String("space_id", id.String()),
		)
		return fmt.Errorf("delete space %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("space %s not found", id.String())
	}

	r.log.Info("Space deleted", zap.String("space_id", id.String()))
	return nil
}

func (r *spaceRepository) UpdateStateIf(ctx context.Context, id uuid.UUID, from, to entity.SpaceState, reservedUntil *time.Time) (bool, error) {
	query := `
		UPDATE parking_spaces
		SET state = $3, reserved_until = $4, updated_at = NOW()
		WHERE id = $1 AND state = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, reservedUntil)
	if err != nil {
		r.log.Error("Failed to transition space state",
			zap.Error(err),
			zap.String("space_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("transition space %s from %s to %s: %w", id.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *spaceRepository) UpdateState(ctx context.Context, id uuid.UUID, to entity.SpaceState) error {
	query := `
		UPDATE parking_spaces
		SET state = $2, reserved_until = NULL, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, to)
	if err != nil {
		r.log.Error("Failed to set space state",
			zap.Error(err),
			zap.String("space_id", id.String()),
			zap.String("state", string(to)),
		)
		return fmt.Errorf("set space %s state to %s: %w", id.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("space %s not found", id.String())
	}

	return nil
}

func (r *spaceRepository) ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE parking_spaces
		SET state = $1, reserved_until = NULL, updated_at = NOW()
		WHERE state = $2 AND reserved_until IS NOT NULL AND reserved_until <= $3
	`

	result, err := r.db.Exec(ctx, query, entity.SpaceStateUnoccupied, entity.SpaceStateReserved, now)
	if err != nil {
		r.log.Error("Failed to release expired reservations", zap.Error(err))
		return 0, fmt.Errorf("release expired reservations: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *spaceRepository) CountBusyByLot(ctx context.Context, lotID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM parking_spaces
		WHERE lot_id = $1 AND state IN ($2, $3)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, lotID, entity.SpaceStateOccupied, entity.SpaceStateReserved).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count busy spaces by lot",
			zap.Error(err),
			zap.String("lot_id", lotID.String()),
		)
		return 0, fmt.Errorf("count busy spaces in lot %s: %w", lotID.String(), err)
	}

	return count, nil
}
