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

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByRegistration(ctx context.Context, registration string) (*entity.Vehicle, error)
	FindAll(ctx context.Context) ([]*entity.Vehicle, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
}

type vehicleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewVehicleRepository(db database.Querier, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, registration, owner_id, vehicle_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Registration,
		vehicle.OwnerID,
		vehicle.VehicleType,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("registration", vehicle.Registration),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.Registration, err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `
		SELECT id, registration, owner_id, vehicle_type, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	var vehicle entity.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Registration,
		&vehicle.OwnerID,
		&vehicle.VehicleType,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) FindByRegistration(ctx context.Context, registration string) (*entity.Vehicle, error) {
	query := `
		SELECT id, registration, owner_id, vehicle_type, created_at, updated_at
		FROM vehicles
		WHERE registration = $1
	`

	var vehicle entity.Vehicle
	err := r.db.QueryRow(ctx, query, registration).Scan(
		&vehicle.ID,
		&vehicle.Registration,
		&vehicle.OwnerID,
		&vehicle.VehicleType,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by registration",
			zap.Error(err),
			zap.String("registration", registration),
		)
		return nil, fmt.Errorf("find vehicle by registration %s: %w", registration, err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, registration, owner_id, vehicle_type, created_at, updated_at
		FROM vehicles
		ORDER BY registration
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find vehicles", zap.Error(err))
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows, r.log)
}

func (r *vehicleRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, registration, owner_id, vehicle_type, created_at, updated_at
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY registration
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find vehicles by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find vehicles by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return scanVehicles(rows, r.log)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET registration = $2, owner_id = $3, vehicle_type = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Registration,
		vehicle.OwnerID,
		vehicle.VehicleType,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func scanVehicles(rows pgx.Rows, log *zap.Logger) ([]*entity.Vehicle, error) {
	var vehicles []*entity.Vehicle
	for rows.Next() {
		var vehicle entity.Vehicle
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.Registration,
			&vehicle.OwnerID,
			&vehicle.VehicleType,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}
