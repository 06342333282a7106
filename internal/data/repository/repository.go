package repository

import (
	"context"
	"fmt"

	"parking-facility/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Lot       LotRepository
	Space     SpaceRepository
	User      UserRepository
	Vehicle   VehicleRepository
	Occupancy OccupancyRepository
	Billing   BillingRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return bind(db, db, log)
}

func bind(q database.Querier, db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Lot:       NewLotRepository(q, log),
		Space:     NewSpaceRepository(q, log),
		User:      NewUserRepository(q, log),
		Vehicle:   NewVehicleRepository(q, log),
		Occupancy: NewOccupancyRepository(q, log),
		Billing:   NewBillingRepository(q, log),
		db:        db,
		log:       log,
	}
}

// InTx runs fn against a repository set bound to a single transaction.
// The transaction commits only if fn returns nil; any error rolls back every
// write fn performed.
func (r *Repository) InTx(ctx context.Context, fn func(repos *Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(bind(tx, r.db, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
