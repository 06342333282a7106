package usecase

import (
	"context"

	"parking-facility/internal/data/repository"
	"parking-facility/pkg/utils"

	"go.uber.org/zap"
)

// UnitOfWork runs fn against a transaction-bound repository set and commits
// only when fn returns nil. Production wiring uses Repository.InTx.
type UnitOfWork func(ctx context.Context, fn func(repos *repository.Repository) error) error

// Service bundles every use case behind one constructor for wiring.
type Service struct {
	Occupancy OccupancyService
	Billing   BillingService
	Lot       LotService
	Space     SpaceService
	Vehicle   VehicleService
	User      UserService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	uow := UnitOfWork(repo.InTx)
	billing := NewBillingService(repo, uow, log)

	return &Service{
		Occupancy: NewOccupancyService(repo, uow, billing, config, log),
		Billing:   billing,
		Lot:       NewLotService(repo, log),
		Space:     NewSpaceService(repo, uow, log),
		Vehicle:   NewVehicleService(repo, log),
		User:      NewUserService(repo, log),
	}
}
