package usecase

import (
	"context"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/internal/data/repository"
	"parking-facility/internal/dto/request"
	"parking-facility/internal/dto/response"
	"parking-facility/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleService interface {
	RegisterVehicle(ctx context.Context, req *request.RegisterVehicleRequest) (*response.VehicleResponse, error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error)
	GetAllVehicles(ctx context.Context) ([]response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	GetVehicleHistory(ctx context.Context, vehicleID string) ([]response.OccupancyResponse, error)
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) RegisterVehicle(ctx context.Context, req *request.RegisterVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register vehicle validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Vehicle.FindByRegistration(ctx, req.Registration)
	if err != nil {
		return nil, asServiceError(err, "find vehicle by registration %s", req.Registration)
	}
	if existing != nil {
		return nil, InvalidStateError("vehicle with registration %s already exists", req.Registration)
	}

	var ownerID *uuid.UUID
	if req.OwnerID != nil {
		id, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, ValidationError("invalid owner ID format %s", *req.OwnerID)
		}
		owner, err := s.repo.User.FindByID(ctx, id)
		if err != nil {
			return nil, asServiceError(err, "find user %s", *req.OwnerID)
		}
		if owner == nil {
			return nil, NotFoundError("user %s not found", *req.OwnerID)
		}
		ownerID = &id
	}

	now := time.Now().UTC()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Registration: req.Registration,
		OwnerID:      ownerID,
		VehicleType:  entity.VehicleType(req.VehicleType),
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, asServiceError(err, "register vehicle %s", req.Registration)
	}

	s.log.Info("Vehicle registered",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("registration", req.Registration),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error) {
	vehicle, err := s.findVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) GetAllVehicles(ctx context.Context) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindAll(ctx)
	if err != nil {
		return nil, asServiceError(err, "get all vehicles")
	}

	return response.VehiclesToResponse(vehicles), nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vehicle, err := s.findVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Registration != nil && *req.Registration != vehicle.Registration {
		existing, err := s.repo.Vehicle.FindByRegistration(ctx, *req.Registration)
		if err != nil {
			return nil, asServiceError(err, "find vehicle by registration %s", *req.Registration)
		}
		if existing != nil {
			return nil, InvalidStateError("vehicle with registration %s already exists", *req.Registration)
		}
		vehicle.Registration = *req.Registration
	}
	if req.OwnerID != nil {
		id, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, ValidationError("invalid owner ID format %s", *req.OwnerID)
		}
		owner, err := s.repo.User.FindByID(ctx, id)
		if err != nil {
			return nil, asServiceError(err, "find user %s", *req.OwnerID)
		}
		if owner == nil {
			return nil, NotFoundError("user %s not found", *req.OwnerID)
		}
		vehicle.OwnerID = &id
	}
	if req.VehicleType != nil {
		vehicle.VehicleType = entity.VehicleType(*req.VehicleType)
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, asServiceError(err, "update vehicle %s", vehicleID)
	}

	s.log.Info("Vehicle updated", zap.String("vehicle_id", vehicleID))

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) GetVehicleHistory(ctx context.Context, vehicleID string) ([]response.OccupancyResponse, error) {
	vehicle, err := s.findVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	occupancies, err := s.repo.Occupancy.FindHistory(ctx, repository.HistoryFilter{VehicleID: &vehicle.ID})
	if err != nil {
		return nil, asServiceError(err, "get history for vehicle %s", vehicleID)
	}

	return response.OccupanciesToResponse(occupancies), nil
}

func (s *vehicleService) findVehicle(ctx context.Context, vehicleID string) (*entity.Vehicle, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, ValidationError("invalid vehicle ID format %s", vehicleID)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "find vehicle %s", vehicleID)
	}
	if vehicle == nil {
		return nil, NotFoundError("vehicle %s not found", vehicleID)
	}

	return vehicle, nil
}
