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

type OccupancyService interface {
	// Lifecycle operations
	CheckIn(ctx context.Context, req *request.CheckInRequest) (*response.CheckInResponse, error)
	CheckOut(ctx context.Context, occupancyID string, req *request.CheckOutRequest) (*response.CheckOutResponse, error)
	ReserveSpace(ctx context.Context, req *request.ReserveRequest) (*response.SpaceResponse, error)
	ReserveAndCheckIn(ctx context.Context, req *request.CheckInRequest) (*response.CheckInResponse, error)

	// Queries
	GetOccupancyByID(ctx context.Context, occupancyID string) (*response.OccupancyResponse, error)
	ListOccupancies(ctx context.Context, req *request.OccupancyListRequest) (*response.PaginatedResponse[response.OccupancyResponse], error)
	GetActiveOccupancies(ctx context.Context, spaceID, vehicleID string) ([]response.OccupancyResponse, error)
	GetHistory(ctx context.Context, req *request.OccupancyHistoryRequest) ([]response.OccupancyResponse, error)
}

type occupancyService struct {
	repo   *repository.Repository
	uow    UnitOfWork
	ledger BillingService
	config *utils.Config
	log    *zap.Logger
}

func NewOccupancyService(repo *repository.Repository, uow UnitOfWork, ledger BillingService, config *utils.Config, log *zap.Logger) OccupancyService {
	return &occupancyService{
		repo:   repo,
		uow:    uow,
		ledger: ledger,
		config: config,
		log:    log.With(zap.String("service", "occupancy")),
	}
}

// CheckIn opens an occupancy on an unoccupied space. The occupancy write and
// the space transition commit together or not at all.
func (s *occupancyService) CheckIn(ctx context.Context, req *request.CheckInRequest) (*response.CheckInResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Check-in validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return nil, ValidationError("invalid space ID format %s", req.SpaceID)
	}

	params, err := s.parseCheckInParams(req)
	if err != nil {
		return nil, err
	}

	var result *response.CheckInResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		occupancy, space, err := s.checkIn(ctx, repos, spaceID, req.VehicleRegistration, params, entity.SpaceStateUnoccupied)
		if err != nil {
			return err
		}
		result = &response.CheckInResponse{
			Occupancy: response.OccupancyToResponse(occupancy),
			Space:     response.SpaceToResponse(space),
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "check in on space %s", req.SpaceID)
	}

	s.log.Info("Vehicle checked in",
		zap.String("occupancy_id", result.Occupancy.ID),
		zap.String("space_id", req.SpaceID),
		zap.String("registration", req.VehicleRegistration),
	)

	return result, nil
}

// ReserveSpace holds an unoccupied space. The hold expires after the given
// duration (default from config) unless a check-in claims it first.
func (s *occupancyService) ReserveSpace(ctx context.Context, req *request.ReserveRequest) (*response.SpaceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return nil, ValidationError("invalid space ID format %s", req.SpaceID)
	}

	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = s.config.Parking.ReservationMinutes
	}
	reservedUntil := time.Now().UTC().Add(time.Duration(minutes) * time.Minute)

	var result *response.SpaceResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		space, err := repos.Space.FindByID(ctx, spaceID)
		if err != nil {
			return err
		}
		if space == nil {
			return NotFoundError("space %s not found", req.SpaceID)
		}

		tracker := NewSpaceTracker(repos.Space, s.log)
		if err := tracker.Reserve(ctx, spaceID, &reservedUntil); err != nil {
			return err
		}

		space.State = entity.SpaceStateReserved
		space.ReservedUntil = &reservedUntil
		resp := response.SpaceToResponse(space)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "reserve space %s", req.SpaceID)
	}

	s.log.Info("Space reserved",
		zap.String("space_id", req.SpaceID),
		zap.Time("reserved_until", reservedUntil),
		zap.Int("duration_minutes", minutes),
	)

	return result, nil
}

// ReserveAndCheckIn is the composite gate flow: reserve, then check in
// claiming the reservation. If check-in fails after the reservation
// succeeded, the reservation is released before the failure surfaces, so a
// failed composite never strands a space in reserved.
func (s *occupancyService) ReserveAndCheckIn(ctx context.Context, req *request.CheckInRequest) (*response.CheckInResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve-and-check-in validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return nil, ValidationError("invalid space ID format %s", req.SpaceID)
	}

	params, err := s.parseCheckInParams(req)
	if err != nil {
		return nil, err
	}

	reserveReq := &request.ReserveRequest{SpaceID: req.SpaceID, UserID: req.UserID}
	if _, err := s.ReserveSpace(ctx, reserveReq); err != nil {
		return nil, err
	}

	var result *response.CheckInResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		occupancy, space, err := s.checkIn(ctx, repos, spaceID, req.VehicleRegistration, params, entity.SpaceStateReserved)
		if err != nil {
			return err
		}
		result = &response.CheckInResponse{
			Occupancy: response.OccupancyToResponse(occupancy),
			Space:     response.SpaceToResponse(space),
		}
		return nil
	})
	if err != nil {
		// Compensating action: the reservation must not outlive the failure.
		relErr := s.uow(ctx, func(repos *repository.Repository) error {
			return NewSpaceTracker(repos.Space, s.log).Release(ctx, spaceID)
		})
		if relErr != nil {
			s.log.Error("Failed to release reservation after failed check-in",
				zap.Error(relErr),
				zap.String("space_id", req.SpaceID),
			)
		}
		return nil, asServiceError(err, "reserve and check in on space %s", req.SpaceID)
	}

	s.log.Info("Space reserved and vehicle checked in",
		zap.String("occupancy_id", result.Occupancy.ID),
		zap.String("space_id", req.SpaceID),
	)

	return result, nil
}

// CheckOut completes an active occupancy: stamps the exit time, releases the
// space, computes the charge and opens a pending billing record, all in one
// transaction.
func (s *occupancyService) CheckOut(ctx context.Context, occupancyID string, req *request.CheckOutRequest) (*response.CheckOutResponse, error) {
	id, err := uuid.Parse(occupancyID)
	if err != nil {
		return nil, ValidationError("invalid occupancy ID format %s", occupancyID)
	}

	var exitTime *time.Time
	if req != nil && req.ExitTime != nil {
		t, err := utils.ParseTime(*req.ExitTime)
		if err != nil {
			return nil, ValidationError("invalid exit_time: %v", err)
		}
		exitTime = &t
	}

	var result *response.CheckOutResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		occupancy, err := repos.Occupancy.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if occupancy == nil {
			return NotFoundError("occupancy %s not found", occupancyID)
		}
		if occupancy.Status != entity.OccupancyStatusActive {
			return InvalidStateError("occupancy %s is %s, not active", occupancyID, string(occupancy.Status))
		}

		exit := utils.NormalizeUTC(exitTime)
		if exit.Before(occupancy.EntryTime) {
			return ValidationError("exit time %s is before entry time %s",
				exit.Format(time.RFC3339), occupancy.EntryTime.Format(time.RFC3339))
		}

		now := time.Now().UTC()
		occupancy.ExitTime = &exit
		occupancy.Status = entity.OccupancyStatusCompleted
		occupancy.UpdatedAt = now
		if err := repos.Occupancy.Update(ctx, occupancy); err != nil {
			return err
		}

		// Rate inputs before the release flips the row.
		space, err := repos.Space.FindByID(ctx, occupancy.SpaceID)
		if err != nil {
			return err
		}
		var lot *entity.Lot
		if space != nil {
			lot, err = repos.Lot.FindByID(ctx, space.LotID)
			if err != nil {
				return err
			}
		}

		tracker := NewSpaceTracker(repos.Space, s.log)
		if err := tracker.Release(ctx, occupancy.SpaceID); err != nil {
			return err
		}

		amount := CalculateCharge(occupancy, space, lot, now, s.config.Parking.MinBilledHours)

		billing, err := s.ledger.CreateRecord(ctx, repos, occupancy, amount)
		if err != nil {
			return err
		}

		result = &response.CheckOutResponse{
			Occupancy: response.OccupancyToResponse(occupancy),
			Billing:   response.BillingToResponse(billing),
			Amount:    amount,
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "check out occupancy %s", occupancyID)
	}

	s.log.Info("Vehicle checked out",
		zap.String("occupancy_id", occupancyID),
		zap.Float64("amount", result.Amount),
	)

	return result, nil
}

// ==================== QUERY METHODS ====================

func (s *occupancyService) GetOccupancyByID(ctx context.Context, occupancyID string) (*response.OccupancyResponse, error) {
	id, err := uuid.Parse(occupancyID)
	if err != nil {
		return nil, ValidationError("invalid occupancy ID format %s", occupancyID)
	}

	occupancy, err := s.repo.Occupancy.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "get occupancy %s", occupancyID)
	}
	if occupancy == nil {
		return nil, NotFoundError("occupancy %s not found", occupancyID)
	}

	resp := response.OccupancyToResponse(occupancy)
	return &resp, nil
}

func (s *occupancyService) ListOccupancies(ctx context.Context, req *request.OccupancyListRequest) (*response.PaginatedResponse[response.OccupancyResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := s.parseOccupancyFilter(req.Status, req.SpaceID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	occupancies, err := s.repo.Occupancy.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, asServiceError(err, "list occupancies")
	}

	total, err := s.repo.Occupancy.CountAll(ctx, filter)
	if err != nil {
		return nil, asServiceError(err, "count occupancies")
	}

	return response.NewPaginatedResponse(response.OccupanciesToResponse(occupancies), req.Page, req.PerPage, total), nil
}

func (s *occupancyService) GetActiveOccupancies(ctx context.Context, spaceID, vehicleID string) ([]response.OccupancyResponse, error) {
	spaceRef, err := parseOptionalUUID(spaceID, "space_id")
	if err != nil {
		return nil, err
	}
	vehicleRef, err := parseOptionalUUID(vehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}

	occupancies, err := s.repo.Occupancy.FindActive(ctx, spaceRef, vehicleRef)
	if err != nil {
		return nil, asServiceError(err, "get active occupancies")
	}

	return response.OccupanciesToResponse(occupancies), nil
}

func (s *occupancyService) GetHistory(ctx context.Context, req *request.OccupancyHistoryRequest) ([]response.OccupancyResponse, error) {
	vehicleRef, err := parseOptionalUUID(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}

	filter := repository.HistoryFilter{VehicleID: vehicleRef}
	if req.StartDate != "" {
		t, err := utils.ParseTime(req.StartDate)
		if err != nil {
			return nil, ValidationError("invalid start_date: %v", err)
		}
		filter.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := utils.ParseTime(req.EndDate)
		if err != nil {
			return nil, ValidationError("invalid end_date: %v", err)
		}
		filter.EndDate = &t
	}

	occupancies, err := s.repo.Occupancy.FindHistory(ctx, filter)
	if err != nil {
		return nil, asServiceError(err, "get occupancy history")
	}

	return response.OccupanciesToResponse(occupancies), nil
}

// ==================== HELPER METHODS ====================

type checkInParams struct {
	entryTime *time.Time
	userID    *uuid.UUID
}

func (s *occupancyService) parseCheckInParams(req *request.CheckInRequest) (checkInParams, error) {
	var params checkInParams

	if req.EntryTime != nil {
		t, err := utils.ParseTime(*req.EntryTime)
		if err != nil {
			return params, ValidationError("invalid entry_time: %v", err)
		}
		params.entryTime = &t
	}

	if req.UserID != nil {
		id, err := uuid.Parse(*req.UserID)
		if err != nil {
			return params, ValidationError("invalid user ID format %s", *req.UserID)
		}
		params.userID = &id
	}

	return params, nil
}

// checkIn runs inside a transaction: validates the space, resolves the
// vehicle, writes the occupancy and claims the space from the given state.
func (s *occupancyService) checkIn(
	ctx context.Context,
	repos *repository.Repository,
	spaceID uuid.UUID,
	registration string,
	params checkInParams,
	from entity.SpaceState,
) (*entity.Occupancy, *entity.Space, error) {
	space, err := repos.Space.FindByID(ctx, spaceID)
	if err != nil {
		return nil, nil, err
	}
	if space == nil {
		return nil, nil, NotFoundError("space %s not found", spaceID.String())
	}
	if space.State != from {
		return nil, nil, SpaceUnavailableError("space %s is %s, not available", spaceID.String(), string(space.State))
	}

	vehicle, err := s.resolveOrRegisterVehicle(ctx, repos, registration, params.userID)
	if err != nil {
		return nil, nil, err
	}

	entryTime := utils.NormalizeUTC(params.entryTime)

	// Session user: explicit user, else the vehicle's owner, else none.
	userRef := params.userID
	if userRef == nil {
		userRef = vehicle.OwnerID
	}

	now := time.Now().UTC()
	occupancy := &entity.Occupancy{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SpaceID:   spaceID,
		VehicleID: &vehicle.ID,
		UserID:    userRef,
		EntryTime: entryTime,
		Status:    entity.OccupancyStatusActive,
	}

	if err := repos.Occupancy.Create(ctx, occupancy); err != nil {
		return nil, nil, err
	}

	// The conditional claim is the race arbiter: a concurrent winner on the
	// same space makes this fail and the whole transaction rolls back.
	tracker := NewSpaceTracker(repos.Space, s.log)
	if from == entity.SpaceStateReserved {
		err = tracker.ClaimReserved(ctx, spaceID)
	} else {
		err = tracker.Claim(ctx, spaceID)
	}
	if err != nil {
		return nil, nil, err
	}

	space.State = entity.SpaceStateOccupied
	space.ReservedUntil = nil

	return occupancy, space, nil
}

// resolveOrRegisterVehicle looks the vehicle up by registration and registers
// a walk-in record when absent: default four-wheeler, owned by the session
// user if supplied, with a generated placeholder registration when none was
// given.
func (s *occupancyService) resolveOrRegisterVehicle(ctx context.Context, repos *repository.Repository, registration string, userID *uuid.UUID) (*entity.Vehicle, error) {
	if registration == "" {
		registration = utils.GeneratePlaceholderRegistration()
	} else {
		vehicle, err := repos.Vehicle.FindByRegistration(ctx, registration)
		if err != nil {
			return nil, err
		}
		if vehicle != nil {
			return vehicle, nil
		}
	}

	now := time.Now().UTC()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Registration: registration,
		OwnerID:      userID,
		VehicleType:  entity.VehicleTypeFourWheeler,
	}

	if err := repos.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.log.Info("Walk-in vehicle registered",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("registration", registration),
	)

	return vehicle, nil
}

func (s *occupancyService) parseOccupancyFilter(status, spaceID, vehicleID string) (repository.OccupancyFilter, error) {
	var filter repository.OccupancyFilter

	if status != "" {
		st := entity.OccupancyStatus(status)
		filter.Status = &st
	}

	spaceRef, err := parseOptionalUUID(spaceID, "space_id")
	if err != nil {
		return filter, err
	}
	filter.SpaceID = spaceRef

	vehicleRef, err := parseOptionalUUID(vehicleID, "vehicle_id")
	if err != nil {
		return filter, err
	}
	filter.VehicleID = vehicleRef

	return filter, nil
}

func parseOptionalUUID(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, ValidationError("invalid %s format %s", field, value)
	}
	return &id, nil
}
