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

type SpaceService interface {
	CreateSpace(ctx context.Context, req *request.CreateSpaceRequest) (*response.SpaceResponse, error)
	GetSpaceByID(ctx context.Context, spaceID string) (*response.SpaceResponse, error)
	ListSpaces(ctx context.Context, req *request.SpaceListRequest) ([]response.SpaceResponse, error)
	GetAvailableSpaces(ctx context.Context, lotID, spaceType string) ([]response.SpaceResponse, error)
	UpdateSpace(ctx context.Context, spaceID string, req *request.UpdateSpaceRequest) (*response.SpaceResponse, error)
	DeleteSpace(ctx context.Context, spaceID string) error
	SetMaintenance(ctx context.Context, spaceID string, req *request.SpaceMaintenanceRequest) (*response.SpaceResponse, error)
}

type spaceService struct {
	repo *repository.Repository
	uow  UnitOfWork
	log  *zap.Logger
}

func NewSpaceService(repo *repository.Repository, uow UnitOfWork, log *zap.Logger) SpaceService {
	return &spaceService{
		repo: repo,
		uow:  uow,
		log:  log.With(zap.String("service", "space")),
	}
}

func (s *spaceService) CreateSpace(ctx context.Context, req *request.CreateSpaceRequest) (*response.SpaceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create space validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lotID, err := uuid.Parse(req.LotID)
	if err != nil {
		return nil, ValidationError("invalid lot ID format %s", req.LotID)
	}

	lot, err := s.repo.Lot.FindByID(ctx, lotID)
	if err != nil {
		return nil, asServiceError(err, "find lot %s", req.LotID)
	}
	if lot == nil {
		return nil, NotFoundError("lot %s not found", req.LotID)
	}

	now := time.Now().UTC()
	space := &entity.Space{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		LotID:       lotID,
		SpaceType:   entity.SpaceType(req.SpaceType),
		State:       entity.SpaceStateUnoccupied,
		ExtraCharge: req.ExtraCharge,
	}

	if err := s.repo.Space.Create(ctx, space); err != nil {
		return nil, asServiceError(err, "create space in lot %s", req.LotID)
	}

	s.log.Info("Space created",
		zap.String("space_id", space.ID.String()),
		zap.String("lot_id", req.LotID),
		zap.String("space_type", req.SpaceType),
	)

	resp := response.SpaceToResponse(space)
	return &resp, nil
}

func (s *spaceService) GetSpaceByID(ctx context.Context, spaceID string) (*response.SpaceResponse, error) {
	space, err := s.findSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	resp := response.SpaceToResponse(space)
	return &resp, nil
}

func (s *spaceService) ListSpaces(ctx context.Context, req *request.SpaceListRequest) ([]response.SpaceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var filter repository.SpaceFilter
	lotRef, err := parseOptionalUUID(req.LotID, "lot_id")
	if err != nil {
		return nil, err
	}
	filter.LotID = lotRef
	if req.SpaceType != "" {
		st := entity.SpaceType(req.SpaceType)
		filter.SpaceType = &st
	}
	if req.State != "" {
		state := entity.SpaceState(req.State)
		filter.State = &state
	}

	spaces, err := s.repo.Space.FindAll(ctx, filter)
	if err != nil {
		return nil, asServiceError(err, "list spaces")
	}

	return response.SpacesToResponse(spaces), nil
}

func (s *spaceService) GetAvailableSpaces(ctx context.Context, lotID, spaceType string) ([]response.SpaceResponse, error) {
	req := &request.SpaceListRequest{
		LotID:     lotID,
		SpaceType: spaceType,
		State:     string(entity.SpaceStateUnoccupied),
	}
	return s.ListSpaces(ctx, req)
}

// UpdateSpace edits the space's static attributes. State is not editable
// here; lifecycle operations and maintenance toggles own it.
func (s *spaceService) UpdateSpace(ctx context.Context, spaceID string, req *request.UpdateSpaceRequest) (*response.SpaceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	space, err := s.findSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	if req.LotID != nil {
		lotID, err := uuid.Parse(*req.LotID)
		if err != nil {
			return nil, ValidationError("invalid lot ID format %s", *req.LotID)
		}
		lot, err := s.repo.Lot.FindByID(ctx, lotID)
		if err != nil {
			return nil, asServiceError(err, "find lot %s", *req.LotID)
		}
		if lot == nil {
			return nil, NotFoundError("lot %s not found", *req.LotID)
		}
		space.LotID = lotID
	}
	if req.SpaceType != nil {
		space.SpaceType = entity.SpaceType(*req.SpaceType)
	}
	if req.ExtraCharge != nil {
		space.ExtraCharge = *req.ExtraCharge
	}
	space.UpdatedAt = time.Now().UTC()

	if err := s.repo.Space.Update(ctx, space); err != nil {
		return nil, asServiceError(err, "update space %s", spaceID)
	}

	s.log.Info("Space updated", zap.String("space_id", spaceID))

	resp := response.SpaceToResponse(space)
	return &resp, nil
}

func (s *spaceService) DeleteSpace(ctx context.Context, spaceID string) error {
	space, err := s.findSpace(ctx, spaceID)
	if err != nil {
		return err
	}

	if space.State == entity.SpaceStateOccupied || space.State == entity.SpaceStateReserved {
		return InvalidStateError("space %s is %s and cannot be deleted", spaceID, string(space.State))
	}

	if err := s.repo.Space.Delete(ctx, space.ID); err != nil {
		return asServiceError(err, "delete space %s", spaceID)
	}

	s.log.Info("Space deleted", zap.String("space_id", spaceID))
	return nil
}

// SetMaintenance takes a space out of service or brings it back. Only an
// unoccupied space can enter maintenance; the transition runs through the
// tracker so a concurrent claim loses or wins cleanly.
func (s *spaceService) SetMaintenance(ctx context.Context, spaceID string, req *request.SpaceMaintenanceRequest) (*response.SpaceResponse, error) {
	id, err := uuid.Parse(spaceID)
	if err != nil {
		return nil, ValidationError("invalid space ID format %s", spaceID)
	}

	var result *response.SpaceResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		space, err := repos.Space.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if space == nil {
			return NotFoundError("space %s not found", spaceID)
		}

		tracker := NewSpaceTracker(repos.Space, s.log)
		if req.Enabled {
			err = tracker.SetMaintenance(ctx, id)
			space.State = entity.SpaceStateMaintenance
		} else {
			err = tracker.ClearMaintenance(ctx, id)
			space.State = entity.SpaceStateUnoccupied
		}
		if err != nil {
			return err
		}

		space.ReservedUntil = nil
		resp := response.SpaceToResponse(space)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "set maintenance on space %s", spaceID)
	}

	s.log.Info("Space maintenance toggled",
		zap.String("space_id", spaceID),
		zap.Bool("enabled", req.Enabled),
	)

	return result, nil
}

func (s *spaceService) findSpace(ctx context.Context, spaceID string) (*entity.Space, error) {
	id, err := uuid.Parse(spaceID)
	if err != nil {
		return nil, ValidationError("invalid space ID format %s", spaceID)
	}

	space, err := s.repo.Space.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "find space %s", spaceID)
	}
	if space == nil {
		return nil, NotFoundError("space %s not found", spaceID)
	}

	return space, nil
}
