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

type LotService interface {
	CreateLot(ctx context.Context, req *request.CreateLotRequest) (*response.LotResponse, error)
	GetLotByID(ctx context.Context, lotID string) (*response.LotResponse, error)
	GetAllLots(ctx context.Context) ([]response.LotResponse, error)
	UpdateLot(ctx context.Context, lotID string, req *request.UpdateLotRequest) (*response.LotResponse, error)
	DeleteLot(ctx context.Context, lotID string) error
	GetLotSpaces(ctx context.Context, lotID string) ([]response.SpaceResponse, error)
}

type lotService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLotService(repo *repository.Repository, log *zap.Logger) LotService {
	return &lotService{
		repo: repo,
		log:  log.With(zap.String("service", "lot")),
	}
}

func (s *lotService) CreateLot(ctx context.Context, req *request.CreateLotRequest) (*response.LotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create lot validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	lot := &entity.Lot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		BaseRate:    req.BaseRate,
		GeoLocation: req.GeoLocation,
	}

	if err := s.repo.Lot.Create(ctx, lot); err != nil {
		return nil, asServiceError(err, "create lot %s", req.Name)
	}

	s.log.Info("Lot created",
		zap.String("lot_id", lot.ID.String()),
		zap.String("name", lot.Name),
	)

	resp := response.LotToResponse(lot)
	return &resp, nil
}

func (s *lotService) GetLotByID(ctx context.Context, lotID string) (*response.LotResponse, error) {
	lot, err := s.findLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	resp := response.LotToResponse(lot)
	return &resp, nil
}

func (s *lotService) GetAllLots(ctx context.Context) ([]response.LotResponse, error) {
	lots, err := s.repo.Lot.FindAll(ctx)
	if err != nil {
		return nil, asServiceError(err, "get all lots")
	}

	return response.LotsToResponse(lots), nil
}

func (s *lotService) UpdateLot(ctx context.Context, lotID string, req *request.UpdateLotRequest) (*response.LotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lot, err := s.findLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Location != nil {
		lot.Location = *req.Location
	}
	if req.Capacity != nil {
		lot.Capacity = *req.Capacity
	}
	if req.BaseRate != nil {
		lot.BaseRate = *req.BaseRate
	}
	if req.GeoLocation != nil {
		lot.GeoLocation = req.GeoLocation
	}
	lot.UpdatedAt = time.Now().UTC()

	if err := s.repo.Lot.Update(ctx, lot); err != nil {
		return nil, asServiceError(err, "update lot %s", lotID)
	}

	s.log.Info("Lot updated", zap.String("lot_id", lotID))

	resp := response.LotToResponse(lot)
	return &resp, nil
}

// DeleteLot removes a lot. A lot with occupied or reserved spaces is in use
// and cannot go away.
func (s *lotService) DeleteLot(ctx context.Context, lotID string) error {
	lot, err := s.findLot(ctx, lotID)
	if err != nil {
		return err
	}

	busy, err := s.repo.Space.CountBusyByLot(ctx, lot.ID)
	if err != nil {
		return asServiceError(err, "count busy spaces in lot %s", lotID)
	}
	if busy > 0 {
		return InvalidStateError("lot %s has %d spaces in use", lotID, busy)
	}

	if err := s.repo.Lot.Delete(ctx, lot.ID); err != nil {
		return asServiceError(err, "delete lot %s", lotID)
	}

	s.log.Info("Lot deleted", zap.String("lot_id", lotID))
	return nil
}

func (s *lotService) GetLotSpaces(ctx context.Context, lotID string) ([]response.SpaceResponse, error) {
	lot, err := s.findLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	spaces, err := s.repo.Space.FindAll(ctx, repository.SpaceFilter{LotID: &lot.ID})
	if err != nil {
		return nil, asServiceError(err, "get spaces for lot %s", lotID)
	}

	return response.SpacesToResponse(spaces), nil
}

func (s *lotService) findLot(ctx context.Context, lotID string) (*entity.Lot, error) {
	id, err := uuid.Parse(lotID)
	if err != nil {
		return nil, ValidationError("invalid lot ID format %s", lotID)
	}

	lot, err := s.repo.Lot.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "find lot %s", lotID)
	}
	if lot == nil {
		return nil, NotFoundError("lot %s not found", lotID)
	}

	return lot, nil
}
