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

type UserService interface {
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	GetUserVehicles(ctx context.Context, userID string) ([]response.VehicleResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	role := entity.UserRoleCustomer
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Address:   req.Address,
		Role:      role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, asServiceError(err, "create user %s", req.Name)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, asServiceError(err, "get all users")
	}

	return response.UsersToResponse(users), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ContactNo != nil {
		user.ContactNo = *req.ContactNo
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, asServiceError(err, "update user %s", userID)
	}

	s.log.Info("User updated", zap.String("user_id", userID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetUserVehicles(ctx context.Context, userID string) ([]response.VehicleResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.repo.Vehicle.FindByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, asServiceError(err, "get vehicles for user %s", userID)
	}

	return response.VehiclesToResponse(vehicles), nil
}

func (s *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ValidationError("invalid user ID format %s", userID)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "find user %s", userID)
	}
	if user == nil {
		return nil, NotFoundError("user %s not found", userID)
	}

	return user, nil
}
