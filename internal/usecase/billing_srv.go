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

type BillingService interface {
	// CreateRecord opens a pending billing record inside the caller's
	// transaction. The repos argument must be the transaction-bound set.
	CreateRecord(ctx context.Context, repos *repository.Repository, occupancy *entity.Occupancy, amount float64) (*entity.Billing, error)

	ProcessPayment(ctx context.Context, billingID string, req *request.ProcessPaymentRequest) (*response.BillingResponse, error)
	UpdatePaymentStatus(ctx context.Context, billingID string, req *request.UpdatePaymentStatusRequest) (*response.BillingResponse, error)

	GetBillingByID(ctx context.Context, billingID string) (*response.BillingResponse, error)
	ListBillings(ctx context.Context, req *request.BillingListRequest) (*response.PaginatedResponse[response.BillingResponse], error)
	GetPendingPayments(ctx context.Context) ([]response.BillingResponse, error)
	GetRevenueReport(ctx context.Context, req *request.RevenueReportRequest) (*response.RevenueReportResponse, error)
}

type billingService struct {
	repo *repository.Repository
	uow  UnitOfWork
	log  *zap.Logger
}

func NewBillingService(repo *repository.Repository, uow UnitOfWork, log *zap.Logger) BillingService {
	return &billingService{
		repo: repo,
		uow:  uow,
		log:  log.With(zap.String("service", "billing")),
	}
}

func (s *billingService) CreateRecord(ctx context.Context, repos *repository.Repository, occupancy *entity.Occupancy, amount float64) (*entity.Billing, error) {
	now := time.Now().UTC()
	billing := &entity.Billing{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OccupancyID:   occupancy.ID,
		UserID:        occupancy.UserID,
		Amount:        amount,
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := repos.Billing.Create(ctx, billing); err != nil {
		return nil, err
	}

	return billing, nil
}

// ProcessPayment marks a billing record paid. Paying an already-paid record
// is a no-op that returns the existing record unchanged.
func (s *billingService) ProcessPayment(ctx context.Context, billingID string, req *request.ProcessPaymentRequest) (*response.BillingResponse, error) {
	id, err := uuid.Parse(billingID)
	if err != nil {
		return nil, ValidationError("invalid billing ID format %s", billingID)
	}

	var paymentTime *time.Time
	if req != nil && req.PaymentTime != nil {
		t, err := utils.ParseTime(*req.PaymentTime)
		if err != nil {
			return nil, ValidationError("invalid payment_time: %v", err)
		}
		paymentTime = &t
	}

	var result *response.BillingResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		billing, err := repos.Billing.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if billing == nil {
			return NotFoundError("billing %s not found", billingID)
		}

		if billing.PaymentStatus != entity.PaymentStatusPaid {
			paid := utils.NormalizeUTC(paymentTime)
			billing.PaymentStatus = entity.PaymentStatusPaid
			billing.PaymentTime = &paid
			billing.UpdatedAt = time.Now().UTC()
			if err := repos.Billing.Update(ctx, billing); err != nil {
				return err
			}
		}

		resp := response.BillingToResponse(billing)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "process payment for billing %s", billingID)
	}

	s.log.Info("Payment processed",
		zap.String("billing_id", billingID),
		zap.Float64("amount", result.Amount),
	)

	return result, nil
}

// UpdatePaymentStatus moves a record between pending, paid and failed. A paid
// record is final and never reverts.
func (s *billingService) UpdatePaymentStatus(ctx context.Context, billingID string, req *request.UpdatePaymentStatusRequest) (*response.BillingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(billingID)
	if err != nil {
		return nil, ValidationError("invalid billing ID format %s", billingID)
	}

	target := entity.PaymentStatus(req.PaymentStatus)

	var result *response.BillingResponse
	err = s.uow(ctx, func(repos *repository.Repository) error {
		billing, err := repos.Billing.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if billing == nil {
			return NotFoundError("billing %s not found", billingID)
		}

		if billing.PaymentStatus == entity.PaymentStatusPaid && target != entity.PaymentStatusPaid {
			return InvalidStateError("billing %s is already paid", billingID)
		}

		if billing.PaymentStatus != target {
			billing.PaymentStatus = target
			if target == entity.PaymentStatusPaid && billing.PaymentTime == nil {
				now := time.Now().UTC()
				billing.PaymentTime = &now
			}
			billing.UpdatedAt = time.Now().UTC()
			if err := repos.Billing.Update(ctx, billing); err != nil {
				return err
			}
		}

		resp := response.BillingToResponse(billing)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "update payment status for billing %s", billingID)
	}

	s.log.Info("Payment status updated",
		zap.String("billing_id", billingID),
		zap.String("payment_status", req.PaymentStatus),
	)

	return result, nil
}

func (s *billingService) GetBillingByID(ctx context.Context, billingID string) (*response.BillingResponse, error) {
	id, err := uuid.Parse(billingID)
	if err != nil {
		return nil, ValidationError("invalid billing ID format %s", billingID)
	}

	billing, err := s.repo.Billing.FindByID(ctx, id)
	if err != nil {
		return nil, asServiceError(err, "get billing %s", billingID)
	}
	if billing == nil {
		return nil, NotFoundError("billing %s not found", billingID)
	}

	resp := response.BillingToResponse(billing)
	return &resp, nil
}

func (s *billingService) ListBillings(ctx context.Context, req *request.BillingListRequest) (*response.PaginatedResponse[response.BillingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ValidationError("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var filter repository.BillingFilter
	if req.PaymentStatus != "" {
		status := entity.PaymentStatus(req.PaymentStatus)
		filter.PaymentStatus = &status
	}
	occupancyRef, err := parseOptionalUUID(req.OccupancyID, "occupancy_id")
	if err != nil {
		return nil, err
	}
	filter.OccupancyID = occupancyRef

	billings, err := s.repo.Billing.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, asServiceError(err, "list billings")
	}

	total, err := s.repo.Billing.CountAll(ctx, filter)
	if err != nil {
		return nil, asServiceError(err, "count billings")
	}

	return response.NewPaginatedResponse(response.BillingsToResponse(billings), req.Page, req.PerPage, total), nil
}

func (s *billingService) GetPendingPayments(ctx context.Context) ([]response.BillingResponse, error) {
	status := entity.PaymentStatusPending
	filter := repository.BillingFilter{PaymentStatus: &status}

	billings, err := s.repo.Billing.FindAll(ctx, filter, 0, 0)
	if err != nil {
		return nil, asServiceError(err, "get pending payments")
	}

	return response.BillingsToResponse(billings), nil
}

// GetRevenueReport sums paid records inside the optional payment-time window
// and returns the matching transactions alongside the total.
func (s *billingService) GetRevenueReport(ctx context.Context, req *request.RevenueReportRequest) (*response.RevenueReportResponse, error) {
	var start, end *time.Time
	if req.StartDate != "" {
		t, err := utils.ParseTime(req.StartDate)
		if err != nil {
			return nil, ValidationError("invalid start_date: %v", err)
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := utils.ParseTime(req.EndDate)
		if err != nil {
			return nil, ValidationError("invalid end_date: %v", err)
		}
		end = &t
	}

	paid, err := s.repo.Billing.FindPaid(ctx, start, end)
	if err != nil {
		return nil, asServiceError(err, "get revenue report")
	}

	total, err := s.repo.Billing.SumPaidAmount(ctx, start, end)
	if err != nil {
		return nil, asServiceError(err, "sum paid amounts")
	}

	return &response.RevenueReportResponse{
		TotalRevenue:     total,
		TransactionCount: len(paid),
		Transactions:     response.BillingsToResponse(paid),
	}, nil
}
