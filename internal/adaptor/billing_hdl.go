package adaptor

import (
	"encoding/json"
	"net/http"

	"parking-facility/internal/dto/request"
	"parking-facility/internal/usecase"
	"parking-facility/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BillingHandler struct {
	service usecase.BillingService
	log     *zap.Logger
}

func NewBillingHandler(service usecase.BillingService, log *zap.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		log:     log.With(zap.String("handler", "billing")),
	}
}

// ProcessPayment handles POST /api/billing/{id}/pay
func (h *BillingHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	billingID := chi.URLParam(r, "id")
	if billingID == "" {
		utils.ResponseBadRequest(w, "Billing ID is required", nil)
		return
	}

	var req request.ProcessPaymentRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.service.ProcessPayment(r.Context(), billingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdatePaymentStatus handles PUT /api/billing/{id}/status
func (h *BillingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	billingID := chi.URLParam(r, "id")
	if billingID == "" {
		utils.ResponseBadRequest(w, "Billing ID is required", nil)
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdatePaymentStatus(r.Context(), billingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetBillingByID handles GET /api/billing/{id}
func (h *BillingHandler) GetBillingByID(w http.ResponseWriter, r *http.Request) {
	billingID := chi.URLParam(r, "id")
	if billingID == "" {
		utils.ResponseBadRequest(w, "Billing ID is required", nil)
		return
	}

	result, err := h.service.GetBillingByID(r.Context(), billingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get billing by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListBillings handles GET /api/billing
func (h *BillingHandler) ListBillings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BillingListRequest{
		PaymentStatus: query.Get("payment_status"),
		OccupancyID:   query.Get("occupancy_id"),
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
	}

	result, err := h.service.ListBillings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list billings")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetPendingPayments handles GET /api/billing/pending
func (h *BillingHandler) GetPendingPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPendingPayments(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get pending payments")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetRevenueReport handles GET /api/billing/revenue
func (h *BillingHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.RevenueReportRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	result, err := h.service.GetRevenueReport(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get revenue report")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
