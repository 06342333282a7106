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

type OccupancyHandler struct {
	service usecase.OccupancyService
	log     *zap.Logger
}

func NewOccupancyHandler(service usecase.OccupancyService, log *zap.Logger) *OccupancyHandler {
	return &OccupancyHandler{
		service: service,
		log:     log.With(zap.String("handler", "occupancy")),
	}
}

// CheckIn handles POST /api/occupancies/check-in
func (h *OccupancyHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req request.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CheckIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check in")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// CheckOut handles POST /api/occupancies/{id}/check-out
func (h *OccupancyHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	occupancyID := chi.URLParam(r, "id")
	if occupancyID == "" {
		utils.ResponseBadRequest(w, "Occupancy ID is required", nil)
		return
	}

	var req request.CheckOutRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.service.CheckOut(r.Context(), occupancyID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check out")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ReserveSpace handles POST /api/occupancies/reserve
func (h *OccupancyHandler) ReserveSpace(w http.ResponseWriter, r *http.Request) {
	var req request.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ReserveSpace(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reserve space")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ReserveAndCheckIn handles POST /api/occupancies/reserve-and-check-in
func (h *OccupancyHandler) ReserveAndCheckIn(w http.ResponseWriter, r *http.Request) {
	var req request.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ReserveAndCheckIn(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reserve and check in")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetOccupancyByID handles GET /api/occupancies/{id}
func (h *OccupancyHandler) GetOccupancyByID(w http.ResponseWriter, r *http.Request) {
	occupancyID := chi.URLParam(r, "id")
	if occupancyID == "" {
		utils.ResponseBadRequest(w, "Occupancy ID is required", nil)
		return
	}

	result, err := h.service.GetOccupancyByID(r.Context(), occupancyID)
	if err != nil {
		handleServiceError(w, h.log, err, "get occupancy by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListOccupancies handles GET /api/occupancies
func (h *OccupancyHandler) ListOccupancies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.OccupancyListRequest{
		Status:    query.Get("status"),
		SpaceID:   query.Get("space_id"),
		VehicleID: query.Get("vehicle_id"),
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
	}

	result, err := h.service.ListOccupancies(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list occupancies")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetActiveOccupancies handles GET /api/occupancies/active
func (h *OccupancyHandler) GetActiveOccupancies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.GetActiveOccupancies(r.Context(), query.Get("space_id"), query.Get("vehicle_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get active occupancies")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetHistory handles GET /api/occupancies/history
func (h *OccupancyHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.OccupancyHistoryRequest{
		VehicleID: query.Get("vehicle_id"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	result, err := h.service.GetHistory(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get occupancy history")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
