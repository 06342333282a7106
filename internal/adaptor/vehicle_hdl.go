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

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// RegisterVehicle handles POST /api/vehicles
func (h *VehicleHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.RegisterVehicle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register vehicle")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetVehicleByID handles GET /api/vehicles/{id}
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	result, err := h.service.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get vehicle by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetAllVehicles handles GET /api/vehicles
func (h *VehicleHandler) GetAllVehicles(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAllVehicles(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdateVehicle handles PUT /api/vehicles/{id}
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetVehicleHistory handles GET /api/vehicles/{id}/history
func (h *VehicleHandler) GetVehicleHistory(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	result, err := h.service.GetVehicleHistory(r.Context(), vehicleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get vehicle history")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
