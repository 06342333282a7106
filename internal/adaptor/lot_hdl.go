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

type LotHandler struct {
	service usecase.LotService
	log     *zap.Logger
}

func NewLotHandler(service usecase.LotService, log *zap.Logger) *LotHandler {
	return &LotHandler{
		service: service,
		log:     log.With(zap.String("handler", "lot")),
	}
}

// CreateLot handles POST /api/lots
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreateLot(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create lot")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetLotByID handles GET /api/lots/{id}
func (h *LotHandler) GetLotByID(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Lot ID is required", nil)
		return
	}

	result, err := h.service.GetLotByID(r.Context(), lotID)
	if err != nil {
		handleServiceError(w, h.log, err, "get lot by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetAllLots handles GET /api/lots
func (h *LotHandler) GetAllLots(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAllLots(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all lots")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdateLot handles PUT /api/lots/{id}
func (h *LotHandler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Lot ID is required", nil)
		return
	}

	var req request.UpdateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdateLot(r.Context(), lotID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update lot")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// DeleteLot handles DELETE /api/lots/{id}
func (h *LotHandler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Lot ID is required", nil)
		return
	}

	if err := h.service.DeleteLot(r.Context(), lotID); err != nil {
		handleServiceError(w, h.log, err, "delete lot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetLotSpaces handles GET /api/lots/{id}/spaces
func (h *LotHandler) GetLotSpaces(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "id")
	if lotID == "" {
		utils.ResponseBadRequest(w, "Lot ID is required", nil)
		return
	}

	result, err := h.service.GetLotSpaces(r.Context(), lotID)
	if err != nil {
		handleServiceError(w, h.log, err, "get lot spaces")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
