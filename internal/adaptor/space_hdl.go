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

type SpaceHandler struct {
	service usecase.SpaceService
	log     *zap.Logger
}

func NewSpaceHandler(service usecase.SpaceService, log *zap.Logger) *SpaceHandler {
	return &SpaceHandler{
		service: service,
		log:     log.With(zap.String("handler", "space")),
	}
}

// CreateSpace handles POST /api/spaces
func (h *SpaceHandler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreateSpace(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create space")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// GetSpaceByID handles GET /api/spaces/{id}
func (h *SpaceHandler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	spaceID := chi.URLParam(r, "id")
	if spaceID == "" {
		utils.ResponseBadRequest(w, "Space ID is required", nil)
		return
	}

	result, err := h.service.GetSpaceByID(r.Context(), spaceID)
	if err != nil {
		handleServiceError(w, h.log, err, "get space by ID")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListSpaces handles GET /api/spaces
func (h *SpaceHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SpaceListRequest{
		LotID:     query.Get("lot_id"),
		SpaceType: query.Get("space_type"),
		State:     query.Get("state"),
	}

	result, err := h.service.ListSpaces(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list spaces")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetAvailableSpaces handles GET /api/spaces/available
func (h *SpaceHandler) GetAvailableSpaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.GetAvailableSpaces(r.Context(), query.Get("lot_id"), query.Get("space_type"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available spaces")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// UpdateSpace handles PUT /api/spaces/{id}
func (h *SpaceHandler) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	spaceID := chi.URLParam(r, "id")
	if spaceID == "" {
		utils.ResponseBadRequest(w, "Space ID is required", nil)
		return
	}

	var req request.UpdateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.UpdateSpace(r.Context(), spaceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update space")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// DeleteSpace handles DELETE /api/spaces/{id}
func (h *SpaceHandler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	spaceID := chi.URLParam(r, "id")
	if spaceID == "" {
		utils.ResponseBadRequest(w, "Space ID is required", nil)
		return
	}

	if err := h.service.DeleteSpace(r.Context(), spaceID); err != nil {
		handleServiceError(w, h.log, err, "delete space")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetMaintenance handles PUT /api/spaces/{id}/maintenance
func (h *SpaceHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	spaceID := chi.URLParam(r, "id")
	if spaceID == "" {
		utils.ResponseBadRequest(w, "Space ID is required", nil)
		return
	}

	var req request.SpaceMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.SetMaintenance(r.Context(), spaceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set maintenance")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
