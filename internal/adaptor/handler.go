package adaptor

import (
	"net/http"

	"parking-facility/internal/usecase"
	"parking-facility/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Occupancy *OccupancyHandler
	Billing   *BillingHandler
	Lot       *LotHandler
	Space     *SpaceHandler
	Vehicle   *VehicleHandler
	User      *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Occupancy: NewOccupancyHandler(service.Occupancy, log),
		Billing:   NewBillingHandler(service.Billing, log),
		Lot:       NewLotHandler(service.Lot, log),
		Space:     NewSpaceHandler(service.Space, log),
		Vehicle:   NewVehicleHandler(service.Vehicle, log),
		User:      NewUserHandler(service.User, log),
	}
}

// handleServiceError maps service error kinds to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch usecase.KindOf(err) {
	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case usecase.KindValidation:
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.KindInvalidState:
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.KindSpaceUnavailable:
		log.Warn(operation+" failed - space unavailable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
