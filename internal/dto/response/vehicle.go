package response

import (
	"time"

	"parking-facility/internal/data/entity"
)

type VehicleResponse struct {
	ID           string             `json:"id"`
	Registration string             `json:"registration"`
	OwnerID      *string            `json:"owner_id,omitempty"`
	VehicleType  entity.VehicleType `json:"vehicle_type"`
	CreatedAt    time.Time          `json:"created_at"`
}

func VehicleToResponse(vehicle *entity.Vehicle) VehicleResponse {
	var ownerID *string
	if vehicle.OwnerID != nil {
		o := vehicle.OwnerID.String()
		ownerID = &o
	}

	return VehicleResponse{
		ID:           vehicle.ID.String(),
		Registration: vehicle.Registration,
		OwnerID:      ownerID,
		VehicleType:  vehicle.VehicleType,
		CreatedAt:    vehicle.CreatedAt,
	}
}

func VehiclesToResponse(vehicles []*entity.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		responses[i] = VehicleToResponse(vehicle)
	}
	return responses
}
