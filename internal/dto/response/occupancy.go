package response

import (
	"time"

	"parking-facility/internal/data/entity"
)

type OccupancyResponse struct {
	ID        string                 `json:"id"`
	SpaceID   string                 `json:"space_id"`
	VehicleID *string                `json:"vehicle_id,omitempty"`
	UserID    *string                `json:"user_id,omitempty"`
	EntryTime time.Time              `json:"entry_time"`
	ExitTime  *time.Time             `json:"exit_time,omitempty"`
	Status    entity.OccupancyStatus `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

type CheckInResponse struct {
	Occupancy OccupancyResponse `json:"occupancy"`
	Space     SpaceResponse     `json:"space"`
}

type CheckOutResponse struct {
	Occupancy OccupancyResponse `json:"occupancy"`
	Billing   BillingResponse   `json:"billing"`
	Amount    float64           `json:"amount"`
}

func OccupancyToResponse(occupancy *entity.Occupancy) OccupancyResponse {
	var vehicleID, userID *string
	if occupancy.VehicleID != nil {
		v := occupancy.VehicleID.String()
		vehicleID = &v
	}
	if occupancy.UserID != nil {
		u := occupancy.UserID.String()
		userID = &u
	}

	return OccupancyResponse{
		ID:        occupancy.ID.String(),
		SpaceID:   occupancy.SpaceID.String(),
		VehicleID: vehicleID,
		UserID:    userID,
		EntryTime: occupancy.EntryTime,
		ExitTime:  occupancy.ExitTime,
		Status:    occupancy.Status,
		CreatedAt: occupancy.CreatedAt,
	}
}

func OccupanciesToResponse(occupancies []*entity.Occupancy) []OccupancyResponse {
	responses := make([]OccupancyResponse, len(occupancies))
	for i, occupancy := range occupancies {
		responses[i] = OccupancyToResponse(occupancy)
	}
	return responses
}
