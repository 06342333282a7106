package response

import (
	"time"

	"parking-facility/internal/data/entity"
)

type SpaceResponse struct {
	ID            string            `json:"id"`
	LotID         string            `json:"lot_id"`
	SpaceType     entity.SpaceType  `json:"space_type"`
	State         entity.SpaceState `json:"state"`
	ExtraCharge   float64           `json:"extra_charge"`
	ReservedUntil *time.Time        `json:"reserved_until,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func SpaceToResponse(space *entity.Space) SpaceResponse {
	return SpaceResponse{
		ID:            space.ID.String(),
		LotID:         space.LotID.String(),
		SpaceType:     space.SpaceType,
		State:         space.State,
		ExtraCharge:   space.ExtraCharge,
		ReservedUntil: space.ReservedUntil,
		CreatedAt:     space.CreatedAt,
	}
}

func SpacesToResponse(spaces []*entity.Space) []SpaceResponse {
	responses := make([]SpaceResponse, len(spaces))
	for i, space := range spaces {
		responses[i] = SpaceToResponse(space)
	}
	return responses
}
