package response

import (
	"time"

	"parking-facility/internal/data/entity"
)

type LotResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	BaseRate    float64   `json:"base_rate"`
	GeoLocation *string   `json:"geo_location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func LotToResponse(lot *entity.Lot) LotResponse {
	return LotResponse{
		ID:          lot.ID.String(),
		Name:        lot.Name,
		Location:    lot.Location,
		Capacity:    lot.Capacity,
		BaseRate:    lot.BaseRate,
		GeoLocation: lot.GeoLocation,
		CreatedAt:   lot.CreatedAt,
	}
}

func LotsToResponse(lots []*entity.Lot) []LotResponse {
	responses := make([]LotResponse, len(lots))
	for i, lot := range lots {
		responses[i] = LotToResponse(lot)
	}
	return responses
}
