package request

type CreateSpaceRequest struct {
	LotID       string  `json:"lot_id" validate:"required,uuid4"`
	SpaceType   string  `json:"space_type" validate:"required,oneof=2W 4W EV VIP DISABLED"`
	ExtraCharge float64 `json:"extra_charge" validate:"min=0"`
}

// UpdateSpaceRequest deliberately has no state field; state changes go
// through the availability tracker.
type UpdateSpaceRequest struct {
	LotID       *string  `json:"lot_id,omitempty" validate:"omitempty,uuid4"`
	SpaceType   *string  `json:"space_type,omitempty" validate:"omitempty,oneof=2W 4W EV VIP DISABLED"`
	ExtraCharge *float64 `json:"extra_charge,omitempty" validate:"omitempty,min=0"`
}

type SpaceMaintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

// SpaceListRequest filters come from query parameters; empty means all.
type SpaceListRequest struct {
	LotID     string `json:"lot_id" validate:"omitempty,uuid4"`
	SpaceType string `json:"space_type" validate:"omitempty,oneof=2W 4W EV VIP DISABLED"`
	State     string `json:"state" validate:"omitempty,oneof=unoccupied reserved occupied maintenance"`
}
