package request

type ReserveRequest struct {
	SpaceID         string  `json:"space_id" validate:"required,uuid4"`
	UserID          *string `json:"user_id,omitempty" validate:"omitempty,uuid4"`
	DurationMinutes int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
}

type CheckInRequest struct {
	SpaceID             string  `json:"space_id" validate:"required,uuid4"`
	VehicleRegistration string  `json:"vehicle_registration" validate:"omitempty,max=20"` // blank registers a walk-in placeholder
	EntryTime           *string `json:"entry_time,omitempty"`
	UserID              *string `json:"user_id,omitempty" validate:"omitempty,uuid4"`
}

type CheckOutRequest struct {
	ExitTime *string `json:"exit_time,omitempty"`
}

// OccupancyListRequest filters come from query parameters; empty means all.
type OccupancyListRequest struct {
	Status    string `json:"status" validate:"omitempty,oneof=active completed"`
	SpaceID   string `json:"space_id" validate:"omitempty,uuid4"`
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid4"`
	PaginatedRequest
}

type OccupancyHistoryRequest struct {
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid4"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
