package request

type RegisterVehicleRequest struct {
	Registration string  `json:"registration" validate:"required,max=20"`
	OwnerID      *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
	VehicleType  string  `json:"vehicle_type" validate:"required,oneof=2W 4W EV"`
}

type UpdateVehicleRequest struct {
	Registration *string `json:"registration,omitempty" validate:"omitempty,max=20"`
	OwnerID      *string `json:"owner_id,omitempty" validate:"omitempty,uuid4"`
	VehicleType  *string `json:"vehicle_type,omitempty" validate:"omitempty,oneof=2W 4W EV"`
}
