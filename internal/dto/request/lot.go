package request

type CreateLotRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Location    string  `json:"location" validate:"required,max=200"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
	BaseRate    float64 `json:"base_rate" validate:"required,min=0"`
	GeoLocation *string `json:"geo_location,omitempty" validate:"omitempty,max=100"`
}

type UpdateLotRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1"`
	BaseRate    *float64 `json:"base_rate,omitempty" validate:"omitempty,min=0"`
	GeoLocation *string  `json:"geo_location,omitempty" validate:"omitempty,max=100"`
}
