package entity

type Lot struct {
	Base
	Name        string  `db:"name"`
	Location    string  `db:"location"`
	Capacity    int     `db:"capacity"`
	BaseRate    float64 `db:"base_rate"` // hourly rate
	GeoLocation *string `db:"geo_location"`
}
