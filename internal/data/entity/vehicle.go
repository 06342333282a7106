package entity

import "github.com/google/uuid"

type VehicleType string

const (
	VehicleTypeTwoWheeler  VehicleType = "2W"
	VehicleTypeFourWheeler VehicleType = "4W"
	VehicleTypeEV          VehicleType = "EV"
)

type Vehicle struct {
	Base
	Registration string      `db:"registration"` // plate number, or generated placeholder for walk-ins
	OwnerID      *uuid.UUID  `db:"owner_id"`     // nil for walk-ins
	VehicleType  VehicleType `db:"vehicle_type"`
}
