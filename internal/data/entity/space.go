package entity

import (
	"time"

	"github.com/google/uuid"
)

type SpaceType string

const (
	SpaceTypeTwoWheeler  SpaceType = "2W"
	SpaceTypeFourWheeler SpaceType = "4W"
	SpaceTypeEV          SpaceType = "EV"
	SpaceTypeVIP         SpaceType = "VIP"
	SpaceTypeDisabled    SpaceType = "DISABLED"
)

type SpaceState string

const (
	SpaceStateUnoccupied  SpaceState = "unoccupied"
	SpaceStateReserved    SpaceState = "reserved"
	SpaceStateOccupied    SpaceState = "occupied"
	SpaceStateMaintenance SpaceState = "maintenance"
)

// Space state transitions happen only through the availability tracker;
// admin updates never touch the state column directly.
type Space struct {
	Base
	LotID         uuid.UUID  `db:"lot_id"`
	SpaceType     SpaceType  `db:"space_type"`
	State         SpaceState `db:"state"`
	ExtraCharge   float64    `db:"extra_charge"`
	ReservedUntil *time.Time `db:"reserved_until"`
}
