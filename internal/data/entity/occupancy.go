package entity

import (
	"time"

	"github.com/google/uuid"
)

type OccupancyStatus string

const (
	OccupancyStatusActive    OccupancyStatus = "active"
	OccupancyStatusCompleted OccupancyStatus = "completed"
)

// Occupancy is one park-to-leave session. ExitTime is set exactly when the
// status becomes completed; at most one active occupancy references a space.
type Occupancy struct {
	Base
	SpaceID   uuid.UUID       `db:"space_id"`
	VehicleID *uuid.UUID      `db:"vehicle_id"`
	UserID    *uuid.UUID      `db:"user_id"`
	EntryTime time.Time       `db:"entry_time"` // UTC
	ExitTime  *time.Time      `db:"exit_time"`  // UTC, nil while active
	Status    OccupancyStatus `db:"status"`
}
