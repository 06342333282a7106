package usecase

import (
	"math"
	"time"

	"parking-facility/internal/data/entity"
)

// CalculateCharge computes the fee owed for an occupancy. Pure function: the
// same inputs always yield the same amount.
//
// Duration is (exit time, or now for a still-open session) minus entry time,
// both in UTC. Billed hours round half away from zero (math.Round), so a
// 2.5h stay bills 3 hours; every session bills at least minBilledHours.
// Rate is the lot's hourly base rate plus the space's extra charge. If the
// space or lot is unresolvable the amount is 0.
func CalculateCharge(occupancy *entity.Occupancy, space *entity.Space, lot *entity.Lot, now time.Time, minBilledHours int) float64 {
	if space == nil || lot == nil {
		return 0
	}
	if minBilledHours < 1 {
		minBilledHours = 1
	}

	exitTime := now.UTC()
	if occupancy.ExitTime != nil {
		exitTime = occupancy.ExitTime.UTC()
	}

	durationHours := exitTime.Sub(occupancy.EntryTime.UTC()).Hours()

	billedHours := math.Round(durationHours)
	if billedHours < float64(minBilledHours) {
		billedHours = float64(minBilledHours)
	}

	return (lot.BaseRate + space.ExtraCharge) * billedHours
}
