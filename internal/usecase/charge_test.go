package usecase_test

import (
	"testing"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func chargeFixture(baseRate, extraCharge float64, entry time.Time, exit *time.Time) (*entity.Occupancy, *entity.Space, *entity.Lot) {
	occupancy := &entity.Occupancy{EntryTime: entry, ExitTime: exit}
	space := &entity.Space{ExtraCharge: extraCharge}
	lot := &entity.Lot{BaseRate: baseRate}
	return occupancy, space, lot
}

func TestCalculateChargeShortStayBillsMinimum(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(40 * time.Minute)
	occ, space, lot := chargeFixture(5.00, 0, entry, &exit)

	amount := usecase.CalculateCharge(occ, space, lot, exit, 1)
	assert.InDelta(t, 5.00, amount, 0.001)
}

func TestCalculateChargeRoundsHalfUp(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(2*time.Hour + 30*time.Minute)
	occ, space, lot := chargeFixture(4.00, 0, entry, &exit)

	// 2.5h rounds to 3 billed hours
	amount := usecase.CalculateCharge(occ, space, lot, exit, 1)
	assert.InDelta(t, 12.00, amount, 0.001)
}

func TestCalculateChargeAddsSpaceExtra(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(3 * time.Hour)
	occ, space, lot := chargeFixture(5.00, 1.50, entry, &exit)

	amount := usecase.CalculateCharge(occ, space, lot, exit, 1)
	assert.InDelta(t, 19.50, amount, 0.001)
}

func TestCalculateChargeOpenSessionUsesNow(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	now := entry.Add(4 * time.Hour)
	occ, space, lot := chargeFixture(5.00, 0, entry, nil)

	amount := usecase.CalculateCharge(occ, space, lot, now, 1)
	assert.InDelta(t, 20.00, amount, 0.001)
}

func TestCalculateChargeIsDeterministic(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)
	occ, space, lot := chargeFixture(5.00, 1.00, entry, &exit)

	first := usecase.CalculateCharge(occ, space, lot, time.Now().UTC(), 1)
	second := usecase.CalculateCharge(occ, space, lot, time.Now().UTC().Add(time.Hour), 1)
	assert.Equal(t, first, second)
}

func TestCalculateChargeMissingRateInputs(t *testing.T) {
	entry := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(time.Hour)
	occ, space, lot := chargeFixture(5.00, 0, entry, &exit)

	assert.Zero(t, usecase.CalculateCharge(occ, nil, lot, exit, 1))
	assert.Zero(t, usecase.CalculateCharge(occ, space, nil, exit, 1))
}

func TestCalculateChargeMixedZoneInputs(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	entry := time.Date(2026, 8, 28, 17, 0, 0, 0, loc) // 10:00 UTC
	exit := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	occ, space, lot := chargeFixture(5.00, 0, entry, &exit)

	amount := usecase.CalculateCharge(occ, space, lot, exit, 1)
	assert.InDelta(t, 10.00, amount, 0.001)
}
