package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/internal/dto/request"
	"parking-facility/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInRegistersWalkInVehicle(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	result, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OccupancyStatusActive, result.Occupancy.Status)
	assert.Equal(t, entity.SpaceStateOccupied, result.Space.State)
	assert.Equal(t, entity.SpaceStateOccupied, env.spaces.state(space.ID))

	// Walk-in plate was unknown, so a vehicle record appears with the default type.
	vehicle, err := env.vehicles.FindByRegistration(context.Background(), "B1234XYZ")
	require.NoError(t, err)
	require.NotNil(t, vehicle)
	assert.Equal(t, entity.VehicleTypeFourWheeler, vehicle.VehicleType)
	assert.Nil(t, vehicle.OwnerID)
}

func TestCheckInBlankRegistrationGetsPlaceholder(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	result, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID: space.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Occupancy.VehicleID)

	vehicles, err := env.vehicles.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.True(t, strings.HasPrefix(vehicles[0].Registration, "WALKIN-"))
}

func TestCheckInNormalizesEntryTimeToUTC(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	entry := "2026-08-28T08:00:00+07:00"
	result, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
		EntryTime:           &entry,
	})
	require.NoError(t, err)

	want := time.Date(2026, 8, 28, 1, 0, 0, 0, time.UTC)
	assert.True(t, result.Occupancy.EntryTime.Equal(want))
	assert.Equal(t, time.UTC, result.Occupancy.EntryTime.Location())
}

func TestCheckInUsesVehicleOwnerAsFallbackUser(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)
	owner := env.addVehicle("B1234XYZ", nil)

	// Re-register with owner
	ownerID := owner.ID
	env.vehicles.vehicles[owner.ID].OwnerID = &ownerID

	result, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Occupancy.UserID)
	assert.Equal(t, ownerID.String(), *result.Occupancy.UserID)
}

func TestCheckInOccupiedSpaceFails(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateOccupied, 0)

	_, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindSpaceUnavailable, usecase.KindOf(err))
	assert.Equal(t, 0, env.occupancy.count())
}

func TestCheckInUnknownSpaceFails(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             "3f1b9a52-7c2e-4d8f-9a61-0b5c8e2d4f7a",
		VehicleRegistration: "B1234XYZ",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindNotFound, usecase.KindOf(err))
}

func TestCheckOutChargesAndReleasesSpace(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 1.00)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	exit := checkIn.Occupancy.EntryTime.Add(2 * time.Hour).Format(time.RFC3339)
	result, err := env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{
		ExitTime: &exit,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OccupancyStatusCompleted, result.Occupancy.Status)
	require.NotNil(t, result.Occupancy.ExitTime)
	assert.InDelta(t, 12.00, result.Amount, 0.001)
	assert.Equal(t, entity.PaymentStatusPending, result.Billing.PaymentStatus)
	assert.Equal(t, entity.SpaceStateUnoccupied, env.spaces.state(space.ID))
}

func TestCheckOutShortStayBillsMinimumHour(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	exit := checkIn.Occupancy.EntryTime.Add(10 * time.Minute).Format(time.RFC3339)
	result, err := env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{
		ExitTime: &exit,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.00, result.Amount, 0.001)
}

func TestCheckOutCompletedOccupancyFails(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	_, err = env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{})
	require.NoError(t, err)

	_, err = env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{})
	require.Error(t, err)
	assert.Equal(t, usecase.KindInvalidState, usecase.KindOf(err))
}

func TestCheckOutRejectsExitBeforeEntry(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	exit := checkIn.Occupancy.EntryTime.Add(-time.Hour).Format(time.RFC3339)
	_, err = env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{
		ExitTime: &exit,
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindValidation, usecase.KindOf(err))

	// Failure left the session untouched.
	active, err := env.service.Occupancy.GetActiveOccupancies(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestReserveSpaceHoldsWithDeadline(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	before := time.Now().UTC()
	result, err := env.service.Occupancy.ReserveSpace(context.Background(), &request.ReserveRequest{
		SpaceID: space.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SpaceStateReserved, result.State)
	require.NotNil(t, result.ReservedUntil)
	assert.WithinDuration(t, before.Add(30*time.Minute), *result.ReservedUntil, 5*time.Second)
}

func TestReserveSpaceTwiceFails(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	_, err := env.service.Occupancy.ReserveSpace(context.Background(), &request.ReserveRequest{
		SpaceID: space.ID.String(),
	})
	require.NoError(t, err)

	_, err = env.service.Occupancy.ReserveSpace(context.Background(), &request.ReserveRequest{
		SpaceID: space.ID.String(),
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindSpaceUnavailable, usecase.KindOf(err))
}

func TestReserveAndCheckInClaimsReservation(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	result, err := env.service.Occupancy.ReserveAndCheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OccupancyStatusActive, result.Occupancy.Status)
	assert.Equal(t, entity.SpaceStateOccupied, env.spaces.state(space.ID))
}

func TestReserveAndCheckInReleasesReservationOnFailure(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	// The occupancy write fails after the reservation succeeded; the
	// compensating release must return the space to the pool.
	env.occupancy.err = errors.New("store down")

	_, err := env.service.Occupancy.ReserveAndCheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindPersistence, usecase.KindOf(err))
	assert.Equal(t, entity.SpaceStateUnoccupied, env.spaces.state(space.ID))
}

func TestReserveAndCheckInUnavailableSpace(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateOccupied, 0)

	_, err := env.service.Occupancy.ReserveAndCheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.KindSpaceUnavailable, usecase.KindOf(err))
	assert.Equal(t, entity.SpaceStateOccupied, env.spaces.state(space.ID))
}

func TestListOccupanciesFiltersByStatus(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	first := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)
	second := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             first.ID.String(),
		VehicleRegistration: "B1111AAA",
	})
	require.NoError(t, err)
	_, err = env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             second.ID.String(),
		VehicleRegistration: "B2222BBB",
	})
	require.NoError(t, err)

	_, err = env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{})
	require.NoError(t, err)

	result, err := env.service.Occupancy.ListOccupancies(context.Background(), &request.OccupancyListRequest{
		Status:           string(entity.OccupancyStatusActive),
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestGetHistoryReturnsCompletedSessions(t *testing.T) {
	env := newTestEnv()
	lot := env.addLot(5.00)
	space := env.addSpace(lot.ID, entity.SpaceStateUnoccupied, 0)

	checkIn, err := env.service.Occupancy.CheckIn(context.Background(), &request.CheckInRequest{
		SpaceID:             space.ID.String(),
		VehicleRegistration: "B1234XYZ",
	})
	require.NoError(t, err)
	_, err = env.service.Occupancy.CheckOut(context.Background(), checkIn.Occupancy.ID, &request.CheckOutRequest{})
	require.NoError(t, err)

	history, err := env.service.Occupancy.GetHistory(context.Background(), &request.OccupancyHistoryRequest{
		VehicleID: *checkIn.Occupancy.VehicleID,
	})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.OccupancyStatusCompleted, history[0].Status)
}
