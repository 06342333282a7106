package usecase

import (
	"context"
	"time"

	"parking-facility/internal/data/entity"
	"parking-facility/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpaceTracker owns every space state transition. Claim and Reserve are
// conditional writes, so two concurrent callers racing for the same space
// serialize in the store and the loser gets SpaceUnavailable.
type SpaceTracker struct {
	spaces repository.SpaceRepository
	log    *zap.Logger
}

func NewSpaceTracker(spaces repository.SpaceRepository, log *zap.Logger) *SpaceTracker {
	return &SpaceTracker{
		spaces: spaces,
		log:    log.With(zap.String("service", "tracker")),
	}
}

// Claim transitions unoccupied -> occupied.
func (t *SpaceTracker) Claim(ctx context.Context, spaceID uuid.UUID) error {
	return t.claimFrom(ctx, spaceID, entity.SpaceStateUnoccupied)
}

// ClaimReserved transitions reserved -> occupied, used when a check-in
// follows a reservation on the same space.
func (t *SpaceTracker) ClaimReserved(ctx context.Context, spaceID uuid.UUID) error {
	return t.claimFrom(ctx, spaceID, entity.SpaceStateReserved)
}

func (t *SpaceTracker) claimFrom(ctx context.Context, spaceID uuid.UUID, from entity.SpaceState) error {
	ok, err := t.spaces.UpdateStateIf(ctx, spaceID, from, entity.SpaceStateOccupied, nil)
	if err != nil {
		return asServiceError(err, "claim space %s", spaceID.String())
	}
	if !ok {
		return SpaceUnavailableError("space %s is not available", spaceID.String())
	}

	t.log.Info("Space claimed", zap.String("space_id", spaceID.String()))
	return nil
}

// Reserve transitions unoccupied -> reserved, holding the space until
// reservedUntil (nil for an open-ended reservation).
func (t *SpaceTracker) Reserve(ctx context.Context, spaceID uuid.UUID, reservedUntil *time.Time) error {
	ok, err := t.spaces.UpdateStateIf(ctx, spaceID, entity.SpaceStateUnoccupied, entity.SpaceStateReserved, reservedUntil)
	if err != nil {
		return asServiceError(err, "reserve space %s", spaceID.String())
	}
	if !ok {
		return SpaceUnavailableError("space %s is not available for reservation", spaceID.String())
	}

	t.log.Info("Space reserved", zap.String("space_id", spaceID.String()))
	return nil
}

// Release unconditionally returns the space to unoccupied and clears any
// reservation hold.
func (t *SpaceTracker) Release(ctx context.Context, spaceID uuid.UUID) error {
	if err := t.spaces.UpdateState(ctx, spaceID, entity.SpaceStateUnoccupied); err != nil {
		return asServiceError(err, "release space %s", spaceID.String())
	}

	t.log.Info("Space released", zap.String("space_id", spaceID.String()))
	return nil
}

// SetMaintenance transitions unoccupied -> maintenance. Occupied or reserved
// spaces cannot be taken down.
func (t *SpaceTracker) SetMaintenance(ctx context.Context, spaceID uuid.UUID) error {
	ok, err := t.spaces.UpdateStateIf(ctx, spaceID, entity.SpaceStateUnoccupied, entity.SpaceStateMaintenance, nil)
	if err != nil {
		return asServiceError(err, "set space %s to maintenance", spaceID.String())
	}
	if !ok {
		return SpaceUnavailableError("space %s must be unoccupied to enter maintenance", spaceID.String())
	}

	t.log.Info("Space under maintenance", zap.String("space_id", spaceID.String()))
	return nil
}

// ClearMaintenance transitions maintenance -> unoccupied.
func (t *SpaceTracker) ClearMaintenance(ctx context.Context, spaceID uuid.UUID) error {
	ok, err := t.spaces.UpdateStateIf(ctx, spaceID, entity.SpaceStateMaintenance, entity.SpaceStateUnoccupied, nil)
	if err != nil {
		return asServiceError(err, "clear maintenance on space %s", spaceID.String())
	}
	if !ok {
		return InvalidStateError("space %s is not under maintenance", spaceID.String())
	}

	t.log.Info("Space maintenance cleared", zap.String("space_id", spaceID.String()))
	return nil
}
