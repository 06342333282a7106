package usecase

import (
	"context"
	"fmt"
	"time"

	"parking-facility/internal/data/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReservationSweeper periodically returns expired reservations to the pool.
// A reservation that was claimed by a check-in is already occupied and is
// never touched by the sweep.
type ReservationSweeper struct {
	spaces repository.SpaceRepository
	cron   *cron.Cron
	log    *zap.Logger
}

func NewReservationSweeper(spaces repository.SpaceRepository, log *zap.Logger) *ReservationSweeper {
	return &ReservationSweeper{
		spaces: spaces,
		cron:   cron.New(),
		log:    log.With(zap.String("component", "reservation_sweeper")),
	}
}

// Start schedules the sweep. The schedule accepts standard cron expressions
// and descriptors like "@every 1m".
func (s *ReservationSweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("schedule reservation sweep %q: %w", schedule, err)
	}

	s.cron.Start()
	s.log.Info("Reservation sweeper started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (s *ReservationSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Reservation sweeper stopped")
}

func (s *ReservationSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	released, err := s.spaces.ReleaseExpiredReservations(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("Reservation sweep failed", zap.Error(err))
		return
	}

	if released > 0 {
		s.log.Info("Expired reservations released", zap.Int64("count", released))
	}
}
