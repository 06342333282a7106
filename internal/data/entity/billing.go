package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Billing is created once per occupancy at check-out and never reverts
// from paid.
type Billing struct {
	Base
	OccupancyID   uuid.UUID     `db:"occupancy_id"`
	UserID        *uuid.UUID    `db:"user_id"`
	Amount        float64       `db:"amount"`
	PaymentTime   *time.Time    `db:"payment_time"`
	PaymentStatus PaymentStatus `db:"payment_status"`
}
