package response

import (
	"time"

	"parking-facility/internal/data/entity"
)

type BillingResponse struct {
	ID            string               `json:"id"`
	OccupancyID   string               `json:"occupancy_id"`
	UserID        *string              `json:"user_id,omitempty"`
	Amount        float64              `json:"amount"`
	PaymentTime   *time.Time           `json:"payment_time,omitempty"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type RevenueReportResponse struct {
	TotalRevenue     float64           `json:"total_revenue"`
	TransactionCount int               `json:"transaction_count"`
	Transactions     []BillingResponse `json:"transactions"`
}

func BillingToResponse(billing *entity.Billing) BillingResponse {
	var userID *string
	if billing.UserID != nil {
		u := billing.UserID.String()
		userID = &u
	}

	return BillingResponse{
		ID:            billing.ID.String(),
		OccupancyID:   billing.OccupancyID.String(),
		UserID:        userID,
		Amount:        billing.Amount,
		PaymentTime:   billing.PaymentTime,
		PaymentStatus: billing.PaymentStatus,
		CreatedAt:     billing.CreatedAt,
	}
}

func BillingsToResponse(billings []*entity.Billing) []BillingResponse {
	responses := make([]BillingResponse, len(billings))
	for i, billing := range billings {
		responses[i] = BillingToResponse(billing)
	}
	return responses
}
