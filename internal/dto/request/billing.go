package request

type ProcessPaymentRequest struct {
	PaymentTime *string `json:"payment_time,omitempty"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed"`
}

// BillingListRequest filters come from query parameters; empty means all.
type BillingListRequest struct {
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=pending paid failed"`
	OccupancyID   string `json:"occupancy_id" validate:"omitempty,uuid4"`
	PaginatedRequest
}

type RevenueReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
