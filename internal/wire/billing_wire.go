package wire

import (
	"parking-facility/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBilling(r chi.Router, billingHandler *adaptor.BillingHandler) {
	r.Route("/api/billing", func(r chi.Router) {
		r.Get("/", billingHandler.ListBillings)
		r.Get("/pending", billingHandler.GetPendingPayments)
		r.Get("/revenue", billingHandler.GetRevenueReport)
		r.Get("/{id}", billingHandler.GetBillingByID)

		r.Post("/{id}/pay", billingHandler.ProcessPayment)
		r.Put("/{id}/status", billingHandler.UpdatePaymentStatus)
	})
}
