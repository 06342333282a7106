package wire

import (
	"parking-facility/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOccupancy(r chi.Router, occupancyHandler *adaptor.OccupancyHandler) {
	r.Route("/api/occupancies", func(r chi.Router) {
		// Lifecycle operations
		r.Post("/check-in", occupancyHandler.CheckIn)
		r.Post("/reserve", occupancyHandler.ReserveSpace)
		r.Post("/reserve-and-check-in", occupancyHandler.ReserveAndCheckIn)
		r.Post("/{id}/check-out", occupancyHandler.CheckOut)

		// Queries. Fixed paths registered before the {id} wildcard.
		r.Get("/", occupancyHandler.ListOccupancies)
		r.Get("/active", occupancyHandler.GetActiveOccupancies)
		r.Get("/history", occupancyHandler.GetHistory)
		r.Get("/{id}", occupancyHandler.GetOccupancyByID)
	})
}
