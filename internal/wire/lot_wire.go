package wire

import (
	"parking-facility/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLot(r chi.Router, lotHandler *adaptor.LotHandler) {
	r.Route("/api/lots", func(r chi.Router) {
		r.Post("/", lotHandler.CreateLot)
		r.Get("/", lotHandler.GetAllLots)
		r.Get("/{id}", lotHandler.GetLotByID)
		r.Put("/{id}", lotHandler.UpdateLot)
		r.Delete("/{id}", lotHandler.DeleteLot)
		r.Get("/{id}/spaces", lotHandler.GetLotSpaces)
	})
}
