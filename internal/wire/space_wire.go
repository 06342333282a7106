package wire

import (
	"parking-facility/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSpace(r chi.Router, spaceHandler *adaptor.SpaceHandler) {
	r.Route("/api/spaces", func(r chi.Router) {
		r.Post("/", spaceHandler.CreateSpace)
		r.Get("/", spaceHandler.ListSpaces)
		r.Get("/available", spaceHandler.GetAvailableSpaces)
		r.Get("/{id}", spaceHandler.GetSpaceByID)
		r.Put("/{id}", spaceHandler.UpdateSpace)
		r.Delete("/{id}", spaceHandler.DeleteSpace)
		r.Put("/{id}/maintenance", spaceHandler.SetMaintenance)
	})
}
