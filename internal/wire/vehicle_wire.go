package wire

import (
	"parking-facility/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVehicle(r chi.Router, vehicleHandler *adaptor.VehicleHandler) {
	r.Route("/api/vehicles", func(r chi.Router) {
		r.Post("/", vehicleHandler.RegisterVehicle)
		r.Get("/", vehicleHandler.GetAllVehicles)
		r.Get("/{id}", vehicleHandler.GetVehicleByID)
		r.Put("/{id}", vehicleHandler.UpdateVehicle)
		r.Get("/{id}/history", vehicleHandler.GetVehicleHistory)
	})
}
