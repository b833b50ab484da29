package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires all routes onto a chi router with the standard middleware
// stack.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/generate", h.GenerateShifts)
			r.Post("/autofill", h.AutoFill)
			r.Post("/place", h.PlaceShift)
			r.Post("/{id}/allocate", h.Allocate)
			r.Post("/{id}/deallocate", h.Deallocate)
		})

		r.Get("/guards/{id}/shifts", h.GuardShifts)

		r.Route("/swaps", func(r chi.Router) {
			r.Get("/", h.ListSwaps)
			r.Post("/", h.RequestSwap)
			r.Post("/{id}/respond", h.RespondSwap)
		})

		r.Get("/summary", h.Summary)

		r.Route("/timebank", func(r chi.Router) {
			r.Post("/", h.RecordTimeBank)
			r.Get("/{guardId}", h.TimeBankBalance)
		})
	})

	return r
}
