package router

import (
	"github.com/go-chi/chi/v5"

	"veranda/internal/handlers/booking"
	"veranda/internal/handlers/room"
	"veranda/internal/handlers/wizard"
	"veranda/transport/http/middleware"
)

type DomainHandlers struct {
	Room    room.Handler
	Booking booking.Handler
	Wizard  wizard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		// Public surface: browsing rooms, booking, self-service lookup,
		// and the step-by-step booking flow.
		routerGroup.Group(func(public chi.Router) {
			r.DomainHandlers.Room.Router(public)
			r.DomainHandlers.Booking.Router(public)
			r.DomainHandlers.Wizard.Router(public)
		})

		// Admin surface: room management and the full booking ledger.
		routerGroup.Group(func(admin chi.Router) {
			admin.Use(r.AuthMiddleware.Auth)
			admin.Use(r.AuthMiddleware.RequireAdmin)

			r.DomainHandlers.Room.AdminRouter(admin)
			r.DomainHandlers.Booking.AdminRouter(admin)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
