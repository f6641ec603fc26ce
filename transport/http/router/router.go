package router

import (
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/dashboard"
	"lodge/internal/handlers/occupancy"
	"lodge/internal/handlers/payment"
	"lodge/internal/handlers/room"
	"lodge/internal/handlers/roomcost"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room      room.Handler
	RoomCost  roomcost.Handler
	Booking   booking.Handler
	Payment   payment.Handler
	Occupancy occupancy.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.RoomCost.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Occupancy.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
