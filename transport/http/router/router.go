package router

import (
	"visaprep/internal/handlers/appointment"
	"visaprep/internal/handlers/feedback"
	"visaprep/internal/handlers/quota"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Appointment appointment.Handler
	Quota       quota.Handler
	Feedback    feedback.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Quota.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
