package router

import (
	"net/http"

	"innkeep/internal/handlers/booking"
	"innkeep/internal/handlers/pricing"
	"innkeep/internal/handlers/room"
	"innkeep/internal/handlers/serviceorder"
	"innkeep/shared/failure"
	"innkeep/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const Version = "/v1"

// Registrar mounts a handler's routes on the versioned group.
type Registrar interface {
	Router(r chi.Router)
}

type DomainHandlers struct {
	Room         room.Handler
	Booking      booking.Handler
	Pricing      pricing.Handler
	ServiceOrder serviceorder.Handler
}

type Router struct {
	registrars []Registrar
}

// SetupRoutes mounts every domain under Version. Unknown paths and methods
// answer with the JSON error envelope instead of chi's plain text.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(Version, func(group chi.Router) {
		for _, registrar := range r.registrars {
			registrar.Router(group)
		}

		group.NotFound(notFound)
		group.MethodNotAllowed(methodNotAllowed)
	})
}

func notFound(writer http.ResponseWriter, request *http.Request) {
	response.WithError(writer, failure.NotFound("no route for "+request.URL.Path))
}

func methodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	response.WithError(writer, failure.New(http.StatusMethodNotAllowed, request.Method+" is not allowed on "+request.URL.Path))
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		registrars: []Registrar{
			&domainHandlers.Room,
			&domainHandlers.Booking,
			&domainHandlers.Pricing,
			&domainHandlers.ServiceOrder,
		},
	}
}
