package di

import (
	"innkeep/infras/kafka"
	"innkeep/infras/otel"
	holdService "innkeep/internal/domains/hold/service"
	"innkeep/transport/http"
)

// App is everything the serve command runs: the HTTP server plus the
// background sweeper and the clients it has to close on shutdown.
type App struct {
	HTTP  *http.HTTP
	Hold  holdService.Hold
	Kafka kafka.Client
	Otel  otel.Otel
}
