//go:build wireinject
// +build wireinject

package di

import (
	"innkeep/config"
	"innkeep/infras/jwt"
	"innkeep/infras/kafka"
	"innkeep/infras/otel"
	"innkeep/infras/redis"
	"innkeep/infras/s3"
	"innkeep/permissions"
	"innkeep/shared/cache"
	"innkeep/shared/event"
	"innkeep/transport/http"
	"innkeep/transport/http/middleware"
	"innkeep/transport/http/router"

	bookingService "innkeep/internal/domains/booking/service"
	holdService "innkeep/internal/domains/hold/service"
	pricingService "innkeep/internal/domains/pricing/service"
	roomService "innkeep/internal/domains/room/service"
	orderService "innkeep/internal/domains/serviceorder/service"

	bookingHandler "innkeep/internal/handlers/booking"
	pricingHandler "innkeep/internal/handlers/pricing"
	roomHandler "innkeep/internal/handlers/room"
	orderHandler "innkeep/internal/handlers/serviceorder"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var storage = wire.NewSet(
	ProvideStores,
	wire.FieldsOf(new(Stores), "Rooms", "Bookings", "Orders", "Menu", "RoomTypes", "Calendar", "PaymentAccounts", "Transactor"),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var domains = wire.NewSet(
	holdService.New,
	pricingService.New,
	roomService.New,
	bookingService.New,
	orderService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	pricingHandler.New,
	orderHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		storage,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
