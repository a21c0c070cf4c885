//go:build wireinject
// +build wireinject

package di

import (
	"veranda/config"
	"veranda/infras/jwt"
	"veranda/infras/kafka"
	"veranda/infras/otel"
	"veranda/infras/postgres"
	"veranda/infras/redis"
	"veranda/infras/s3"
	"veranda/shared/cache"
	"veranda/transport/http"
	"veranda/transport/http/middleware"
	"veranda/transport/http/router"

	"github.com/google/wire"

	bookingRepository "veranda/internal/domains/booking/repository"
	bookingService "veranda/internal/domains/booking/service"
	roomRepository "veranda/internal/domains/room/repository"
	roomService "veranda/internal/domains/room/service"
	wizardService "veranda/internal/domains/wizard/service"
	bookingHandler "veranda/internal/handlers/booking"
	roomHandler "veranda/internal/handlers/room"
	wizardHandler "veranda/internal/handlers/wizard"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var wizardDomain = wire.NewSet(
	wizardService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	wizardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	wizardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
