//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"

	billingService "lodge/internal/domains/billing/service"
	bookingRepository "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	customerRepository "lodge/internal/domains/customer/repository"
	occupancyService "lodge/internal/domains/occupancy/service"
	paymentRepository "lodge/internal/domains/payment/repository"
	paymentService "lodge/internal/domains/payment/service"
	roomRepository "lodge/internal/domains/room/repository"
	roomService "lodge/internal/domains/room/service"
	roomcostRepository "lodge/internal/domains/roomcost/repository"
	roomcostService "lodge/internal/domains/roomcost/service"

	bookingHandler "lodge/internal/handlers/booking"
	dashboardHandler "lodge/internal/handlers/dashboard"
	occupancyHandler "lodge/internal/handlers/occupancy"
	paymentHandler "lodge/internal/handlers/payment"
	roomHandler "lodge/internal/handlers/room"
	roomcostHandler "lodge/internal/handlers/roomcost"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var roomcostDomain = wire.NewSet(
	roomcostRepository.New,
	roomcostService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	customerRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var occupancyDomain = wire.NewSet(
	occupancyService.New,
)

var billingDomain = wire.NewSet(
	billingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	roomcostDomain,
	bookingDomain,
	paymentDomain,
	occupancyDomain,
	billingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	roomcostHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	occupancyHandler.New,
	dashboardHandler.New,
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
