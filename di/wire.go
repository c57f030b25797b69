//go:build wireinject
// +build wireinject

package di

import (
	"visaprep/config"
	"visaprep/infras/analysis"
	"visaprep/infras/conference"
	"visaprep/infras/jwt"
	"visaprep/infras/kafka"
	"visaprep/infras/otel"
	"visaprep/infras/postgres"
	"visaprep/infras/redis"
	"visaprep/infras/registry"
	"visaprep/infras/s3"
	"visaprep/permissions"
	"visaprep/shared/cache"
	"visaprep/transport/http"
	"visaprep/transport/http/middleware"
	"visaprep/transport/http/router"

	appointmentRepository "visaprep/internal/domains/appointment/repository"
	appointmentService "visaprep/internal/domains/appointment/service"
	feedbackService "visaprep/internal/domains/feedback/service"
	quotaRepository "visaprep/internal/domains/quota/repository"
	quotaService "visaprep/internal/domains/quota/service"

	appointmentHandler "visaprep/internal/handlers/appointment"
	feedbackHandler "visaprep/internal/handlers/feedback"
	quotaHandler "visaprep/internal/handlers/quota"

	"github.com/google/wire"
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
	conference.New,
	analysis.New,
	registry.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var quotaDomain = wire.NewSet(
	quotaRepository.New,
	quotaService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackService.New,
)

var domains = wire.NewSet(
	quotaDomain,
	appointmentDomain,
	feedbackDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	appointmentHandler.New,
	quotaHandler.New,
	feedbackHandler.New,
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
