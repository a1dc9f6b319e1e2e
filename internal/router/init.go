package router

import (
	"medcare-api/internal/application"
	"medcare-api/internal/container"
	pginfra "medcare-api/internal/infrastructure/postgres"
	handlers "medcare-api/internal/interface/http"
	"medcare-api/internal/router/modules"
)

// InitModules builds each feature module from the container singletons and
// registers it. Called once during startup, after the container is populated.
func InitModules(r *Registry) {
	logger := container.GetLogger()
	jwt := container.GetJWT()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	authSvc := application.NewAuthService(userRepo, jwt, logger)
	authHandler := handlers.NewAuthHandler(authSvc, logger)

	aptRepo := pginfra.NewAppointmentRepository(pool)
	aptSvc := application.NewAppointmentService(aptRepo, container.GetRabbitPub(), logger)
	aptHandler := handlers.NewAppointmentHandler(aptSvc, logger)

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewAppointmentModule(aptHandler, jwt))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
