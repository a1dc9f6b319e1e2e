package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"medcare-api/internal/container"
	handlers "medcare-api/internal/interface/http"
	"medcare-api/internal/interface/middleware"
	"medcare-api/pkg/helpers"
)

// AppointmentModule wires the booking routes. Everything here requires a
// valid bearer session.
// Protected: POST /api/appointments, GET /api/appointments,
// PATCH /api/appointments/:id/cancel
type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	JWT     *helpers.JWTManager
}

func NewAppointmentModule(h *handlers.AppointmentHandler, jwt *helpers.JWTManager) *AppointmentModule {
	return &AppointmentModule{Handler: h, JWT: jwt}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/appointments", m.Handler.Book)
		auth.GET("/appointments", m.Handler.List)
		auth.PATCH("/appointments/:id/cancel", m.Handler.Cancel)
	}
}
