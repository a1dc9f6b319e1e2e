package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"medcare-api/internal/application"
	"medcare-api/internal/domain/entity"
	"medcare-api/internal/interface/middleware"
	"medcare-api/pkg/response"
	"medcare-api/pkg/validation"
)

type AppointmentHandler struct {
	Svc    *application.AppointmentService
	Logger *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

func appointmentJSON(a *entity.Appointment) gin.H {
	return gin.H{
		"id":              a.ID,
		"userId":          a.UserID,
		"fullName":        a.FullName,
		"email":           a.Email,
		"phone":           a.Phone,
		"department":      a.Department,
		"appointmentDate": a.AppointmentDate,
		"appointmentTime": a.AppointmentTime,
		"symptoms":        a.Symptoms,
		"status":          a.Status,
		"createdAt":       a.CreatedAt,
		"updatedAt":       a.UpdatedAt,
	}
}

// Book POST /api/appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req application.BookInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.Details(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	a, err := h.Svc.Book(c.Request.Context(), uid, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"message":     "appointment booked successfully",
		"appointment": appointmentJSON(a),
	})
}

// List GET /api/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	apts, err := h.Svc.ListOwn(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(apts))
	for i := range apts {
		out = append(out, appointmentJSON(&apts[i]))
	}
	response.JSON(c, http.StatusOK, out)
}

// Cancel PATCH /api/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	a, err := h.Svc.Cancel(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":     "appointment cancelled successfully",
		"appointment": appointmentJSON(a),
	})
}
