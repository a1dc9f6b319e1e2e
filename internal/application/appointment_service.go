package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"medcare-api/internal/domain/entity"
	"medcare-api/internal/domain/repository"
	"medcare-api/pkg/helpers"
	"medcare-api/pkg/mailer"
	"medcare-api/pkg/validation"
)

// AppointmentService books, lists and cancels appointments. Every operation
// is scoped to the session user; the repository applies the ownership filter
// in its query predicates.
type AppointmentService struct {
	Appointments repository.AppointmentRepository
	Publisher    *helpers.RabbitPublisher
	Logger       *logrus.Logger
}

func NewAppointmentService(appointments repository.AppointmentRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AppointmentService {
	return &AppointmentService{Appointments: appointments, Publisher: pub, Logger: logger}
}

type BookInput struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,phone"`
	Department      string `json:"department" validate:"required,department"`
	AppointmentDate string `json:"appointmentDate" validate:"required,bookdate"`
	AppointmentTime string `json:"appointmentTime" validate:"required,timeslot"`
	Symptoms        string `json:"symptoms"`
}

// Book creates a pending appointment owned by the session user. The owner is
// always the authenticated user, never a value from the request body.
func (s *AppointmentService) Book(ctx context.Context, userID string, in BookInput) (*entity.Appointment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, NewValidationError(validation.Details(err))
	}

	a := &entity.Appointment{
		UserID:          userID,
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		Department:      in.Department,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Symptoms:        strings.TrimSpace(in.Symptoms),
		Status:          entity.StatusPending,
	}
	if err := s.Appointments.Create(ctx, a); err != nil {
		helpers.LogError(s.Logger, "create appointment failed", err, logrus.Fields{"user_id": userID})
		return nil, NewInternalError()
	}

	s.notify(ctx, a.Email, "Appointment request received",
		fmt.Sprintf("Hi %s, your %s appointment on %s at %s has been received and is pending confirmation.",
			a.FullName, a.Department, a.AppointmentDate, a.AppointmentTime))
	return a, nil
}

// ListOwn returns the session user's appointments, newest first.
func (s *AppointmentService) ListOwn(ctx context.Context, userID string) ([]entity.Appointment, error) {
	out, err := s.Appointments.ListByUser(ctx, userID)
	if err != nil {
		helpers.LogError(s.Logger, "list appointments failed", err, logrus.Fields{"user_id": userID})
		return nil, NewInternalError()
	}
	return out, nil
}

// Cancel marks an appointment cancelled. An appointment that does not exist
// and one owned by another user are reported identically as not found.
func (s *AppointmentService) Cancel(ctx context.Context, userID, appointmentID string) (*entity.Appointment, error) {
	a, err := s.Appointments.Cancel(ctx, appointmentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, NewNotFoundError("appointment not found")
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return nil, NewInvalidStateError("appointment is already cancelled")
		default:
			helpers.LogError(s.Logger, "cancel appointment failed", err, logrus.Fields{
				"user_id":        userID,
				"appointment_id": appointmentID,
			})
			return nil, NewInternalError()
		}
	}

	s.notify(ctx, a.Email, "Appointment cancelled",
		fmt.Sprintf("Hi %s, your %s appointment on %s at %s has been cancelled.",
			a.FullName, a.Department, a.AppointmentDate, a.AppointmentTime))
	return a, nil
}

// notify enqueues a notification email. Fire-and-forget: a broker failure is
// logged and never fails the request.
func (s *AppointmentService) notify(ctx context.Context, to, subject, text string) {
	if s.Publisher == nil {
		return
	}
	job := mailer.Job{To: to, Subject: subject, Text: text}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "publish notification failed", err, logrus.Fields{"to": to})
	}
}
