package repository

import (
	"context"
	"errors"

	"medcare-api/internal/domain/entity"
)

// ErrAlreadyCancelled is returned by Cancel when the row exists for the owner
// but is already in the cancelled state.
var ErrAlreadyCancelled = errors.New("appointment already cancelled")

// AppointmentRepository defines appointment persistence operations. Ownership
// is part of every query predicate: an appointment belonging to another user
// is indistinguishable from a missing one (ErrNotFound).
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	ListByUser(ctx context.Context, userID string) ([]entity.Appointment, error)
	GetOwned(ctx context.Context, id, userID string) (*entity.Appointment, error)
	Cancel(ctx context.Context, id, userID string) (*entity.Appointment, error)
}
