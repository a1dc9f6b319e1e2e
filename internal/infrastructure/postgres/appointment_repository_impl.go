package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medcare-api/internal/domain/entity"
	"medcare-api/internal/domain/repository"
)

const appointmentColumns = `
	id, user_id, full_name, email, phone, department,
	to_char(appointment_date, 'YYYY-MM-DD'), appointment_time,
	symptoms, status, created_at, updated_at`

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments
			(user_id, full_name, email, phone, department, appointment_date, appointment_time, symptoms, status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.FullName, a.Email, a.Phone, a.Department,
		a.AppointmentDate, a.AppointmentTime, a.Symptoms, a.Status)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// ListByUser returns the user's appointments, date then time slot descending.
// The ownership filter lives in the WHERE clause so no other user's rows ever
// leave the store.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) ([]entity.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY appointment_date DESC, appointment_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Appointment{}
	for rows.Next() {
		var a entity.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) GetOwned(ctx context.Context, id, userID string) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := scanAppointment(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Cancel flips status to cancelled in a single guarded UPDATE. A zero-row
// result is disambiguated with a follow-up ownership-scoped read, so a lost
// race between two cancellations still reports ErrAlreadyCancelled.
func (r *AppointmentRepository) Cancel(ctx context.Context, id, userID string) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND status <> $3
		RETURNING `+appointmentColumns,
		id, userID, entity.StatusCancelled)

	err := scanAppointment(row, a)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	existing, getErr := r.GetOwned(ctx, id, userID)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status == entity.StatusCancelled {
		return nil, repository.ErrAlreadyCancelled
	}
	return nil, repository.ErrNotFound
}

func scanAppointment(row pgx.Row, a *entity.Appointment) error {
	return row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Email, &a.Phone, &a.Department,
		&a.AppointmentDate, &a.AppointmentTime, &a.Symptoms, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
