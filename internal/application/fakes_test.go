package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"medcare-api/internal/domain/entity"
	"medcare-api/internal/domain/repository"
)

// In-memory repository fakes mirroring the store-level contracts: duplicate
// detection at write time, ownership in every query.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*entity.Appointment // by ID
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: map[string]*entity.Appointment{}}
}

func (r *memAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) ListByUser(_ context.Context, userID string) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	// date desc, then slot label desc, matching the SQL ordering
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out, nil
}

func (r *memAppointmentRepo) GetOwned(_ context.Context, id, userID string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAppointmentRepo) Cancel(_ context.Context, id, userID string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if a.Status == entity.StatusCancelled {
		return nil, repository.ErrAlreadyCancelled
	}
	a.Status = entity.StatusCancelled
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

var (
	_ repository.UserRepository        = (*memUserRepo)(nil)
	_ repository.AppointmentRepository = (*memAppointmentRepo)(nil)
)
