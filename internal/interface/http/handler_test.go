package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcare-api/internal/application"
	"medcare-api/internal/domain/entity"
	"medcare-api/internal/domain/repository"
	"medcare-api/internal/interface/middleware"
	"medcare-api/pkg/helpers"
)

// The handler tests drive the real route surface end to end: fresh in-memory
// stores per test, real services, real auth middleware, real JWTs.

func init() {
	gin.SetMode(gin.TestMode)
}

type userStore struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (s *userStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type appointmentStore struct {
	mu           sync.Mutex
	appointments map[string]*entity.Appointment
}

func (s *appointmentStore) Create(_ context.Context, a *entity.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.appointments[a.ID] = &cp
	return nil
}

func (s *appointmentStore) ListByUser(_ context.Context, userID string) ([]entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Appointment{}
	for _, a := range s.appointments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	return out, nil
}

func (s *appointmentStore) GetOwned(_ context.Context, id, userID string) (*entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *appointmentStore) Cancel(_ context.Context, id, userID string) (*entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
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
	_ repository.UserRepository        = (*userStore)(nil)
	_ repository.AppointmentRepository = (*appointmentStore)(nil)
)

func newTestRouter(t *testing.T) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("handler-test-secret", time.Hour)

	authSvc := application.NewAuthService(&userStore{users: map[string]*entity.User{}}, jwt, logger)
	aptSvc := application.NewAppointmentService(&appointmentStore{appointments: map[string]*entity.Appointment{}}, nil, logger)
	authHandler := NewAuthHandler(authSvc, logger)
	aptHandler := NewAppointmentHandler(aptSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwt))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/appointments", aptHandler.Book)
	protected.GET("/appointments", aptHandler.List)
	protected.PATCH("/appointments/:id/cancel", aptHandler.Cancel)
	return r, jwt
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email string) gin.H {
	return gin.H{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     email,
		"phone":     "+1-555-0100",
		"password":  "Secret123",
	}
}

func bookBody() gin.H {
	return gin.H{
		"fullName":        "Jane Doe",
		"email":           "jane@x.com",
		"phone":           "+1-555-0100",
		"department":      "Cardiology",
		"appointmentDate": time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		"appointmentTime": "10:00 AM",
		"symptoms":        "chest pain",
	}
}

func registerAndToken(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody(email))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("jane@x.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", user["email"])
	assert.Equal(t, "patient", user["role"])
	assert.NotContains(t, user, "password")

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jane@x.com",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["token"])
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAndToken(t, r, "jane@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", registerBody("JANE@X.COM"))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRegisterValidationBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	body := registerBody("jane@x.com")
	body["phone"] = "123"
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	details, ok := decode(t, w)["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "phone")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAndToken(t, r, "jane@x.com")

	wrong := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jane@x.com",
		"password": "WrongPass1",
	})
	unknown := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "Secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, decode(t, wrong)["message"], decode(t, unknown)["message"])
}

func TestMe(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndToken(t, r, "jane@x.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user, ok := decode(t, w)["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", user["email"])
}

func TestAuthRejections(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expiredToken(t)},
		{"wrong secret", foreignToken(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/appointments", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
		})
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	token, _, err := helpers.NewJWTManager("handler-test-secret", -time.Minute).GenerateToken("user-1")
	require.NoError(t, err)
	return token
}

func foreignToken(t *testing.T) string {
	t.Helper()
	token, _, err := helpers.NewJWTManager("some-other-secret", time.Hour).GenerateToken("user-1")
	require.NoError(t, err)
	return token
}

func TestBookListCancelFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndToken(t, r, "jane@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, bookBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apt, ok := decode(t, w)["appointment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pending", apt["status"])
	id, _ := apt["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, r, http.MethodGet, "/api/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/appointments/%s/cancel", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	apt, ok = decode(t, w)["appointment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cancelled", apt["status"])

	// a second cancel is an invalid state, not a repeatable success
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/appointments/%s/cancel", id), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestBookValidationBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndToken(t, r, "jane@x.com")

	body := bookBody()
	body["department"] = "Surgery"
	body["appointmentDate"] = "2000-01-01"
	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	details, ok := decode(t, w)["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "department")
	assert.Contains(t, details, "appointmentDate")
}

func TestBookMalformedJSON(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndToken(t, r, "jane@x.com")

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCancelOtherUsersAppointment(t *testing.T) {
	r, _ := newTestRouter(t)
	owner := registerAndToken(t, r, "jane@x.com")
	intruder := registerAndToken(t, r, "bob@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", owner, bookBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apt := decode(t, w)["appointment"].(map[string]any)
	id := apt["id"].(string)

	// not the owner's record, so it must look like it does not exist
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/appointments/%s/cancel", id), intruder, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	// untouched for the owner
	w = doJSON(t, r, http.MethodGet, "/api/appointments", owner, nil)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "pending", list[0]["status"])
}

func TestListScopedToCaller(t *testing.T) {
	r, _ := newTestRouter(t)
	jane := registerAndToken(t, r, "jane@x.com")
	bob := registerAndToken(t, r, "bob@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/appointments", jane, bookBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/appointments", bob, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}
