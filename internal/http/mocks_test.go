package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/service"
)

type mockOwnerRepo struct {
	byID    map[string]domain.Owner
	byEmail map[string]string
}

func newMockOwnerRepo() *mockOwnerRepo {
	return &mockOwnerRepo{byID: make(map[string]domain.Owner), byEmail: make(map[string]string)}
}

func (m *mockOwnerRepo) Create(_ context.Context, owner domain.Owner) error {
	m.byID[owner.ID] = owner
	m.byEmail[owner.Email] = owner.ID
	return nil
}

func (m *mockOwnerRepo) GetByID(_ context.Context, id string) (domain.Owner, error) {
	owner, ok := m.byID[id]
	if !ok {
		return domain.Owner{}, pgx.ErrNoRows
	}
	return owner, nil
}

func (m *mockOwnerRepo) GetByEmail(_ context.Context, email string) (domain.Owner, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.Owner{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockOwnerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

type mockDoctorRepo struct {
	byID    map[string]domain.Doctor
	byEmail map[string]string
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{byID: make(map[string]domain.Doctor), byEmail: make(map[string]string)}
}

func (m *mockDoctorRepo) Create(_ context.Context, doctor domain.Doctor) error {
	m.byID[doctor.ID] = doctor
	m.byEmail[doctor.Email] = doctor.ID
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id string) (domain.Doctor, error) {
	doctor, ok := m.byID[id]
	if !ok {
		return domain.Doctor{}, pgx.ErrNoRows
	}
	return doctor, nil
}

func (m *mockDoctorRepo) GetByEmail(_ context.Context, email string) (domain.Doctor, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return domain.Doctor{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockDoctorRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

type mockPetRepo struct {
	pets map[string]domain.Pet
}

func newMockPetRepo() *mockPetRepo {
	return &mockPetRepo{pets: make(map[string]domain.Pet)}
}

func (m *mockPetRepo) Create(_ context.Context, pet domain.Pet) error {
	m.pets[pet.ID] = pet
	return nil
}

func (m *mockPetRepo) GetByID(_ context.Context, id string) (domain.Pet, error) {
	pet, ok := m.pets[id]
	if !ok {
		return domain.Pet{}, pgx.ErrNoRows
	}
	return pet, nil
}

func (m *mockPetRepo) DeleteByID(_ context.Context, id string) error {
	delete(m.pets, id)
	return nil
}

func (m *mockPetRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, p := range m.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPetRepo) ListByIDs(_ context.Context, ids []string) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, id := range ids {
		if p, ok := m.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPetRepo) ExistsByOwnerAndName(_ context.Context, ownerID, name string) (bool, error) {
	for _, p := range m.pets {
		if p.OwnerID == ownerID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type mockConsultationRepo struct {
	consultations []domain.Consultation
}

func newMockConsultationRepo() *mockConsultationRepo {
	return &mockConsultationRepo{}
}

func (m *mockConsultationRepo) Create(_ context.Context, consultation domain.Consultation) error {
	m.consultations = append(m.consultations, consultation)
	return nil
}

func (m *mockConsultationRepo) ListByDoctor(_ context.Context, doctorID string) ([]domain.Consultation, error) {
	var out []domain.Consultation
	for _, c := range m.consultations {
		if c.DoctorID == doctorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConsultationRepo) ListByPetIDs(_ context.Context, petIDs []string) ([]domain.Consultation, error) {
	ids := make(map[string]bool, len(petIDs))
	for _, id := range petIDs {
		ids[id] = true
	}
	var out []domain.Consultation
	for _, c := range m.consultations {
		if ids[c.PetID] {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockLimiter struct {
	allow bool
}

func (m *mockLimiter) Allow(_ string) bool {
	return m.allow
}

type testEnv struct {
	router   *gin.Engine
	tokenSvc *service.TokenService
	owners   *mockOwnerRepo
	doctors  *mockDoctorRepo
	pets     *mockPetRepo
}

type testRouterOptions struct {
	secret  string
	limiter service.LoginRateLimiter
}

func setupTestRouter(opts testRouterOptions) *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	owners := newMockOwnerRepo()
	doctors := newMockDoctorRepo()
	pets := newMockPetRepo()
	consultations := newMockConsultationRepo()

	tokenSvc := service.NewTokenService(opts.secret, time.Hour)
	authSvc := service.NewAuthService(logger, owners, doctors, opts.limiter)
	petSvc := service.NewPetService(logger, pets)
	consultSvc := service.NewConsultationService(logger, pets, consultations)
	dashSvc := service.NewDashboardService(logger, owners, doctors, pets, consultations)

	router := NewRouter(RouterOptions{
		Logger:       logger,
		TokenService: tokenSvc,
		Auth:         NewAuthHandler(logger, authSvc, tokenSvc, false),
		Pets:         NewPetHandler(logger, petSvc),
		Dashboards:   NewDashboardHandler(logger, dashSvc, consultSvc),
		CookieSecure: false,
	})

	return &testEnv{
		router:   router,
		tokenSvc: tokenSvc,
		owners:   owners,
		doctors:  doctors,
		pets:     pets,
	}
}

func performRequest(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func authCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == authCookieName {
			return c
		}
	}
	t.Fatalf("expected %s cookie in response", authCookieName)
	return nil
}

// signupAndLogin registra un principal y devuelve su cookie de sesión.
func signupAndLogin(t *testing.T, env *testEnv, name, email, password, role string) *http.Cookie {
	t.Helper()
	rec := performRequest(env.router, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	return authCookieFrom(t, rec)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
