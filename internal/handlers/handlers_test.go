package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/cache"
	"github.com/justsurfingit/job-board/internal/database/dbtest"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events/eventstest"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
	svc    Services
	events *eventstest.Recorder
}

func newTestServer(t *testing.T, configure ...func(*RouterConfig)) *testServer {
	t.Helper()
	db := dbtest.New(t)
	rec := &eventstest.Recorder{}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	svc := Services{
		Companies:  services.NewCompanyService(db, rec, cache.NewMemory(), time.Minute),
		Vacancies:  services.NewVacancyService(db, rec, nil),
		Auth:       services.NewAuthService(db, rec, tokens, time.Hour),
		Responses:  services.NewResponseService(db, rec),
		Reviews:    services.NewReviewService(db, rec),
		Profiles:   services.NewProfileService(db),
		References: services.NewReferenceService(db),
		LLM:        &services.LLMService{},
		Matcher:    services.NewMatcherService(db),
	}
	svc.Vacancies.Cache = svc.Companies.Cache

	cfg := RouterConfig{
		DB:           db,
		Tokens:       tokens,
		Throttle:     ratelimit.NewMemory(1000, time.Hour),
		AuthThrottle: ratelimit.NewMemory(1000, time.Hour),
	}
	for _, fn := range configure {
		fn(&cfg)
	}

	router, err := NewRouter(cfg, svc)
	require.NoError(t, err)
	return &testServer{db: db, router: router, tokens: tokens, svc: svc, events: rec}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login stores an active user with the role and returns a token for it.
func (s *testServer) login(t *testing.T, username, role string) (models.User, string) {
	t.Helper()
	var r models.Role
	require.NoError(t, s.db.Preload("Permissions").Where("name = ?", role).First(&r).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
		IsActive:     true,
		RoleID:       r.ID,
	}
	require.NoError(t, s.db.Create(&user).Error)

	token, _, err := s.tokens.Issue(user.ID, user.Username, r.Name, r.Codenames())
	require.NoError(t, err)
	return user, token
}

func (s *testServer) createCompany(t *testing.T, name string) uint {
	t.Helper()
	req := companyBody(name)
	id, err := s.svc.Companies.CreateCompany(context.Background(), req.Company(), req.Profile(), req.Address())
	require.NoError(t, err)
	return id
}

func (s *testServer) createVacancy(t *testing.T, name, company string) uint {
	t.Helper()
	id, err := s.svc.Vacancies.CreateVacancy(context.Background(), vacancyBody(name, company).Input())
	require.NoError(t, err)
	return id
}

func companyBody(name string) dtos.CompanyCreateRequest {
	return dtos.CompanyCreateRequest{
		Name:         name,
		Staff:        50,
		BusinessArea: "it consulting",
		Email:        "hr@example.com",
		FoundingYear: 2001,
		Description:  "We build things.",
		Phone:        "+375291112233",
		WebsiteLink:  "https://example.com",
		Country:      "Belarus",
		City:         "Minsk",
		StreetName:   "Nezavisimosti",
		HomeNumber:   4,
	}
}

func uintPtr(v uint) *uint { return &v }

func vacancyBody(name, company string) dtos.VacancyCreateRequest {
	return dtos.VacancyCreateRequest{
		Name:             name,
		CompanyName:      company,
		Level:            "Middle",
		Experience:       "3+ years",
		MinSalary:        uintPtr(1000),
		MaxSalary:        uintPtr(2000),
		Description:      "Build services.",
		EmploymentFormat: []string{"B2B"},
		WorkFormat:       []string{"Remote work"},
		Country:          "Belarus",
		City:             "Minsk",
		Tags:             "go postgres",
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndReferences(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = s.do(t, http.MethodGet, "/api/v1/references/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	refs := decode[dtos.ReferencesResponse](t, rec)
	require.Len(t, refs.Levels, 4)
	require.Len(t, refs.WorkFormats, 6)
}
