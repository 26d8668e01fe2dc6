package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterConfirmLoginFlow(t *testing.T) {
	s := newTestServer(t)
	register := dtos.RegisterRequest{
		Username:             "grace",
		Email:                "grace@example.com",
		Password:             "s3cret-pass",
		PasswordConfirmation: "s3cret-pass",
		Role:                 "candidate",
	}

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register/", register, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register/", register, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	login := dtos.LoginRequest{Username: "grace", Password: "s3cret-pass"}
	rec = s.do(t, http.MethodPost, "/api/v1/auth/login/", login, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var code models.EmailConfirmationCode
	require.NoError(t, s.db.First(&code).Error)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/confirm/?code=unknown", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/auth/confirm/", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/auth/confirm/?code="+code.Code, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login/", login, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[dtos.TokenResponse](t, rec)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	rec = s.do(t, http.MethodGet, "/api/v1/profile/", nil, token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "grace", decode[dtos.ProfileView](t, rec).Username)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register/", dtos.RegisterRequest{
		Username:             "bad name!",
		Email:                "nope",
		Password:             "short",
		PasswordConfirmation: "other",
		Role:                 "admin",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decode[dtos.MessageResponse](t, rec).Errors
	assert.Equal(t, "Only letters and digits are allowed.", errs["username"])
	assert.Equal(t, "Enter a valid email address.", errs["email"])
	assert.Equal(t, "Ensure this field has at least 8 characters.", errs["password"])
	assert.Equal(t, "Passwords do not match.", errs["password_confirmation"])
	assert.Equal(t, "Must be one of: candidate recruiter.", errs["role"])
}

func TestAuthThrottle(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig) {
		cfg.AuthThrottle = ratelimit.NewMemory(1, time.Hour)
	})
	login := dtos.LoginRequest{Username: "nobody", Password: "whatever"}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/v1/auth/login/", login, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/v1/auth/login/", login, "").Code)
}
