package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.AuthService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Confirm your email to activate the account.",
		"user_id": user.ID,
	})
}

// Confirm is GET /auth/confirm/?code=
func (h *AuthHandler) Confirm(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		respondInvalid(c, map[string]string{"code": "This field is required."})
		return
	}
	if err := h.AuthService.ConfirmRegistration(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Registration confirmed.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
