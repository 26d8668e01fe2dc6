package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
}

func NewProfileHandler(s *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: s}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	profile, err := h.ProfileService.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewProfileView(*profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	var req dtos.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respondInvalid(c, errs)
		return
	}

	profile, err := h.ProfileService.UpdateProfile(c.Request.Context(), claims.UserID, req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewProfileView(*profile))
}
