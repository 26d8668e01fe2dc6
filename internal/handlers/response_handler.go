package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type ResponseHandler struct {
	ResponseService *services.ResponseService
}

func NewResponseHandler(s *services.ResponseService) *ResponseHandler {
	return &ResponseHandler{ResponseService: s}
}

// Apply is POST /vacancies/:id/apply/
func (h *ResponseHandler) Apply(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	vacancyID, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrVacancyNotExists)
		return
	}
	var req dtos.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.ResponseService.ApplyToVacancy(c.Request.Context(), claims.UserID, vacancyID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewResponseView(*resp))
}

func (h *ResponseHandler) ListVacancyResponses(c *gin.Context) {
	vacancyID, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrVacancyNotExists)
		return
	}
	responses, err := h.ResponseService.ListVacancyResponses(c.Request.Context(), vacancyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewResponseList(responses))
}

// ListMine is GET /responses/
func (h *ResponseHandler) ListMine(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	responses, err := h.ResponseService.ListUserResponses(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewResponseList(responses))
}

// UpdateStatus is PATCH /responses/:id/
func (h *ResponseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrResponseNotExists)
		return
	}
	var req dtos.UpdateResponseStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.ResponseService.UpdateResponseStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewResponseView(*resp))
}
