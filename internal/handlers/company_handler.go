package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{CompanyService: s}
}

// ListCompanies is GET /companies/
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.CompanyService.GetCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyList(companies))
}

// CreateCompany is POST /companies/
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dtos.CompanyCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.CompanyService.CreateCompany(c.Request.Context(), req.Company(), req.Profile(), req.Address())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.CompanyCreatedResponse{
		Message:   "Company created successfully",
		CompanyID: id,
	})
}

// GetCompany is GET /companies/:id/
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrCompanyNotExists)
		return
	}
	company, err := h.CompanyService.GetCompanyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyExtendedInfo(*company))
}

func (h *CompanyHandler) ListCompanyVacancies(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrCompanyNotExists)
		return
	}
	vacancies, err := h.CompanyService.GetVacanciesByCompanyID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewVacancyList(vacancies))
}

// GetCompanyProfile is GET /companies/:id/profile/
func (h *CompanyHandler) GetCompanyProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrCompanyProfileNotExists)
		return
	}
	profile, err := h.CompanyService.GetCompanyProfileByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewCompanyProfileView(*profile))
}
