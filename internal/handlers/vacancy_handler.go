package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/sirupsen/logrus"
)

type VacancyHandler struct {
	VacancyService *services.VacancyService
	LLMService     *services.LLMService
	MatcherService *services.MatcherService
}

func NewVacancyHandler(v *services.VacancyService, llm *services.LLMService, m *services.MatcherService) *VacancyHandler {
	return &VacancyHandler{
		VacancyService: v,
		LLMService:     llm,
		MatcherService: m,
	}
}

// SearchVacancies is GET /vacancies/
func (h *VacancyHandler) SearchVacancies(c *gin.Context) {
	var filter dtos.VacancySearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}
	filter.Normalize()

	page, ok := queryPage(c)
	if !ok {
		respondMessage(c, http.StatusNotFound, "Invalid page.")
		return
	}

	vacancies, total, err := h.VacancyService.PageVacancies(c.Request.Context(), filter, page, vacanciesPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	body, ok := paginate(c, page, total, vacanciesPerPage, dtos.NewVacancyList(vacancies))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, body)
}

// CreateVacancy is POST /vacancies/
func (h *VacancyHandler) CreateVacancy(c *gin.Context) {
	var req dtos.VacancyCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		respondInvalid(c, errs)
		return
	}

	id, err := h.VacancyService.CreateVacancy(c.Request.Context(), req.Input())
	if errors.Is(err, services.ErrCompanyNotExists) {
		// company is named in the body, not the path
		respondMessage(c, http.StatusBadRequest, "Company with provided name does not exist in the database.")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.VacancyCreatedResponse{
		Message:   "Vacancy created successfully",
		VacancyID: id,
	})
}

// GetVacancy is GET /vacancies/:id/
func (h *VacancyHandler) GetVacancy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrVacancyNotExists)
		return
	}
	vacancy, err := h.VacancyService.GetVacancyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewVacancyExtendedInfo(*vacancy))
}

// ExtractVacancy is POST /vacancies/extract. It drafts a vacancy from a
// posting page and points at the stored company it most likely belongs to.
func (h *VacancyHandler) ExtractVacancy(c *gin.Context) {
	var req dtos.ExtractionRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.LLMService.ExtractVacancyDetails(c.Request.Context(), req.RawHTML)
	if errors.Is(err, services.ErrExtractionDisabled) {
		respondError(c, err)
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("url", req.URL).Warn("vacancy extraction failed")
		respondMessage(c, http.StatusBadGateway, "AI extraction failed.")
		return
	}

	resp := dtos.ExtractionResponse{Draft: *draft}
	company, err := h.MatcherService.FindCompany(c.Request.Context(), draft.CompanyName)
	if err != nil {
		respondError(c, err)
		return
	}
	if company != nil {
		resp.MatchedCompany = &dtos.NamedRef{ID: company.ID, Name: company.Name}
	}
	c.JSON(http.StatusOK, resp)
}
