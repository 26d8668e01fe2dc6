package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	err     error
	status  int
	message string
}

// errorResponses is checked in order with errors.Is.
var errorResponses = []errorResponse{
	{services.ErrCompanyAlreadyExists, http.StatusBadRequest, "Company with provided name already exist in the database."},
	{services.ErrCompanyNotExists, http.StatusNotFound, "Company with provided id doesn't exist."},
	{services.ErrCompanyProfileNotExists, http.StatusNotFound, "Company profile with provided id doesn't exist."},
	{services.ErrCountryNotExists, http.StatusBadRequest, "Country with provided name does not exist in the database."},
	{services.ErrVacancyNotExists, http.StatusNotFound, "Vacancy with provided id doesn't exist."},
	{services.ErrLevelNotExists, http.StatusBadRequest, "Level with provided name does not exist in the database."},
	{services.ErrEmploymentFormatNotExists, http.StatusBadRequest, "Employment format with provided name does not exist in the database."},
	{services.ErrWorkFormatNotExists, http.StatusBadRequest, "Work format with provided name does not exist in the database."},
	{services.ErrRoleNotExists, http.StatusBadRequest, "Role with provided name does not exist."},
	{services.ErrUserAlreadyExists, http.StatusBadRequest, "User with provided username or email already exists."},
	{services.ErrUserNotExists, http.StatusUnauthorized, "User account no longer exists."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password."},
	{services.ErrConfirmationCodeNotExists, http.StatusNotFound, "Confirmation code doesn't exist."},
	{services.ErrConfirmationCodeExpired, http.StatusBadRequest, "Confirmation code expired. A new code has been sent."},
	{services.ErrAlreadyApplied, http.StatusBadRequest, "You have already applied to this vacancy."},
	{services.ErrResponseNotExists, http.StatusNotFound, "Response with provided id doesn't exist."},
	{services.ErrResponseStatusNotExists, http.StatusBadRequest, "Response status with provided name does not exist."},
	{services.ErrReviewNotExists, http.StatusNotFound, "Review with provided id doesn't exist."},
	{services.ErrExtractionDisabled, http.StatusServiceUnavailable, "Vacancy extraction is not configured."},
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dtos.MessageResponse{Message: message})
}

// respondError writes the mapped status for a known service error and a
// generic 500 for everything else.
func respondError(c *gin.Context, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			respondMessage(c, r.status, r.message)
			return
		}
	}

	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error("unhandled error")
	respondMessage(c, http.StatusInternalServerError, "Internal server error.")
}
