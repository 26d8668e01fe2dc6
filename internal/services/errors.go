package services

import "errors"

var (
	ErrCompanyAlreadyExists      = errors.New("company already exists")
	ErrCompanyNotExists          = errors.New("company does not exist")
	ErrCompanyProfileNotExists   = errors.New("company profile does not exist")
	ErrCountryNotExists          = errors.New("country does not exist")
	ErrVacancyNotExists          = errors.New("vacancy does not exist")
	ErrLevelNotExists            = errors.New("level does not exist")
	ErrEmploymentFormatNotExists = errors.New("employment format does not exist")
	ErrWorkFormatNotExists       = errors.New("work format does not exist")
	ErrRoleNotExists             = errors.New("role does not exist")

	ErrUserAlreadyExists         = errors.New("user already exists")
	ErrUserNotExists             = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrConfirmationCodeNotExists = errors.New("confirmation code does not exist")
	ErrConfirmationCodeExpired   = errors.New("confirmation code expired")

	ErrAlreadyApplied          = errors.New("already applied to vacancy")
	ErrResponseNotExists       = errors.New("response does not exist")
	ErrResponseStatusNotExists = errors.New("response status does not exist")
	ErrReviewNotExists         = errors.New("review does not exist")

	ErrExtractionDisabled = errors.New("extraction is disabled")
)
