package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Name of the status a new response starts in.
const initialResponseStatus = "New"

type ResponseService struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewResponseService(db *gorm.DB, publisher events.Publisher) *ResponseService {
	return &ResponseService{DB: db, Events: publisher}
}

func getResponseStatus(tx *gorm.DB, name string) (*models.ResponseStatus, error) {
	var status models.ResponseStatus
	err := tx.Where("name = ?", capitalize(name)).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrResponseStatusNotExists, name)
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ApplyToVacancy records a candidate's response. A user answers a vacancy once.
func (s *ResponseService) ApplyToVacancy(ctx context.Context, userID, vacancyID uint, req dtos.ApplyRequest) (*models.Response, error) {
	log := logrus.WithFields(logrus.Fields{"user_id": userID, "vacancy_id": vacancyID})

	var response models.Response
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vacancies int64
		if err := tx.Model(&models.Vacancy{}).Where("id = ?", vacancyID).Count(&vacancies).Error; err != nil {
			return err
		}
		if vacancies == 0 {
			return ErrVacancyNotExists
		}

		var existing int64
		if err := tx.Model(&models.Response{}).
			Where("user_id = ? AND vacancy_id = ?", userID, vacancyID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyApplied
		}

		status, err := getResponseStatus(tx, initialResponseStatus)
		if err != nil {
			return err
		}

		response = models.Response{
			UserID:           userID,
			VacancyID:        vacancyID,
			CoverNote:        req.CoverNote,
			UserPhone:        req.UserPhone,
			SummaryLink:      req.SummaryLink,
			ResponseStatusID: status.ID,
		}
		if err := tx.Create(&response).Error; err != nil {
			return fmt.Errorf("create response: %w", err)
		}
		response.ResponseStatus = *status
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("response not created")
		return nil, err
	}

	log.WithField("response_id", response.ID).Info("candidate applied")
	events.Emit(ctx, s.Events, events.ResponseCreated, map[string]any{
		"response_id": response.ID,
		"user_id":     userID,
		"vacancy_id":  vacancyID,
	})
	return &response, nil
}

func (s *ResponseService) ListVacancyResponses(ctx context.Context, vacancyID uint) ([]models.Response, error) {
	var vacancies int64
	if err := s.DB.WithContext(ctx).Model(&models.Vacancy{}).Where("id = ?", vacancyID).Count(&vacancies).Error; err != nil {
		return nil, err
	}
	if vacancies == 0 {
		return nil, ErrVacancyNotExists
	}

	var responses []models.Response
	err := s.DB.WithContext(ctx).
		Preload("ResponseStatus").
		Where("vacancy_id = ?", vacancyID).
		Order("id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *ResponseService) ListUserResponses(ctx context.Context, userID uint) ([]models.Response, error) {
	var responses []models.Response
	err := s.DB.WithContext(ctx).
		Preload("ResponseStatus").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// UpdateResponseStatus moves a response to the named status.
func (s *ResponseService) UpdateResponseStatus(ctx context.Context, responseID uint, statusName string) (*models.Response, error) {
	var response models.Response
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&response, responseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResponseNotExists
		}
		if err != nil {
			return err
		}

		status, err := getResponseStatus(tx, statusName)
		if err != nil {
			return err
		}

		if err := tx.Model(&response).Update("response_status_id", status.ID).Error; err != nil {
			return err
		}
		response.ResponseStatusID = status.ID
		response.ResponseStatus = *status
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"response_id": responseID,
		"status":      response.ResponseStatus.Name,
	}).Info("response status changed")
	events.Emit(ctx, s.Events, events.ResponseStatusChanged, map[string]any{
		"response_id": responseID,
		"user_id":     response.UserID,
		"status":      response.ResponseStatus.Name,
	})
	return &response, nil
}
