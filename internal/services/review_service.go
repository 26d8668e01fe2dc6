package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxReviewLength = 800

type ReviewService struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewReviewService(db *gorm.DB, publisher events.Publisher) *ReviewService {
	return &ReviewService{DB: db, Events: publisher}
}

func (s *ReviewService) AddReview(ctx context.Context, userID, companyID uint, text string) (*models.Review, error) {
	if len([]rune(text)) > maxReviewLength {
		return nil, fmt.Errorf("review longer than %d characters", maxReviewLength)
	}

	var companies int64
	if err := s.DB.WithContext(ctx).Model(&models.Company{}).Where("id = ?", companyID).Count(&companies).Error; err != nil {
		return nil, err
	}
	if companies == 0 {
		return nil, ErrCompanyNotExists
	}

	review := models.Review{CompanyID: companyID, UserID: userID, Text: text}
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if err := s.DB.WithContext(ctx).Preload("User").First(&review, review.ID).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"company_id": companyID, "review_id": review.ID}).Info("review added")
	events.Emit(ctx, s.Events, events.ReviewCreated, map[string]any{
		"review_id":  review.ID,
		"company_id": companyID,
	})
	return &review, nil
}

// ListCompanyReviews returns the company's reviews, newest first.
func (s *ReviewService) ListCompanyReviews(ctx context.Context, companyID uint) ([]models.Review, error) {
	var companies int64
	if err := s.DB.WithContext(ctx).Model(&models.Company{}).Where("id = ?", companyID).Count(&companies).Error; err != nil {
		return nil, err
	}
	if companies == 0 {
		return nil, ErrCompanyNotExists
	}

	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// React bumps the like or dislike counter in place.
func (s *ReviewService) React(ctx context.Context, reviewID uint, like bool) (*models.Review, error) {
	column := "dislike_counter"
	if like {
		column = "likes_counter"
	}

	res := s.DB.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrReviewNotExists
	}

	var review models.Review
	err := s.DB.WithContext(ctx).Preload("User").First(&review, reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotExists
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
