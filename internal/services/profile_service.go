package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService manages the candidate profile attached to a user.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

func (s *ProfileService) load(tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.
		Preload("User").
		Preload("City.Country").
		Preload("Level").
		Preload("Tags").
		Preload("EmploymentFormats").
		Preload("WorkFormats").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns the stored profile, or an empty one for users that
// never saved it.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.load(s.DB.WithContext(ctx), userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := getUser(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{UserID: userID, User: *user}, nil
}

// getUser resolves the owner of a token, which the sweeper may have removed.
func getUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotExists
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile upserts the profile and replaces its tags and formats.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, in dtos.ProfileUpdateInput) (*models.Profile, error) {
	var saved *models.Profile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getUser(tx, userID); err != nil {
			return err
		}

		tags, err := getOrCreateTags(tx, in.Tags)
		if err != nil {
			return err
		}
		employmentFormats, err := getEmploymentFormats(tx, in.EmploymentFormats)
		if err != nil {
			return err
		}
		workFormats, err := getWorkFormats(tx, in.WorkFormats)
		if err != nil {
			return err
		}

		var cityID *uint
		if in.City != "" {
			country, err := getCountry(tx, in.Country)
			if err != nil {
				return err
			}
			city, err := getOrCreateCity(tx, country, in.City)
			if err != nil {
				return err
			}
			cityID = &city.ID
		}

		var levelID *uint
		if in.Level != "" {
			level, err := getLevel(tx, in.Level)
			if err != nil {
				return err
			}
			levelID = &level.ID
		}

		var profile models.Profile
		err = tx.Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		profile.UserID = userID
		profile.Phone = in.Phone
		profile.Age = in.Age
		profile.SummaryLink = in.SummaryLink
		profile.ExperienceDescription = in.ExperienceDescription
		profile.LinkedinLink = in.LinkedinLink
		profile.GithubLink = in.GithubLink
		profile.WorkExperience = in.WorkExperience
		profile.MinSalary = in.MinSalary
		profile.MaxSalary = in.MaxSalary
		profile.CityID = cityID
		profile.LevelID = levelID

		if err := tx.Omit(clause.Associations).Save(&profile).Error; err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		if err := tx.Model(&profile).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Model(&profile).Association("EmploymentFormats").Replace(employmentFormats); err != nil {
			return err
		}
		if err := tx.Model(&profile).Association("WorkFormats").Replace(workFormats); err != nil {
			return err
		}

		saved, err = s.load(tx, userID)
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("profile not saved")
		return nil, err
	}
	logrus.WithField("user_id", userID).Info("profile saved")
	return saved, nil
}
