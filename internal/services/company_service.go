package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/job-board/internal/cache"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// CompaniesCacheKey holds the serialized company listing.
const CompaniesCacheKey = "companies:list"

const vacancyCountSelect = "companies.*, (SELECT COUNT(*) FROM vacancies WHERE vacancies.company_id = companies.id) AS vacancy_count"

type CompanyService struct {
	DB       *gorm.DB
	Events   events.Publisher
	Cache    cache.Cache
	CacheTTL time.Duration

	group singleflight.Group
}

func NewCompanyService(db *gorm.DB, publisher events.Publisher, c cache.Cache, ttl time.Duration) *CompanyService {
	return &CompanyService{
		DB:       db,
		Events:   publisher,
		Cache:    c,
		CacheTTL: ttl,
	}
}

// CreateCompany stores the company with its profile and address. Nothing is
// written when any step fails.
func (s *CompanyService) CreateCompany(ctx context.Context, company dtos.CompanyInput, profile dtos.CompanyProfileInput, address dtos.AddressInput) (uint, error) {
	log := logrus.WithField("company_name", company.Name)

	var companyID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Company{}).Where("LOWER(name) = LOWER(?)", company.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCompanyAlreadyExists
		}

		areas, err := getOrCreateBusinessAreas(tx, company.BusinessAreas)
		if err != nil {
			return err
		}

		addr, err := getOrCreateAddress(tx, address)
		if err != nil {
			return err
		}

		created := models.Company{
			Name:          company.Name,
			Staff:         company.Staff,
			BusinessAreas: areas,
		}
		if err := tx.Omit("BusinessAreas.*").Create(&created).Error; err != nil {
			return fmt.Errorf("create company: %w", err)
		}

		p := models.CompanyProfile{
			CompanyID:    created.ID,
			Logo:         profile.Logo,
			Email:        profile.Email,
			FoundingYear: profile.FoundingYear,
			Description:  profile.Description,
			Phone:        profile.Phone,
			WebsiteLink:  profile.WebsiteLink,
			LinkedinLink: profile.LinkedinLink,
			GithubLink:   profile.GithubLink,
			TwitterLink:  profile.TwitterLink,
			AddressID:    addr.ID,
		}
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("create company profile: %w", err)
		}

		companyID = created.ID
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("company not created")
		return 0, err
	}

	log.WithField("company_id", companyID).Info("company created")
	s.InvalidateList(ctx)
	events.Emit(ctx, s.Events, events.CompanyCreated, map[string]any{
		"company_id": companyID,
		"name":       company.Name,
	})
	return companyID, nil
}

// GetCompanies lists every company with its vacancy count, busiest first.
func (s *CompanyService) GetCompanies(ctx context.Context) ([]models.Company, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, CompaniesCacheKey); err == nil {
			var companies []models.Company
			if err := json.Unmarshal(raw, &companies); err == nil {
				return companies, nil
			}
		}
	}

	v, err, _ := s.group.Do(CompaniesCacheKey, func() (any, error) {
		companies, err := s.loadCompanies(ctx)
		if err != nil {
			return nil, err
		}
		if s.Cache != nil {
			if raw, err := json.Marshal(companies); err == nil {
				if err := s.Cache.Set(ctx, CompaniesCacheKey, raw, s.CacheTTL); err != nil {
					logrus.WithError(err).Warn("could not cache company list")
				}
			}
		}
		return companies, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Company), nil
}

func (s *CompanyService) loadCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := s.DB.WithContext(ctx).
		Model(&models.Company{}).
		Select(vacancyCountSelect).
		Order("vacancy_count DESC").
		Order("companies.id ASC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// InvalidateList drops the cached company listing.
func (s *CompanyService) InvalidateList(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, CompaniesCacheKey); err != nil {
		logrus.WithError(err).Warn("could not invalidate company list")
	}
}

func (s *CompanyService) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Model(&models.Company{}).
		Select(vacancyCountSelect).
		Preload("BusinessAreas").
		Preload("Profile.Address.City.Country").
		Where("companies.id = ?", id).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotExists
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) GetCompanyProfileByID(ctx context.Context, companyID uint) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := s.DB.WithContext(ctx).
		Preload("Address.City.Country").
		Where("company_id = ?", companyID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyProfileNotExists
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetVacanciesByCompanyID lists the company's vacancies, recently updated first.
func (s *CompanyService) GetVacanciesByCompanyID(ctx context.Context, companyID uint) ([]models.Vacancy, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Company{}).Where("id = ?", companyID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCompanyNotExists
	}

	var vacancies []models.Vacancy
	err := s.DB.WithContext(ctx).
		Preload("Level").
		Preload("Company").
		Where("company_id = ?", companyID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&vacancies).Error
	if err != nil {
		return nil, err
	}
	return vacancies, nil
}
