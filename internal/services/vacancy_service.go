package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-board/internal/cache"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VacancyService struct {
	DB     *gorm.DB
	Events events.Publisher
	Cache  cache.Cache
}

func NewVacancyService(db *gorm.DB, publisher events.Publisher, c cache.Cache) *VacancyService {
	return &VacancyService{
		DB:     db,
		Events: publisher,
		Cache:  c,
	}
}

// CreateVacancy stores the vacancy and links its tags, formats and cities.
func (s *VacancyService) CreateVacancy(ctx context.Context, in dtos.VacancyInput) (uint, error) {
	log := logrus.WithFields(logrus.Fields{
		"vacancy_name": in.Name,
		"company_name": in.CompanyName,
	})

	var vacancyID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := getOrCreateTags(tx, in.Tags)
		if err != nil {
			return err
		}

		var company models.Company
		err = tx.Where("name = ?", in.CompanyName).First(&company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotExists
		}
		if err != nil {
			return err
		}

		cities, err := getOrCreateCities(tx, in.Country, in.Cities)
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

		level, err := getLevel(tx, in.Level)
		if err != nil {
			return err
		}

		vacancy := models.Vacancy{
			Name:              in.Name,
			Experience:        in.Experience,
			MinSalary:         in.MinSalary,
			MaxSalary:         in.MaxSalary,
			Description:       in.Description,
			Attachment:        in.Attachment,
			LevelID:           level.ID,
			CompanyID:         company.ID,
			Tags:              tags,
			EmploymentFormats: employmentFormats,
			WorkFormats:       workFormats,
			Cities:            cities,
		}
		// Reference rows already exist; only the join rows are written.
		err = tx.Omit("Tags.*", "EmploymentFormats.*", "WorkFormats.*", "Cities.*").Create(&vacancy).Error
		if err != nil {
			return fmt.Errorf("create vacancy: %w", err)
		}

		vacancyID = vacancy.ID
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("vacancy not created")
		return 0, err
	}

	log.WithField("vacancy_id", vacancyID).Info("vacancy created")
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, CompaniesCacheKey); err != nil {
			log.WithError(err).Warn("could not invalidate company list")
		}
	}
	events.Emit(ctx, s.Events, events.VacancyCreated, map[string]any{
		"vacancy_id":   vacancyID,
		"name":         in.Name,
		"company_name": in.CompanyName,
	})
	return vacancyID, nil
}

// searchQuery applies every filter that is set. Many-to-many filters go
// through IN subqueries so a vacancy matching several rows appears once.
func (s *VacancyService) searchQuery(ctx context.Context, f dtos.VacancySearchFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.Vacancy{})

	if f.Name != "" {
		q = q.Where("LOWER(vacancies.name) LIKE ? ESCAPE '!'", likePattern(f.Name))
	}
	if f.CompanyName != "" {
		q = q.Where("vacancies.company_id IN (?)",
			s.DB.Model(&models.Company{}).Select("id").Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(f.CompanyName)))
	}
	if f.Level != "" {
		q = q.Where("vacancies.level_id IN (?)",
			s.DB.Model(&models.Level{}).Select("id").Where("name = ?", f.Level))
	}
	if f.Experience != "" {
		q = q.Where("LOWER(vacancies.experience) LIKE ? ESCAPE '!'", likePattern(f.Experience))
	}
	if f.MinSalary != nil && *f.MinSalary > 0 {
		q = q.Where("vacancies.min_salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil && *f.MaxSalary > 0 {
		q = q.Where("vacancies.max_salary <= ?", *f.MaxSalary)
	}
	if len(f.EmploymentFormat) > 0 {
		q = q.Where("vacancies.id IN (?)",
			s.DB.Table("vacancy_employment_formats").
				Select("vacancy_employment_formats.vacancy_id").
				Joins("JOIN employment_formats ON employment_formats.id = vacancy_employment_formats.employment_format_id").
				Where("employment_formats.name IN ?", f.EmploymentFormat))
	}
	if len(f.WorkFormat) > 0 {
		q = q.Where("vacancies.id IN (?)",
			s.DB.Table("vacancy_work_formats").
				Select("vacancy_work_formats.vacancy_id").
				Joins("JOIN work_formats ON work_formats.id = vacancy_work_formats.work_format_id").
				Where("work_formats.name IN ?", f.WorkFormat))
	}
	if f.Country != "" {
		q = q.Where("vacancies.id IN (?)",
			s.DB.Table("vacancy_cities").
				Select("vacancy_cities.vacancy_id").
				Joins("JOIN cities ON cities.id = vacancy_cities.city_id").
				Joins("JOIN countries ON countries.id = cities.country_id").
				Where("countries.name = ?", f.Country))
	}
	if f.City != "" {
		q = q.Where("vacancies.id IN (?)",
			s.DB.Table("vacancy_cities").
				Select("vacancy_cities.vacancy_id").
				Joins("JOIN cities ON cities.id = vacancy_cities.city_id").
				Where("LOWER(cities.name) = ?", strings.ToLower(f.City)))
	}
	if f.Tag != "" {
		q = q.Where("vacancies.id IN (?)",
			s.DB.Table("vacancies_tags").
				Select("vacancies_tags.vacancy_id").
				Joins("JOIN tags ON tags.id = vacancies_tags.tag_id").
				Where("tags.name = ?", strings.ToLower(f.Tag)))
	}
	return q
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern matches s as a literal substring. '!' is the escape character
// since backslash needs different quoting in MySQL and Postgres.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// SearchVacancies returns every vacancy matching the filter, newest first.
func (s *VacancyService) SearchVacancies(ctx context.Context, f dtos.VacancySearchFilter) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := s.searchQuery(ctx, f).
		Preload("Level").
		Preload("Company").
		Order("vacancies.id DESC").
		Find(&vacancies).Error
	if err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (s *VacancyService) CountVacancies(ctx context.Context, f dtos.VacancySearchFilter) (int64, error) {
	var total int64
	if err := s.searchQuery(ctx, f).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// PageVacancies returns one page of search results and the total match count.
// Pages start at 1.
func (s *VacancyService) PageVacancies(ctx context.Context, f dtos.VacancySearchFilter, page, perPage int) ([]models.Vacancy, int64, error) {
	total, err := s.CountVacancies(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}

	var vacancies []models.Vacancy
	err = s.searchQuery(ctx, f).
		Preload("Level").
		Preload("Company").
		Order("vacancies.id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&vacancies).Error
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (s *VacancyService) GetVacancyByID(ctx context.Context, id uint) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := s.DB.WithContext(ctx).
		Preload("Level").
		Preload("Company").
		Preload("Tags").
		Preload("EmploymentFormats").
		Preload("WorkFormats").
		Preload("Cities.Country").
		First(&vacancy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVacancyNotExists
	}
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}
