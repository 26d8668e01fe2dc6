package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

// SplitWords splits tags and business areas typed as one string.
func SplitWords(raw string) []string {
	return dedupe(strings.Fields(raw))
}

// SplitLines splits a city list on newlines and commas.
func SplitLines(raw string) []string {
	return dedupe(strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	}))
}

func dedupe(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func getOrCreateTags(tx *gorm.DB, raw string) ([]models.Tag, error) {
	names := SplitWords(raw)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where(models.Tag{Name: strings.ToLower(name)}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func getOrCreateBusinessAreas(tx *gorm.DB, raw string) ([]models.BusinessArea, error) {
	names := SplitWords(raw)
	areas := make([]models.BusinessArea, 0, len(names))
	for _, name := range names {
		var area models.BusinessArea
		if err := tx.Where(models.BusinessArea{Name: strings.ToLower(name)}).FirstOrCreate(&area).Error; err != nil {
			return nil, fmt.Errorf("business area %q: %w", name, err)
		}
		areas = append(areas, area)
	}
	return areas, nil
}

func getCountry(tx *gorm.DB, name string) (*models.Country, error) {
	var country models.Country
	err := tx.Where("name = ?", name).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCountryNotExists
	}
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func getOrCreateCity(tx *gorm.DB, country *models.Country, name string) (*models.City, error) {
	city := models.City{Name: capitalize(name), CountryID: country.ID}
	if err := tx.Where(models.City{Name: city.Name, CountryID: country.ID}).FirstOrCreate(&city).Error; err != nil {
		return nil, fmt.Errorf("city %q: %w", name, err)
	}
	city.Country = *country
	return &city, nil
}

func getOrCreateCities(tx *gorm.DB, countryName, raw string) ([]models.City, error) {
	country, err := getCountry(tx, countryName)
	if err != nil {
		return nil, err
	}
	names := SplitLines(raw)
	cities := make([]models.City, 0, len(names))
	for _, name := range names {
		city, err := getOrCreateCity(tx, country, name)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *city)
	}
	return cities, nil
}

func getOrCreateAddress(tx *gorm.DB, in dtos.AddressInput) (*models.Address, error) {
	var address models.Address
	q := tx.Model(&models.Address{}).
		Select("addresses.*").
		Joins("JOIN cities ON cities.id = addresses.city_id").
		Joins("JOIN countries ON countries.id = cities.country_id").
		Where("addresses.street_name = ? AND addresses.home_number = ?", in.StreetName, in.HomeNumber).
		Where("cities.name = ? AND countries.name = ?", capitalize(in.City), in.Country)
	if in.OfficeNumber == nil {
		q = q.Where("addresses.office_number IS NULL")
	} else {
		q = q.Where("addresses.office_number = ?", *in.OfficeNumber)
	}
	err := q.First(&address).Error
	if err == nil {
		return &address, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	country, err := getCountry(tx, in.Country)
	if err != nil {
		return nil, err
	}
	city, err := getOrCreateCity(tx, country, in.City)
	if err != nil {
		return nil, err
	}
	address = models.Address{
		StreetName:   in.StreetName,
		HomeNumber:   in.HomeNumber,
		OfficeNumber: in.OfficeNumber,
		CityID:       city.ID,
	}
	if err := tx.Create(&address).Error; err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &address, nil
}

func getLevel(tx *gorm.DB, name string) (*models.Level, error) {
	var level models.Level
	err := tx.Where("name = ?", name).First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotExists, name)
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func getEmploymentFormats(tx *gorm.DB, names []string) ([]models.EmploymentFormat, error) {
	formats := make([]models.EmploymentFormat, 0, len(names))
	for _, name := range dedupe(names) {
		var f models.EmploymentFormat
		err := tx.Where("name = ?", name).First(&f).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEmploymentFormatNotExists, name)
		}
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

func getWorkFormats(tx *gorm.DB, names []string) ([]models.WorkFormat, error) {
	formats := make([]models.WorkFormat, 0, len(names))
	for _, name := range dedupe(names) {
		var f models.WorkFormat
		err := tx.Where("name = ?", name).First(&f).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWorkFormatNotExists, name)
		}
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// ReferenceService lists the choices offered by forms and search filters.
type ReferenceService struct {
	DB *gorm.DB
}

func NewReferenceService(db *gorm.DB) *ReferenceService {
	return &ReferenceService{DB: db}
}

func (s *ReferenceService) ListLevels(ctx context.Context) ([]models.Level, error) {
	var out []models.Level
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	if err := s.DB.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReferenceService) ListEmploymentFormats(ctx context.Context) ([]models.EmploymentFormat, error) {
	var out []models.EmploymentFormat
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReferenceService) ListWorkFormats(ctx context.Context) ([]models.WorkFormat, error) {
	var out []models.WorkFormat
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReferenceService) ListResponseStatuses(ctx context.Context) ([]models.ResponseStatus, error) {
	var out []models.ResponseStatus
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReferenceService) ListRoles(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// All gathers every listing into one response.
func (s *ReferenceService) All(ctx context.Context) (*dtos.ReferencesResponse, error) {
	levels, err := s.ListLevels(ctx)
	if err != nil {
		return nil, err
	}
	countries, err := s.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	employment, err := s.ListEmploymentFormats(ctx)
	if err != nil {
		return nil, err
	}
	work, err := s.ListWorkFormats(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.ListResponseStatuses(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dtos.ReferencesResponse{
		Levels:            make([]dtos.NamedRef, 0, len(levels)),
		Countries:         make([]dtos.NamedRef, 0, len(countries)),
		EmploymentFormats: make([]dtos.NamedRef, 0, len(employment)),
		WorkFormats:       make([]dtos.NamedRef, 0, len(work)),
		ResponseStatuses:  make([]dtos.NamedRef, 0, len(statuses)),
		Roles:             make([]dtos.NamedRef, 0, len(roles)),
	}
	for _, l := range levels {
		resp.Levels = append(resp.Levels, dtos.NamedRef{ID: l.ID, Name: l.Name})
	}
	for _, c := range countries {
		resp.Countries = append(resp.Countries, dtos.NamedRef{ID: c.ID, Name: c.Name})
	}
	for _, f := range employment {
		resp.EmploymentFormats = append(resp.EmploymentFormats, dtos.NamedRef{ID: f.ID, Name: f.Name})
	}
	for _, f := range work {
		resp.WorkFormats = append(resp.WorkFormats, dtos.NamedRef{ID: f.ID, Name: f.Name})
	}
	for _, st := range statuses {
		resp.ResponseStatuses = append(resp.ResponseStatuses, dtos.NamedRef{ID: st.ID, Name: st.Name})
	}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, dtos.NamedRef{ID: r.ID, Name: r.Name})
	}
	return resp, nil
}
