package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/cache"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, p, a := companyFixture("acme")
	c.BusinessAreas = "Web  finance WEB"
	id, err := f.companies.CreateCompany(ctx, c, p, a)
	require.NoError(t, err)
	require.NotZero(t, id)

	company, err := f.companies.GetCompanyByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "acme", company.Name)
	assert.EqualValues(t, 100, company.Staff)
	assert.EqualValues(t, 0, company.VacancyCount)

	names := make([]string, 0, len(company.BusinessAreas))
	for _, ba := range company.BusinessAreas {
		names = append(names, ba.Name)
	}
	assert.ElementsMatch(t, []string{"web", "finance"}, names)

	require.NotNil(t, company.Profile)
	assert.Equal(t, "hr@acme.test", company.Profile.Email)
	assert.Equal(t, "Minsk", company.Profile.Address.City.Name)
	assert.Equal(t, "Belarus", company.Profile.Address.City.Country.Name)
	require.NotNil(t, company.Profile.Address.OfficeNumber)
	assert.EqualValues(t, 10, *company.Profile.Address.OfficeNumber)

	ev, ok := f.events.Last(events.CompanyCreated)
	require.True(t, ok)
	assert.Equal(t, id, ev.Payload["company_id"])
}

func TestCreateCompanyDuplicateNameLeavesNoRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mustCreateCompany(t, f.companies, "Acme")

	before := map[string]int64{
		"companies":      countRows(t, f.db, &models.Company{}),
		"profiles":       countRows(t, f.db, &models.CompanyProfile{}),
		"addresses":      countRows(t, f.db, &models.Address{}),
		"cities":         countRows(t, f.db, &models.City{}),
		"business_areas": countRows(t, f.db, &models.BusinessArea{}),
	}

	c, p, a := companyFixture("ACME")
	c.BusinessAreas = "logistics retail"
	a.City = "Grodno"
	a.StreetName = "Sovetskaya"
	_, err := f.companies.CreateCompany(ctx, c, p, a)
	require.ErrorIs(t, err, ErrCompanyAlreadyExists)

	after := map[string]int64{
		"companies":      countRows(t, f.db, &models.Company{}),
		"profiles":       countRows(t, f.db, &models.CompanyProfile{}),
		"addresses":      countRows(t, f.db, &models.Address{}),
		"cities":         countRows(t, f.db, &models.City{}),
		"business_areas": countRows(t, f.db, &models.BusinessArea{}),
	}
	assert.Equal(t, before, after)
	assert.Len(t, f.events.Types(), 1)
}

func TestCreateCompanyUnknownCountryRollsBack(t *testing.T) {
	f := newFixture(t)

	c, p, a := companyFixture("acme")
	a.Country = "Atlantis"
	_, err := f.companies.CreateCompany(context.Background(), c, p, a)
	require.ErrorIs(t, err, ErrCountryNotExists)

	assert.Zero(t, countRows(t, f.db, &models.Company{}))
	assert.Zero(t, countRows(t, f.db, &models.CompanyProfile{}))
	assert.Zero(t, countRows(t, f.db, &models.BusinessArea{}))
	assert.Zero(t, countRows(t, f.db, &models.City{}))
	assert.Empty(t, f.events.Types())
}

func TestCreateCompanyReusesAddress(t *testing.T) {
	f := newFixture(t)
	mustCreateCompany(t, f.companies, "first")
	mustCreateCompany(t, f.companies, "second")

	assert.EqualValues(t, 1, countRows(t, f.db, &models.Address{}))
	assert.EqualValues(t, 1, countRows(t, f.db, &models.City{}))
	assert.EqualValues(t, 2, countRows(t, f.db, &models.BusinessArea{}))
}

func TestGetCompaniesOrderedByVacancyCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiet := mustCreateCompany(t, f.companies, "quiet")
	busy := mustCreateCompany(t, f.companies, "busy")
	middle := mustCreateCompany(t, f.companies, "middle")

	mustCreateVacancy(t, f.vacancies, vacancyFixture("backend", "busy"))
	mustCreateVacancy(t, f.vacancies, vacancyFixture("frontend", "busy"))
	mustCreateVacancy(t, f.vacancies, vacancyFixture("qa", "middle"))

	companies, err := f.companies.GetCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)

	assert.Equal(t, busy, companies[0].ID)
	assert.EqualValues(t, 2, companies[0].VacancyCount)
	assert.Equal(t, middle, companies[1].ID)
	assert.EqualValues(t, 1, companies[1].VacancyCount)
	assert.Equal(t, quiet, companies[2].ID)
	assert.EqualValues(t, 0, companies[2].VacancyCount)
}

func TestGetCompaniesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mem := cache.NewMemory()
	f.companies.Cache = mem
	f.companies.CacheTTL = time.Minute
	f.vacancies.Cache = mem

	mustCreateCompany(t, f.companies, "acme")
	companies, err := f.companies.GetCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)

	_, err = mem.Get(ctx, CompaniesCacheKey)
	require.NoError(t, err)

	// A row written behind the service's back stays invisible until invalidation.
	require.NoError(t, f.db.Create(&models.Company{Name: "hidden"}).Error)
	companies, err = f.companies.GetCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 1)

	mustCreateVacancy(t, f.vacancies, vacancyFixture("backend", "acme"))
	_, err = mem.Get(ctx, CompaniesCacheKey)
	require.ErrorIs(t, err, cache.ErrMiss)

	companies, err = f.companies.GetCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "acme", companies[0].Name)
	assert.EqualValues(t, 1, companies[0].VacancyCount)
}

func TestGetCompanyByIDNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.companies.GetCompanyByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCompanyNotExists)

	_, err = f.companies.GetCompanyProfileByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCompanyProfileNotExists)
}

func TestGetVacanciesByCompanyID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := mustCreateCompany(t, f.companies, "acme")
	other := mustCreateCompany(t, f.companies, "other")

	mustCreateVacancy(t, f.vacancies, vacancyFixture("backend", "acme"))
	mustCreateVacancy(t, f.vacancies, vacancyFixture("frontend", "acme"))
	mustCreateVacancy(t, f.vacancies, vacancyFixture("qa", "other"))

	vacancies, err := f.companies.GetVacanciesByCompanyID(ctx, acme)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	for _, v := range vacancies {
		assert.Equal(t, acme, v.CompanyID)
		assert.Equal(t, "acme", v.Company.Name)
		assert.Equal(t, "Junior", v.Level.Name)
	}

	vacancies, err = f.companies.GetVacanciesByCompanyID(ctx, other)
	require.NoError(t, err)
	assert.Len(t, vacancies, 1)

	_, err = f.companies.GetVacanciesByCompanyID(ctx, 999)
	assert.ErrorIs(t, err, ErrCompanyNotExists)
}
