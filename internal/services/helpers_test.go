package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-board/internal/database/dbtest"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events/eventstest"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

func companyFixture(name string) (dtos.CompanyInput, dtos.CompanyProfileInput, dtos.AddressInput) {
	return dtos.CompanyInput{
			Name:          name,
			Staff:         100,
			BusinessAreas: "web finance",
		}, dtos.CompanyProfileInput{
			Email:        "hr@" + name + ".test",
			FoundingYear: 2010,
			Description:  "test company",
			Phone:        "+375291112233",
			WebsiteLink:  "https://" + name + ".test",
		}, dtos.AddressInput{
			Country:      "Belarus",
			City:         "minsk",
			StreetName:   "Lenina",
			HomeNumber:   1,
			OfficeNumber: uintPtr(10),
		}
}

func vacancyFixture(name, company string) dtos.VacancyInput {
	return dtos.VacancyInput{
		Name:              name,
		CompanyName:       company,
		Level:             "Junior",
		Experience:        "1+ year",
		MinSalary:         uintPtr(500),
		MaxSalary:         uintPtr(1500),
		Description:       "description",
		EmploymentFormats: []string{"B2B"},
		WorkFormats:       []string{"Remote work"},
		Country:           "Belarus",
		Cities:            "Minsk",
		Tags:              "go sql",
	}
}

func mustCreateCompany(t *testing.T, svc *CompanyService, name string) uint {
	t.Helper()
	c, p, a := companyFixture(name)
	id, err := svc.CreateCompany(context.Background(), c, p, a)
	require.NoError(t, err)
	return id
}

func mustCreateVacancy(t *testing.T, svc *VacancyService, in dtos.VacancyInput) uint {
	t.Helper()
	id, err := svc.CreateVacancy(context.Background(), in)
	require.NoError(t, err)
	return id
}

func mustCreateUser(t *testing.T, db *gorm.DB, username, role string, active bool) models.User {
	t.Helper()
	var r models.Role
	require.NoError(t, db.Where("name = ?", role).First(&r).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
		IsActive:     active,
		RoleID:       r.ID,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

type fixture struct {
	db        *gorm.DB
	events    *eventstest.Recorder
	companies *CompanyService
	vacancies *VacancyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	rec := &eventstest.Recorder{}
	return &fixture{
		db:        db,
		events:    rec,
		companies: NewCompanyService(db, rec, nil, 0),
		vacancies: NewVacancyService(db, rec, nil),
	}
}
