package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVacancy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	companyID := mustCreateCompany(t, f.companies, "acme")

	in := vacancyFixture("Go developer", "acme")
	in.Cities = "minsk\nGrodno, MINSK"
	in.Tags = "Go  SQL go docker"
	in.WorkFormats = []string{"Remote work", "Hybrid"}
	id := mustCreateVacancy(t, f.vacancies, in)

	v, err := f.vacancies.GetVacancyByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", v.Name)
	assert.Equal(t, companyID, v.CompanyID)
	assert.Equal(t, "acme", v.Company.Name)
	assert.Equal(t, "Junior", v.Level.Name)

	var tags, cities, works []string
	for _, tag := range v.Tags {
		tags = append(tags, tag.Name)
	}
	for _, c := range v.Cities {
		cities = append(cities, c.Name)
		assert.Equal(t, "Belarus", c.Country.Name)
	}
	for _, w := range v.WorkFormats {
		works = append(works, w.Name)
	}
	assert.ElementsMatch(t, []string{"go", "sql", "docker"}, tags)
	assert.ElementsMatch(t, []string{"Minsk", "Grodno"}, cities)
	assert.ElementsMatch(t, []string{"Remote work", "Hybrid"}, works)
	require.Len(t, v.EmploymentFormats, 1)
	assert.Equal(t, "B2B", v.EmploymentFormats[0].Name)

	ev, ok := f.events.Last(events.VacancyCreated)
	require.True(t, ok)
	assert.Equal(t, id, ev.Payload["vacancy_id"])
}

func TestCreateVacancyErrorsRollBack(t *testing.T) {
	f := newFixture(t)
	mustCreateCompany(t, f.companies, "acme")

	tests := []struct {
		name   string
		mutate func(*dtos.VacancyInput)
		want   error
	}{
		{"unknown company", func(in *dtos.VacancyInput) { in.CompanyName = "nobody" }, ErrCompanyNotExists},
		{"unknown country", func(in *dtos.VacancyInput) { in.Country = "Atlantis" }, ErrCountryNotExists},
		{"unknown level", func(in *dtos.VacancyInput) { in.Level = "Guru" }, ErrLevelNotExists},
		{"unknown employment format", func(in *dtos.VacancyInput) { in.EmploymentFormats = []string{"Barter"} }, ErrEmploymentFormatNotExists},
		{"unknown work format", func(in *dtos.VacancyInput) { in.WorkFormats = []string{"Moon base"} }, ErrWorkFormatNotExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vacancyFixture("backend", "acme")
			in.Tags = "rollback"
			in.Cities = "Vitebsk"
			tt.mutate(&in)

			_, err := f.vacancies.CreateVacancy(context.Background(), in)
			require.ErrorIs(t, err, tt.want)

			assert.Zero(t, countRows(t, f.db, &models.Vacancy{}))
			assert.Zero(t, countRows(t, f.db, &models.Tag{}))
			var vitebsk int64
			require.NoError(t, f.db.Model(&models.City{}).Where("name = ?", "Vitebsk").Count(&vitebsk).Error)
			assert.Zero(t, vitebsk)
		})
	}
}

func TestSearchVacancies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mustCreateCompany(t, f.companies, "acme")
	mustCreateCompany(t, f.companies, "globex")

	goDev := vacancyFixture("Go Developer", "acme")
	goDev.Level = "Senior"
	goDev.Experience = "5+ years"
	goDev.MinSalary, goDev.MaxSalary = uintPtr(3000), uintPtr(5000)
	goDev.Tags = "go kubernetes"
	goDev.Cities = "Minsk, Brest"
	goDev.WorkFormats = []string{"Remote work", "Hybrid"}
	goDevID := mustCreateVacancy(t, f.vacancies, goDev)

	qa := vacancyFixture("QA engineer", "globex")
	qa.Country = "Poland"
	qa.Cities = "Warsaw"
	qa.Tags = "selenium"
	qa.WorkFormats = []string{"Office work"}
	qa.EmploymentFormats = []string{"Employment contract"}
	qaID := mustCreateVacancy(t, f.vacancies, qa)

	front := vacancyFixture("Frontend developer", "globex")
	front.Tags = "react"
	front.MinSalary, front.MaxSalary = nil, nil
	frontID := mustCreateVacancy(t, f.vacancies, front)

	tests := []struct {
		name   string
		filter dtos.VacancySearchFilter
		want   []uint
	}{
		{"no filter", dtos.VacancySearchFilter{}, []uint{frontID, qaID, goDevID}},
		{"name substring", dtos.VacancySearchFilter{Name: "DEVELOPER"}, []uint{frontID, goDevID}},
		{"company", dtos.VacancySearchFilter{CompanyName: "glob"}, []uint{frontID, qaID}},
		{"level", dtos.VacancySearchFilter{Level: "Senior"}, []uint{goDevID}},
		{"experience", dtos.VacancySearchFilter{Experience: "5+"}, []uint{goDevID}},
		{"min salary", dtos.VacancySearchFilter{MinSalary: uintPtr(1000)}, []uint{goDevID}},
		{"max salary", dtos.VacancySearchFilter{MaxSalary: uintPtr(2000)}, []uint{qaID}},
		{"zero salary means unset", dtos.VacancySearchFilter{MinSalary: uintPtr(0)}, []uint{frontID, qaID, goDevID}},
		{"tag", dtos.VacancySearchFilter{Tag: "Kubernetes"}, []uint{goDevID}},
		{"employment format", dtos.VacancySearchFilter{EmploymentFormat: []string{"Employment contract"}}, []uint{qaID}},
		{"work format", dtos.VacancySearchFilter{WorkFormat: []string{"Hybrid"}}, []uint{goDevID}},
		{"several work formats", dtos.VacancySearchFilter{WorkFormat: []string{"Remote work", "Hybrid"}}, []uint{frontID, goDevID}},
		{"country", dtos.VacancySearchFilter{Country: "Poland"}, []uint{qaID}},
		{"city", dtos.VacancySearchFilter{City: "brest"}, []uint{goDevID}},
		{"country and city", dtos.VacancySearchFilter{Country: "Belarus", City: "Minsk"}, []uint{frontID, goDevID}},
		{"nothing matches", dtos.VacancySearchFilter{Name: "designer"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vacancies, err := f.vacancies.SearchVacancies(ctx, tt.filter)
			require.NoError(t, err)

			var got []uint
			for _, v := range vacancies {
				got = append(got, v.ID)
			}
			assert.Equal(t, tt.want, got)

			total, err := f.vacancies.CountVacancies(ctx, tt.filter)
			require.NoError(t, err)
			assert.EqualValues(t, len(tt.want), total)
		})
	}
}

func TestSearchVacanciesWildcardsAreLiteral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mustCreateCompany(t, f.companies, "acme")
	mustCreateCompany(t, f.companies, "50% off")

	underscore := mustCreateVacancy(t, f.vacancies, vacancyFixture("go_dev", "acme"))
	mustCreateVacancy(t, f.vacancies, vacancyFixture("goXdev", "acme"))
	bang := mustCreateVacancy(t, f.vacancies, vacancyFixture("python!", "acme"))
	percent := mustCreateVacancy(t, f.vacancies, vacancyFixture("rust", "50% off"))

	tests := []struct {
		name   string
		filter dtos.VacancySearchFilter
		want   []uint
	}{
		{"underscore", dtos.VacancySearchFilter{Name: "go_"}, []uint{underscore}},
		{"percent in name", dtos.VacancySearchFilter{Name: "%"}, nil},
		{"escape character", dtos.VacancySearchFilter{Name: "!"}, []uint{bang}},
		{"percent in company", dtos.VacancySearchFilter{CompanyName: "0%"}, []uint{percent}},
		{"underscore in experience", dtos.VacancySearchFilter{Experience: "_"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vacancies, err := f.vacancies.SearchVacancies(ctx, tt.filter)
			require.NoError(t, err)

			var got []uint
			for _, v := range vacancies {
				got = append(got, v.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageVacancies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mustCreateCompany(t, f.companies, "acme")

	var ids []uint
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, mustCreateVacancy(t, f.vacancies, vacancyFixture(name, "acme")))
	}

	page, total, err := f.vacancies.PageVacancies(ctx, dtos.VacancySearchFilter{}, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[4], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)

	page, _, err = f.vacancies.PageVacancies(ctx, dtos.VacancySearchFilter{}, 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)

	page, total, err = f.vacancies.PageVacancies(ctx, dtos.VacancySearchFilter{}, 4, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, page)
}

func TestGetVacancyByIDNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.vacancies.GetVacancyByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrVacancyNotExists)
}
