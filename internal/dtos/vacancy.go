package dtos

import (
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
)

type VacancyInput struct {
	Name              string
	CompanyName       string
	Level             string
	Experience        string
	MinSalary         *uint
	MaxSalary         *uint
	Description       string
	EmploymentFormats []string
	WorkFormats       []string
	Country           string
	Cities            string
	Tags              string
	Attachment        string
}

type VacancyCreateRequest struct {
	Name             string   `json:"name" binding:"required,max=30"`
	CompanyName      string   `json:"company_name" binding:"required,max=30"`
	Level            string   `json:"level" binding:"required,max=30"`
	Experience       string   `json:"experience" binding:"required,max=30"`
	MinSalary        *uint    `json:"min_salary"`
	MaxSalary        *uint    `json:"max_salary"`
	Description      string   `json:"description" binding:"required"`
	EmploymentFormat []string `json:"employment_format" binding:"required,min=1,dive,max=30"`
	WorkFormat       []string `json:"work_format" binding:"required,min=1,dive,max=30"`
	Country          string   `json:"country" binding:"required,max=30"`
	City             string   `json:"city" binding:"required,max=30"`
	Tags             string   `json:"tags" binding:"required,maxitems=5,maxitemlen=30"`
	Attachment       string   `json:"attachment" binding:"omitempty,max=255"`
}

// Validate reports cross-field problems the binding tags cannot express.
func (r VacancyCreateRequest) Validate() map[string]string {
	if r.MinSalary != nil && r.MaxSalary != nil && *r.MinSalary > *r.MaxSalary {
		return map[string]string{"max_salary": "Max salary must not be less than min salary."}
	}
	return nil
}

func (r VacancyCreateRequest) Input() VacancyInput {
	return VacancyInput{
		Name:              strings.TrimSpace(r.Name),
		CompanyName:       strings.TrimSpace(r.CompanyName),
		Level:             strings.TrimSpace(r.Level),
		Experience:        strings.TrimSpace(r.Experience),
		MinSalary:         r.MinSalary,
		MaxSalary:         r.MaxSalary,
		Description:       strings.TrimSpace(r.Description),
		EmploymentFormats: trimAll(r.EmploymentFormat),
		WorkFormats:       trimAll(r.WorkFormat),
		Country:           strings.TrimSpace(r.Country),
		Cities:            r.City,
		Tags:              r.Tags,
		Attachment:        r.Attachment,
	}
}

// VacancySearchFilter carries the optional query filters of GET /vacancies/.
type VacancySearchFilter struct {
	Name             string   `form:"name" binding:"max=30"`
	CompanyName      string   `form:"company_name" binding:"max=30"`
	Level            string   `form:"level" binding:"max=30"`
	Experience       string   `form:"experience" binding:"max=30"`
	MinSalary        *uint    `form:"min_salary"`
	MaxSalary        *uint    `form:"max_salary"`
	Tag              string   `form:"tag"`
	EmploymentFormat []string `form:"employment_format" binding:"dive,max=30"`
	WorkFormat       []string `form:"work_format" binding:"dive,max=30"`
	Country          string   `form:"country" binding:"max=30"`
	City             string   `form:"city" binding:"max=30"`
}

func (f *VacancySearchFilter) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.Level = strings.TrimSpace(f.Level)
	f.Experience = strings.TrimSpace(f.Experience)
	f.Tag = strings.TrimSpace(f.Tag)
	f.Country = strings.TrimSpace(f.Country)
	f.City = strings.TrimSpace(f.City)
	f.EmploymentFormat = trimAll(f.EmploymentFormat)
	f.WorkFormat = trimAll(f.WorkFormat)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type VacancyCreatedResponse struct {
	Message   string `json:"message"`
	VacancyID uint   `json:"vacancy_id"`
}

type VacancyInfo struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Company    NamedRef `json:"company"`
	Level      NamedRef `json:"level"`
	Experience string   `json:"experience"`
	MinSalary  *uint    `json:"min_salary"`
	MaxSalary  *uint    `json:"max_salary"`
}

type VacancyExtendedInfo struct {
	VacancyInfo
	Description      string     `json:"description"`
	EmploymentFormat []NamedRef `json:"employment_format"`
	WorkFormat       []NamedRef `json:"work_format"`
	City             []CityView `json:"city"`
	Tags             []NamedRef `json:"tags"`
	Attachment       string     `json:"attachment"`
}

func NewVacancyInfo(v models.Vacancy) VacancyInfo {
	return VacancyInfo{
		ID:         v.ID,
		Name:       v.Name,
		Company:    NamedRef{ID: v.Company.ID, Name: v.Company.Name},
		Level:      NamedRef{ID: v.Level.ID, Name: v.Level.Name},
		Experience: v.Experience,
		MinSalary:  v.MinSalary,
		MaxSalary:  v.MaxSalary,
	}
}

func NewVacancyList(vacancies []models.Vacancy) []VacancyInfo {
	out := make([]VacancyInfo, 0, len(vacancies))
	for _, v := range vacancies {
		out = append(out, NewVacancyInfo(v))
	}
	return out
}

func NewVacancyExtendedInfo(v models.Vacancy) VacancyExtendedInfo {
	return VacancyExtendedInfo{
		VacancyInfo:      NewVacancyInfo(v),
		Description:      v.Description,
		EmploymentFormat: employmentFormatRefs(v.EmploymentFormats),
		WorkFormat:       workFormatRefs(v.WorkFormats),
		City:             cityViews(v.Cities),
		Tags:             tagRefs(v.Tags),
		Attachment:       v.Attachment,
	}
}
