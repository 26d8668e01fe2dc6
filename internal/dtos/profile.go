package dtos

import (
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
)

type ProfileUpdateInput struct {
	Phone                 string
	Age                   uint
	SummaryLink           string
	ExperienceDescription string
	LinkedinLink          string
	GithubLink            string
	WorkExperience        int
	MinSalary             *uint
	MaxSalary             *uint
	Country               string
	City                  string
	Level                 string
	Tags                  string
	EmploymentFormats     []string
	WorkFormats           []string
}

type ProfileUpdateRequest struct {
	Phone                 string   `json:"phone" binding:"max=30"`
	Age                   uint     `json:"age" binding:"omitempty,min=14,max=120"`
	SummaryLink           string   `json:"summary_link" binding:"omitempty,max=100"`
	ExperienceDescription string   `json:"experience_description" binding:"max=800"`
	LinkedinLink          string   `json:"linkedin_link" binding:"omitempty,max=100"`
	GithubLink            string   `json:"github_link" binding:"omitempty,max=100"`
	WorkExperience        int      `json:"work_experience" binding:"min=0"`
	MinSalary             *uint    `json:"min_salary"`
	MaxSalary             *uint    `json:"max_salary"`
	Country               string   `json:"country" binding:"required_with=City,max=30"`
	City                  string   `json:"city" binding:"max=30"`
	Level                 string   `json:"level" binding:"max=30"`
	Tags                  string   `json:"tags" binding:"maxitems=5,maxitemlen=30"`
	EmploymentFormat      []string `json:"employment_format" binding:"dive,max=30"`
	WorkFormat            []string `json:"work_format" binding:"dive,max=30"`
}

func (r ProfileUpdateRequest) Validate() map[string]string {
	if r.MinSalary != nil && r.MaxSalary != nil && *r.MinSalary > *r.MaxSalary {
		return map[string]string{"max_salary": "Max salary must not be less than min salary."}
	}
	return nil
}

func (r ProfileUpdateRequest) Input() ProfileUpdateInput {
	return ProfileUpdateInput{
		Phone:                 strings.TrimSpace(r.Phone),
		Age:                   r.Age,
		SummaryLink:           strings.TrimSpace(r.SummaryLink),
		ExperienceDescription: strings.TrimSpace(r.ExperienceDescription),
		LinkedinLink:          strings.TrimSpace(r.LinkedinLink),
		GithubLink:            strings.TrimSpace(r.GithubLink),
		WorkExperience:        r.WorkExperience,
		MinSalary:             r.MinSalary,
		MaxSalary:             r.MaxSalary,
		Country:               strings.TrimSpace(r.Country),
		City:                  strings.TrimSpace(r.City),
		Level:                 strings.TrimSpace(r.Level),
		Tags:                  r.Tags,
		EmploymentFormats:     trimAll(r.EmploymentFormat),
		WorkFormats:           trimAll(r.WorkFormat),
	}
}

type ProfileView struct {
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	Age                   uint       `json:"age"`
	SummaryLink           string     `json:"summary_link"`
	ExperienceDescription string     `json:"experience_description"`
	LinkedinLink          string     `json:"linkedin_link"`
	GithubLink            string     `json:"github_link"`
	WorkExperience        int        `json:"work_experience"`
	MinSalary             *uint      `json:"min_salary"`
	MaxSalary             *uint      `json:"max_salary"`
	City                  *CityView  `json:"city"`
	Level                 *NamedRef  `json:"level"`
	Tags                  []NamedRef `json:"tags"`
	EmploymentFormat      []NamedRef `json:"employment_format"`
	WorkFormat            []NamedRef `json:"work_format"`
}

func NewProfileView(p models.Profile) ProfileView {
	v := ProfileView{
		Username:              p.User.Username,
		Email:                 p.User.Email,
		Phone:                 p.Phone,
		Age:                   p.Age,
		SummaryLink:           p.SummaryLink,
		ExperienceDescription: p.ExperienceDescription,
		LinkedinLink:          p.LinkedinLink,
		GithubLink:            p.GithubLink,
		WorkExperience:        p.WorkExperience,
		MinSalary:             p.MinSalary,
		MaxSalary:             p.MaxSalary,
		Tags:                  tagRefs(p.Tags),
		EmploymentFormat:      employmentFormatRefs(p.EmploymentFormats),
		WorkFormat:            workFormatRefs(p.WorkFormats),
	}
	if p.City != nil {
		c := NewCityView(*p.City)
		v.City = &c
	}
	if p.Level != nil {
		v.Level = &NamedRef{ID: p.Level.ID, Name: p.Level.Name}
	}
	return v
}
