package dtos

import (
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
)

type CompanyInput struct {
	Name          string
	Staff         uint
	BusinessAreas string
}

type CompanyProfileInput struct {
	Logo         string
	Email        string
	FoundingYear uint
	Description  string
	Phone        string
	WebsiteLink  string
	LinkedinLink *string
	GithubLink   *string
	TwitterLink  *string
}

type AddressInput struct {
	Country      string
	City         string
	StreetName   string
	HomeNumber   uint
	OfficeNumber *uint
}

// CompanyCreateRequest is the flat body of POST /companies/.
type CompanyCreateRequest struct {
	Name         string  `json:"name" binding:"required,max=30,noswear"`
	Staff        uint    `json:"staff" binding:"required,min=1"`
	BusinessArea string  `json:"business_area" binding:"required,maxitems=5,maxitemlen=100"`
	Logo         string  `json:"logo" binding:"omitempty,max=255"`
	Email        string  `json:"email" binding:"required,email"`
	FoundingYear uint    `json:"founding_year" binding:"required,min=1"`
	Description  string  `json:"description" binding:"max=900"`
	Phone        string  `json:"phone" binding:"required,max=20"`
	WebsiteLink  string  `json:"website_link" binding:"required,max=100"`
	LinkedinLink *string `json:"linkedin_link" binding:"omitempty,max=100"`
	GithubLink   *string `json:"github_link" binding:"omitempty,max=100"`
	TwitterLink  *string `json:"twitter_link" binding:"omitempty,max=100"`
	Country      string  `json:"country" binding:"required,max=100"`
	City         string  `json:"city" binding:"required,max=30"`
	StreetName   string  `json:"street_name" binding:"required,max=100"`
	HomeNumber   uint    `json:"home_number" binding:"required,min=1"`
	OfficeNumber *uint   `json:"office_number" binding:"omitempty,min=1"`
}

func (r CompanyCreateRequest) Company() CompanyInput {
	return CompanyInput{
		Name:          strings.TrimSpace(r.Name),
		Staff:         r.Staff,
		BusinessAreas: r.BusinessArea,
	}
}

func (r CompanyCreateRequest) Profile() CompanyProfileInput {
	return CompanyProfileInput{
		Logo:         r.Logo,
		Email:        r.Email,
		FoundingYear: r.FoundingYear,
		Description:  strings.TrimSpace(r.Description),
		Phone:        r.Phone,
		WebsiteLink:  r.WebsiteLink,
		LinkedinLink: blankToNil(r.LinkedinLink),
		GithubLink:   blankToNil(r.GithubLink),
		TwitterLink:  blankToNil(r.TwitterLink),
	}
}

func (r CompanyCreateRequest) Address() AddressInput {
	return AddressInput{
		Country:      strings.TrimSpace(r.Country),
		City:         strings.TrimSpace(r.City),
		StreetName:   strings.TrimSpace(r.StreetName),
		HomeNumber:   r.HomeNumber,
		OfficeNumber: r.OfficeNumber,
	}
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type CompanyCreatedResponse struct {
	Message   string `json:"message"`
	CompanyID uint   `json:"company_id"`
}

type CompanyListItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Staff        uint   `json:"staff"`
	VacancyCount int64  `json:"vacancy_count"`
}

type CompanyProfileView struct {
	Logo         string      `json:"logo"`
	Email        string      `json:"email"`
	FoundingYear uint        `json:"founding_year"`
	Description  string      `json:"description"`
	Phone        string      `json:"phone"`
	WebsiteLink  string      `json:"website_link"`
	LinkedinLink *string     `json:"linkedin_link"`
	GithubLink   *string     `json:"github_link"`
	TwitterLink  *string     `json:"twitter_link"`
	Address      AddressView `json:"address"`
}

type CompanyExtendedInfo struct {
	CompanyListItem
	BusinessArea   []NamedRef          `json:"business_area"`
	CompanyProfile *CompanyProfileView `json:"company_profile"`
}

func NewCompanyListItem(c models.Company) CompanyListItem {
	return CompanyListItem{ID: c.ID, Name: c.Name, Staff: c.Staff, VacancyCount: c.VacancyCount}
}

func NewCompanyList(companies []models.Company) []CompanyListItem {
	out := make([]CompanyListItem, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyListItem(c))
	}
	return out
}

func NewCompanyProfileView(p models.CompanyProfile) CompanyProfileView {
	return CompanyProfileView{
		Logo:         p.Logo,
		Email:        p.Email,
		FoundingYear: p.FoundingYear,
		Description:  p.Description,
		Phone:        p.Phone,
		WebsiteLink:  p.WebsiteLink,
		LinkedinLink: p.LinkedinLink,
		GithubLink:   p.GithubLink,
		TwitterLink:  p.TwitterLink,
		Address:      NewAddressView(p.Address),
	}
}

func NewCompanyExtendedInfo(c models.Company) CompanyExtendedInfo {
	areas := make([]NamedRef, 0, len(c.BusinessAreas))
	for _, a := range c.BusinessAreas {
		areas = append(areas, NamedRef{ID: a.ID, Name: a.Name})
	}
	info := CompanyExtendedInfo{
		CompanyListItem: NewCompanyListItem(c),
		BusinessArea:    areas,
	}
	if c.Profile != nil {
		p := NewCompanyProfileView(*c.Profile)
		info.CompanyProfile = &p
	}
	return info
}
