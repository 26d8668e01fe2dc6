package models

import (
	"time"
)

// Base carries the columns every table shares. Rows are hard deleted so that
// unique name indexes stay usable after a delete.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Company struct {
	Base

	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Staff uint   `gorm:"not null;default:0" json:"staff"`

	BusinessAreas []BusinessArea  `gorm:"many2many:company_business_areas;constraint:OnDelete:CASCADE" json:"business_area,omitempty"`
	Profile       *CompanyProfile `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company_profile,omitempty"`
	Vacancies     []Vacancy       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews       []Review        `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Filled by a correlated subquery, never stored.
	VacancyCount int64 `gorm:"->;-:migration" json:"vacancy_count"`
}

func (Company) TableName() string { return "companies" }

type CompanyProfile struct {
	CompanyID uint      `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Logo         string  `gorm:"size:255" json:"logo"`
	Email        string  `gorm:"size:254;not null" json:"email"`
	FoundingYear uint    `gorm:"not null" json:"founding_year"`
	Description  string  `gorm:"size:900" json:"description"`
	Phone        string  `gorm:"size:30" json:"phone"`
	WebsiteLink  string  `gorm:"size:100;not null" json:"website_link"`
	LinkedinLink *string `gorm:"size:100" json:"linkedin_link"`
	GithubLink   *string `gorm:"size:100" json:"github_link"`
	TwitterLink  *string `gorm:"size:100" json:"twitter_link"`

	AddressID uint    `gorm:"not null" json:"address_id"`
	Address   Address `gorm:"constraint:OnDelete:CASCADE" json:"address"`
}

func (CompanyProfile) TableName() string { return "company_profiles" }

type Vacancy struct {
	Base

	Name        string `gorm:"size:100;not null;index" json:"name"`
	Experience  string `gorm:"size:30" json:"experience"`
	MinSalary   *uint  `json:"min_salary"`
	MaxSalary   *uint  `json:"max_salary"`
	Description string `gorm:"type:text" json:"description"`
	Attachment  string `gorm:"size:255" json:"attachment"`
	QRCode      string `gorm:"size:255" json:"qr_code"`

	LevelID uint  `gorm:"not null" json:"level_id"`
	Level   Level `gorm:"constraint:OnDelete:CASCADE" json:"level"`

	// Foreign Key
	CompanyID uint `gorm:"not null;index" json:"company_id"`
	// Association: GORM needs Preload() to fill this
	Company Company `json:"company"`

	Tags              []Tag              `gorm:"many2many:vacancies_tags;constraint:OnDelete:CASCADE" json:"tags"`
	EmploymentFormats []EmploymentFormat `gorm:"many2many:vacancy_employment_formats;constraint:OnDelete:CASCADE" json:"employment_format"`
	WorkFormats       []WorkFormat       `gorm:"many2many:vacancy_work_formats;constraint:OnDelete:CASCADE" json:"work_format"`
	Cities            []City             `gorm:"many2many:vacancy_cities;constraint:OnDelete:CASCADE" json:"city"`
}

func (Vacancy) TableName() string { return "vacancies" }

type Response struct {
	Base

	UserID    uint    `gorm:"not null;uniqueIndex:idx_response_user_vacancy" json:"user_id"`
	User      User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VacancyID uint    `gorm:"not null;uniqueIndex:idx_response_user_vacancy" json:"vacancy_id"`
	Vacancy   Vacancy `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CoverNote   string `gorm:"size:500" json:"cover_note"`
	UserPhone   string `gorm:"size:30" json:"user_phone"`
	SummaryLink string `gorm:"size:255" json:"summary_link"`

	ResponseStatusID uint           `gorm:"not null" json:"response_status_id"`
	ResponseStatus   ResponseStatus `gorm:"constraint:OnDelete:CASCADE" json:"response_status"`
}

func (Response) TableName() string { return "responses" }

type Review struct {
	Base

	CompanyID      uint   `gorm:"not null;index" json:"company_id"`
	UserID         uint   `gorm:"not null" json:"user_id"`
	User           User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text           string `gorm:"size:800;not null" json:"text"`
	LikesCounter   uint   `gorm:"not null;default:0" json:"likes_counter"`
	DislikeCounter uint   `gorm:"not null;default:0" json:"dislike_counter"`
}

func (Review) TableName() string { return "reviews" }
