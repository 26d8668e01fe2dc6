package models

// Permission codenames granted through roles.
const (
	PermAddVacancy     = "add_vacancy"
	PermAddCompany     = "add_company"
	PermApplyToVacancy = "apply_to_vacancy"
)

type Permission struct {
	Base
	Codename string `gorm:"size:100;uniqueIndex;not null" json:"codename"`
}

func (Permission) TableName() string { return "permissions" }

type Role struct {
	Base
	Name        string       `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:role_permissions;constraint:OnDelete:CASCADE" json:"permissions"`
}

func (Role) TableName() string { return "roles" }

// Codenames flattens the role permissions.
func (r Role) Codenames() []string {
	out := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		out = append(out, p.Codename)
	}
	return out
}

type User struct {
	Base

	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:false" json:"is_active"`

	RoleID uint `gorm:"not null" json:"role_id"`
	Role   Role `json:"role"`
}

func (User) TableName() string { return "users" }

// EmailConfirmationCode keeps the registration code until the user confirms.
// Expiration is a unix timestamp.
type EmailConfirmationCode struct {
	Base
	Code       string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	User       User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Expiration int64  `gorm:"not null" json:"expiration"`
}

func (EmailConfirmationCode) TableName() string { return "email_confirmation_codes" }

// Profile is the candidate side of a user account.
type Profile struct {
	Base

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Phone                 string `gorm:"size:30" json:"phone"`
	Age                   uint   `json:"age"`
	SummaryLink           string `gorm:"size:100" json:"summary_link"`
	ExperienceDescription string `gorm:"size:800" json:"experience_description"`
	LinkedinLink          string `gorm:"size:100" json:"linkedin_link"`
	GithubLink            string `gorm:"size:100" json:"github_link"`
	WorkExperience        int    `json:"work_experience"`
	MinSalary             *uint  `json:"min_salary"`
	MaxSalary             *uint  `json:"max_salary"`
	CityID                *uint  `json:"city_id"`
	City                  *City  `json:"city,omitempty"`
	LevelID               *uint  `json:"level_id"`
	Level                 *Level `json:"level,omitempty"`

	Tags              []Tag              `gorm:"many2many:users_tags;constraint:OnDelete:CASCADE" json:"tags"`
	EmploymentFormats []EmploymentFormat `gorm:"many2many:users_employment_formats;constraint:OnDelete:CASCADE" json:"employment_format"`
	WorkFormats       []WorkFormat       `gorm:"many2many:users_work_formats;constraint:OnDelete:CASCADE" json:"work_format"`
}

func (Profile) TableName() string { return "profiles" }
