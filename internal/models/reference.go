package models

type Country struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Country) TableName() string { return "countries" }

type City struct {
	Base
	Name      string  `gorm:"size:30;not null;index" json:"name"`
	CountryID uint    `gorm:"not null;index" json:"country_id"`
	Country   Country `gorm:"constraint:OnDelete:CASCADE" json:"country"`
}

func (City) TableName() string { return "cities" }

type Address struct {
	Base
	StreetName   string `gorm:"size:100;not null" json:"street_name"`
	HomeNumber   uint   `gorm:"not null" json:"home_number"`
	OfficeNumber *uint  `json:"office_number"`
	CityID       uint   `gorm:"not null" json:"city_id"`
	City         City   `gorm:"constraint:OnDelete:CASCADE" json:"city"`
}

func (Address) TableName() string { return "addresses" }

type BusinessArea struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (BusinessArea) TableName() string { return "business_areas" }

type Tag struct {
	Base
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string { return "tags" }

type Level struct {
	Base
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (Level) TableName() string { return "levels" }

type EmploymentFormat struct {
	Base
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (EmploymentFormat) TableName() string { return "employment_formats" }

type WorkFormat struct {
	Base
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (WorkFormat) TableName() string { return "work_formats" }

type ResponseStatus struct {
	Base
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (ResponseStatus) TableName() string { return "response_statuses" }
