package dtos

import "github.com/justsurfingit/job-board/internal/models"

// NamedRef is the {id, name} shape used for every reference row.
type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CityView struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Country NamedRef `json:"country"`
}

type AddressView struct {
	ID           uint     `json:"id"`
	StreetName   string   `json:"street_name"`
	HomeNumber   uint     `json:"home_number"`
	OfficeNumber *uint    `json:"office_number"`
	City         CityView `json:"city"`
}

// Paginated is the envelope of every paged listing.
type Paginated[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewCityView(c models.City) CityView {
	return CityView{
		ID:      c.ID,
		Name:    c.Name,
		Country: NamedRef{ID: c.Country.ID, Name: c.Country.Name},
	}
}

func NewAddressView(a models.Address) AddressView {
	return AddressView{
		ID:           a.ID,
		StreetName:   a.StreetName,
		HomeNumber:   a.HomeNumber,
		OfficeNumber: a.OfficeNumber,
		City:         NewCityView(a.City),
	}
}

func tagRefs(tags []models.Tag) []NamedRef {
	out := make([]NamedRef, 0, len(tags))
	for _, t := range tags {
		out = append(out, NamedRef{ID: t.ID, Name: t.Name})
	}
	return out
}

func employmentFormatRefs(formats []models.EmploymentFormat) []NamedRef {
	out := make([]NamedRef, 0, len(formats))
	for _, f := range formats {
		out = append(out, NamedRef{ID: f.ID, Name: f.Name})
	}
	return out
}

func workFormatRefs(formats []models.WorkFormat) []NamedRef {
	out := make([]NamedRef, 0, len(formats))
	for _, f := range formats {
		out = append(out, NamedRef{ID: f.ID, Name: f.Name})
	}
	return out
}

func cityViews(cities []models.City) []CityView {
	out := make([]CityView, 0, len(cities))
	for _, c := range cities {
		out = append(out, NewCityView(c))
	}
	return out
}
