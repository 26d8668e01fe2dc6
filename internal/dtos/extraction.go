package dtos

type ExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url" binding:"omitempty,url"`
}

// VacancyDraft is what the model read out of a posting. Every field may be
// empty; the recruiter reviews it before POST /vacancies/.
type VacancyDraft struct {
	Name             string   `json:"name"`
	CompanyName      string   `json:"company_name"`
	Level            string   `json:"level"`
	Experience       string   `json:"experience"`
	MinSalary        *uint    `json:"min_salary"`
	MaxSalary        *uint    `json:"max_salary"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	Cities           []string `json:"cities"`
	Country          string   `json:"country"`
	EmploymentFormat []string `json:"employment_format"`
	WorkFormat       []string `json:"work_format"`
}

type ExtractionResponse struct {
	Draft          VacancyDraft `json:"draft"`
	MatchedCompany *NamedRef    `json:"matched_company"`
}
