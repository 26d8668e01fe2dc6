package dtos

type ReferencesResponse struct {
	Levels            []NamedRef `json:"levels"`
	Countries         []NamedRef `json:"countries"`
	EmploymentFormats []NamedRef `json:"employment_formats"`
	WorkFormats       []NamedRef `json:"work_formats"`
	ResponseStatuses  []NamedRef `json:"response_statuses"`
	Roles             []NamedRef `json:"roles"`
}
