package models

// Job is one assembled listing. Salary is empty when no compensation could be
// parsed; Description keeps its line breaks, every other field is single-line.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PostedDate  string `json:"posted_date"`
}
