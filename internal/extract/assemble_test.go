package extract

import (
	"errors"
	"testing"
)

const testBase = "https://www.linkedin.com"

func TestAssembleCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		fields      Fields
		description string
		wantErr     error
	}{
		{name: "title only", fields: Fields{Title: "Engineer"}, wantErr: ErrIncompleteRecord},
		{name: "title and company", fields: Fields{Title: "Engineer", Company: "Acme"}},
		{name: "title and description", fields: Fields{Title: "Engineer"}, description: "Build things"},
		{name: "no title", fields: Fields{Company: "Acme"}, description: "Build things", wantErr: ErrIncompleteRecord},
		{name: "blank title", fields: Fields{Title: " \u200b ", Company: "Acme"}, wantErr: ErrIncompleteRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.fields, tt.description, "/jobs/view/1", testBase)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Assemble() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssembleMissingURL(t *testing.T) {
	_, err := Assemble(Fields{Title: "Engineer", Company: "Acme"}, "", "  ", testBase)
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("Assemble() error = %v, want %v", err, ErrMissingURL)
	}
}

func TestAssembleNormalizesAndDefaults(t *testing.T) {
	fields := Fields{
		Title:      " Go  Engineer ",
		Company:    "Acme\u200b Inc",
		Location:   "Remote\n",
		PostedDate: "2024-01-09",
	}
	job, err := Assemble(fields, "", "/jobs/view/123/?refId=abc", testBase)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if job.Title != "Go Engineer" || job.Company != "Acme Inc" || job.Location != "Remote" {
		t.Fatalf("Assemble() fields not normalized: %+v", job)
	}
	if job.Description != NoDescription {
		t.Fatalf("Description = %q, want %q", job.Description, NoDescription)
	}
	if job.Salary != "" {
		t.Fatalf("Salary = %q, want empty", job.Salary)
	}
	if job.URL != "https://www.linkedin.com/jobs/view/123/?refId=abc" {
		t.Fatalf("URL = %q", job.URL)
	}
}

func TestAssembleKeepsDescriptionLines(t *testing.T) {
	job, err := Assemble(Fields{Title: "Engineer"}, "About the job\n\n  Do  things", "https://example.com/j/1", testBase)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if job.Description != "About the job\nDo things" {
		t.Fatalf("Description = %q", job.Description)
	}
	if job.URL != "https://example.com/j/1" {
		t.Fatalf("URL = %q, want absolute link unchanged", job.URL)
	}
}
