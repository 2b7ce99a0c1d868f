package extract

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jimezsa/jobharvest/internal/models"
)

// NoDescription replaces an empty segmented description.
const NoDescription = "No description available"

var (
	ErrIncompleteRecord = errors.New("incomplete record")
	ErrMissingURL       = errors.New("missing job url")
)

// Fields holds the per-card values gathered before assembly. PostedDate is
// expected to be resolved already; Salary is empty when unparsed.
type Fields struct {
	Title      string
	Company    string
	Location   string
	PostedDate string
	Salary     string
}

// Assemble builds a Job from resolved fields. A record needs a title plus
// either a description or a company; otherwise ErrIncompleteRecord.
func Assemble(fields Fields, description, rawURL, baseURL string) (models.Job, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Job{}, ErrMissingURL
	}

	title := Normalize(fields.Title)
	company := Normalize(fields.Company)
	description = NormalizeMultiline(description)
	if title == "" || (description == "" && company == "") {
		return models.Job{}, ErrIncompleteRecord
	}

	link, err := absoluteURL(baseURL, rawURL)
	if err != nil {
		return models.Job{}, err
	}
	if description == "" {
		description = NoDescription
	}

	return models.Job{
		Title:       title,
		Company:     company,
		Location:    Normalize(fields.Location),
		Salary:      Normalize(fields.Salary),
		URL:         link,
		Description: description,
		PostedDate:  Normalize(fields.PostedDate),
	}, nil
}

func absoluteURL(base, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}
