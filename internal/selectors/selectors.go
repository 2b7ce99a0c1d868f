package selectors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Login holds the markers used to tell a signed-in page from a login wall.
type Login struct {
	NavBar      string `yaml:"nav_bar"`
	ProfileIcon string `yaml:"profile_icon"`
	LoginForm   string `yaml:"login_form"`
	JoinNow     string `yaml:"join_now"`
}

// Sections are the literal headings that bound the role description.
type Sections struct {
	Start []string `yaml:"start"`
	End   []string `yaml:"end"`
}

// Set is the ordered candidate locator list per logical field. Earlier
// entries win.
type Set struct {
	ListMarkers         []string `yaml:"list_markers"`
	Cards               []string `yaml:"cards"`
	Title               []string `yaml:"title"`
	Company             []string `yaml:"company"`
	Location            []string `yaml:"location"`
	PostedDate          []string `yaml:"posted_date"`
	Salary              []string `yaml:"salary"`
	JobLink             []string `yaml:"job_link"`
	Description         []string `yaml:"description"`
	DetailMarkers       []string `yaml:"detail_markers"`
	DescriptionFallback []string `yaml:"description_fallback"`
	NextPage            []string `yaml:"next_page"`
	Login               Login    `yaml:"login"`
	Sections            Sections `yaml:"sections"`
}

// LoginMarkers returns the selectors whose presence means a login wall.
func (s Set) LoginMarkers() []string {
	return nonEmpty(s.Login.LoginForm, s.Login.JoinNow)
}

// SignedInMarkers returns the selectors whose presence means a session.
func (s Set) SignedInMarkers() []string {
	return nonEmpty(s.Login.NavBar, s.Login.ProfileIcon)
}

// Validate reports lists the scraper cannot work without.
func (s Set) Validate() error {
	var missing []string
	if len(s.ListMarkers) == 0 {
		missing = append(missing, "list_markers")
	}
	if len(s.Cards) == 0 {
		missing = append(missing, "cards")
	}
	if len(s.Title) == 0 {
		missing = append(missing, "title")
	}
	if len(s.JobLink) == 0 {
		missing = append(missing, "job_link")
	}
	if len(missing) > 0 {
		return fmt.Errorf("selectors: empty %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads a YAML selector file over the LinkedIn defaults. Lists present in
// the file replace the default list of the same name; an empty path or a
// missing file yields the defaults.
func Load(path string) (Set, error) {
	set := Default()
	if strings.TrimSpace(path) == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return set, fmt.Errorf("read selectors %q: %w", path, err)
	}

	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return set, fmt.Errorf("parse selectors %q: %w", path, err)
	}
	set.merge(override)
	return set, set.Validate()
}

// Write stores the set as YAML.
func Write(path string, set Set) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Set) merge(o Set) {
	replace(&s.ListMarkers, o.ListMarkers)
	replace(&s.Cards, o.Cards)
	replace(&s.Title, o.Title)
	replace(&s.Company, o.Company)
	replace(&s.Location, o.Location)
	replace(&s.PostedDate, o.PostedDate)
	replace(&s.Salary, o.Salary)
	replace(&s.JobLink, o.JobLink)
	replace(&s.Description, o.Description)
	replace(&s.DetailMarkers, o.DetailMarkers)
	replace(&s.DescriptionFallback, o.DescriptionFallback)
	replace(&s.NextPage, o.NextPage)
	replace(&s.Sections.Start, o.Sections.Start)
	replace(&s.Sections.End, o.Sections.End)

	if o.Login.NavBar != "" {
		s.Login.NavBar = o.Login.NavBar
	}
	if o.Login.ProfileIcon != "" {
		s.Login.ProfileIcon = o.Login.ProfileIcon
	}
	if o.Login.LoginForm != "" {
		s.Login.LoginForm = o.Login.LoginForm
	}
	if o.Login.JoinNow != "" {
		s.Login.JoinNow = o.Login.JoinNow
	}
}

func replace(dst *[]string, src []string) {
	if list := nonEmpty(src...); len(list) > 0 {
		*dst = list
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
