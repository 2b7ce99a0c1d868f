// Package session runs one scraping session: login, search, per-card
// extraction and incremental persistence, page after page.
package session

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/models"
	"github.com/jimezsa/jobharvest/internal/selectors"
	"github.com/jimezsa/jobharvest/internal/sink"
	"github.com/rs/zerolog"
)

var (
	ErrLoginVerificationFailed = errors.New("login verification failed")
	ErrNoListings              = errors.New("no job listings found")
)

// Choice is the operator's answer at a page boundary.
type Choice int

const (
	ChoiceContinue Choice = iota
	ChoiceStop
)

// UserSignal is the operator at the terminal. Waits block until the operator
// answers or ctx is done.
type UserSignal interface {
	Announce(lines []string)
	WaitForEnter(ctx context.Context, prompt string) error
	WaitForChoice(ctx context.Context, prompt string) (Choice, error)
}

type Options struct {
	Selectors         selectors.Set
	BaseURL           string
	CookiesPath       string
	DelayMin          time.Duration
	DelayMax          time.Duration
	MaxRetries        int
	NavigationTimeout time.Duration
	// ScrollPasses scrolls the result list before each page is read.
	ScrollPasses int
	SkipLogin    bool

	// LoginTimeout bounds the wait for the operator to leave the login wall;
	// ConfirmTimeout bounds the following wait for signed-in markers.
	LoginTimeout   time.Duration
	ConfirmTimeout time.Duration

	Now    func() time.Time
	Pacer  *Pacer
	Logger zerolog.Logger
}

func (o *Options) withDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = "https://www.linkedin.com"
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.MaxRetries < 1 {
		o.MaxRetries = 1
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = 60 * time.Second
	}
	if o.LoginTimeout <= 0 {
		o.LoginTimeout = 2 * time.Minute
	}
	if o.ConfirmTimeout <= 0 {
		o.ConfirmTimeout = 30 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Pacer == nil {
		o.Pacer = NewPacer(o.DelayMin, o.DelayMax)
	}
}

// State is the session's progress. Page starts at 1; PageJobs resets at each
// page boundary.
type State struct {
	Page     int
	Jobs     []models.Job
	PageJobs []models.Job
	LoggedIn bool
	Skipped  int
	Files    []string
}

// Summary describes a finished session.
type Summary struct {
	Pages    int      `json:"pages"`
	Records  int      `json:"records"`
	Skipped  int      `json:"skipped"`
	Stopped  bool     `json:"stopped_by_operator"`
	LoggedIn bool     `json:"logged_in"`
	Files    []string `json:"files"`
}

// Controller is the sole owner of the page for the session's lifetime.
type Controller struct {
	page   driver.PageDriver
	signal UserSignal
	sink   *sink.Sink
	opts   Options
	log    zerolog.Logger
	state  State
}

func New(page driver.PageDriver, signal UserSignal, out *sink.Sink, opts Options) *Controller {
	opts.withDefaults()
	return &Controller{
		page:   page,
		signal: signal,
		sink:   out,
		opts:   opts,
		log:    opts.Logger,
		state:  State{Page: 1},
	}
}

// State returns a copy of the session state.
func (c *Controller) State() State {
	st := c.state
	st.Jobs = append([]models.Job(nil), c.state.Jobs...)
	st.PageJobs = append([]models.Job(nil), c.state.PageJobs...)
	st.Files = append([]string(nil), c.state.Files...)
	return st
}

// Start restores saved cookies and makes sure the session is signed in.
func (c *Controller) Start(ctx context.Context) error {
	if c.opts.CookiesPath != "" {
		if err := c.page.LoadCookies(c.opts.CookiesPath); err != nil {
			c.log.Warn().Err(err).Str("path", c.opts.CookiesPath).Msg("could not load cookies")
		}
	}
	if c.opts.SkipLogin {
		c.log.Info().Msg("login skipped, browsing as guest")
		return nil
	}
	return c.EnsureLogin(ctx)
}

func (c *Controller) Close() error {
	return c.page.Close()
}

// SearchURL builds the job search address for params.
func SearchURL(base string, params models.SearchParams) string {
	q := url.Values{}
	q.Set("keywords", params.Keywords)
	q.Set("location", params.Location)
	return strings.TrimRight(base, "/") + "/jobs/search/?" + q.Encode()
}

// navigate opens target, retrying once with a relaxed load condition after a
// timeout.
func (c *Controller) navigate(ctx context.Context, target string) error {
	err := c.page.Navigate(ctx, target, driver.WaitNetworkIdle, c.opts.NavigationTimeout)
	if !errors.Is(err, driver.ErrNavigationTimeout) {
		return err
	}
	c.log.Warn().Str("url", target).Msg("navigation timed out, retrying")
	return c.page.Navigate(ctx, target, driver.WaitDOMContentLoaded, c.opts.NavigationTimeout)
}

func (c *Controller) addFiles(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		dup := false
		for _, seen := range c.state.Files {
			if seen == path {
				dup = true
				break
			}
		}
		if !dup {
			c.state.Files = append(c.state.Files, path)
		}
	}
}

func (c *Controller) summary(stopped bool) Summary {
	return Summary{
		Pages:    c.state.Page,
		Records:  len(c.state.Jobs),
		Skipped:  c.state.Skipped,
		Stopped:  stopped,
		LoggedIn: c.state.LoggedIn,
		Files:    append([]string(nil), c.state.Files...),
	}
}
