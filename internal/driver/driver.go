// Package driver defines the page automation capability the scraping session
// runs against, plus a static HTML implementation.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/jimezsa/jobharvest/internal/extract"
)

// WaitStrategy is the page load milestone Navigate waits for.
type WaitStrategy string

const (
	WaitLoad             WaitStrategy = "load"
	WaitDOMContentLoaded WaitStrategy = "domcontentloaded"
	WaitNetworkIdle      WaitStrategy = "networkidle"
)

var (
	ErrNavigationTimeout = errors.New("navigation timeout")
	ErrNotFound          = errors.New("no candidate selector matched")
	ErrWaitTimeout       = errors.New("wait timed out")
	ErrDisconnected      = errors.New("browser disconnected")
)

// Card is one listing tile on a results page.
type Card interface {
	extract.ContentSource
	extract.AttrSource
	// Text is the card's full visible text.
	Text() string
	Click(ctx context.Context) error
}

// PageDriver is a single browser tab. Its TextOf looks up page-level content
// such as the detail pane. Implementations are not safe for concurrent use.
type PageDriver interface {
	extract.ContentSource
	Navigate(ctx context.Context, url string, wait WaitStrategy, timeout time.Duration) error
	// WaitForAny tries each selector in order, giving each up to timeout, and
	// returns the first that appears.
	WaitForAny(ctx context.Context, selectors []string, timeout time.Duration) (string, error)
	// WaitForNone returns once none of the selectors is present.
	WaitForNone(ctx context.Context, selectors []string, timeout time.Duration) error
	QueryCards(ctx context.Context, selector string) ([]Card, error)
	Click(ctx context.Context, selector string) error
	IsEnabled(selector string) bool
	ScrollBy(ctx context.Context, pixels int) error
	CurrentURL() string
	LoadCookies(path string) error
	SaveCookies(path string) error
	Connected() bool
	Close() error
}

// Bannerer is implemented by drivers that can overlay operator instructions
// on the page.
type Bannerer interface {
	ShowBanner(ctx context.Context, lines []string) error
}
