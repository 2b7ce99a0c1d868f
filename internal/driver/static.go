package driver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Fetcher loads a document. It returns the final URL after redirects.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*goquery.Document, string, error)
}

// CookieJar is implemented by fetchers that keep cookies.
type CookieJar interface {
	LoadCookies(path string) error
	SaveCookies(path string) error
}

// StaticOptions configures a Static driver.
type StaticOptions struct {
	BaseURL string
	// LinkSelectors locate the detail link inside a card; clicking a card
	// fetches that link into the detail pane.
	LinkSelectors []string
	Logger        zerolog.Logger
}

// Static drives server-rendered pages: the results page is one document and a
// clicked card's detail page is a second one that page-level lookups consult
// first. Nothing renders after load, so waits resolve immediately.
type Static struct {
	fetcher Fetcher
	opts    StaticOptions
	base    *url.URL
	current string
	list    *goquery.Document
	detail  *goquery.Document
	closed  bool
}

func NewStatic(fetcher Fetcher, opts StaticOptions) (*Static, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Static{fetcher: fetcher, opts: opts, base: base}, nil
}

func (s *Static) Navigate(ctx context.Context, rawURL string, wait WaitStrategy, timeout time.Duration) error {
	if s.closed {
		return ErrDisconnected
	}
	doc, final, err := s.fetch(ctx, rawURL, timeout)
	if err != nil {
		return err
	}
	s.list = doc
	s.detail = nil
	s.current = final
	s.opts.Logger.Debug().Str("url", final).Str("wait", string(wait)).Msg("static page loaded")
	return nil
}

func (s *Static) fetch(ctx context.Context, rawURL string, timeout time.Duration) (*goquery.Document, string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	target := s.resolve(rawURL)
	doc, final, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", fmt.Errorf("%w: %s", ErrNavigationTimeout, target)
		}
		return nil, "", err
	}
	if final == "" {
		final = target
	}
	return doc, final, nil
}

func (s *Static) resolve(rawURL string) string {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || ref.IsAbs() {
		return rawURL
	}
	if s.current != "" {
		if cur, err := url.Parse(s.current); err == nil {
			return cur.ResolveReference(ref).String()
		}
	}
	return s.base.ResolveReference(ref).String()
}

func (s *Static) WaitForAny(ctx context.Context, selectors []string, timeout time.Duration) (string, error) {
	for _, selector := range selectors {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if s.find(selector).Length() > 0 {
			return selector, nil
		}
	}
	return "", ErrNotFound
}

func (s *Static) WaitForNone(ctx context.Context, selectors []string, timeout time.Duration) error {
	for _, selector := range selectors {
		if s.find(selector).Length() > 0 {
			return fmt.Errorf("%w: %s still present", ErrWaitTimeout, selector)
		}
	}
	return ctx.Err()
}

func (s *Static) QueryCards(ctx context.Context, selector string) ([]Card, error) {
	if s.list == nil {
		return nil, nil
	}
	var cards []Card
	s.list.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		cards = append(cards, &staticCard{sel: sel, driver: s})
	})
	return cards, nil
}

// TextOf searches the detail document first, then the results document.
func (s *Static) TextOf(locator string) string {
	for _, doc := range []*goquery.Document{s.detail, s.list} {
		if doc == nil {
			continue
		}
		if text := firstText(doc.Selection, locator); text != "" {
			return text
		}
	}
	return ""
}

// Click follows the href of the matched element, or of its enclosing link.
func (s *Static) Click(ctx context.Context, selector string) error {
	sel := s.find(selector).First()
	if sel.Length() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	href, ok := sel.Attr("href")
	if !ok {
		href, ok = sel.Closest("a[href]").Attr("href")
	}
	if !ok || strings.TrimSpace(href) == "" {
		return fmt.Errorf("click %s: element has no link", selector)
	}
	return s.Navigate(ctx, href, WaitLoad, 0)
}

func (s *Static) IsEnabled(selector string) bool {
	sel := s.find(selector).First()
	if sel.Length() == 0 {
		return false
	}
	if _, disabled := sel.Attr("disabled"); disabled {
		return false
	}
	aria, _ := sel.Attr("aria-disabled")
	return !strings.EqualFold(aria, "true")
}

func (s *Static) ScrollBy(ctx context.Context, pixels int) error {
	return ctx.Err()
}

func (s *Static) CurrentURL() string {
	return s.current
}

func (s *Static) LoadCookies(path string) error {
	if jar, ok := s.fetcher.(CookieJar); ok {
		return jar.LoadCookies(path)
	}
	return nil
}

func (s *Static) SaveCookies(path string) error {
	if jar, ok := s.fetcher.(CookieJar); ok {
		return jar.SaveCookies(path)
	}
	return nil
}

func (s *Static) Connected() bool {
	return !s.closed
}

func (s *Static) Close() error {
	s.closed = true
	return nil
}

func (s *Static) find(selector string) *goquery.Selection {
	if s.detail != nil {
		if sel := s.detail.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	if s.list == nil {
		return &goquery.Selection{}
	}
	return s.list.Find(selector)
}

type staticCard struct {
	sel    *goquery.Selection
	driver *Static
}

func (c *staticCard) TextOf(locator string) string {
	return firstText(c.sel, locator)
}

func (c *staticCard) AttrOf(locator, name string) string {
	var value string
	c.sel.Find(locator).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			value = v
			return false
		}
		return true
	})
	return value
}

func (c *staticCard) Text() string {
	return BlockText(c.sel)
}

// Click loads the card's detail link into the detail pane.
func (c *staticCard) Click(ctx context.Context) error {
	d := c.driver
	if d.closed {
		return ErrDisconnected
	}
	var href string
	for _, locator := range append(append([]string{}, d.opts.LinkSelectors...), "a[href]") {
		if href = strings.TrimSpace(c.AttrOf(locator, "href")); href != "" {
			break
		}
	}
	if href == "" {
		return fmt.Errorf("%w: card has no detail link", ErrNotFound)
	}
	d.detail = nil
	doc, _, err := d.fetch(ctx, href, 0)
	if err != nil {
		return err
	}
	d.detail = doc
	return nil
}

func firstText(root *goquery.Selection, locator string) string {
	var text string
	root.Find(locator).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if t := BlockText(sel); strings.TrimSpace(t) != "" {
			text = t
			return false
		}
		return true
	})
	return text
}
