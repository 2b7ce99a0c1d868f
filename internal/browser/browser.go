// Package browser implements driver.PageDriver on a real Chromium instance via
// playwright.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/network"
)

const (
	textTimeout   = 2 * time.Second
	clickTimeout  = 10 * time.Second
	pollInterval  = time.Second
	hideWebdriver = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`
)

type Options struct {
	Headless          bool
	NavigationTimeout time.Duration
	// UserAgent overrides the randomly picked desktop user agent.
	UserAgent string
	// Install downloads the playwright driver and Chromium before launch.
	Install bool
	Logger  zerolog.Logger
}

// Browser owns one playwright process, one Chromium instance and one tab.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  zerolog.Logger
}

var _ driver.PageDriver = (*Browser)(nil)

// Launch starts Chromium with the automation fingerprint masked.
func Launch(opts Options) (*Browser, error) {
	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b := &Browser{pw: pw, logger: opts.Logger}
	if err := b.open(opts); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Browser) open(opts Options) error {
	var err error
	b.browser, err = b.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--window-size=1920,1080",
		},
	})
	if err != nil {
		return fmt.Errorf("launch chromium: %w", err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = network.RandomUserAgent()
	}
	b.context, err = b.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return fmt.Errorf("new browser context: %w", err)
	}
	if opts.NavigationTimeout > 0 {
		b.context.SetDefaultNavigationTimeout(millis(opts.NavigationTimeout))
	}
	if err := b.context.AddInitScript(playwright.Script{Content: playwright.String(hideWebdriver)}); err != nil {
		return fmt.Errorf("add init script: %w", err)
	}

	b.page, err = b.context.NewPage()
	if err != nil {
		return fmt.Errorf("new page: %w", err)
	}
	b.logger.Info().Bool("headless", opts.Headless).Msg("browser launched")
	return nil
}

func (b *Browser) Navigate(ctx context.Context, url string, wait driver.WaitStrategy, timeout time.Duration) error {
	if !b.Connected() {
		return driver.ErrDisconnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil(wait),
		Timeout:   playwright.Float(millis(timeout)),
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s", driver.ErrNavigationTimeout, url)
	}
	if !b.Connected() {
		return driver.ErrDisconnected
	}
	return fmt.Errorf("goto %s: %w", url, err)
}

func (b *Browser) WaitForAny(ctx context.Context, selectors []string, timeout time.Duration) (string, error) {
	for _, selector := range selectors {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !b.Connected() {
			return "", driver.ErrDisconnected
		}
		err := b.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(millis(timeout)),
		})
		if err == nil {
			return selector, nil
		}
		b.logger.Debug().Str("selector", selector).Err(err).Msg("selector not found")
	}
	return "", driver.ErrNotFound
}

func (b *Browser) WaitForNone(ctx context.Context, selectors []string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if !b.Connected() {
			return driver.ErrDisconnected
		}
		if b.countAll(selectors) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return driver.ErrWaitTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (b *Browser) countAll(selectors []string) int {
	total := 0
	for _, selector := range selectors {
		n, err := b.page.Locator(selector).Count()
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

func (b *Browser) QueryCards(ctx context.Context, selector string) ([]driver.Card, error) {
	locators, err := b.page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("query cards %s: %w", selector, err)
	}
	cards := make([]driver.Card, 0, len(locators))
	for _, loc := range locators {
		cards = append(cards, &card{loc: loc, logger: b.logger})
	}
	return cards, nil
}

// TextOf returns the inner text of the first matching element on the page.
func (b *Browser) TextOf(selector string) string {
	return firstText(b.page.Locator(selector), b.logger)
}

func (b *Browser) Click(ctx context.Context, selector string) error {
	if !b.Connected() {
		return driver.ErrDisconnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(clickTimeout)),
	})
	if err != nil && !b.Connected() {
		return driver.ErrDisconnected
	}
	return err
}

func (b *Browser) IsEnabled(selector string) bool {
	loc := b.page.Locator(selector).First()
	if n, err := loc.Count(); err != nil || n == 0 {
		return false
	}
	enabled, err := loc.IsEnabled()
	return err == nil && enabled
}

func (b *Browser) ScrollBy(ctx context.Context, pixels int) error {
	if !b.Connected() {
		return driver.ErrDisconnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Evaluate(`px => window.scrollBy(0, px)`, pixels)
	if err != nil && !b.Connected() {
		return driver.ErrDisconnected
	}
	return err
}

func (b *Browser) CurrentURL() string {
	return b.page.URL()
}

// LoadCookies adds the cookies of a cookie file to the context. A missing file
// is not an error.
func (b *Browser) LoadCookies(path string) error {
	cookies, err := driver.ReadCookieFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(cookies) == 0 {
		return nil
	}
	return b.context.AddCookies(ToPlaywright(cookies))
}

func (b *Browser) SaveCookies(path string) error {
	cookies, err := b.context.Cookies()
	if err != nil {
		return fmt.Errorf("read browser cookies: %w", err)
	}
	return driver.WriteCookieFile(path, FromPlaywright(cookies))
}

func (b *Browser) Connected() bool {
	return b.browser != nil && b.browser.IsConnected() && b.page != nil && !b.page.IsClosed()
}

func (b *Browser) Close() error {
	var errs []error
	if b.browser != nil && b.browser.IsConnected() {
		errs = append(errs, b.browser.Close())
	}
	if b.pw != nil {
		errs = append(errs, b.pw.Stop())
	}
	return errors.Join(errs...)
}

func waitUntil(wait driver.WaitStrategy) *playwright.WaitUntilState {
	switch wait {
	case driver.WaitNetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	case driver.WaitDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	default:
		return playwright.WaitUntilStateLoad
	}
}

func millis(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
