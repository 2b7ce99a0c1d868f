package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobharvest/internal/driver"
)

const signedInWait = 5 * time.Second

var loginInstructions = []string{
	"Not signed in to LinkedIn.",
	"1. Sign in in the browser window (complete any security check).",
	"2. Wait until your feed or the jobs page is visible.",
	"The scraper continues on its own once the login is detected.",
}

// EnsureLogin opens the jobs page and, unless a signed-in session is already
// present, waits for the operator to sign in manually.
func (c *Controller) EnsureLogin(ctx context.Context) error {
	if err := c.navigate(ctx, c.opts.BaseURL+"/jobs"); err != nil {
		return fmt.Errorf("open jobs page: %w", err)
	}
	if err := c.opts.Pacer.Between(ctx, 2*time.Second, 3*time.Second); err != nil {
		return err
	}

	if c.signedIn(ctx) {
		c.state.LoggedIn = true
		c.log.Info().Msg("existing session is signed in")
		return nil
	}
	return c.waitForLogin(ctx)
}

func (c *Controller) signedIn(ctx context.Context) bool {
	if onLoginPage(c.page.CurrentURL()) {
		return false
	}
	nav := c.opts.Selectors.Login.NavBar
	if nav == "" {
		return false
	}
	_, err := c.page.WaitForAny(ctx, []string{nav}, signedInWait)
	return err == nil
}

// waitForLogin runs the manual login wait up to twice: first until the login
// wall is gone, then until a signed-in marker shows up.
func (c *Controller) waitForLogin(ctx context.Context) error {
	attempts := min(c.opts.MaxRetries, 2)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		c.signal.Announce(loginInstructions)
		if b, ok := c.page.(driver.Bannerer); ok {
			if err := b.ShowBanner(ctx, loginInstructions); err != nil {
				c.log.Debug().Err(err).Msg("login banner")
			}
		}

		lastErr = c.awaitSignedIn(ctx)
		if lastErr == nil {
			c.state.LoggedIn = true
			c.saveCookies()
			c.log.Info().Int("attempt", attempt).Msg("login verified")
			return nil
		}
		if ctx.Err() != nil || errors.Is(lastErr, driver.ErrDisconnected) {
			return lastErr
		}
		c.log.Warn().Err(lastErr).Int("attempt", attempt).Msg("login not verified")
	}
	return fmt.Errorf("%w: %v", ErrLoginVerificationFailed, lastErr)
}

func (c *Controller) awaitSignedIn(ctx context.Context) error {
	if err := c.page.WaitForNone(ctx, c.opts.Selectors.LoginMarkers(), c.opts.LoginTimeout); err != nil {
		return fmt.Errorf("login form still shown: %w", err)
	}
	if _, err := c.page.WaitForAny(ctx, c.opts.Selectors.SignedInMarkers(), c.opts.ConfirmTimeout); err != nil {
		return fmt.Errorf("signed-in markers missing: %w", err)
	}
	return nil
}

func (c *Controller) saveCookies() {
	if c.opts.CookiesPath == "" {
		return
	}
	if err := c.page.SaveCookies(c.opts.CookiesPath); err != nil {
		c.log.Warn().Err(err).Str("path", c.opts.CookiesPath).Msg("could not save cookies")
		return
	}
	c.log.Info().Str("path", c.opts.CookiesPath).Msg("cookies saved")
}

func onLoginPage(rawURL string) bool {
	return strings.Contains(rawURL, "/login")
}
