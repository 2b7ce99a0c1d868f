package browser

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

type card struct {
	loc    playwright.Locator
	logger zerolog.Logger
}

func (c *card) TextOf(selector string) string {
	return firstText(c.loc.Locator(selector), c.logger)
}

func (c *card) AttrOf(selector, name string) string {
	matches, err := c.loc.Locator(selector).All()
	if err != nil {
		return ""
	}
	for _, match := range matches {
		value, err := match.GetAttribute(name, playwright.LocatorGetAttributeOptions{
			Timeout: playwright.Float(millis(textTimeout)),
		})
		if err == nil && value != "" {
			return value
		}
	}
	return ""
}

func (c *card) Text() string {
	text, err := c.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(millis(textTimeout)),
	})
	if err != nil {
		c.logger.Debug().Err(err).Msg("card text unavailable")
		return ""
	}
	return text
}

func (c *card) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.loc.ScrollIntoViewIfNeeded(); err != nil {
		c.logger.Debug().Err(err).Msg("scroll card into view")
	}
	return c.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(clickTimeout)),
	})
}

// firstText walks every match and returns the first non-blank inner text.
func firstText(loc playwright.Locator, logger zerolog.Logger) string {
	matches, err := loc.All()
	if err != nil {
		logger.Debug().Err(err).Msg("locator lookup failed")
		return ""
	}
	for _, match := range matches {
		text, err := match.InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(millis(textTimeout)),
		})
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}
