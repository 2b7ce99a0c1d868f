package browser

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/jimezsa/jobharvest/internal/driver"
)

// ToPlaywright converts cookie file entries into cookies a context accepts.
func ToPlaywright(cookies []driver.Cookie) []playwright.OptionalCookie {
	out := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		pc := playwright.OptionalCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   playwright.String(c.Domain),
			Path:     playwright.String(path),
			HttpOnly: playwright.Bool(c.HTTPOnly),
			Secure:   playwright.Bool(c.Secure),
		}
		if c.Expires > 0 {
			pc.Expires = playwright.Float(c.Expires)
		}
		if sameSite := sameSiteAttribute(c.SameSite); sameSite != nil {
			pc.SameSite = sameSite
		}
		out = append(out, pc)
	}
	return out
}

// FromPlaywright converts context cookies into cookie file entries.
func FromPlaywright(cookies []playwright.Cookie) []driver.Cookie {
	out := make([]driver.Cookie, 0, len(cookies))
	for _, c := range cookies {
		dc := driver.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != nil {
			dc.SameSite = string(*c.SameSite)
		}
		out = append(out, dc)
	}
	return out
}

func sameSiteAttribute(value string) *playwright.SameSiteAttribute {
	switch strings.ToLower(value) {
	case "lax":
		return playwright.SameSiteAttributeLax
	case "strict":
		return playwright.SameSiteAttributeStrict
	case "none", "no_restriction":
		return playwright.SameSiteAttributeNone
	default:
		return nil
	}
}
