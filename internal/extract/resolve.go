package extract

import "strings"

// ContentSource is anything that can answer "what text sits under this
// locator". A missing element yields "", never an error.
type ContentSource interface {
	TextOf(locator string) string
}

// AttrSource exposes element attributes by locator.
type AttrSource interface {
	AttrOf(locator, name string) string
}

// Resolve returns the first locator's normalized text that is non-empty.
func Resolve(src ContentSource, locators []string) string {
	if src == nil {
		return ""
	}
	for _, locator := range locators {
		if text := Normalize(src.TextOf(locator)); text != "" {
			return text
		}
	}
	return ""
}

// ResolveMultiline is Resolve for block text; line breaks survive.
func ResolveMultiline(src ContentSource, locators []string) string {
	if src == nil {
		return ""
	}
	for _, locator := range locators {
		if text := NormalizeMultiline(src.TextOf(locator)); text != "" {
			return text
		}
	}
	return ""
}

// ResolveTitle resolves a job title and applies CleanTitle.
func ResolveTitle(src ContentSource, locators []string) string {
	return CleanTitle(Resolve(src, locators))
}

// ResolveAttr returns the first non-blank attribute value among locators.
func ResolveAttr(src AttrSource, locators []string, name string) string {
	if src == nil {
		return ""
	}
	for _, locator := range locators {
		if value := strings.TrimSpace(src.AttrOf(locator, name)); value != "" {
			return value
		}
	}
	return ""
}
