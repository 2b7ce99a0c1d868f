package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invisible matches every format character (Cf) plus U+034F, a combining
// mark that renders as nothing.
var (
	formatChars = runes.In(unicode.Cf)
	invisible   = runes.Predicate(func(r rune) bool {
		return r == '\u034F' || formatChars.Contains(r)
	})
)

var verificationSuffix = regexp.MustCompile(`(?i)\s*with verification$`)

func stripInvisible(raw string) string {
	out, _, err := transform.String(transform.Chain(runes.Remove(invisible), norm.NFC), raw)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if invisible.Contains(r) {
				return -1
			}
			return r
		}, raw)
	}
	return out
}

// Normalize strips zero-width characters and collapses every whitespace run to
// a single space.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(stripInvisible(raw)), " ")
}

// NormalizeMultiline is Normalize applied per line. Blank lines are dropped and
// the remaining lines are joined with "\n".
func NormalizeMultiline(raw string) string {
	text := stripInvisible(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// CleanTitle removes the verification badge suffix and collapses a phrase that
// is immediately repeated ("Go Developer Go Developer" becomes "Go Developer").
func CleanTitle(title string) string {
	title = Normalize(title)
	title = verificationSuffix.ReplaceAllString(title, "")
	return Normalize(collapseRepeat(title))
}

// collapseRepeat drops the first word sequence that is directly followed by an
// identical copy of itself, searching leftmost start first, shortest phrase
// first.
func collapseRepeat(text string) string {
	words := strings.Fields(text)
	for i := range words {
		for n := 1; i+2*n <= len(words); n++ {
			if !sameWords(words[i:i+n], words[i+n:i+2*n]) {
				continue
			}
			out := make([]string, 0, len(words)-n)
			out = append(out, words[:i+n]...)
			out = append(out, words[i+2*n:]...)
			return strings.Join(out, " ")
		}
	}
	return text
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
