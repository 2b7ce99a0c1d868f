package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NotSpecified is the posted date recorded when the card shows none.
const NotSpecified = "Not specified"

const dateLayout = "2006-01-02"

var relativeAge = regexp.MustCompile(`(\d+)\s*(hour|day|week|month)s?\s*ago`)

// ResolveDate turns "3 days ago" style phrases into a calendar date relative to
// now. Text it does not recognise is returned unchanged.
func ResolveDate(raw string, now time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return NotSpecified
	}

	lower := strings.ToLower(raw)
	// also covers "just now"
	if strings.Contains(lower, "now") {
		return now.Format(dateLayout)
	}

	match := relativeAge.FindStringSubmatch(lower)
	if match == nil {
		return raw
	}
	amount, err := strconv.Atoi(match[1])
	if err != nil {
		return raw
	}

	var posted time.Time
	switch match[2] {
	case "hour":
		posted = now.Add(-time.Duration(amount) * time.Hour)
	case "day":
		posted = now.AddDate(0, 0, -amount)
	case "week":
		posted = now.AddDate(0, 0, -amount*7)
	case "month":
		posted = now.AddDate(0, -amount, 0)
	}
	return posted.Format(dateLayout)
}
