package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const amountPattern = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`

type salaryRule struct {
	name string
	re   *regexp.Regexp
}

// Ordered most specific first; the first rule that matches wins.
var salaryRules = []salaryRule{
	{
		name: "range-k",
		re:   regexp.MustCompile(`(?i)\$?\s*` + amountPattern + `\s*K?\s*(?:-|to|–)\s*\$?\s*` + amountPattern + `\s*K\b`),
	},
	{
		name: "range",
		re:   regexp.MustCompile(`(?i)\$?\s*` + amountPattern + `\s*(?:-|to|–)\s*\$?\s*` + amountPattern + `\b`),
	},
	{
		name: "single-k",
		re:   regexp.MustCompile(`(?i)\$?\s*` + amountPattern + `\s*K\b`),
	},
	{
		name: "single",
		re:   regexp.MustCompile(`\$?\s*` + amountPattern + `\b`),
	},
}

var (
	salaryKeyword = regexp.MustCompile(`(?i)\b(?:target annual salary|base salary|salary|compensation|pay|range)\b`)
	sentenceBreak = regexp.MustCompile(`[.!?;]\s+|\n+`)
	amountPrinter = message.NewPrinter(language.English)

	// calendarText matches ISO dates, slash dates and year spans that are not
	// marked as money. Go regexp has no lookbehind, so the leading group keeps
	// the preceding character.
	calendarText = regexp.MustCompile(`(^|[^$\d.,])(?:\d{4}-\d{1,2}-\d{1,2}|\d{1,2}/\d{1,2}/\d{2,4}|(?:19|20)\d{2}\s*(?:-|–|to)\s*(?:19|20)\d{2})\b`)
)

// stripCalendar blanks dates so their digits never read as amounts.
func stripCalendar(text string) string {
	return calendarText.ReplaceAllString(text, "$1 ")
}

// ParseSalary extracts a compensation figure from text dedicated to salary.
// The result is "$min - $max" or "$amount"; ok is false when nothing matched.
func ParseSalary(text string) (string, bool) {
	text = stripCalendar(text)
	for _, rule := range salaryRules {
		if salary, ok := applySalaryRule(rule, text); ok {
			return salary, true
		}
	}
	return "", false
}

// ParseSalaryFromText searches free text such as a whole card. A rule only
// counts when a compensation keyword appears earlier in the same sentence.
func ParseSalaryFromText(text string) (string, bool) {
	sentences := sentenceBreak.Split(stripCalendar(text), -1)
	for _, rule := range salaryRules {
		for _, sentence := range sentences {
			loc := salaryKeyword.FindStringIndex(sentence)
			if loc == nil {
				continue
			}
			if salary, ok := applySalaryRule(rule, sentence[loc[1]:]); ok {
				return salary, true
			}
		}
	}
	return "", false
}

func applySalaryRule(rule salaryRule, text string) (string, bool) {
	match := rule.re.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	multiplier := 1.0
	if strings.ContainsRune(strings.ToLower(match[0]), 'k') {
		multiplier = 1000
	}

	amounts := make([]int64, 0, 2)
	for _, group := range match[1:] {
		if group == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(group, ",", ""), 64)
		if err != nil {
			return "", false
		}
		amounts = append(amounts, int64(value*multiplier))
	}

	switch len(amounts) {
	case 1:
		return formatAmount(amounts[0]), true
	case 2:
		return formatAmount(amounts[0]) + " - " + formatAmount(amounts[1]), true
	default:
		return "", false
	}
}

func formatAmount(value int64) string {
	return "$" + amountPrinter.Sprintf("%d", value)
}
