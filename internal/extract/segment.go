package extract

import "strings"

const (
	fallbackRunes = 1000
	ellipsis      = "..."
)

// Segment cuts the role description out of a detail panel. The text starts at
// the first start marker found and is cut before every end marker found, in
// order. When no marker changed anything the first 1000 characters are kept.
func Segment(text string, startMarkers, endMarkers []string) string {
	normalized := NormalizeMultiline(text)
	if normalized == "" {
		return ""
	}

	result := normalized
	for _, marker := range startMarkers {
		if marker == "" {
			continue
		}
		if idx := strings.Index(result, marker); idx >= 0 {
			result = result[idx:]
			break
		}
	}
	for _, marker := range endMarkers {
		if marker == "" {
			continue
		}
		if idx := strings.Index(result, marker); idx >= 0 {
			result = strings.TrimSpace(result[:idx])
		}
	}

	if result == normalized {
		result = TruncateFallback(normalized)
	}
	return tidyLines(result)
}

// TruncateFallback keeps the first 1000 characters and appends "...".
func TruncateFallback(text string) string {
	runes := []rune(text)
	if len(runes) > fallbackRunes {
		runes = runes[:fallbackRunes]
	}
	return string(runes) + ellipsis
}

func tidyLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
