// Package ui writes operator-facing messages: status lines, prompts and the
// framed banners shown while a scrape waits for input.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ANSI palette indexes.
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarn    = "3"
	colorInfo    = "4"
)

const minRuleWidth = 20

type stream struct {
	w   io.Writer
	out *termenv.Output
}

type UI struct {
	stdout       stream
	stderr       stream
	ColorEnabled bool
}

// New builds a UI over out and err. disableColor wins over mode, and NO_COLOR
// wins over both.
func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	u := &UI{
		stdout: stream{w: out, out: termenv.NewOutput(out)},
		stderr: stream{w: err, out: termenv.NewOutput(err)},
	}
	u.ColorEnabled = colorWanted(u.stdout.out.ColorProfile(), mode, disableColor)
	return u
}

func colorWanted(profile termenv.Profile, mode ColorMode, disableColor bool) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || disableColor {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return profile != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) { u.line(u.stderr, colorError, format, args...) }

func (u *UI) Warnf(format string, args ...any) { u.line(u.stderr, colorWarn, format, args...) }

func (u *UI) Infof(format string, args ...any) { u.line(u.stdout, colorInfo, format, args...) }

func (u *UI) Successf(format string, args ...any) {
	u.line(u.stdout, colorSuccess, format, args...)
}

// Promptf writes a prompt without a trailing newline.
func (u *UI) Promptf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if u.ColorEnabled {
		msg = u.stdout.out.String(msg).Bold().String()
	}
	fmt.Fprint(u.stdout.w, msg)
}

// Banner frames lines between two rules sized to the longest line.
func (u *UI) Banner(lines []string) {
	width := minRuleWidth
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	rule := strings.Repeat("=", width)

	fmt.Fprintln(u.stdout.w)
	u.Infof("%s", rule)
	for _, line := range lines {
		fmt.Fprintln(u.stdout.w, line)
	}
	u.Infof("%s", rule)
}

func (u *UI) line(s stream, color, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = s.out.String(msg).Foreground(s.out.Color(color)).String()
	}
	fmt.Fprintln(s.w, msg)
}

// NormalizeColorMode maps a flag or env value to a ColorMode; anything
// unrecognized means auto.
func NormalizeColorMode(value string) ColorMode {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ColorAlways, ColorNever:
		return mode
	default:
		return ColorAuto
	}
}
