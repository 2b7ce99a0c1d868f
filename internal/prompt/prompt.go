// Package prompt talks to the operator on the terminal during a session.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/jimezsa/jobharvest/internal/session"
	"github.com/jimezsa/jobharvest/internal/ui"
)

type line struct {
	text string
	err  error
}

// Terminal reads operator answers line by line. A single goroutine owns the
// reader so a cancelled wait never loses the next line.
type Terminal struct {
	ui    *ui.UI
	in    io.Reader
	once  sync.Once
	lines chan line
}

func NewTerminal(in io.Reader, u *ui.UI) *Terminal {
	return &Terminal{ui: u, in: in}
}

func (t *Terminal) Announce(lines []string) {
	t.ui.Banner(lines)
}

// WaitForEnter blocks until a line is entered. End of input counts as Enter.
func (t *Terminal) WaitForEnter(ctx context.Context, prompt string) error {
	t.ui.Promptf("%s", prompt)
	_, err := t.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// WaitForChoice reads continue (empty line or anything else) or stop ("n",
// "no", "q", "quit", "stop"). End of input means stop.
func (t *Terminal) WaitForChoice(ctx context.Context, prompt string) (session.Choice, error) {
	t.ui.Promptf("%s", prompt)
	text, err := t.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return session.ChoiceStop, nil
	}
	if err != nil {
		return session.ChoiceStop, err
	}
	return ParseChoice(text), nil
}

func ParseChoice(text string) session.Choice {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "n", "no", "q", "quit", "stop":
		return session.ChoiceStop
	default:
		return session.ChoiceContinue
	}
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.once.Do(t.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (t *Terminal) start() {
	t.lines = make(chan line)
	go func() {
		defer close(t.lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			t.lines <- line{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			t.lines <- line{err: err}
		}
	}()
}
