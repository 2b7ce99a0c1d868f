// Package sink persists scraped jobs as CSV snapshots while a session runs, so
// an interrupted session keeps everything extracted up to the last card.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/jobharvest/internal/export"
	"github.com/jimezsa/jobharvest/internal/models"
)

const DefaultPrefix = "linkedin_jobs"

// WriteError reports a snapshot that could not be written. The records stay
// in memory and the next write retries them.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Dir receives progress, page and session files.
	Dir string
	// Prefix starts every file name; defaults to DefaultPrefix.
	Prefix string
	// OutputPath additionally receives the final session snapshot.
	OutputPath string
	Now        func() time.Time
}

// Sink owns the snapshot files of one session. It is not safe for concurrent
// use.
type Sink struct {
	opts     Options
	page     int
	pageJobs []models.Job
}

func New(opts Options) *Sink {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sink{opts: opts, page: 1}
}

// StartPage begins a new page; the per-page record list is reset.
func (s *Sink) StartPage(page int) {
	s.page = page
	s.pageJobs = nil
}

func (s *Sink) Page() int {
	return s.page
}

// PageJobs returns the records appended since the last StartPage.
func (s *Sink) PageJobs() []models.Job {
	return append([]models.Job(nil), s.pageJobs...)
}

// Append records job and rewrites the current page's progress file with every
// record of the page so far.
func (s *Sink) Append(job models.Job) error {
	s.pageJobs = append(s.pageJobs, job)
	return s.write(s.ProgressPath(s.page), s.pageJobs)
}

// Checkpoint writes the finished page to its own timestamped file.
func (s *Sink) Checkpoint(page int) (string, error) {
	path := filepath.Join(s.opts.Dir, fmt.Sprintf("%s_page%d_%s.csv", s.opts.Prefix, page, s.timestamp()))
	return path, s.write(path, s.pageJobs)
}

// Finalize writes all records to a timestamped session file and to the
// configured output path. Both writes are attempted even if one fails.
func (s *Sink) Finalize(all []models.Job) ([]string, error) {
	targets := []string{
		filepath.Join(s.opts.Dir, fmt.Sprintf("%s_all_%s.csv", s.opts.Prefix, s.timestamp())),
	}
	if s.opts.OutputPath != "" {
		targets = append(targets, s.opts.OutputPath)
	}

	var (
		written []string
		errs    []error
	)
	for _, path := range targets {
		if err := s.write(path, all); err != nil {
			errs = append(errs, err)
			continue
		}
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}

func (s *Sink) ProgressPath(page int) string {
	return filepath.Join(s.opts.Dir, fmt.Sprintf("%s_progress_page%d.csv", s.opts.Prefix, page))
}

func (s *Sink) timestamp() string {
	stamp := s.opts.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
}

func (s *Sink) write(path string, jobs []models.Job) error {
	if err := writeAtomic(path, jobs); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// writeAtomic replaces path through a temp file in the same directory so a
// crash never leaves a truncated snapshot.
func writeAtomic(path string, jobs []models.Job) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".jobharvest-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := export.WriteCSV(tmp, jobs); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
