package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/export"
	"github.com/jimezsa/jobharvest/internal/models"
)

func writeJobsFile(t *testing.T, jobs []models.Job) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer file.Close()
	if err := export.WriteCSV(file, jobs); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	return path
}

func TestResolveFormatRespectsGlobalFlags(t *testing.T) {
	got, err := resolveFormat(&Context{Out: io.Discard, JSONOutput: true}, "md")
	if err != nil || got != export.FormatJSON {
		t.Fatalf("resolveFormat(json) = %q, %v", got, err)
	}
	got, err = resolveFormat(&Context{Out: io.Discard, PlainText: true}, "")
	if err != nil || got != export.FormatTSV {
		t.Fatalf("resolveFormat(plain) = %q, %v", got, err)
	}
	got, err = resolveFormat(&Context{Out: io.Discard}, "md")
	if err != nil || got != export.FormatMarkdown {
		t.Fatalf("resolveFormat(md) = %q, %v", got, err)
	}
	got, err = resolveFormat(&Context{Out: io.Discard}, "")
	if err != nil || got != export.FormatCSV {
		t.Fatalf("resolveFormat(non-tty) = %q, %v", got, err)
	}
}

func TestShowRendersJSONWithLimit(t *testing.T) {
	path := writeJobsFile(t, []models.Job{
		{Title: "Go Engineer", Company: "Acme", URL: "https://www.linkedin.com/jobs/view/1/", Description: "About the job", PostedDate: "2024-01-08"},
		{Title: "SRE", Company: "Initech", URL: "https://www.linkedin.com/jobs/view/2/", Description: "Keep it up", PostedDate: "Not specified"},
	})

	var out bytes.Buffer
	cmd := &ShowCmd{File: path, Limit: 1}
	if err := cmd.Run(newTestContext(&out, true)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []models.Job
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0].Title != "Go Engineer" {
		t.Fatalf("jobs = %#v", got)
	}
}

func TestCookiesShowAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	cookies := []driver.Cookie{
		{Name: "li_at", Value: "secret", Domain: ".linkedin.com", Path: "/", Expires: 1704067200},
		{Name: "lang", Value: "v=2&lang=en-us", Domain: ".linkedin.com", Path: "/"},
	}
	if err := driver.WriteCookieFile(path, cookies); err != nil {
		t.Fatalf("WriteCookieFile() error = %v", err)
	}

	var out bytes.Buffer
	ctx := newTestContext(&out, false)
	if err := (&ShowCookiesCmd{Path: path}).Run(ctx); err != nil {
		t.Fatalf("show Run() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "li_at") || !strings.Contains(got, "2024-01-01T00:00:00Z") || !strings.Contains(got, "session") {
		t.Fatalf("show output = %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Fatalf("cookie values must not be printed: %q", got)
	}

	if err := (&ClearCookiesCmd{Path: path}).Run(ctx); err != nil {
		t.Fatalf("clear Run() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("cookie file still present: %v", err)
	}
	if err := (&ClearCookiesCmd{Path: path}).Run(ctx); err != nil {
		t.Fatalf("second clear Run() error = %v", err)
	}
}
