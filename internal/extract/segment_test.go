package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

var (
	testStart = []string{"About the job", "Job Description", "Description"}
	testEnd   = []string{"Qualifications", "Requirements", "Benefits"}
)

func TestSegmentStartAndEnd(t *testing.T) {
	in := "...noise... About the job\nDo great things.\nQualifications\n- 5 years exp"
	want := "About the job\nDo great things."
	if got := Segment(in, testStart, testEnd); got != want {
		t.Fatalf("Segment() = %q, want %q", got, want)
	}
}

func TestSegmentEndMarkersTruncateProgressively(t *testing.T) {
	in := "Job Description\nShip software.\nBenefits\nHealth\nRequirements\nGo\nQualifications\nBS"
	want := "Job Description\nShip software."
	if got := Segment(in, testStart, testEnd); got != want {
		t.Fatalf("Segment() = %q, want %q", got, want)
	}
}

func TestSegmentFirstStartMarkerWins(t *testing.T) {
	in := "Header\nDescription\nfoo\nAbout the job\nbar"
	want := "About the job\nbar"
	if got := Segment(in, testStart, testEnd); got != want {
		t.Fatalf("Segment() = %q, want %q", got, want)
	}
}

func TestSegmentOnlyEndMarker(t *testing.T) {
	in := "We build rockets.\n\n  Requirements\nPhysics"
	want := "We build rockets."
	if got := Segment(in, testStart, testEnd); got != want {
		t.Fatalf("Segment() = %q, want %q", got, want)
	}
}

func TestSegmentFallbackTruncates(t *testing.T) {
	in := strings.Repeat("x", 2000)
	got := Segment(in, testStart, testEnd)
	if !strings.HasSuffix(got, ellipsis) {
		t.Fatalf("Segment() fallback missing ellipsis: %q", got[len(got)-10:])
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, ellipsis)); n != 1000 {
		t.Fatalf("fallback prefix length = %d, want 1000", n)
	}
}

func TestSegmentFallbackCountsCharacters(t *testing.T) {
	in := strings.Repeat("\u00e9", 1500)
	got := strings.TrimSuffix(Segment(in, nil, nil), ellipsis)
	if n := utf8.RuneCountInString(got); n != 1000 {
		t.Fatalf("fallback prefix length = %d, want 1000", n)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("fallback produced invalid UTF-8")
	}
}

func TestSegmentEmpty(t *testing.T) {
	if got := Segment(" \n ", testStart, testEnd); got != "" {
		t.Fatalf("Segment() = %q, want empty", got)
	}
}
