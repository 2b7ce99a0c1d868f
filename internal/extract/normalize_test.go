package extract

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses whitespace", in: "  Senior \t Engineer\n\n", want: "Senior Engineer"},
		{name: "strips zero width", in: "Go\u200bLang\ufeff Dev\u200d", want: "GoLang Dev"},
		{name: "direction marks", in: "Tel\u200e Aviv\u200f", want: "Tel Aviv"},
		{name: "invisible operators", in: "a\u2061b\u2062c\u2063d\u2064", want: "abcd"},
		{name: "mongolian vowel separator", in: "Data\u180eOps", want: "DataOps"},
		{name: "grapheme joiner", in: "Dev\u034fOps", want: "DevOps"},
		{name: "non breaking space", in: "New\u00a0York", want: "New York"},
		{name: "empty", in: " \n\t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  a  b  ",
		"line one\r\nline\u200b two\n\n three ",
		"\ufeff x\u2060y\u00ad",
		"e\u0301cole",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
		onceML := NormalizeMultiline(in)
		if twiceML := NormalizeMultiline(onceML); twiceML != onceML {
			t.Fatalf("NormalizeMultiline twice on %q = %q, want %q", in, twiceML, onceML)
		}
	}
}

func TestNormalizeMultiline(t *testing.T) {
	in := "  About the job \r\n\r\n  Build   things.\u200b\n\t\n- ship it  "
	want := "About the job\nBuild things.\n- ship it"
	if got := NormalizeMultiline(in); got != want {
		t.Fatalf("NormalizeMultiline() = %q, want %q", got, want)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Senior Engineer Senior Engineer", want: "Senior Engineer"},
		{in: "Senior Engineer\n  Senior Engineer with verification", want: "Senior Engineer"},
		{in: "Product Manager with verification", want: "Product Manager"},
		{in: "Backend Engineer", want: "Backend Engineer"},
		{in: "Go Go-Getter", want: "Go Go-Getter"},
		{in: "New New York Office", want: "New York Office"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Fatalf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
