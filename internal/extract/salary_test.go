package extract

import "testing"

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "range with K", in: "$120K - $150K", want: "$120,000 - $150,000", wantOK: true},
		{name: "range with K on upper bound", in: "120-150K/yr", want: "$120,000 - $150,000", wantOK: true},
		{name: "range with to", in: "$90,000 to $110,000 a year", want: "$90,000 - $110,000", wantOK: true},
		{name: "full range", in: "120,000-150,000", want: "$120,000 - $150,000", wantOK: true},
		{name: "en dash range", in: "$95,000 \u2013 $125,000", want: "$95,000 - $125,000", wantOK: true},
		{name: "single K", in: "Up to 150k", want: "$150,000", wantOK: true},
		{name: "decimal K", in: "$120.5K", want: "$120,500", wantOK: true},
		{name: "single full number", in: "Pay: $85,000", want: "$85,000", wantOK: true},
		{name: "unseparated number", in: "$130000 per year", want: "$130,000", wantOK: true},
		{name: "iso date", in: "2024-01-10", wantOK: false},
		{name: "slash date", in: "Posted 01/10/2024", wantOK: false},
		{name: "date before amount", in: "2024-01-10 $95K", want: "$95,000", wantOK: true},
		{name: "dollar range that looks like years", in: "$2,000 - $2,050", want: "$2,000 - $2,050", wantOK: true},
		{name: "no match", in: "Competitive compensation", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSalary(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseSalary(%q) ok = %v, want %v (got %q)", tt.in, ok, tt.wantOK, got)
			}
			if got != tt.want {
				t.Fatalf("ParseSalary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSalaryFromTextRequiresKeyword(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{
			name:   "keyword before range",
			in:     "Acme Corp\nSan Francisco, CA\nThe base salary range for this role is $140,000 - $180,000.",
			want:   "$140,000 - $180,000",
			wantOK: true,
		},
		{
			name:   "keyword with K",
			in:     "Great team. Target annual salary: 130K. Apply now",
			want:   "$130,000",
			wantOK: true,
		},
		{
			name:   "number without keyword",
			in:     "Acme Corp\n200 applicants\n3 days ago",
			wantOK: false,
		},
		{
			name:   "keyword in another sentence",
			in:     "We pay well. Over 500 employees worldwide.",
			wantOK: false,
		},
		{
			name:   "year span after keyword",
			in:     "Salary range 2024-2025 hiring",
			wantOK: false,
		},
		{
			name:   "date sentence then salary",
			in:     "Posted 2024-01-10\nCompensation: $110K - $130K",
			want:   "$110,000 - $130,000",
			wantOK: true,
		},
		{
			name:   "number before keyword",
			in:     "401k matching and competitive pay",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSalaryFromText(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseSalaryFromText() ok = %v, want %v (got %q)", ok, tt.wantOK, got)
			}
			if got != tt.want {
				t.Fatalf("ParseSalaryFromText() = %q, want %q", got, tt.want)
			}
		})
	}
}
