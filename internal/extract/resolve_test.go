package extract

import "testing"

type mapSource map[string]string

func (m mapSource) TextOf(locator string) string {
	return m[locator]
}

func (m mapSource) AttrOf(locator, name string) string {
	return m[locator+"@"+name]
}

func TestResolveFirstNonEmptyWins(t *testing.T) {
	src := mapSource{
		"B": "  from   B ",
		"C": "from C",
	}
	if got := Resolve(src, []string{"A", "B", "C"}); got != "from B" {
		t.Fatalf("Resolve() = %q, want %q", got, "from B")
	}
}

func TestResolveSkipsBlankMatches(t *testing.T) {
	src := mapSource{
		"A": " \u200b \n",
		"B": "Acme",
	}
	if got := Resolve(src, []string{"A", "B"}); got != "Acme" {
		t.Fatalf("Resolve() = %q, want %q", got, "Acme")
	}
}

func TestResolveNoMatch(t *testing.T) {
	if got := Resolve(mapSource{}, []string{"A", "B"}); got != "" {
		t.Fatalf("Resolve() = %q, want empty", got)
	}
	if got := Resolve(nil, []string{"A"}); got != "" {
		t.Fatalf("Resolve(nil) = %q, want empty", got)
	}
}

func TestResolveTitle(t *testing.T) {
	src := mapSource{".title": "Data Engineer\n Data Engineer with verification"}
	if got := ResolveTitle(src, []string{".missing", ".title"}); got != "Data Engineer" {
		t.Fatalf("ResolveTitle() = %q, want %q", got, "Data Engineer")
	}
}

func TestResolveMultilineKeepsLines(t *testing.T) {
	src := mapSource{".desc": "About the job\n\n  Do things  "}
	if got := ResolveMultiline(src, []string{".desc"}); got != "About the job\nDo things" {
		t.Fatalf("ResolveMultiline() = %q", got)
	}
}

func TestResolveAttr(t *testing.T) {
	src := mapSource{
		"a.first@href":  " ",
		"a.second@href": "/jobs/view/42/",
	}
	got := ResolveAttr(src, []string{"a.first", "a.second"}, "href")
	if got != "/jobs/view/42/" {
		t.Fatalf("ResolveAttr() = %q, want %q", got, "/jobs/view/42/")
	}
}
