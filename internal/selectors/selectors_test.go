package selectors

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("Load() did not return defaults")
	}
}

func TestLoadReplacesListsPresentInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	data := []byte(`
title:
  - h2.custom-title
  - "  "
login:
  nav_bar: "#nav"
sections:
  end: [Requirements]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Title, []string{"h2.custom-title"}) {
		t.Fatalf("Title = %v", got.Title)
	}
	if got.Login.NavBar != "#nav" || got.Login.LoginForm != ".login__form" {
		t.Fatalf("Login = %+v", got.Login)
	}
	if !reflect.DeepEqual(got.Sections.End, []string{"Requirements"}) {
		t.Fatalf("Sections.End = %v", got.Sections.End)
	}
	if !reflect.DeepEqual(got.Company, Default().Company) {
		t.Fatalf("Company should keep defaults")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := Write(path, Default()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("round trip changed the selector set")
	}
}

func TestLoginMarkers(t *testing.T) {
	set := Default()
	set.Login.JoinNow = ""
	if got := set.LoginMarkers(); !reflect.DeepEqual(got, []string{".login__form"}) {
		t.Fatalf("LoginMarkers() = %v", got)
	}
	if got := set.SignedInMarkers(); len(got) != 2 {
		t.Fatalf("SignedInMarkers() = %v", got)
	}
}
