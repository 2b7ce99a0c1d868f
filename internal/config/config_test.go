package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Headless {
		t.Fatalf("Headless = true, want false")
	}
	if cfg.DelayMin() != 2*time.Second || cfg.DelayMax() != 5*time.Second {
		t.Fatalf("delays = %v..%v", cfg.DelayMin(), cfg.DelayMax())
	}
	if cfg.NavigationTimeout() != time.Minute || cfg.MaxRetries != 3 {
		t.Fatalf("timeout = %v, retries = %d", cfg.NavigationTimeout(), cfg.MaxRetries)
	}
	if cfg.CookiesPath != filepath.Join("data", "cookies.json") || cfg.OutputPath != filepath.Join("data", "jobs.csv") {
		t.Fatalf("paths = %q, %q", cfg.CookiesPath, cfg.OutputPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JOBHARVEST_HEADLESS", "true")
	t.Setenv("JOBHARVEST_DELAY_MIN_MS", "100")
	t.Setenv("JOBHARVEST_DRIVER", "static")
	t.Setenv("JOBHARVEST_MAX_RETRIES", "not-a-number")

	cfg := DefaultConfig()
	if !cfg.Headless || cfg.DelayMinMS != 100 || cfg.Driver != DriverStatic {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("MaxRetries = %d, want fallback 3", cfg.MaxRetries)
	}
}

func TestLoadFileJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  // run without a window
  "headless": true,
  "delay_min_ms": 500,
  "delay_max_ms": 900,
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !cfg.Headless || cfg.DelayMinMS != 500 || cfg.DelayMaxMS != 900 {
		t.Fatalf("LoadFile() = %+v", cfg)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("unset field lost its default: %d", cfg.MaxRetries)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("LoadFile() = %+v, want defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"min above max", func(c *Config) { c.DelayMinMS = 6000 }, "exceeds"},
		{"negative delay", func(c *Config) { c.DelayMinMS = -1 }, "negative"},
		{"no retries", func(c *Config) { c.MaxRetries = 0 }, "max_retries"},
		{"unknown driver", func(c *Config) { c.Driver = "selenium" }, "unknown driver"},
		{"zero timeout", func(c *Config) { c.NavigationTimeoutMS = 0 }, "navigation_timeout_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestInitWritesFilesOnce(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBHARVEST_CONFIG_DIR", dir)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("Init() created %v, want 3 files", created)
	}
	if _, err := LoadFile(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}

	created, err = Init()
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second Init() created %v", created)
	}
}

func TestLoadProxies(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOBHARVEST_CONFIG_DIR", dir)

	got, err := LoadProxies(" http://a:1 , ,http://b:2")
	if err != nil || !reflect.DeepEqual(got, []string{"http://a:1", "http://b:2"}) {
		t.Fatalf("LoadProxies(flag) = %v, %v", got, err)
	}

	if err := os.WriteFile(filepath.Join(dir, ProxiesFileName), []byte("# comment\nhttp://c:3\n\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err = LoadProxies("")
	if err != nil || !reflect.DeepEqual(got, []string{"http://c:3"}) {
		t.Fatalf("LoadProxies(file) = %v, %v", got, err)
	}

	t.Setenv("JOBHARVEST_PROXIES", "http://d:4")
	got, err = LoadProxies("")
	if err != nil || !reflect.DeepEqual(got, []string{"http://d:4"}) {
		t.Fatalf("LoadProxies(env) = %v, %v", got, err)
	}
}
