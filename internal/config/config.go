package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobharvest/internal/selectors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName           = "jobharvest"
	ConfigFileName    = "config.json"
	ProxiesFileName   = "proxies.txt"
	SelectorsFileName = "selectors.yaml"

	DriverBrowser = "browser"
	DriverStatic  = "static"
)

// Config holds session settings. Durations are stored in milliseconds.
type Config struct {
	Headless            bool   `json:"headless"`
	CookiesPath         string `json:"cookies_path"`
	OutputPath          string `json:"output_path"`
	DataDir             string `json:"data_dir"`
	DelayMinMS          int    `json:"delay_min_ms"`
	DelayMaxMS          int    `json:"delay_max_ms"`
	MaxRetries          int    `json:"max_retries"`
	NavigationTimeoutMS int    `json:"navigation_timeout_ms"`
	BaseURL             string `json:"base_url"`
	Driver              string `json:"driver"`
	SelectorsPath       string `json:"selectors_path"`
	ScrollPasses        int    `json:"scroll_passes"`
	DefaultLocation     string `json:"default_location"`
}

func DefaultConfig() Config {
	return Config{
		Headless:            envBool("JOBHARVEST_HEADLESS", false),
		CookiesPath:         envString("JOBHARVEST_COOKIES_PATH", filepath.Join("data", "cookies.json")),
		OutputPath:          envString("JOBHARVEST_OUTPUT_PATH", filepath.Join("data", "jobs.csv")),
		DataDir:             envString("JOBHARVEST_DATA_DIR", "data"),
		DelayMinMS:          envInt("JOBHARVEST_DELAY_MIN_MS", 2000),
		DelayMaxMS:          envInt("JOBHARVEST_DELAY_MAX_MS", 5000),
		MaxRetries:          envInt("JOBHARVEST_MAX_RETRIES", 3),
		NavigationTimeoutMS: envInt("JOBHARVEST_NAVIGATION_TIMEOUT_MS", 60000),
		BaseURL:             envString("JOBHARVEST_BASE_URL", "https://www.linkedin.com"),
		Driver:              envString("JOBHARVEST_DRIVER", DriverBrowser),
		SelectorsPath:       envString("JOBHARVEST_SELECTORS_PATH", ""),
		ScrollPasses:        envInt("JOBHARVEST_SCROLL_PASSES", 0),
		DefaultLocation:     envString("JOBHARVEST_DEFAULT_LOCATION", ""),
	}
}

func (c Config) DelayMin() time.Duration {
	return time.Duration(c.DelayMinMS) * time.Millisecond
}

func (c Config) DelayMax() time.Duration {
	return time.Duration(c.DelayMaxMS) * time.Millisecond
}

func (c Config) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMS) * time.Millisecond
}

// Validate reports settings a session cannot start with.
func (c Config) Validate() error {
	var problems []string
	if c.DelayMinMS < 0 || c.DelayMaxMS < 0 {
		problems = append(problems, "delays must not be negative")
	}
	if c.DelayMinMS > c.DelayMaxMS {
		problems = append(problems, fmt.Sprintf("delay_min_ms %d exceeds delay_max_ms %d", c.DelayMinMS, c.DelayMaxMS))
	}
	if c.MaxRetries < 1 {
		problems = append(problems, "max_retries must be at least 1")
	}
	if c.NavigationTimeoutMS <= 0 {
		problems = append(problems, "navigation_timeout_ms must be positive")
	}
	if c.ScrollPasses < 0 {
		problems = append(problems, "scroll_passes must not be negative")
	}
	if c.Driver != DriverBrowser && c.Driver != DriverStatic {
		problems = append(problems, fmt.Sprintf("unknown driver %q", c.Driver))
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		problems = append(problems, "base_url is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("JOBHARVEST_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	return inConfigDir(ConfigFileName)
}

func ProxiesPath() (string, error) {
	return inConfigDir(ProxiesFileName)
}

func SelectorsPath() (string, error) {
	return inConfigDir(SelectorsFileName)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON5 config over the defaults. A missing or empty file
// yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes default config.json, proxies.txt and selectors.yaml if they
// don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	files := []struct {
		name  string
		write func(path string) error
	}{
		{ConfigFileName, func(path string) error { return writeConfig(path, DefaultConfig()) }},
		{ProxiesFileName, func(path string) error { return os.WriteFile(path, []byte(""), 0o644) }},
		{SelectorsFileName, func(path string) error { return selectors.Write(path, selectors.Default()) }},
	}
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := file.write(path); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBHARVEST_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
