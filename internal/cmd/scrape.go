package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jimezsa/jobharvest/internal/browser"
	"github.com/jimezsa/jobharvest/internal/config"
	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/models"
	"github.com/jimezsa/jobharvest/internal/network"
	"github.com/jimezsa/jobharvest/internal/prompt"
	"github.com/jimezsa/jobharvest/internal/selectors"
	"github.com/jimezsa/jobharvest/internal/session"
	"github.com/jimezsa/jobharvest/internal/sink"
)

type ScrapeCmd struct {
	Keywords     string `arg:"" help:"Search keywords."`
	Location     string `help:"Job location." env:"JOBHARVEST_DEFAULT_LOCATION"`
	Driver       string `help:"Page driver: browser or static." enum:",browser,static" default:""`
	Headless     bool   `help:"Run the browser without a window."`
	Cookies      string `help:"Cookie jar file."`
	Output       string `name:"output" short:"o" help:"Final CSV path."`
	DataDir      string `help:"Directory for progress, page and session files."`
	DelayMin     int    `help:"Minimum pause between interactions (ms)."`
	DelayMax     int    `help:"Maximum pause between interactions (ms)."`
	MaxRetries   int    `help:"Attempts for session file writes and login verification."`
	NavTimeout   int    `help:"Navigation timeout (ms)."`
	Selectors    string `help:"YAML file overriding the built-in selectors."`
	BaseURL      string `name:"base-url" help:"Site root."`
	Proxies      string `help:"Comma-separated proxy URLs for the static driver." env:"JOBHARVEST_PROXIES"`
	ScrollPasses int    `help:"Automatic scroll passes before each page is read."`
	SkipLogin    bool   `help:"Do not check for or wait on a LinkedIn login."`
	Install      bool   `help:"Download the browser before launching."`
}

func (s *ScrapeCmd) Run(ctx *Context) error {
	cfg := s.settings(ctx.Config)
	if err := cfg.Validate(); err != nil {
		return err
	}
	set, err := selectors.Load(cfg.SelectorsPath)
	if err != nil {
		return err
	}

	page, err := openDriver(ctx, cfg, set, s.Proxies, s.Install)
	if err != nil {
		return err
	}
	defer func() {
		if err := page.Close(); err != nil {
			ctx.Logger.Warn().Err(err).Msg("close driver")
		}
	}()

	operator := prompt.NewTerminal(ctx.In, ctx.UI)
	out := sink.New(sink.Options{Dir: cfg.DataDir, OutputPath: cfg.OutputPath})
	ctrl := session.New(page, operator, out, session.Options{
		Selectors:         set,
		BaseURL:           cfg.BaseURL,
		CookiesPath:       cfg.CookiesPath,
		DelayMin:          cfg.DelayMin(),
		DelayMax:          cfg.DelayMax(),
		MaxRetries:        cfg.MaxRetries,
		NavigationTimeout: cfg.NavigationTimeout(),
		ScrollPasses:      cfg.ScrollPasses,
		SkipLogin:         s.SkipLogin || cfg.Driver == config.DriverStatic,
		Logger:            ctx.Logger,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params := models.SearchParams{
		Keywords: strings.TrimSpace(s.Keywords),
		Location: firstNonEmpty(s.Location, cfg.DefaultLocation),
	}
	ctx.UI.Infof("Searching LinkedIn for %q in %q (%s driver)", params.Keywords, params.Location, cfg.Driver)

	if err := ctrl.Start(runCtx); err != nil {
		return err
	}
	summary, err := ctrl.Search(runCtx, params)
	if werr := writeScrapeSummary(ctx, summary); werr != nil {
		err = errors.Join(err, werr)
	}
	return err
}

// settings layers flags over the loaded config.
func (s *ScrapeCmd) settings(cfg config.Config) config.Config {
	cfg.Headless = cfg.Headless || s.Headless
	cfg.Driver = firstNonEmpty(s.Driver, cfg.Driver)
	cfg.CookiesPath = firstNonEmpty(s.Cookies, cfg.CookiesPath)
	cfg.OutputPath = firstNonEmpty(s.Output, cfg.OutputPath)
	cfg.DataDir = firstNonEmpty(s.DataDir, cfg.DataDir)
	cfg.SelectorsPath = firstNonEmpty(s.Selectors, cfg.SelectorsPath)
	cfg.BaseURL = firstNonEmpty(s.BaseURL, cfg.BaseURL)
	cfg.DelayMinMS = defaultInt(s.DelayMin, cfg.DelayMinMS)
	cfg.DelayMaxMS = defaultInt(s.DelayMax, cfg.DelayMaxMS)
	cfg.MaxRetries = defaultInt(s.MaxRetries, cfg.MaxRetries)
	cfg.NavigationTimeoutMS = defaultInt(s.NavTimeout, cfg.NavigationTimeoutMS)
	cfg.ScrollPasses = defaultInt(s.ScrollPasses, cfg.ScrollPasses)
	return cfg
}

func openDriver(ctx *Context, cfg config.Config, set selectors.Set, proxiesFlag string, install bool) (driver.PageDriver, error) {
	if cfg.Driver == config.DriverStatic {
		return openStatic(ctx, cfg, set, proxiesFlag)
	}
	b, err := browser.Launch(browser.Options{
		Headless:          cfg.Headless,
		NavigationTimeout: cfg.NavigationTimeout(),
		Install:           install,
		Logger:            ctx.Logger,
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func openStatic(ctx *Context, cfg config.Config, set selectors.Set, proxiesFlag string) (*driver.Static, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	client, err := network.NewClient(rotator, cfg.NavigationTimeout())
	if err != nil {
		return nil, err
	}
	fetcher, err := driver.NewHTTPFetcher(client, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return driver.NewStatic(fetcher, driver.StaticOptions{
		BaseURL:       cfg.BaseURL,
		LinkSelectors: set.JobLink,
		Logger:        ctx.Logger,
	})
}

func writeScrapeSummary(ctx *Context, summary session.Summary) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	ctx.UI.Successf("Scraped %d jobs from %d page(s)", summary.Records, summary.Pages)
	if summary.Skipped > 0 {
		ctx.UI.Warnf("Skipped %d card(s) without enough data", summary.Skipped)
	}
	if summary.Stopped {
		ctx.UI.Infof("Stopped at your request.")
	}
	for _, path := range summary.Files {
		_, _ = fmt.Fprintf(ctx.Out, "  %s\n", path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
