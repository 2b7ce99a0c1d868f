package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobharvest/internal/driver"
)

type CookiesCmd struct {
	Show  ShowCookiesCmd  `cmd:"" help:"List saved cookies (values are not printed)."`
	Clear ClearCookiesCmd `cmd:"" help:"Delete the cookie file to force a fresh login."`
}

type ShowCookiesCmd struct {
	Path string `name:"cookies" help:"Cookie jar file."`
}

type ClearCookiesCmd struct {
	Path string `name:"cookies" help:"Cookie jar file."`
}

type cookieInfo struct {
	Name    string `json:"name"`
	Domain  string `json:"domain"`
	Expires string `json:"expires"`
}

func (c *ShowCookiesCmd) Run(ctx *Context) error {
	path := firstNonEmpty(c.Path, ctx.Config.CookiesPath)
	cookies, err := driver.ReadCookieFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.UI.Infof("No cookies saved at %s", path)
			return nil
		}
		return err
	}

	infos := make([]cookieInfo, 0, len(cookies))
	for _, cookie := range cookies {
		infos = append(infos, cookieInfo{
			Name:    cookie.Name,
			Domain:  cookie.Domain,
			Expires: formatExpiry(cookie.Expires),
		})
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tdomain\texpires")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Domain, info.Expires)
	}
	return tw.Flush()
}

func (c *ClearCookiesCmd) Run(ctx *Context) error {
	path := firstNonEmpty(c.Path, ctx.Config.CookiesPath)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.UI.Infof("No cookies saved at %s", path)
			return nil
		}
		return err
	}
	ctx.UI.Successf("Removed %s", path)
	return nil
}

// formatExpiry renders a cookie expiry in seconds since the epoch; zero or
// negative means a session cookie.
func formatExpiry(expires float64) string {
	if expires <= 0 {
		return "session"
	}
	return time.Unix(int64(expires), 0).UTC().Format(time.RFC3339)
}
