package cmd

import (
	"io"
	"strings"

	"github.com/jimezsa/jobharvest/internal/export"
	"github.com/muesli/termenv"
)

type ShowCmd struct {
	File   string `arg:"" help:"CSV file written by scrape." type:"existingfile"`
	Format string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Limit  int    `help:"Show at most N jobs."`
}

func (s *ShowCmd) Run(ctx *Context) error {
	jobs, err := export.ReadCSVFile(s.File)
	if err != nil {
		return err
	}
	if s.Limit > 0 && len(jobs) > s.Limit {
		jobs = jobs[:s.Limit]
	}

	format, err := resolveFormat(ctx, s.Format)
	if err != nil {
		return err
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(s.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteJobs(ctx.Out, jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(ctx.Out),
		LinkStyle:    linkStyle,
	})
}

func resolveFormat(ctx *Context, format string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return export.ParseFormat(format)
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
