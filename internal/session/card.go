package session

import (
	"context"
	"errors"
	"time"

	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/extract"
	"github.com/jimezsa/jobharvest/internal/models"
)

const detailWait = 5 * time.Second

// processCard extracts one record: list fields from the card, then the
// description from the detail pane opened by clicking it.
func (c *Controller) processCard(ctx context.Context, card driver.Card) (models.Job, error) {
	sel := c.opts.Selectors

	link := extract.ResolveAttr(card, sel.JobLink, "href")
	if link == "" {
		return models.Job{}, extract.ErrMissingURL
	}

	fields := extract.Fields{
		Title:      extract.ResolveTitle(card, sel.Title),
		Company:    extract.Resolve(card, sel.Company),
		Location:   extract.Resolve(card, sel.Location),
		PostedDate: extract.ResolveDate(extract.Resolve(card, sel.PostedDate), c.opts.Now()),
	}
	salary, found := salaryFrom(card, sel.Salary)

	description := ""
	if err := card.Click(ctx); err != nil {
		if errors.Is(err, driver.ErrDisconnected) {
			return models.Job{}, err
		}
		c.log.Warn().Err(err).Str("url", link).Msg("could not open job details")
	} else {
		if err := c.opts.Pacer.Pause(ctx); err != nil {
			return models.Job{}, err
		}
		if _, err := c.page.WaitForAny(ctx, sel.DetailMarkers, detailWait); err != nil {
			if errors.Is(err, driver.ErrDisconnected) {
				return models.Job{}, err
			}
			c.log.Debug().Err(err).Msg("detail markers not found")
		}
		description = c.description()
		if !found {
			salary, found = salaryFrom(c.page, within(sel.DetailMarkers, sel.Salary))
		}
	}
	if !found {
		salary, _ = extract.ParseSalaryFromText(card.Text())
	}
	fields.Salary = salary

	return extract.Assemble(fields, description, link, c.opts.BaseURL)
}

// description segments the detail pane text, falling back to the start of the
// right rail.
func (c *Controller) description() string {
	sel := c.opts.Selectors
	if raw := extract.ResolveMultiline(c.page, sel.Description); raw != "" {
		return extract.Segment(raw, sel.Sections.Start, sel.Sections.End)
	}
	if raw := extract.ResolveMultiline(c.page, sel.DescriptionFallback); raw != "" {
		return extract.TruncateFallback(raw)
	}
	return ""
}

// salaryFrom parses the first salary locator whose text holds a figure.
func salaryFrom(src extract.ContentSource, locators []string) (string, bool) {
	for _, locator := range locators {
		text := extract.Normalize(src.TextOf(locator))
		if text == "" {
			continue
		}
		if salary, ok := extract.ParseSalary(text); ok {
			return salary, true
		}
	}
	return "", false
}

// within scopes locators to descendants of the detail containers.
func within(containers, locators []string) []string {
	if len(containers) == 0 {
		return locators
	}
	out := make([]string, 0, len(containers)*len(locators))
	for _, container := range containers {
		for _, locator := range locators {
			out = append(out, container+" "+locator)
		}
	}
	return out
}
