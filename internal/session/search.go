package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/jobharvest/internal/driver"
	"github.com/jimezsa/jobharvest/internal/models"
)

const (
	listingWait      = 20 * time.Second
	listingRetryWait = 10 * time.Second
	listingScroll    = 500
)

// Search runs the search and walks its result pages until the last page or
// until the operator stops. Every record is persisted as soon as it is built;
// the session files are written at the end even when the search fails.
func (c *Controller) Search(ctx context.Context, params models.SearchParams) (Summary, error) {
	c.state.Page = 1
	c.state.Jobs = nil
	c.state.PageJobs = nil
	c.sink.StartPage(1)

	stopped, err := c.walkPages(ctx, params)
	if errors.Is(err, driver.ErrDisconnected) {
		return c.abort()
	}
	if ferr := c.finalize(); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return c.summary(stopped), err
}

func (c *Controller) walkPages(ctx context.Context, params models.SearchParams) (bool, error) {
	target := SearchURL(c.opts.BaseURL, params)
	c.log.Info().Str("url", target).Msg("opening search")
	if err := c.navigate(ctx, target); err != nil {
		return false, fmt.Errorf("open search: %w", err)
	}

	if onLoginPage(c.page.CurrentURL()) {
		c.log.Warn().Msg("search redirected to login")
		if err := c.waitForLogin(ctx); err != nil {
			return false, err
		}
		if err := c.navigate(ctx, target); err != nil {
			return false, fmt.Errorf("reopen search: %w", err)
		}
	}

	if err := c.waitForListings(ctx); err != nil {
		return false, err
	}
	if err := c.opts.Pacer.Between(ctx, 5*time.Second, 7*time.Second); err != nil {
		return false, err
	}

	for {
		if !c.page.Connected() {
			return false, driver.ErrDisconnected
		}
		if err := c.scrapePage(ctx); err != nil {
			return false, err
		}
		c.checkpoint()

		advanced, stopped, err := c.nextPage(ctx)
		if err != nil || !advanced {
			return stopped, err
		}
	}
}

// waitForListings waits for the result list, scrolling once to trigger lazy
// rendering before giving up.
func (c *Controller) waitForListings(ctx context.Context) error {
	markers := c.opts.Selectors.ListMarkers
	found, err := c.page.WaitForAny(ctx, markers, listingWait)
	if err == nil {
		c.log.Debug().Str("selector", found).Msg("listings rendered")
		return nil
	}
	if errors.Is(err, driver.ErrDisconnected) || ctx.Err() != nil {
		return err
	}

	c.log.Debug().Msg("no listings yet, scrolling")
	if err := c.page.ScrollBy(ctx, listingScroll); err != nil {
		return err
	}
	if err := c.opts.Pacer.Between(ctx, 3*time.Second, 5*time.Second); err != nil {
		return err
	}
	if found, err = c.page.WaitForAny(ctx, markers, listingRetryWait); err != nil {
		if errors.Is(err, driver.ErrDisconnected) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrNoListings, err)
	}
	c.log.Debug().Str("selector", found).Msg("listings rendered after scroll")
	return nil
}

func (c *Controller) scrapePage(ctx context.Context) error {
	page := c.state.Page
	lines := pageInstructions(page)
	if b, ok := c.page.(driver.Bannerer); ok {
		if err := b.ShowBanner(ctx, lines); err != nil {
			c.log.Debug().Err(err).Msg("page banner")
		}
	}
	if err := c.autoScroll(ctx); err != nil {
		return err
	}
	c.signal.Announce(lines)
	if err := c.signal.WaitForEnter(ctx, "Press Enter when all jobs are visible..."); err != nil {
		return err
	}

	cards, err := c.cards(ctx)
	if err != nil {
		return err
	}
	c.log.Info().Int("page", page).Int("cards", len(cards)).Msg("processing page")

	for i, card := range cards {
		if !c.page.Connected() {
			return driver.ErrDisconnected
		}
		job, err := c.processCard(ctx, card)
		if err != nil {
			if errors.Is(err, driver.ErrDisconnected) || ctx.Err() != nil {
				return err
			}
			c.state.Skipped++
			c.log.Warn().Err(err).Int("page", page).Int("card", i+1).Msg("card skipped")
			continue
		}
		c.state.Jobs = append(c.state.Jobs, job)
		c.state.PageJobs = append(c.state.PageJobs, job)
		if err := c.sink.Append(job); err != nil {
			c.log.Warn().Err(err).Msg("progress write failed")
		}
		c.log.Debug().Int("page", page).Int("card", i+1).Int("total", len(cards)).Str("title", job.Title).Msg("job extracted")
	}
	c.log.Info().Int("page", page).Int("jobs", len(c.state.PageJobs)).Msg("page done")
	return nil
}

func (c *Controller) autoScroll(ctx context.Context) error {
	for i := 0; i < c.opts.ScrollPasses; i++ {
		if err := c.page.ScrollBy(ctx, c.opts.Pacer.Intn(300, 700)); err != nil {
			return err
		}
		if err := c.opts.Pacer.Pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

// cards returns the cards of the first card locator that matches anything.
func (c *Controller) cards(ctx context.Context) ([]driver.Card, error) {
	for _, selector := range c.opts.Selectors.Cards {
		cards, err := c.page.QueryCards(ctx, selector)
		if err != nil {
			if errors.Is(err, driver.ErrDisconnected) {
				return nil, err
			}
			c.log.Debug().Err(err).Str("selector", selector).Msg("query cards")
			continue
		}
		if len(cards) > 0 {
			return cards, nil
		}
	}
	return nil, nil
}

// nextPage asks the operator whether to continue and, if so, moves to the
// next result page. stopped reports an operator stop.
func (c *Controller) nextPage(ctx context.Context) (advanced, stopped bool, err error) {
	button := ""
	for _, selector := range c.opts.Selectors.NextPage {
		if c.page.IsEnabled(selector) {
			button = selector
			break
		}
	}
	if button == "" {
		c.log.Info().Msg("no more pages available")
		return false, false, nil
	}

	choice, err := c.signal.WaitForChoice(ctx, `Press Enter to continue to next page, or type "n" and Enter to stop here: `)
	if err != nil {
		return false, false, err
	}
	if choice == ChoiceStop {
		c.log.Info().Msg("stopping at operator request")
		return false, true, nil
	}

	if err := c.page.Click(ctx, button); err != nil {
		return false, false, fmt.Errorf("next page: %w", err)
	}
	if err := c.opts.Pacer.Between(ctx, 3*time.Second, 5*time.Second); err != nil {
		return false, false, err
	}
	c.state.Page++
	c.state.PageJobs = nil
	c.sink.StartPage(c.state.Page)
	return true, false, nil
}

func (c *Controller) checkpoint() {
	path, err := c.sink.Checkpoint(c.state.Page)
	if err != nil {
		c.log.Warn().Err(err).Int("page", c.state.Page).Msg("page checkpoint failed")
		return
	}
	c.addFiles(path)
	c.log.Info().Str("path", path).Int("jobs", len(c.state.PageJobs)).Msg("page saved")
}

// finalize writes the session files, rewriting all of them on each attempt.
func (c *Controller) finalize() error {
	var err error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		var paths []string
		paths, err = c.sink.Finalize(c.state.Jobs)
		c.addFiles(paths...)
		if err == nil {
			c.log.Info().Int("jobs", len(c.state.Jobs)).Strs("files", paths).Msg("session saved")
			return nil
		}
		c.log.Warn().Err(err).Int("attempt", attempt).Msg("session save failed")
	}
	return err
}

// abort flushes what was collected after the browser went away.
func (c *Controller) abort() (Summary, error) {
	c.log.Error().Int("page", c.state.Page).Msg("browser connection lost")
	c.checkpoint()
	err := driver.ErrDisconnected
	if ferr := c.finalize(); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return c.summary(false), err
}

func pageInstructions(page int) []string {
	return []string{
		fmt.Sprintf("Currently on Page %d", page),
		"1. Scroll down to load all jobs on this page",
		"2. Press Enter in the terminal window when all jobs are visible",
		"3. The scraper will click through each job to get descriptions",
	}
}
