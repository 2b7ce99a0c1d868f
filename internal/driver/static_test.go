package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsHTML = `<html><body>
<nav class="global-nav"></nav>
<ul class="jobs-search__results-list">
  <li class="job-card-container">
    <a class="job-card-container__link" href="/jobs/view/1/">
      <h3 class="base-search-card__title">Go Engineer</h3>
    </a>
    <h4 class="base-search-card__subtitle"> Acme </h4>
    <span class="job-search-card__location">Berlin</span>
  </li>
  <li class="job-card-container">
    <span class="base-search-card__title">No link here</span>
  </li>
</ul>
<button aria-label="Next" disabled>Next</button>
<a aria-label="Page 2" href="/jobs/search/?start=25">2</a>
</body></html>`

const detailHTML = `<html><body>
<div class="jobs-description__content">
  <h2>About the job</h2>
  <p>Build <b>fast</b> things.</p>
  <ul><li>Go</li><li>SQL</li></ul>
  <script>var x = 1;</script>
</div>
</body></html>`

func newTestStatic(t *testing.T) *Static {
	t.Helper()
	fixtures := Fixtures{
		"https://www.linkedin.com/jobs/search/":          resultsHTML,
		"https://www.linkedin.com/jobs/view/1/":          detailHTML,
		"https://www.linkedin.com/jobs/search/?start=25": `<html><body><p class="marker">page two</p></body></html>`,
	}
	d, err := NewStatic(fixtures, StaticOptions{
		BaseURL:       "https://www.linkedin.com",
		LinkSelectors: []string{"a.job-card-container__link"},
	})
	require.NoError(t, err)
	require.NoError(t, d.Navigate(context.Background(), "/jobs/search/", WaitNetworkIdle, time.Second))
	return d
}

func TestStaticWaitForAny(t *testing.T) {
	d := newTestStatic(t)
	ctx := context.Background()

	got, err := d.WaitForAny(ctx, []string{".missing", ".jobs-search__results-list", ".global-nav"}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, ".jobs-search__results-list", got)

	_, err = d.WaitForAny(ctx, []string{".missing"}, time.Second)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, d.WaitForNone(ctx, []string{".login__form"}, time.Second))
	assert.True(t, errors.Is(d.WaitForNone(ctx, []string{".global-nav"}, time.Second), ErrWaitTimeout))
}

func TestStaticCards(t *testing.T) {
	d := newTestStatic(t)
	ctx := context.Background()

	cards, err := d.QueryCards(ctx, ".job-card-container")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	first := cards[0]
	assert.Contains(t, first.TextOf("h3.base-search-card__title"), "Go Engineer")
	assert.Equal(t, "/jobs/view/1/", first.AttrOf("a.job-card-container__link", "href"))
	assert.Contains(t, first.Text(), "Berlin")
	assert.Empty(t, first.TextOf(".missing"))

	require.NoError(t, first.Click(ctx))
	text := d.TextOf(".jobs-description__content")
	assert.Contains(t, text, "About the job\n")
	assert.Contains(t, text, "Build fast things.")
	assert.NotContains(t, text, "var x")

	err = cards[1].Click(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStaticPagination(t *testing.T) {
	d := newTestStatic(t)
	ctx := context.Background()

	assert.False(t, d.IsEnabled(`button[aria-label="Next"]`))
	assert.True(t, d.IsEnabled(`a[aria-label="Page 2"]`))
	assert.False(t, d.IsEnabled(".missing"))

	require.NoError(t, d.Click(ctx, `a[aria-label="Page 2"]`))
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?start=25", d.CurrentURL())
	assert.Contains(t, d.TextOf(".marker"), "page two")
}

func TestStaticNavigationTimeout(t *testing.T) {
	d, err := NewStatic(slowFetcher{}, StaticOptions{BaseURL: "https://www.linkedin.com"})
	require.NoError(t, err)

	err = d.Navigate(context.Background(), "/jobs", WaitNetworkIdle, 10*time.Millisecond)
	assert.True(t, errors.Is(err, ErrNavigationTimeout), "got %v", err)
}

func TestStaticClose(t *testing.T) {
	d := newTestStatic(t)
	require.True(t, d.Connected())
	require.NoError(t, d.Close())
	assert.False(t, d.Connected())
	assert.True(t, errors.Is(d.Navigate(context.Background(), "/jobs/search/", WaitLoad, 0), ErrDisconnected))
}

func TestCookieFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cookies.json")
	in := []Cookie{{Name: "li_at", Value: "token", Domain: ".linkedin.com", Path: "/", Expires: 1.9e9, HTTPOnly: true, Secure: true, SameSite: "None"}}

	require.NoError(t, WriteCookieFile(path, in))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := ReadCookieFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

type slowFetcher struct{}

func (slowFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	<-ctx.Done()
	return nil, "", ctx.Err()
}
