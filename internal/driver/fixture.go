package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fixtures is an in-memory Fetcher keyed by absolute URL, for replaying
// captured pages without a network.
type Fixtures map[string]string

func (f Fixtures) Fetch(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	body, ok := f[rawURL]
	if !ok {
		return nil, "", fmt.Errorf("fixture %s: %w", rawURL, ErrNotFound)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	return doc, rawURL, nil
}
