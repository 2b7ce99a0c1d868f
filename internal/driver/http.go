package driver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"

	"github.com/jimezsa/jobharvest/internal/network"
)

// HTTPFetcher fetches pages with the fingerprinted network client. file://
// URLs are read from disk, which replays saved result pages.
type HTTPFetcher struct {
	client *network.Client
	base   *url.URL
}

func NewHTTPFetcher(client *network.Client, baseURL string) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &HTTPFetcher{client: client, base: base}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", err
	}
	if target.Scheme == "file" {
		return readDocument(target.Path)
	}

	resp, err := f.client.Get(ctx, target.String())
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, "", err
	}
	final := target.String()
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return doc, final, nil
}

func readDocument(path string) (*goquery.Document, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, "", err
	}
	return doc, (&url.URL{Scheme: "file", Path: path}).String(), nil
}

// LoadCookies seeds the client's jar from a cookie file. A missing file is
// not an error.
func (f *HTTPFetcher) LoadCookies(path string) error {
	cookies, err := ReadCookieFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	jarCookies := make([]*fhttp.Cookie, 0, len(cookies))
	for _, c := range cookies {
		cookie := &fhttp.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HttpOnly: c.HTTPOnly,
			Secure:   c.Secure,
		}
		if c.Expires > 0 {
			cookie.Expires = time.Unix(int64(c.Expires), 0)
		}
		jarCookies = append(jarCookies, cookie)
	}
	f.client.SetCookies(f.base, jarCookies)
	return nil
}

// SaveCookies writes the jar's cookies for the base URL.
func (f *HTTPFetcher) SaveCookies(path string) error {
	jarCookies := f.client.Cookies(f.base)
	cookies := make([]Cookie, 0, len(jarCookies))
	for _, c := range jarCookies {
		domain := c.Domain
		if domain == "" {
			domain = f.base.Hostname()
		}
		cookiePath := c.Path
		if cookiePath == "" {
			cookiePath = "/"
		}
		cookie := Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     cookiePath,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if !c.Expires.IsZero() {
			cookie.Expires = float64(c.Expires.Unix())
		}
		cookies = append(cookies, cookie)
	}
	return WriteCookieFile(path, cookies)
}
