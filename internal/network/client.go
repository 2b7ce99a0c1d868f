package network

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

// Client is a Chrome-fingerprinted HTTP client with an optional proxy
// rotator and a persistent cookie jar.
type Client struct {
	http      tls_client.HttpClient
	rotator   *Rotator
	userAgent string
}

// NewClient builds a client. A nil rotator means direct connections. One user
// agent is picked per client so a session keeps a stable identity.
func NewClient(rotator *Rotator, timeout time.Duration) (*Client, error) {
	jar, err := fhttpcookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	seconds := int(timeout.Seconds())
	if seconds <= 0 {
		seconds = 30
	}
	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(seconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      client,
		rotator:   rotator,
		userAgent: RandomUserAgent(),
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, err := c.rotateProxy()
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

// Get issues a browser-like GET and fails on HTTP error statuses.
func (c *Client) Get(ctx context.Context, target string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("accept-language", "en-US,en;q=0.9")

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: http %d for %s", ErrRequestFailed, resp.StatusCode, target)
	}
	return resp, nil
}

// Cookies returns the jar's cookies for u.
func (c *Client) Cookies(u *url.URL) []*fhttp.Cookie {
	return c.http.GetCookies(u)
}

// SetCookies stores cookies for u in the jar.
func (c *Client) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {
	c.http.SetCookies(u, cookies)
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		if err := c.http.SetProxy(proxy.String()); err != nil {
			return nil, fmt.Errorf("set proxy: %w", err)
		}
	}
	return proxy, nil
}

var (
	uaMu  sync.Mutex
	uaRNG = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// UserAgents are the desktop browser identities sessions pick from.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

func RandomUserAgent() string {
	uaMu.Lock()
	defer uaMu.Unlock()
	return UserAgents[uaRNG.Intn(len(UserAgents))]
}
