// Package api writes migrated entities through the target application's
// JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const limiterKey = "target-api"

type apiError struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Meta    map[string]string   `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *apiError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

type ClientOptions struct {
	BaseURL         string
	Token           string
	Timeout         time.Duration
	RateLimit       string // limiter format, e.g. "20-S"; empty disables throttling
	RequestIDHeader string
}

// Client sends authenticated JSON requests, throttled client side so a
// long import never trips the target's own rate limiting.
type Client struct {
	baseURL         *url.URL
	token           string
	httpClient      *http.Client
	limiter         *limiter.Limiter
	requestIDHeader string
	sleep           func(context.Context, time.Duration) error
}

func NewClient(opts ClientOptions) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url: %q", raw)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL: u,
		token:   strings.TrimSpace(opts.Token),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		requestIDHeader: opts.RequestIDHeader,
		sleep:           sleepCtx,
	}
	if strings.TrimSpace(opts.RateLimit) != "" {
		rate, err := limiter.NewRateFromFormatted(strings.TrimSpace(opts.RateLimit))
		if err != nil {
			return nil, fmt.Errorf("invalid api rate limit %q: %w", opts.RateLimit, err)
		}
		c.limiter = limiter.New(memory.NewStore(), rate)
	}
	return c, nil
}

// wait blocks until the limiter has room for one more request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	for {
		lc, err := c.limiter.Get(ctx, limiterKey)
		if err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		if !lc.Reached {
			return nil
		}
		d := time.Until(time.Unix(lc.Reset, 0))
		if d <= 0 {
			d = 10 * time.Millisecond
		}
		if err := c.sleep(ctx, d); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) (int, *apiError, error) {
	if err := c.wait(ctx); err != nil {
		return 0, nil, err
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, fmt.Errorf("json marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, nil, fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("http read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
			apiErr = apiError{Message: fmt.Sprintf("http status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
		}
		return resp.StatusCode, &apiErr, nil
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("json unmarshal response: %w", err)
	}
	return resp.StatusCode, nil, nil
}
