// Package github provides a resilient GitHub REST v3 client for label automation
package github

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "assistive-pricing"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond

	backoffCeiling = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Comma separated tokens passed in from CLI or config
	// Empty means tokenless which is very low quota so not recommended
	TokensCSV string

	// Retry budget for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// normalize fills zero or negative fields so a bare Options{} still dials api.github.com
func (o *Options) normalize() {
	o.BaseURL = cmp.Or(o.BaseURL, baseURLDefault)
	o.UserAgent = cmp.Or(o.UserAgent, defaultUA)
	o.Timeout = cmp.Or(max(o.Timeout, 0), defaultTimeout)
	o.MaxRetries = cmp.Or(max(o.MaxRetries, 0), defaultMaxRetry)
	o.RetryBase = cmp.Or(max(o.RetryBase, 0), defaultRetryBase)
}

// Client is a minimal GitHub REST client with token rotation and retry support
type Client struct {
	http   *http.Client
	opts   Options
	tokens []string
	cur    atomic.Int32
	log    logger.Logger

	// clock seams so tests can capture sleeps instead of serving them
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient builds a Client, filling unset Options with defaults
func NewClient(o Options) *Client {
	o.normalize()
	return &Client{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		tokens: splitTokens(o.TokensCSV),
		log:    *logger.Named("github"),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

func splitTokens(csv string) []string {
	var toks []string
	for t := range strings.SplitSeq(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			toks = append(toks, t)
		}
	}
	return toks
}

// nextToken hands out tokens round robin so concurrent calls spread quota
func (c *Client) nextToken() string {
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[uint32(c.cur.Add(1))%uint32(len(c.tokens))]
}

// Do issues a request with auth headers, retries, and rate limit pacing.
// body is JSON encoded when non-nil. Callers own closing the response body.
// 404 and 422 pass through so endpoints can branch on absence and validation
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := encodePayload(body)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.send(ctx, method, path, payload, attempt)
		if err != nil {
			if attempt >= c.opts.MaxRetries || !perr.Retryable(err) {
				return nil, err
			}
			wait := c.backoff(attempt)
			c.log.Warn().Dur("retry_in", wait).Int("attempt", attempt).Msg("github transport error retrying")
			c.sleep(wait)
			continue
		}

		verr := c.triage(resp, method, path)
		if verr == nil {
			return resp, nil
		}
		if attempt >= c.opts.MaxRetries || !perr.Retryable(verr) {
			_ = discardBody(resp.Body)
			return nil, verr
		}

		wait := c.backoff(attempt)
		msg := "github transient error retrying"
		if perr.IsCode(verr, perr.ErrorCodeTooManyRequests) {
			msg = "github rate limited backing off"
			if w := readRate(resp.Header).wait(c.now()); w > 0 {
				wait = w
			}
		}
		_ = discardBody(resp.Body)
		c.log.Warn().Dur("sleep", wait).Int("attempt", attempt).Msg(msg)
		c.sleep(wait)
	}
}

// send performs one round trip and logs lightweight response metadata
func (c *Client) send(ctx context.Context, method, path string, payload []byte, attempt int) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github round trip failed")
	}

	ri := readRate(resp.Header)
	c.log.Debug().
		Str("call", method+" "+path).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).
		Int("remaining", ri.remaining).
		Time("reset", ri.reset).
		Dur("retry_after", ri.retryAfter).
		Msg("github response")
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, rdr)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.nextToken(); tok != "" {
		req.Header.Set("Authorization", "token "+tok)
	}
	return req, nil
}

func encodePayload(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "github encode body failed")
	}
	return b, nil
}

// triage buckets a response by status. nil means hand it to the caller.
// It never closes the body; Do drains before retrying or failing
func (c *Client) triage(resp *http.Response, method, path string) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil
	case http.StatusTooManyRequests:
		return perr.RateLimitedf("github rate limited")
	case http.StatusForbidden:
		// secondary rate limits arrive wearing a 403
		if readRate(resp.Header).limited() {
			return perr.RateLimitedf("github rate limited")
		}
		return perr.Forbiddenf("github forbidden %s %s", method, path)
	case http.StatusUnauthorized:
		return perr.Unauthorizedf("github unauthorized check tokens")
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return perr.Unavailablef("github transient %d on %s %s", resp.StatusCode, method, path)
	default:
		// keep a small tail for diagnostics
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Upstreamf("github unexpected status %d body %s", resp.StatusCode, string(tail))
	}
}

// Ping issues a cheap request to verify connectivity and auth plumbing
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/zen", nil)
	if err != nil {
		return err
	}
	return discardBody(resp.Body)
}

// backoff doubles from RetryBase per attempt, capped at backoffCeiling
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	for range attempt {
		if d >= backoffCeiling/2 {
			return backoffCeiling
		}
		d *= 2
	}
	return min(d, backoffCeiling)
}
