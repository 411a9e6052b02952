package github

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// rateInfo is the quota snapshot GitHub attaches to responses
type rateInfo struct {
	remaining  int
	reset      time.Time
	retryAfter time.Duration
}

// readRate pulls the rate limit headers out of a response
func readRate(h http.Header) rateInfo {
	ri := rateInfo{remaining: atoi(h.Get("X-RateLimit-Remaining"))}
	if sec := atoi(h.Get("X-RateLimit-Reset")); sec > 0 {
		ri.reset = time.Unix(int64(sec), 0).UTC()
	}
	if s := atoi(h.Get("Retry-After")); s > 0 {
		ri.retryAfter = time.Duration(s) * time.Second
	}
	return ri
}

// limited reports whether the snapshot shows an exhausted quota.
// Secondary rate limits come back as 403s and are only recognizable this way
func (ri rateInfo) limited() bool {
	return ri.retryAfter > 0 || (ri.remaining == 0 && !ri.reset.IsZero())
}

// wait returns how long to pause before the next attempt, zero when
// the headers say nothing useful
func (ri rateInfo) wait(now time.Time) time.Duration {
	if ri.retryAfter > 0 {
		return ri.retryAfter
	}
	if ri.remaining <= 0 && ri.reset.After(now) {
		return ri.reset.Sub(now)
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// discardBody drains a little and closes so the connection can be reused
func discardBody(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
