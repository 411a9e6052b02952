// Package config reads application configuration from the environment.
// Keys live under composable prefixes such as CORE_API_ or SERVICE_GITHUB_,
// with Must variants that refuse to start and May variants that default
package config

import (
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
)

// Conf scopes env lookups to a name prefix. The zero value reads unprefixed
type Conf struct{ scope string }

// New returns the root Conf
func New() Conf { return Conf{} }

// Prefix returns a Conf that prepends p to every key it reads
func (c Conf) Prefix(p string) Conf { return Conf{scope: c.scope + p} }

// name is the fully qualified env var for key
func (c Conf) name(key string) string { return c.scope + key }

// peek reads and trims the env var, empty meaning unset
func (c Conf) peek(key string) string {
	return strings.TrimSpace(os.Getenv(c.name(key)))
}

// fatal logs at panic level, which aborts the process during bootstrap
func (c Conf) fatal(key, val, msg string) {
	ev := logger.Get().Panic().Str("key", c.name(key))
	if val != "" {
		ev = ev.Str("value", val)
	}
	ev.Msg(msg)
}

// must parses a required env var or panics with hint
func must[T any](c Conf, key string, parse func(string) (T, error), hint string) T {
	s := c.peek(key)
	if s == "" {
		c.fatal(key, "", "missing required env")
	}
	v, err := parse(s)
	if err != nil {
		c.fatal(key, s, hint)
	}
	return v
}

// may parses an optional env var, keeping def when unset or unparseable
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.peek(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.name(key)).Str("value", s).
			Interface("default", def).Msg("unparseable value, default kept")
		return def
	}
	return v
}

// MustString returns the value, panicking when the key is missing or blank
func (c Conf) MustString(key string) string {
	s := c.peek(key)
	if s == "" {
		c.fatal(key, "", "missing required env")
	}
	return s
}

// MustInt returns the parsed int, panicking when missing or malformed
func (c Conf) MustInt(key string) int {
	return must(c, key, strconv.Atoi, "not an integer")
}

// MustBool returns the parsed bool, panicking when missing or malformed
func (c Conf) MustBool(key string) bool {
	return must(c, key, strconv.ParseBool, "not a bool")
}

// MustDuration returns the parsed duration, panicking when missing or malformed
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, time.ParseDuration, "not a duration such as 250ms or 2h")
}

// MustURL returns the parsed URL, panicking unless it is absolute
func (c Conf) MustURL(key string) *url.URL {
	u := must(c, key, url.Parse, "not a URL")
	if !u.IsAbs() {
		c.fatal(key, u.String(), "URL must be absolute")
	}
	return u
}

// MustPort validates a TCP port and returns it as a listen addr like ":4000"
func (c Conf) MustPort(key string) string {
	p := must(c, key, strconv.Atoi, "port must be numeric")
	if p < 1 || p > 65535 {
		c.fatal(key, strconv.Itoa(p), "port outside 1..65535")
	}
	return ":" + strconv.Itoa(p)
}

// Require panics unless every key is present and non-blank
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.peek(k) == "" {
			c.fatal(k, "", "missing required env")
		}
	}
}

// MayString returns the value, or def when missing or blank
func (c Conf) MayString(key, def string) string {
	if s := c.peek(key); s != "" {
		return s
	}
	return def
}

// MayInt returns the parsed int, or def when missing or malformed
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayFloat64 returns the parsed float, or def when missing or malformed
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the parsed bool, or def when missing or malformed
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration returns the parsed duration, or def when missing or malformed
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value into trimmed parts, or def when
// the result would be empty
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.peek(key)
	if s == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it matches one of allowed case
// insensitively, def when unset. Any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	if slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, v) }) {
		return v
	}
	c.fatal(key, v, "value outside the allowed set")
	return ""
}
