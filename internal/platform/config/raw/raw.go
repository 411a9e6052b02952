// Package raw reads environment variables during bootstrap, before the
// logger exists. It must stay free of imports from the rest of the platform
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf reads env vars under an accumulated name prefix such as "CORE_API_"
type Conf struct{ ns string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix narrows the Conf by appending p to the namespace
func (c Conf) Prefix(p string) Conf { return Conf{ns: c.ns + p} }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.ns + key))
}

// Get returns the env value for key, or def when unset or blank
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes (any case) as true
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.lookup(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer, falling back to def on anything else
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.lookup(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
