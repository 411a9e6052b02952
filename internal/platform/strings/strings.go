// Package strings holds the string and slice helpers the platform shares
package strings

import std "strings"

// IfEmpty substitutes def when in carries no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString panics unless s has visible content
// name labels the panic so the missing value is obvious
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix canonicalizes a route prefix such as /hooks or /quote:
// exactly one leading slash, no trailing slash. Blank input panics
func MustPrefix(s string) string {
	core := std.Trim(std.TrimSpace(s), "/ ")
	if core == "" {
		panic("route prefix is required")
	}
	return "/" + core
}
