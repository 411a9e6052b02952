// Package tasklist finds child issue references in parent issue bodies.
// Bodies are normalized first because they tend to be pasted from rich
// editors that sprinkle zero-width and fullwidth characters around markers
package tasklist

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Ref points at a child issue. Owner and Repo are empty for same-repo "#N"
type Ref struct {
	Owner  string
	Repo   string
	Number int
}

// SameRepo reports whether the reference stays in the parent's repository
func (r Ref) SameRepo() bool { return r.Owner == "" && r.Repo == "" }

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

var (
	// a task list item: "- [ ] rest", "* [x] rest", "2. [X] rest"
	itemRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\[[ xX]\]\s+(.+)$`)

	// reference forms inside an item, tried in order
	urlRe   = regexp.MustCompile(`https?://[^/\s]+/([\w.-]+)/([\w.-]+)/issues/(\d+)`)
	crossRe = regexp.MustCompile(`(^|\s)([\w.-]+)/([\w.-]+)#(\d+)`)
	plainRe = regexp.MustCompile(`(^|\s)#(\d+)`)
)

// Normalize prepares a body for reference scanning
func Normalize(body string) string {
	if body == "" {
		return ""
	}
	body = strings.ToValidUTF8(body, "")
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, body)
	tr.Reset()
	chainPool.Put(tr)
	return ns
}

// Refs extracts child issue references from task list items in the body
// Duplicates collapse to the first occurrence; order is otherwise preserved
func Refs(body string) []Ref {
	text := Normalize(body)
	if text == "" {
		return nil
	}

	var out []Ref
	seen := make(map[Ref]struct{}, 8)
	add := func(r Ref) {
		if r.Number <= 0 {
			return
		}
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	for line := range strings.Lines(text) {
		m := itemRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		rest := m[1]

		for _, um := range urlRe.FindAllStringSubmatch(rest, -1) {
			n, _ := strconv.Atoi(um[3])
			add(Ref{Owner: um[1], Repo: um[2], Number: n})
		}
		// drop URL spans so "#123" inside them is not double counted
		rest = urlRe.ReplaceAllString(rest, " ")

		for _, cm := range crossRe.FindAllStringSubmatch(rest, -1) {
			n, _ := strconv.Atoi(cm[4])
			add(Ref{Owner: cm[2], Repo: cm[3], Number: n})
		}
		rest = crossRe.ReplaceAllString(rest, " ")

		for _, pm := range plainRe.FindAllStringSubmatch(rest, -1) {
			n, _ := strconv.Atoi(pm[2])
			add(Ref{Number: n})
		}
	}
	return out
}

// IsParent reports whether the body marks the issue as a parent
func IsParent(body string) bool { return len(Refs(body)) > 0 }
