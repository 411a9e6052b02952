// Package labelpack loads the pricing label vocabulary from the embedded labels.json.
// It prepares ordered scales for recognition and an overlay mechanism for operators
package labelpack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed labels.json
var embedded []byte

// Entry is one recognized label name with its configured magnitude
type Entry struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type rawPack struct {
	Version        int               `json:"version"`
	Currency       string            `json:"currency"`
	PricePrefix    string            `json:"price_prefix"`
	BaseMultiplier float64           `json:"base_multiplier"`
	Colors         map[string]string `json:"colors"`
	Time           []Entry           `json:"time"`
	Priority       []Entry           `json:"priority"`
}

// Scale is an ordered list of entries; list position is the tie break rank
type Scale struct {
	entries []Entry
	index   map[string]int
}

// NewScale builds a Scale, rejecting empty and duplicate names
func NewScale(entries []Entry) (Scale, error) {
	s := Scale{index: make(map[string]int, len(entries))}
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return Scale{}, fmt.Errorf("labelpack: empty name at position %d", i)
		}
		if e.Value <= 0 {
			return Scale{}, fmt.Errorf("labelpack: non-positive value for %q", name)
		}
		if _, dup := s.index[name]; dup {
			return Scale{}, fmt.Errorf("labelpack: duplicate name %q", name)
		}
		s.index[name] = i
		s.entries = append(s.entries, Entry{Name: name, Value: e.Value})
	}
	return s, nil
}

// ValueOf returns the configured magnitude for a recognized name
func (s Scale) ValueOf(name string) (float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.entries[i].Value, true
}

// Rank returns the list position for a recognized name, -1 otherwise
func (s Scale) Rank(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}

// Has reports whether the name belongs to the scale
func (s Scale) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of entries
func (s Scale) Len() int { return len(s.entries) }

// Entries returns a copy of the ordered entry list
func (s Scale) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Pack is the compiled pricing vocabulary
type Pack struct {
	Version        int
	Currency       string
	PricePrefix    string
	BaseMultiplier float64
	Colors         map[string]string

	Time     Scale
	Priority Scale
}

// Load returns the compiled pack from the embedded labels.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("labelpack: parse labels.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("labelpack: unsupported labels.json version %d (want 1)", rp.Version)
	}
	return compile(rp)
}

func compile(rp rawPack) (*Pack, error) {
	if strings.TrimSpace(rp.Currency) == "" {
		return nil, fmt.Errorf("labelpack: currency is required")
	}
	if strings.TrimSpace(rp.PricePrefix) == "" {
		return nil, fmt.Errorf("labelpack: price_prefix is required")
	}
	if rp.BaseMultiplier <= 0 {
		return nil, fmt.Errorf("labelpack: base_multiplier must be positive")
	}
	tm, err := NewScale(rp.Time)
	if err != nil {
		return nil, fmt.Errorf("labelpack: time scale: %w", err)
	}
	pr, err := NewScale(rp.Priority)
	if err != nil {
		return nil, fmt.Errorf("labelpack: priority scale: %w", err)
	}
	if tm.Len() == 0 || pr.Len() == 0 {
		return nil, fmt.Errorf("labelpack: time and priority scales must not be empty")
	}
	colors := make(map[string]string, len(rp.Colors))
	for k, v := range rp.Colors {
		colors[strings.ToLower(strings.TrimSpace(k))] = strings.TrimPrefix(strings.TrimSpace(v), "#")
	}
	return &Pack{
		Version:        rp.Version,
		Currency:       strings.TrimSpace(rp.Currency),
		PricePrefix:    rp.PricePrefix,
		BaseMultiplier: rp.BaseMultiplier,
		Colors:         colors,
		Time:           tm,
		Priority:       pr,
	}, nil
}

// ColorFor returns the configured color for a label category, hex without '#'
func (p *Pack) ColorFor(category string) string {
	if c, ok := p.Colors[strings.ToLower(category)]; ok && c != "" {
		return c
	}
	return "ededed"
}

// Overlay carries partial overrides applied on top of the embedded defaults.
// Zero fields keep the current value; non-empty scales replace wholesale
type Overlay struct {
	Currency       string            `yaml:"currency"`
	PricePrefix    string            `yaml:"price_prefix"`
	BaseMultiplier float64           `yaml:"base_multiplier"`
	Colors         map[string]string `yaml:"colors"`
	Time           []Entry           `yaml:"time"`
	Priority       []Entry           `yaml:"priority"`
}

// ParseOverlayYAML decodes an operator YAML override file
func ParseOverlayYAML(b []byte) (Overlay, error) {
	var o Overlay
	if err := yaml.Unmarshal(b, &o); err != nil {
		return Overlay{}, fmt.Errorf("labelpack: parse overlay yaml: %w", err)
	}
	return o, nil
}

// ParseScaleCSV decodes "Name=value" pairs separated by commas
// Names keep inner whitespace; values must parse as positive floats
func ParseScaleCSV(s string) ([]Entry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []Entry
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("labelpack: scale entry %q missing '='", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("labelpack: scale entry %q bad value: %w", part, err)
		}
		out = append(out, Entry{Name: strings.TrimSpace(name), Value: v})
	}
	return out, nil
}

// Apply folds an overlay into the pack and revalidates the result
func (p *Pack) Apply(o Overlay) error {
	rp := rawPack{
		Version:        p.Version,
		Currency:       p.Currency,
		PricePrefix:    p.PricePrefix,
		BaseMultiplier: p.BaseMultiplier,
		Colors:         map[string]string{},
		Time:           p.Time.Entries(),
		Priority:       p.Priority.Entries(),
	}
	for k, v := range p.Colors {
		rp.Colors[k] = v
	}
	if strings.TrimSpace(o.Currency) != "" {
		rp.Currency = strings.TrimSpace(o.Currency)
	}
	if strings.TrimSpace(o.PricePrefix) != "" {
		rp.PricePrefix = o.PricePrefix
	}
	if o.BaseMultiplier > 0 {
		rp.BaseMultiplier = o.BaseMultiplier
	}
	for k, v := range o.Colors {
		rp.Colors[strings.ToLower(strings.TrimSpace(k))] = strings.TrimPrefix(strings.TrimSpace(v), "#")
	}
	if len(o.Time) > 0 {
		rp.Time = o.Time
	}
	if len(o.Priority) > 0 {
		rp.Priority = o.Priority
	}
	np, err := compile(rp)
	if err != nil {
		return err
	}
	*p = *np
	return nil
}
