// Package pricing implements price resolution and label reconciliation planning.
// Everything here is pure; services execute the plans against the label store
package pricing

import (
	"strconv"
	"strings"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
)

// Target is the price label an issue ought to carry
// OK is false when no price is derivable from the current labels
type Target struct {
	Value float64
	Label string
	OK    bool
}

// ComputePrice combines a time magnitude and a priority weight into a price
func ComputePrice(timeVal, priorityVal, base float64) float64 {
	return base * timeVal * priorityVal
}

// FormatValue renders a price value with minimal digits (1, 2.5, 37.5)
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PriceLabelName renders the canonical label name for a value
func PriceLabelName(v float64, pack *labelpack.Pack) string {
	return pack.PricePrefix + FormatValue(v) + " " + pack.Currency
}

// IsPriceLabel reports whether a label name belongs to the price category
func IsPriceLabel(name string, pack *labelpack.Pack) bool {
	return strings.HasPrefix(name, pack.PricePrefix)
}

// ParsePriceLabel extracts the numeric value from a price label name
// Accepts both "Price: 5 USD" and a bare "Price: 5"
func ParsePriceLabel(name string, pack *labelpack.Pack) (float64, bool) {
	if !IsPriceLabel(name, pack) {
		return 0, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(name, pack.PricePrefix))
	if rest == "" {
		return 0, false
	}
	num, _, _ := strings.Cut(rest, " ")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PriceLabels filters a label set down to price labels, preserving order
func PriceLabels(names []string, pack *labelpack.Pack) []string {
	var out []string
	for _, n := range names {
		if IsPriceLabel(n, pack) {
			out = append(out, n)
		}
	}
	return out
}

// HistoryKeyword returns the substring used to filter label events to price events
// Derived from the configured prefix so a renamed category still filters correctly
func HistoryKeyword(pack *labelpack.Pack) string {
	return strings.TrimSpace(strings.TrimSuffix(pack.PricePrefix, ": "))
}
