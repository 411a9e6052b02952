package pricing

import (
	"fmt"
	"strings"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
)

// AggregationRule folds child prices into a parent target
type AggregationRule string

const (
	// AggregationSum totals every priced child
	AggregationSum AggregationRule = "sum"
	// AggregationMax takes the most expensive child
	AggregationMax AggregationRule = "max"
	// AggregationMin takes the cheapest child
	AggregationMin AggregationRule = "min"
)

// ParseAggregationRule validates an operator-supplied rule name
func ParseAggregationRule(s string) (AggregationRule, error) {
	switch AggregationRule(strings.ToLower(strings.TrimSpace(s))) {
	case AggregationSum, "":
		return AggregationSum, nil
	case AggregationMax:
		return AggregationMax, nil
	case AggregationMin:
		return AggregationMin, nil
	default:
		return "", fmt.Errorf("pricing: unknown aggregation rule %q", s)
	}
}

// ResolveIssuePrice reads the effective price off an issue's labels
// Drifted issues with several price labels resolve to the smallest value
func ResolveIssuePrice(names []string, pack *labelpack.Pack) (float64, bool) {
	best := 0.0
	found := false
	for _, n := range PriceLabels(names, pack) {
		v, ok := ParsePriceLabel(n, pack)
		if !ok {
			continue
		}
		if !found || v < best {
			best, found = v, true
		}
	}
	return best, found
}

// AggregateChildren folds resolved child prices per the rule
// Children without a price contribute nothing; none priced means no target
func AggregateChildren(prices []float64, rule AggregationRule) (float64, bool) {
	if len(prices) == 0 {
		return 0, false
	}
	acc := prices[0]
	for _, v := range prices[1:] {
		switch rule {
		case AggregationMax:
			if v > acc {
				acc = v
			}
		case AggregationMin:
			if v < acc {
				acc = v
			}
		default:
			acc += v
		}
	}
	return acc, true
}

// ParentTarget renders the aggregated child prices as a parent price target
func ParentTarget(prices []float64, rule AggregationRule, pack *labelpack.Pack) Target {
	v, ok := AggregateChildren(prices, rule)
	if !ok {
		return Target{}
	}
	return Target{Value: v, Label: PriceLabelName(v, pack), OK: true}
}
