package pricing

import (
	"slices"
	"sort"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
)

// Decision names the reconciliation outcome for one invocation
type Decision string

const (
	// DecisionSkip issues no mutations
	DecisionSkip Decision = "skip"
	// DecisionClear removes every price label and adds nothing
	DecisionClear Decision = "clear"
	// DecisionReplace removes stale price labels then adds the target
	DecisionReplace Decision = "replace"
	// DecisionDedupe trims redundant price labels after a direct human change
	DecisionDedupe Decision = "dedupe"
)

// HistoryState summarizes the most recent price-labeling event
type HistoryState int

const (
	// HistoryUnknown means the event fetch failed; act conservatively
	HistoryUnknown HistoryState = iota
	// HistoryNone means the fetch succeeded and found no price events
	HistoryNone
	// HistoryHuman means a human performed the latest price labeling
	HistoryHuman
	// HistoryBot means automation performed the latest price labeling
	HistoryBot
)

// Plan is the ordered mutation set for one reconciliation
// Removals run first, one call per label, then the single add
type Plan struct {
	Decision Decision
	Reason   string

	Remove []string
	Add    string
	// Ensure requires a repo-wide label create before the add may run
	Ensure bool
}

// Mutates reports whether executing the plan touches the issue at all
func (p Plan) Mutates() bool { return len(p.Remove) > 0 || p.Add != "" }

// NeedHistory reports whether BuildPlan will consult the label-event history
// Only the multiplicity normalization path cares who labeled last
func NeedHistory(target Target, current []string, pack *labelpack.Pack) bool {
	if !target.OK {
		return false
	}
	prices := PriceLabels(current, pack)
	return len(prices) > 1 && slices.Contains(prices, target.Label)
}

// BuildPlan runs the reconciliation state machine for a leaf or parent issue
//
// No derivable target clears whatever price labels exist. A single matching
// label means the issue is converged and nothing runs. A matching label among
// several defers to the last price actor: humans win, automation gets
// normalized back to exactly the target. No matching label replaces wholesale
// and requires the label to exist repo-wide before the add
func BuildPlan(target Target, current []string, hist HistoryState, pack *labelpack.Pack) Plan {
	prices := PriceLabels(current, pack)

	if !target.OK {
		if len(prices) == 0 {
			return Plan{Decision: DecisionSkip, Reason: "not priceable and no price labels present"}
		}
		return Plan{Decision: DecisionClear, Reason: "not priceable", Remove: prices}
	}

	if slices.Contains(prices, target.Label) {
		if len(prices) == 1 {
			return Plan{Decision: DecisionSkip, Reason: "price already canonical"}
		}
		switch hist {
		case HistoryHuman:
			return Plan{Decision: DecisionSkip, Reason: "human holds the price label"}
		case HistoryUnknown:
			return Plan{Decision: DecisionSkip, Reason: "label history unavailable"}
		default:
			return Plan{
				Decision: DecisionReplace,
				Reason:   "normalize price label multiplicity",
				Remove:   prices,
				Add:      target.Label,
			}
		}
	}

	return Plan{
		Decision: DecisionReplace,
		Reason:   "price target changed",
		Remove:   prices,
		Add:      target.Label,
		Ensure:   true,
	}
}

// DedupePlan handles a human directly adding or removing a price label
// No recomputation happens; the highest-valued price label is kept and the
// rest are removed one by one. Unparseable price labels count as drift and go
func DedupePlan(current []string, pack *labelpack.Pack) Plan {
	prices := PriceLabels(current, pack)
	if len(prices) <= 1 {
		return Plan{Decision: DecisionSkip, Reason: "no redundant price labels"}
	}

	type parsed struct {
		name  string
		value float64
	}
	var keepers []parsed
	var junk []string
	for _, n := range prices {
		if v, ok := ParsePriceLabel(n, pack); ok {
			keepers = append(keepers, parsed{name: n, value: v})
		} else {
			junk = append(junk, n)
		}
	}
	if len(keepers) == 0 {
		return Plan{Decision: DecisionSkip, Reason: "no parseable price labels"}
	}

	sort.SliceStable(keepers, func(i, j int) bool { return keepers[i].value > keepers[j].value })

	remove := make([]string, 0, len(keepers)-1+len(junk))
	for _, k := range keepers[1:] {
		remove = append(remove, k.name)
	}
	remove = append(remove, junk...)
	if len(remove) == 0 {
		return Plan{Decision: DecisionSkip, Reason: "no redundant price labels"}
	}
	return Plan{Decision: DecisionDedupe, Reason: "deduplicate human priced labels", Remove: remove}
}
