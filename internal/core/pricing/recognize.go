package pricing

import "github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"

// Recognized buckets an issue's labels by scale membership
// Order within each bucket preserves the incoming label order
type Recognized struct {
	Time     []string
	Priority []string
}

// Recognize filters labels into time and priority buckets by exact name
// Unrecognized labels are ignored, never errors
func Recognize(names []string, pack *labelpack.Pack) Recognized {
	var r Recognized
	for _, n := range names {
		if pack.Time.Has(n) {
			r.Time = append(r.Time, n)
		}
		if pack.Priority.Has(n) {
			r.Priority = append(r.Priority, n)
		}
	}
	return r
}

// minByScale picks the smallest entry by (value, configured rank)
// Equal values resolve to the name listed first in the scale
func minByScale(names []string, scale labelpack.Scale) (string, bool) {
	best := ""
	bestVal := 0.0
	bestRank := 0
	found := false
	for _, n := range names {
		v, ok := scale.ValueOf(n)
		if !ok {
			continue
		}
		rank := scale.Rank(n)
		if !found || v < bestVal || (v == bestVal && rank < bestRank) {
			best, bestVal, bestRank, found = n, v, rank, true
		}
	}
	return best, found
}

// SortByValue orders recognized names ascending by (value, configured rank)
// The sort is stable and total for names present in the scale
func SortByValue(names []string, scale labelpack.Scale) []string {
	out := make([]string, len(names))
	copy(out, names)
	// insertion sort keeps this dependency free and stable for short label sets
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			vj, _ := scale.ValueOf(out[j])
			vp, _ := scale.ValueOf(out[j-1])
			if vj < vp || (vj == vp && scale.Rank(out[j]) < scale.Rank(out[j-1])) {
				out[j], out[j-1] = out[j-1], out[j]
				continue
			}
			break
		}
	}
	return out
}

// SelectMinimum picks the smallest time and priority labels from the buckets
// A missing bucket leaves its slot empty
func SelectMinimum(r Recognized, pack *labelpack.Pack) (timeLabel, priorityLabel string, ok bool) {
	t, tok := minByScale(r.Time, pack.Time)
	p, pok := minByScale(r.Priority, pack.Priority)
	if !tok || !pok {
		// return whichever resolved so callers can log the gap
		return t, p, false
	}
	return t, p, true
}

// ResolveTarget derives the target price label for a leaf issue
// Returns OK=false when either bucket is empty, which means clear price labels
func ResolveTarget(names []string, pack *labelpack.Pack) Target {
	r := Recognize(names, pack)
	tl, pl, ok := SelectMinimum(r, pack)
	if !ok {
		return Target{}
	}
	tv, _ := pack.Time.ValueOf(tl)
	pv, _ := pack.Priority.ValueOf(pl)
	v := ComputePrice(tv, pv, pack.BaseMultiplier)
	return Target{Value: v, Label: PriceLabelName(v, pack), OK: true}
}
