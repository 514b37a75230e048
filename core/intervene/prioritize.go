package intervene

import (
	"sort"

	"github.com/huangsam/pulse/schema"
)

// Prioritize orders interventions by urgency (critical first), keeps the
// first one seen for each intervention type, and truncates to the cap.
// Later duplicates of a type are dropped regardless of urgency. The
// function is idempotent: applying it to its own output changes nothing.
func Prioritize(ivs []schema.Intervention, limit int) []schema.Intervention {
	cands := make([]candidate, len(ivs))
	for i, iv := range ivs {
		cands[i] = candidate{iv: iv}
	}

	kept := prioritizeCandidates(cands, limit)
	out := make([]schema.Intervention, len(kept))
	for i, c := range kept {
		out[i] = c.iv
	}
	return out
}

// prioritizeCandidates is the same cut over the engine's internal candidate
// type, so message keys survive into rendering.
func prioritizeCandidates(cands []candidate, limit int) []candidate {
	sorted := make([]candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].iv.Urgency.Rank() < sorted[j].iv.Urgency.Rank()
	})

	seen := map[schema.InterventionType]struct{}{}
	out := make([]candidate, 0, len(sorted))
	for _, c := range sorted {
		if _, dup := seen[c.iv.Type]; dup {
			continue
		}
		seen[c.iv.Type] = struct{}{}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}
