// Package diff compares two decoded builds of the same specialization.
package diff

import (
	"fmt"
	"sort"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

// Diff compares baseline a with b, index by index. Both builds must share a
// spec. Indices selected on neither side are left out; entries are ordered by
// index and each summary list is ascending.
func Diff(a, b *talent.SelectionRecord) (*talent.DiffResult, error) {
	if a.SpecID != b.SpecID {
		return nil, fmt.Errorf("%w: %s vs %s", talenterrors.ErrSpecMismatch, a.DisplayName(), b.DisplayName())
	}

	res := &talent.DiffResult{
		SpecID:   a.SpecID,
		SpecName: a.SpecName,
		Entries:  []talent.DiffEntry{},
		Summary: talent.DiffSummary{
			Added:   []int{},
			Removed: []int{},
			Changed: []int{},
		},
	}

	for _, idx := range unionIndices(a, b) {
		sa, sb := a.Selection(idx), b.Selection(idx)
		selA, selB := sa.IsSelected(), sb.IsSelected()

		switch {
		case !selA && !selB:
			continue
		case selB && !selA:
			res.Entries = append(res.Entries, talent.DiffEntry{Index: idx, Kind: talent.DiffAdded, After: &sb})
			res.Summary.Added = append(res.Summary.Added, idx)
		case selA && !selB:
			res.Entries = append(res.Entries, talent.DiffEntry{Index: idx, Kind: talent.DiffRemoved, Before: &sa})
			res.Summary.Removed = append(res.Summary.Removed, idx)
		default:
			entry := talent.DiffEntry{Index: idx, Kind: talent.DiffUnchanged, Before: &sa, After: &sb}
			if changes := compareSelected(sa, sb); changes != nil {
				entry.Kind = talent.DiffChanged
				entry.Changes = changes
				res.Summary.Changed = append(res.Summary.Changed, idx)
			}
			res.Entries = append(res.Entries, entry)
		}
	}

	sort.Ints(res.Summary.Added)
	sort.Ints(res.Summary.Removed)
	sort.Ints(res.Summary.Changed)
	return res, nil
}

// unionIndices returns every selection index present in either record,
// ascending. Indices are positions in the canonical node order, not node ids.
func unionIndices(a, b *talent.SelectionRecord) []int {
	n := max(len(a.Selections), len(b.Selections))
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// compareSelected returns nil when both selections have the same effective
// rank and choice. Rank only counts when either side is partially ranked,
// choice only when either side is a choice node.
func compareSelected(a, b talent.NodeSelection) *talent.ChangeDetails {
	var cd talent.ChangeDetails
	if a.IsPartiallyRanked() || b.IsPartiallyRanked() {
		if ra, rb := effectiveRank(a), effectiveRank(b); ra != rb {
			cd.RankChange = &talent.ValueChange{From: ra, To: rb}
		}
	}
	if a.IsChoiceNode() || b.IsChoiceNode() {
		if ca, cb := effectiveChoice(a), effectiveChoice(b); ca != cb {
			cd.ChoiceChange = &talent.ValueChange{From: ca, To: cb}
		}
	}
	if cd.RankChange == nil && cd.ChoiceChange == nil {
		return nil
	}
	return &cd
}

func effectiveRank(s talent.NodeSelection) int {
	if r, ok := s.RanksPurchased(); ok {
		return r
	}
	if s.IsPartiallyRanked() {
		return 1
	}
	return 0
}

func effectiveChoice(s talent.NodeSelection) int {
	if c, ok := s.ChoiceEntryIndex(); ok {
		return c
	}
	return 0
}
