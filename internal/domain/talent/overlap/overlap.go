// Package overlap hides nodes of inactive hero trees that share a canvas
// position with a node of the active one.
package overlap

import "github.com/Flamage82/WowTalentComparer/internal/domain/talent"

type position struct {
	x, y float64
}

// Resolve groups nodes by exact position. A group where every member belongs
// to some branch keeps only the active member (the first active one if
// several, the first member if none). Groups that mix branch and non-branch
// nodes are kept whole. Survivors are returned in input order, unmodified.
func Resolve(nodes []talent.Node, active, all talent.NodeIDSet) []talent.Node {
	groups := make(map[position][]int, len(nodes))
	for i, n := range nodes {
		p := position{n.PosX, n.PosY}
		groups[p] = append(groups[p], i)
	}

	keep := make([]bool, len(nodes))
	for _, members := range groups {
		if len(members) == 1 || !allBranch(nodes, members, all) {
			for _, i := range members {
				keep[i] = true
			}
			continue
		}
		keep[pick(nodes, members, active)] = true
	}

	out := make([]talent.Node, 0, len(nodes))
	for i, n := range nodes {
		if keep[i] {
			out = append(out, n)
		}
	}
	return out
}

func allBranch(nodes []talent.Node, members []int, all talent.NodeIDSet) bool {
	for _, i := range members {
		if !all.Has(nodes[i].ID) {
			return false
		}
	}
	return true
}

// members is in input order, so the fallback is deterministic.
func pick(nodes []talent.Node, members []int, active talent.NodeIDSet) int {
	for _, i := range members {
		if active.Has(nodes[i].ID) {
			return i
		}
	}
	return members[0]
}
