// Package branch infers which optional hero tree a build has picked by
// splitting the talent graph into connected components.
package branch

import "github.com/Flamage82/WowTalentComparer/internal/domain/talent"

// Policy decides which components count as optional branches. The band is
// empirical: hero trees are small islands next to the large class and spec
// backbones.
type Policy struct {
	MinSize int
	MaxSize int
}

var DefaultPolicy = Policy{MinSize: 10, MaxSize: 25}

func (p Policy) isCandidate(size int) bool {
	return size >= p.MinSize && size <= p.MaxSize
}

// Partition holds the connected components of one topology as lists of dense
// node indices. It depends only on the topology and can be cached per spec.
type Partition struct {
	Components [][]int
	Candidates []int // indices into Components, in enumeration order
}

// NewPartition runs a BFS from every unvisited node in ascending index order.
func NewPartition(topo *talent.Topology, policy Policy) *Partition {
	n := topo.Len()
	visited := make([]bool, n)
	p := &Partition{}
	queue := make([]int, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue = append(queue[:0], start)
		var comp []int
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, next := range topo.Neighbors(cur) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		if policy.isCandidate(len(comp)) {
			p.Candidates = append(p.Candidates, len(p.Components))
		}
		p.Components = append(p.Components, comp)
	}
	return p
}

// AllBranchNodeIDs is the union of all candidate components.
func (p *Partition) AllBranchNodeIDs(topo *talent.Topology) talent.NodeIDSet {
	all := talent.NewNodeIDSet()
	for _, ci := range p.Candidates {
		for _, i := range p.Components[ci] {
			all.Add(topo.NodeAt(i).ID)
		}
	}
	return all
}

// Select counts, per candidate component, the selected nodes usable by the
// record's spec. The strictly highest count wins, ties go to the first
// candidate. It returns nil when no candidate has a selected node.
func (p *Partition) Select(topo *talent.Topology, rec *talent.SelectionRecord) *talent.BranchSelection {
	best, bestCount := -1, 0
	for _, ci := range p.Candidates {
		count := 0
		for _, i := range p.Components[ci] {
			if rec.Selection(i).IsSelected() && topo.NodeAt(i).UsableBy(rec.SpecID) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = ci, count
		}
	}
	if best < 0 {
		return nil
	}

	active := talent.NewNodeIDSet()
	for _, i := range p.Components[best] {
		active.Add(topo.NodeAt(i).ID)
	}
	return &talent.BranchSelection{
		ActiveNodeIDs:    active,
		AllBranchNodeIDs: p.AllBranchNodeIDs(topo),
	}
}

// SelectActiveBranch partitions topo with DefaultPolicy and selects the
// active branch for rec. Callers handling many builds of one spec should keep
// the Partition instead.
func SelectActiveBranch(topo *talent.Topology, rec *talent.SelectionRecord) *talent.BranchSelection {
	return NewPartition(topo, DefaultPolicy).Select(topo, rec)
}

// SelectGroup applies the same counting rule to the topology's explicit
// branch groups. It returns nil when the topology has no groups or none of
// them has a selected node.
func SelectGroup(topo *talent.Topology, rec *talent.SelectionRecord) *talent.BranchSelection {
	groups := topo.Groups()
	if len(groups) == 0 {
		return nil
	}

	all := talent.NewNodeIDSet()
	best, bestCount := -1, 0
	for gi, g := range groups {
		count := 0
		for _, id := range g.NodeIDs {
			all.Add(id)
			i, ok := topo.IndexOf(id)
			if !ok {
				continue
			}
			if rec.Selection(i).IsSelected() && topo.NodeAt(i).UsableBy(rec.SpecID) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = gi, count
		}
	}
	if best < 0 {
		return nil
	}

	g := groups[best]
	return &talent.BranchSelection{
		ActiveNodeIDs:    talent.NewNodeIDSet(g.NodeIDs...),
		AllBranchNodeIDs: all,
		GroupID:          g.ID,
		GroupName:        g.Name,
	}
}
