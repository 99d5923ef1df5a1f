package branch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
)

// chain appends count nodes with consecutive ids starting at first, linked
// in a line.
func chain(nodes []talent.Node, edges []talent.Edge, first, count int) ([]talent.Node, []talent.Edge) {
	for id := first; id < first+count; id++ {
		nodes = append(nodes, talent.Node{ID: id, MaxRanks: 1})
		if id > first {
			edges = append(edges, talent.Edge{From: id - 1, To: id})
		}
	}
	return nodes, edges
}

// heroTopology has a 40-node backbone (ids 1..40) and two hero trees of 15
// (ids 100..114) and 12 (ids 200..211) nodes.
func heroTopology() *talent.Topology {
	var nodes []talent.Node
	var edges []talent.Edge
	nodes, edges = chain(nodes, edges, 1, 40)
	nodes, edges = chain(nodes, edges, 100, 15)
	nodes, edges = chain(nodes, edges, 200, 12)
	return talent.NewTopology(254, nodes, edges, nil)
}

// selectIDs builds a record selecting the given node ids.
func selectIDs(t *testing.T, topo *talent.Topology, specID int, ids ...int) *talent.SelectionRecord {
	t.Helper()
	sel := make([]talent.NodeSelection, topo.Len())
	for i := range sel {
		sel[i] = talent.Unselected(i)
	}
	for _, id := range ids {
		i, ok := topo.IndexOf(id)
		require.True(t, ok, "unknown node %d", id)
		sel[i] = talent.PurchasedFull(i, talent.NoChoice)
	}
	return &talent.SelectionRecord{SpecID: specID, Selections: sel}
}

func idRange(first, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = first + i
	}
	return out
}

func TestSelectActiveBranch_PicksSelectedComponent(t *testing.T) {
	topo := heroTopology()
	rec := selectIDs(t, topo, 254, 203, 205, 211)

	got := SelectActiveBranch(topo, rec)
	require.NotNil(t, got)
	assert.Equal(t, idRange(200, 12), got.ActiveNodeIDs.Sorted())
	assert.Equal(t, append(idRange(100, 15), idRange(200, 12)...), got.AllBranchNodeIDs.Sorted())
}

func TestSelectActiveBranch_BackboneSelectionsDoNotCount(t *testing.T) {
	topo := heroTopology()
	rec := selectIDs(t, topo, 254, 1, 2, 3, 4, 5, 101)

	got := SelectActiveBranch(topo, rec)
	require.NotNil(t, got)
	assert.True(t, got.ActiveNodeIDs.Has(100))
	assert.False(t, got.ActiveNodeIDs.Has(1))
}

func TestSelectActiveBranch_NoneSelected(t *testing.T) {
	topo := heroTopology()
	assert.Nil(t, SelectActiveBranch(topo, selectIDs(t, topo, 254)))
	assert.Nil(t, SelectActiveBranch(topo, selectIDs(t, topo, 254, 1, 2)))
}

func TestSelectActiveBranch_TieGoesToFirstCandidate(t *testing.T) {
	topo := heroTopology()
	rec := selectIDs(t, topo, 254, 100, 200)

	got := SelectActiveBranch(topo, rec)
	require.NotNil(t, got)
	assert.True(t, got.ActiveNodeIDs.Has(100))
}

func TestSelectActiveBranch_RespectsSpecRestriction(t *testing.T) {
	var nodes []talent.Node
	var edges []talent.Edge
	nodes, edges = chain(nodes, edges, 100, 15)
	nodes, edges = chain(nodes, edges, 200, 12)
	for i := range nodes {
		if nodes[i].ID >= 100 && nodes[i].ID < 115 {
			nodes[i].AllowedSpecs = []int{253}
		}
	}
	topo := talent.NewTopology(254, nodes, edges, nil)

	// Three picks in the first tree are restricted to another spec; one pick
	// in the second tree is enough to win.
	rec := selectIDs(t, topo, 254, 100, 101, 102, 205)
	got := SelectActiveBranch(topo, rec)
	require.NotNil(t, got)
	assert.True(t, got.ActiveNodeIDs.Has(205))
}

func TestNewPartition_SizeBand(t *testing.T) {
	var nodes []talent.Node
	var edges []talent.Edge
	nodes, edges = chain(nodes, edges, 1, 9)
	nodes, edges = chain(nodes, edges, 100, 10)
	nodes, edges = chain(nodes, edges, 200, 25)
	nodes, edges = chain(nodes, edges, 300, 26)
	topo := talent.NewTopology(0, nodes, edges, nil)

	p := NewPartition(topo, DefaultPolicy)
	require.Len(t, p.Components, 4)
	require.Len(t, p.Candidates, 2)
	assert.Len(t, p.Components[p.Candidates[0]], 10)
	assert.Len(t, p.Components[p.Candidates[1]], 25)

	wide := NewPartition(topo, Policy{MinSize: 1, MaxSize: 100})
	assert.Len(t, wide.Candidates, 4)
}

func TestNewPartition_IgnoresDanglingEdges(t *testing.T) {
	nodes := []talent.Node{{ID: 3}, {ID: 1}, {ID: 2}}
	edges := []talent.Edge{{From: 1, To: 2}, {From: 2, To: 99}, {From: 3, To: 3}}
	topo := talent.NewTopology(0, nodes, edges, nil)

	p := NewPartition(topo, DefaultPolicy)
	assert.Equal(t, [][]int{{0, 1}, {2}}, p.Components)
	assert.Equal(t, 1, topo.NodeAt(0).ID)
}

func TestPartition_ReusedAcrossBuilds(t *testing.T) {
	topo := heroTopology()
	p := NewPartition(topo, DefaultPolicy)

	a := p.Select(topo, selectIDs(t, topo, 254, 100))
	b := p.Select(topo, selectIDs(t, topo, 254, 200))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.True(t, a.ActiveNodeIDs.Has(100))
	assert.True(t, b.ActiveNodeIDs.Has(200))
}

func TestSelectGroup(t *testing.T) {
	var nodes []talent.Node
	var edges []talent.Edge
	nodes, edges = chain(nodes, edges, 1, 30)
	groups := []talent.BranchGroup{
		{ID: 31, Name: "Sentinel", NodeIDs: []int{1, 2, 3}},
		{ID: 42, Name: "Dark Ranger", NodeIDs: []int{4, 5, 6}},
	}
	topo := talent.NewTopology(254, nodes, edges, groups)

	got := SelectGroup(topo, selectIDs(t, topo, 254, 5, 6, 1))
	require.NotNil(t, got)
	assert.Equal(t, 42, got.GroupID)
	assert.Equal(t, "Dark Ranger", got.GroupName)
	assert.Equal(t, []int{4, 5, 6}, got.ActiveNodeIDs.Sorted())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, got.AllBranchNodeIDs.Sorted())

	assert.Nil(t, SelectGroup(topo, selectIDs(t, topo, 254, 20)))
	assert.Nil(t, SelectGroup(heroTopology(), selectIDs(t, heroTopology(), 254, 100)))
}
