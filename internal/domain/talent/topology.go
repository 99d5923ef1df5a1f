package talent

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"slices"
	"sort"
)

type Entry struct {
	ID       int    `json:"id" bson:"id" yaml:"id"`
	SpellID  int    `json:"spellId" bson:"spell_id" yaml:"spellId"`
	Name     string `json:"name" bson:"name" yaml:"name"`
	IconID   int    `json:"iconId,omitempty" bson:"icon_id,omitempty" yaml:"iconId,omitempty"`
	MaxRanks int    `json:"maxRanks" bson:"max_ranks" yaml:"maxRanks"`
	Index    int    `json:"index" bson:"index" yaml:"index"`
}

type Node struct {
	ID       int     `json:"id" bson:"id" yaml:"id"`
	PosX     float64 `json:"posX" bson:"pos_x" yaml:"posX"`
	PosY     float64 `json:"posY" bson:"pos_y" yaml:"posY"`
	Type     string  `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
	MaxRanks int     `json:"maxRanks" bson:"max_ranks" yaml:"maxRanks"`
	Entries  []Entry `json:"entries,omitempty" bson:"entries,omitempty" yaml:"entries,omitempty"`
	// AllowedSpecs restricts the node to these specs; empty means all specs
	// of the class may use it.
	AllowedSpecs []int `json:"allowedSpecs,omitempty" bson:"allowed_specs,omitempty" yaml:"allowedSpecs,omitempty"`
}

func (n Node) UsableBy(specID int) bool {
	return len(n.AllowedSpecs) == 0 || slices.Contains(n.AllowedSpecs, specID)
}

type Edge struct {
	From int `json:"from" bson:"from" yaml:"from"`
	To   int `json:"to" bson:"to" yaml:"to"`
}

// BranchGroup is a named hero tree with an explicit member list.
type BranchGroup struct {
	ID      int    `json:"id" bson:"id" yaml:"id"`
	Name    string `json:"name" bson:"name" yaml:"name"`
	NodeIDs []int  `json:"nodeIds" bson:"node_ids" yaml:"nodeIds"`
}

// Topology is the static talent graph of one specialization. Nodes are kept
// sorted by ascending id and addressed by their dense index, which is also the
// selection index used by export strings.
type Topology struct {
	SpecID int
	nodes  []Node
	index  map[int]int
	adj    [][]int
	edges  []Edge
	groups []BranchGroup
	fp     string
}

// NewTopology copies and sorts nodes and builds the dense adjacency lists.
// Edges that reference unknown node ids and self loops are dropped.
func NewTopology(specID int, nodes []Node, edges []Edge, groups []BranchGroup) *Topology {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	t := &Topology{
		SpecID: specID,
		nodes:  sorted,
		index:  make(map[int]int, len(sorted)),
		adj:    make([][]int, len(sorted)),
		groups: slices.Clone(groups),
	}
	for i, n := range sorted {
		t.index[n.ID] = i
	}
	for _, e := range edges {
		a, okA := t.index[e.From]
		b, okB := t.index[e.To]
		if !okA || !okB || a == b {
			continue
		}
		t.adj[a] = append(t.adj[a], b)
		t.adj[b] = append(t.adj[b], a)
		t.edges = append(t.edges, e)
	}
	t.fp = t.fingerprint()
	return t
}

// Fingerprint identifies the graph shape: node ids and adjacency. Two
// topologies with the same fingerprint have the same components.
func (t *Topology) Fingerprint() string { return t.fp }

func (t *Topology) fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}

	put(len(t.nodes))
	for _, n := range t.nodes {
		put(n.ID)
	}
	for i, nb := range t.adj {
		sorted := slices.Clone(nb)
		slices.Sort(sorted)
		for _, j := range sorted {
			if j > i {
				put(i)
				put(j)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

func (t *Topology) Len() int { return len(t.nodes) }

func (t *Topology) NodeAt(i int) Node { return t.nodes[i] }

// Nodes returns the nodes in canonical order. The slice must not be modified.
func (t *Topology) Nodes() []Node { return t.nodes }

func (t *Topology) Edges() []Edge { return t.edges }

func (t *Topology) Groups() []BranchGroup { return t.groups }

func (t *Topology) IndexOf(id int) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Neighbors returns the dense indices adjacent to i.
func (t *Topology) Neighbors(i int) []int { return t.adj[i] }

// NodeIDSet is a set of topology node ids.
type NodeIDSet map[int]struct{}

func NewNodeIDSet(ids ...int) NodeIDSet {
	s := make(NodeIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s NodeIDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s NodeIDSet) Add(id int) { s[id] = struct{}{} }

// Sorted returns the ids in ascending order.
func (s NodeIDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BranchSelection is the outcome of active-branch inference.
type BranchSelection struct {
	ActiveNodeIDs    NodeIDSet
	AllBranchNodeIDs NodeIDSet
	// GroupID and GroupName are set when the branch came from an explicit
	// branch group rather than from component analysis.
	GroupID   int
	GroupName string
}
