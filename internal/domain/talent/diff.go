package talent

// DiffKind classifies one node in a build comparison.
type DiffKind string

const (
	DiffAdded     DiffKind = "added"
	DiffRemoved   DiffKind = "removed"
	DiffChanged   DiffKind = "changed"
	DiffUnchanged DiffKind = "unchanged"
)

type ValueChange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type ChangeDetails struct {
	RankChange   *ValueChange `json:"rankChange,omitempty"`
	ChoiceChange *ValueChange `json:"choiceChange,omitempty"`
}

// DiffEntry describes one node index. Before is the baseline selection, After
// the compared one; each is nil when that side did not select the node.
type DiffEntry struct {
	Index   int            `json:"index"`
	Kind    DiffKind       `json:"kind"`
	Before  *NodeSelection `json:"before,omitempty"`
	After   *NodeSelection `json:"after,omitempty"`
	Changes *ChangeDetails `json:"changes,omitempty"`
}

type DiffSummary struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
	Changed []int `json:"changed"`
}

type DiffResult struct {
	SpecID   int         `json:"specId"`
	SpecName string      `json:"specName,omitempty"`
	Entries  []DiffEntry `json:"entries"`
	Summary  DiffSummary `json:"summary"`
}
