package talent

// SelectionRecord is a decoded export string.
type SelectionRecord struct {
	Version    int             `json:"version"`
	SpecID     int             `json:"specId"`
	SpecName   string          `json:"specName,omitempty"`
	TreeHash   string          `json:"treeHash"`
	Selections []NodeSelection `json:"selections"`

	// UnderrunBits counts zero bits synthesized past the end of the decoded
	// buffer. A non-zero value means the last node(s) may have been truncated.
	UnderrunBits int `json:"underrunBits,omitempty"`
}

// DisplayName returns the resolved spec name or, when the id is not in the
// spec table, the numeric id.
func (r *SelectionRecord) DisplayName() string {
	if r.SpecName != "" {
		return r.SpecName
	}
	return specLabel(r.SpecID)
}

// Selection returns the selection at index i, or Unselected(i) when the
// stream ended before i.
func (r *SelectionRecord) Selection(i int) NodeSelection {
	if i < 0 || i >= len(r.Selections) {
		return Unselected(i)
	}
	return r.Selections[i]
}

func (r *SelectionRecord) SelectedCount() int {
	n := 0
	for _, s := range r.Selections {
		if s.IsSelected() {
			n++
		}
	}
	return n
}
