package talent

import (
	"encoding/json"
	"fmt"
)

type selectionState uint8

const (
	stateUnselected selectionState = iota
	stateGranted
	statePurchasedFull
	statePurchasedPartial
)

// Widths of the wire fields bound the values a selection can hold.
const (
	MaxRanksPurchased = 63
	MaxChoiceEntry    = 3
)

// Choice is an optional choice-entry index. The zero value is NoChoice.
type Choice struct {
	index int8
	set   bool
}

// NoChoice marks a purchased node that is not a choice node.
var NoChoice = Choice{}

// ChoiceEntry marks a purchased choice node with the given entry index. It
// panics outside 0..MaxChoiceEntry.
func ChoiceEntry(index int) Choice {
	if index < 0 || index > MaxChoiceEntry {
		panic(fmt.Sprintf("talent: choice entry %d out of range 0..%d", index, MaxChoiceEntry))
	}
	return Choice{index: int8(index), set: true}
}

// NodeSelection is the decoded state of one node, indexed by its position in
// the canonical (ascending node id) ordering of the topology.
//
// It is one of Unselected, Granted, PurchasedFull or PurchasedPartial; the
// fields of the other variants cannot be set.
type NodeSelection struct {
	Index  int
	state  selectionState
	ranks  uint8
	choice Choice
}

func Unselected(index int) NodeSelection {
	return NodeSelection{Index: index, state: stateUnselected}
}

// Granted is a selected node the player did not pay for (a free node).
func Granted(index int) NodeSelection {
	return NodeSelection{Index: index, state: stateGranted}
}

func PurchasedFull(index int, choice Choice) NodeSelection {
	return NodeSelection{Index: index, state: statePurchasedFull, choice: choice}
}

// PurchasedPartial is a node bought below its maximum rank. It panics when
// ranks is outside 0..MaxRanksPurchased.
func PurchasedPartial(index int, ranks int, choice Choice) NodeSelection {
	if ranks < 0 || ranks > MaxRanksPurchased {
		panic(fmt.Sprintf("talent: ranks %d out of range 0..%d", ranks, MaxRanksPurchased))
	}
	return NodeSelection{Index: index, state: statePurchasedPartial, ranks: uint8(ranks), choice: choice}
}

func (s NodeSelection) IsSelected() bool {
	return s.state != stateUnselected
}

func (s NodeSelection) IsPurchased() bool {
	return s.state == statePurchasedFull || s.state == statePurchasedPartial
}

func (s NodeSelection) IsPartiallyRanked() bool {
	return s.state == statePurchasedPartial
}

func (s NodeSelection) RanksPurchased() (int, bool) {
	if s.state != statePurchasedPartial {
		return 0, false
	}
	return int(s.ranks), true
}

func (s NodeSelection) IsChoiceNode() bool {
	return s.IsPurchased() && s.choice.set
}

func (s NodeSelection) ChoiceEntryIndex() (int, bool) {
	if !s.IsChoiceNode() {
		return 0, false
	}
	return int(s.choice.index), true
}

func (s NodeSelection) String() string {
	switch s.state {
	case stateGranted:
		return fmt.Sprintf("#%d granted", s.Index)
	case statePurchasedFull, statePurchasedPartial:
		out := fmt.Sprintf("#%d purchased", s.Index)
		if r, ok := s.RanksPurchased(); ok {
			out += fmt.Sprintf(" ranks=%d", r)
		}
		if c, ok := s.ChoiceEntryIndex(); ok {
			out += fmt.Sprintf(" choice=%d", c)
		}
		return out
	default:
		return fmt.Sprintf("#%d unselected", s.Index)
	}
}

type selectionJSON struct {
	Index             int   `json:"index"`
	IsSelected        bool  `json:"isSelected"`
	IsPurchased       *bool `json:"isPurchased,omitempty"`
	IsPartiallyRanked *bool `json:"isPartiallyRanked,omitempty"`
	RanksPurchased    *int  `json:"ranksPurchased,omitempty"`
	IsChoiceNode      *bool `json:"isChoiceNode,omitempty"`
	ChoiceEntryIndex  *int  `json:"choiceEntryIndex,omitempty"`
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// MarshalJSON emits only the fields read on the branch of the wire schema the
// node took, so an absent field and a zero field stay distinguishable.
func (s NodeSelection) MarshalJSON() ([]byte, error) {
	out := selectionJSON{Index: s.Index, IsSelected: s.IsSelected()}
	if s.IsSelected() {
		out.IsPurchased = boolPtr(s.IsPurchased())
	}
	if s.IsPurchased() {
		out.IsPartiallyRanked = boolPtr(s.IsPartiallyRanked())
		if r, ok := s.RanksPurchased(); ok {
			out.RanksPurchased = intPtr(r)
		}
		out.IsChoiceNode = boolPtr(s.IsChoiceNode())
		if c, ok := s.ChoiceEntryIndex(); ok {
			out.ChoiceEntryIndex = intPtr(c)
		}
	}
	return json.Marshal(out)
}

func (s *NodeSelection) UnmarshalJSON(data []byte) error {
	var in selectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	if !in.IsSelected {
		if in.IsPurchased != nil || in.hasPurchaseDetails() {
			return fmt.Errorf("node %d: selection details set on unselected node", in.Index)
		}
		*s = Unselected(in.Index)
		return nil
	}
	if in.IsPurchased == nil || !*in.IsPurchased {
		if in.hasPurchaseDetails() {
			return fmt.Errorf("node %d: purchase details set on granted node", in.Index)
		}
		*s = Granted(in.Index)
		return nil
	}

	choice := NoChoice
	if in.IsChoiceNode != nil && *in.IsChoiceNode {
		if in.ChoiceEntryIndex == nil {
			return fmt.Errorf("node %d: choice node without choiceEntryIndex", in.Index)
		}
		if c := *in.ChoiceEntryIndex; c < 0 || c > MaxChoiceEntry {
			return fmt.Errorf("node %d: choiceEntryIndex %d out of range 0..%d", in.Index, c, MaxChoiceEntry)
		}
		choice = ChoiceEntry(*in.ChoiceEntryIndex)
	} else if in.ChoiceEntryIndex != nil {
		return fmt.Errorf("node %d: choiceEntryIndex without isChoiceNode", in.Index)
	}

	if in.IsPartiallyRanked != nil && *in.IsPartiallyRanked {
		if in.RanksPurchased == nil {
			return fmt.Errorf("node %d: partial node without ranksPurchased", in.Index)
		}
		if r := *in.RanksPurchased; r < 0 || r > MaxRanksPurchased {
			return fmt.Errorf("node %d: ranksPurchased %d out of range 0..%d", in.Index, r, MaxRanksPurchased)
		}
		*s = PurchasedPartial(in.Index, *in.RanksPurchased, choice)
		return nil
	}
	if in.RanksPurchased != nil {
		return fmt.Errorf("node %d: ranksPurchased without isPartiallyRanked", in.Index)
	}
	*s = PurchasedFull(in.Index, choice)
	return nil
}

func (in selectionJSON) hasPurchaseDetails() bool {
	return in.IsPartiallyRanked != nil || in.RanksPurchased != nil ||
		in.IsChoiceNode != nil || in.ChoiceEntryIndex != nil
}
