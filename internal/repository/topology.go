package repository

import (
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
)

// TopologyDocument is the stored form of one spec's talent tree, shared by
// the file and mongo stores.
type TopologyDocument struct {
	SpecID int                  `json:"specId" bson:"spec_id" yaml:"specId"`
	Nodes  []talent.Node        `json:"nodes" bson:"nodes" yaml:"nodes"`
	Edges  []talent.Edge        `json:"edges" bson:"edges" yaml:"edges"`
	Groups []talent.BranchGroup `json:"branchGroups,omitempty" bson:"branch_groups,omitempty" yaml:"branchGroups,omitempty"`
}

func (d TopologyDocument) Topology() *talent.Topology {
	return talent.NewTopology(d.SpecID, d.Nodes, d.Edges, d.Groups)
}
