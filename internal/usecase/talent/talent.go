package talent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/codec"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/diff"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/overlap"
)

// TopologyStore gives read-only access to the static talent tree of a spec.
type TopologyStore interface {
	Topology(ctx context.Context, specID int) (*talent.Topology, error)
}

type TalentUseCase struct {
	log        *zap.SugaredLogger
	store      TopologyStore
	partitions *PartitionCache
}

func NewTalentUseCase(log *zap.SugaredLogger, store TopologyStore, partitions *PartitionCache) *TalentUseCase {
	return &TalentUseCase{
		log:        log,
		store:      store,
		partitions: partitions,
	}
}

func (u *TalentUseCase) ParseBuild(ctx context.Context, exportString string) (*talent.SelectionRecord, error) {
	rec, err := codec.Parse(exportString)
	if err != nil {
		return nil, err
	}
	if rec.UnderrunBits > 0 {
		u.log.Warnw("export string ended inside a node", "spec", rec.SpecID, "underrunBits", rec.UnderrunBits)
	}
	return rec, nil
}

// CompareBuilds parses both strings and diffs candidate against baseline.
func (u *TalentUseCase) CompareBuilds(ctx context.Context, baseline, candidate string) (*talent.DiffResult, error) {
	var a, b *talent.SelectionRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = u.ParseBuild(gctx, baseline)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		b, err = u.ParseBuild(gctx, candidate)
		if err != nil {
			return fmt.Errorf("candidate: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return diff.Diff(a, b)
}

// Layout is a build placed on its spec's tree: the active hero tree and the
// node list with overlapping inactive hero nodes removed.
type Layout struct {
	Record *talent.SelectionRecord `json:"record"`
	Branch *BranchView             `json:"branch,omitempty"`
	Nodes  []talent.Node           `json:"nodes"`
}

type BranchView struct {
	GroupID          int    `json:"groupId,omitempty"`
	GroupName        string `json:"groupName,omitempty"`
	ActiveNodeIDs    []int  `json:"activeNodeIds"`
	AllBranchNodeIDs []int  `json:"allBranchNodeIds"`
}

func (u *TalentUseCase) Layout(ctx context.Context, exportString string) (*Layout, error) {
	rec, err := u.ParseBuild(ctx, exportString)
	if err != nil {
		return nil, err
	}
	topo, err := u.store.Topology(ctx, rec.SpecID)
	if err != nil {
		return nil, err
	}

	sel, err := u.SelectBranch(ctx, topo, rec)
	if err != nil {
		return nil, err
	}

	out := &Layout{Record: rec}
	var active, all talent.NodeIDSet
	if sel != nil {
		active, all = sel.ActiveNodeIDs, sel.AllBranchNodeIDs
		out.Branch = &BranchView{
			GroupID:          sel.GroupID,
			GroupName:        sel.GroupName,
			ActiveNodeIDs:    sel.ActiveNodeIDs.Sorted(),
			AllBranchNodeIDs: sel.AllBranchNodeIDs.Sorted(),
		}
	}
	out.Nodes = overlap.Resolve(visibleNodes(topo, rec.SpecID), active, all)
	return out, nil
}

// SelectBranch prefers explicit branch groups and falls back to component
// analysis of the graph.
func (u *TalentUseCase) SelectBranch(ctx context.Context, topo *talent.Topology, rec *talent.SelectionRecord) (*talent.BranchSelection, error) {
	if len(topo.Groups()) > 0 {
		return branch.SelectGroup(topo, rec), nil
	}
	p, err := u.partitions.Get(ctx, topo)
	if err != nil {
		return nil, err
	}
	return p.Select(topo, rec), nil
}

func (u *TalentUseCase) Specs() []talent.Spec {
	return talent.Specs()
}

func visibleNodes(topo *talent.Topology, specID int) []talent.Node {
	out := make([]talent.Node, 0, topo.Len())
	for _, n := range topo.Nodes() {
		if n.UsableBy(specID) {
			out = append(out, n)
		}
	}
	return out
}
