package talent

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
)

// SharedPartitionStore is an optional second-level cache shared between
// processes (see repository.RedisPartitionCache).
type SharedPartitionStore interface {
	Get(ctx context.Context, key string) (*branch.Partition, bool, error)
	Set(ctx context.Context, key string, p *branch.Partition) error
}

// PartitionCache keeps one component partition per topology shape. Keys carry
// the topology fingerprint, so a redeployed tree for the same spec never
// reuses the old partition, locally or from the shared store.
type PartitionCache struct {
	log    *zap.SugaredLogger
	policy branch.Policy
	shared SharedPartitionStore
	keyFn  func(topo *talent.Topology, policy branch.Policy) string

	group singleflight.Group
	local sync.Map // key -> *branch.Partition
}

func NewPartitionCache(log *zap.SugaredLogger, policy branch.Policy, shared SharedPartitionStore, keyFn func(*talent.Topology, branch.Policy) string) *PartitionCache {
	if keyFn == nil {
		keyFn = DefaultPartitionKey
	}
	return &PartitionCache{
		log:    log,
		policy: policy,
		shared: shared,
		keyFn:  keyFn,
	}
}

func (c *PartitionCache) Policy() branch.Policy { return c.policy }

// DefaultPartitionKey is "<spec>:<fingerprint>".
func DefaultPartitionKey(topo *talent.Topology, _ branch.Policy) string {
	return strconv.Itoa(topo.SpecID) + ":" + topo.Fingerprint()
}

func (c *PartitionCache) Get(ctx context.Context, topo *talent.Topology) (*branch.Partition, error) {
	key := c.keyFn(topo, c.policy)
	if p, ok := c.local.Load(key); ok {
		return p.(*branch.Partition), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if p, ok := c.local.Load(key); ok {
			return p, nil
		}
		p := c.loadShared(ctx, key, topo)
		if p == nil {
			p = branch.NewPartition(topo, c.policy)
			c.log.Debugw("partition computed", "spec", topo.SpecID, "components", len(p.Components), "candidates", len(p.Candidates))
			if c.shared != nil {
				if err := c.shared.Set(ctx, key, p); err != nil {
					c.log.Warnw("partition not shared", "key", key, "error", err)
				}
			}
		}
		c.local.Store(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*branch.Partition), nil
}

// loadShared returns nil on a miss, on error, or when the cached partition
// does not cover the topology it is asked for.
func (c *PartitionCache) loadShared(ctx context.Context, key string, topo *talent.Topology) *branch.Partition {
	if c.shared == nil {
		return nil
	}
	p, ok, err := c.shared.Get(ctx, key)
	if err != nil {
		c.log.Warnw("shared partition lookup failed", "key", key, "error", err)
		return nil
	}
	if !ok || !covers(p, topo.Len()) {
		return nil
	}
	return p
}

func covers(p *branch.Partition, n int) bool {
	total := 0
	for _, comp := range p.Components {
		for _, i := range comp {
			if i < 0 || i >= n {
				return false
			}
		}
		total += len(comp)
	}
	for _, ci := range p.Candidates {
		if ci < 0 || ci >= len(p.Components) {
			return false
		}
	}
	return total == n
}
