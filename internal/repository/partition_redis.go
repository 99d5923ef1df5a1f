package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
)

const partitionKeyPrefix = "talent:partition:"

// RedisPartitionCache shares computed component partitions between service
// instances.
type RedisPartitionCache struct {
	log    *zap.SugaredLogger
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPartitionCache(log *zap.SugaredLogger, client *redis.Client, ttl time.Duration) *RedisPartitionCache {
	return &RedisPartitionCache{log: log, client: client, ttl: ttl}
}

// PartitionKey names the partition of one topology shape under one policy.
func PartitionKey(topo *talent.Topology, policy branch.Policy) string {
	return fmt.Sprintf("%s%d:%s:%d-%d", partitionKeyPrefix, topo.SpecID, topo.Fingerprint(), policy.MinSize, policy.MaxSize)
}

func (r *RedisPartitionCache) Get(ctx context.Context, key string) (*branch.Partition, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var p branch.Partition
	if err := json.Unmarshal(data, &p); err != nil {
		r.log.Warnw("dropping unreadable partition", "key", key, "error", err)
		r.client.Del(ctx, key)
		return nil, false, nil
	}
	return &p, true, nil
}

func (r *RedisPartitionCache) Set(ctx context.Context, key string, p *branch.Partition) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}
