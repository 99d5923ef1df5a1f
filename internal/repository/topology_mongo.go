package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

const topologyCollection = "topologies"

// MongoTopologyStore reads one document per spec from the topologies
// collection. It never writes.
type MongoTopologyStore struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoTopologyStore(log *zap.SugaredLogger, mongo *mongo.Database) *MongoTopologyStore {
	return &MongoTopologyStore{
		log:   log,
		mongo: mongo,
	}
}

func topologyFilter(specID int) bson.M {
	return bson.M{"spec_id": specID}
}

func (m *MongoTopologyStore) Topology(ctx context.Context, specID int) (*talent.Topology, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc TopologyDocument
	err := m.mongo.Collection(topologyCollection).FindOne(ctx, topologyFilter(specID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: spec %d", talenterrors.ErrTopologyNotFound, specID)
	}
	if err != nil {
		m.log.Errorf("failed to load topology for spec %d: %v", specID, err)
		return nil, err
	}

	m.log.Debugw("topology loaded from mongo", "spec", specID, "nodes", len(doc.Nodes))
	return doc.Topology(), nil
}
