package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

var topologyExtensions = []string{".yaml", ".yml", ".json"}

// FileTopologyStore reads <dir>/<specID>.{yaml,yml,json}. JSON documents are
// read through the YAML decoder. Loaded topologies are kept for the life of
// the store.
type FileTopologyStore struct {
	dir string
	log *zap.SugaredLogger

	mu     sync.RWMutex
	loaded map[int]*talent.Topology
}

func NewFileTopologyStore(dir string, log *zap.SugaredLogger) *FileTopologyStore {
	return &FileTopologyStore{
		dir:    dir,
		log:    log,
		loaded: make(map[int]*talent.Topology),
	}
}

func (s *FileTopologyStore) Topology(ctx context.Context, specID int) (*talent.Topology, error) {
	s.mu.RLock()
	topo, ok := s.loaded[specID]
	s.mu.RUnlock()
	if ok {
		return topo, nil
	}

	doc, path, err := s.read(specID)
	if err != nil {
		return nil, err
	}
	if doc.SpecID != 0 && doc.SpecID != specID {
		return nil, fmt.Errorf("%s: document is for spec %d, not %d", path, doc.SpecID, specID)
	}
	doc.SpecID = specID
	topo = doc.Topology()

	s.mu.Lock()
	if existing, ok := s.loaded[specID]; ok {
		topo = existing
	} else {
		s.loaded[specID] = topo
	}
	s.mu.Unlock()

	s.log.Debugw("topology loaded", "spec", specID, "path", path, "nodes", topo.Len())
	return topo, nil
}

func (s *FileTopologyStore) read(specID int) (TopologyDocument, string, error) {
	base := filepath.Join(s.dir, strconv.Itoa(specID))
	for _, ext := range topologyExtensions {
		path := base + ext
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return TopologyDocument{}, path, err
		}
		doc, err := DecodeTopologyDocument(data)
		if err != nil {
			return TopologyDocument{}, path, fmt.Errorf("%s: %w", path, err)
		}
		return doc, path, nil
	}
	return TopologyDocument{}, base, fmt.Errorf("%w: spec %d in %s", talenterrors.ErrTopologyNotFound, specID, s.dir)
}

// DecodeTopologyDocument parses a YAML or JSON topology document.
func DecodeTopologyDocument(data []byte) (TopologyDocument, error) {
	var doc TopologyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return TopologyDocument{}, err
	}
	return doc, nil
}
