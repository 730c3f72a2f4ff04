package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"hypermesh/internal/codec"
	"hypermesh/internal/domain"
	"hypermesh/internal/repository/sqlite"
)

// MeshService owns a Topology and provides the mesh operations over it.
//
// Every mutating operation (Build, Propagate, SynchronizeHeartbeat,
// DeactivateNodes) and every read of derived state takes the service's
// mutex, so concurrent callers are serialized behind a single writer and
// metrics are never computed against a topology mid-traversal.
type MeshService struct {
	mu       sync.Mutex
	topology *domain.Topology
	lastRun  *domain.PropagationResult

	repo     *sqlite.Repository
	eventBus *EventBus
}

// NewMeshService creates a mesh service. repo may be nil, in which case no
// run history is persisted.
func NewMeshService(repo *sqlite.Repository, eventBus *EventBus) *MeshService {
	return &MeshService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// BuildTopology constructs the owned topology from a dimension and ordered
// metadata records, replacing any previously built one. If a repository is
// configured, persisted node state is re-applied onto matching addresses.
func (s *MeshService) BuildTopology(ctx context.Context, dimension int, metadata []domain.NodeMetadata) error {
	topology, err := domain.NewTopology(dimension, metadata)
	if err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.LoadNodeStates(ctx, topology); err != nil {
			return fmt.Errorf("restore node states: %w", err)
		}
	}

	s.mu.Lock()
	rebuilt := s.topology != nil
	s.topology = topology
	s.lastRun = nil
	s.mu.Unlock()

	eventType := EventTopologyBuilt
	if rebuilt {
		eventType = EventTopologyReloaded
	}
	s.eventBus.Publish(Event{
		Type:    eventType,
		Payload: map[string]int{"dimension": dimension, "node_count": topology.Size()},
	})

	return nil
}

// Propagate floods an activation signal from sourceAddress and records the
// run. The result is retained as the last propagation for metrics.
func (s *MeshService) Propagate(ctx context.Context, sourceAddress int, signal bool) (*domain.PropagationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return nil, fmt.Errorf("no topology built")
	}

	result, err := s.topology.Propagate(sourceAddress, signal)
	if err != nil {
		return nil, err
	}
	s.lastRun = result

	if s.repo != nil {
		if _, err := s.repo.RecordPropagation(ctx, result, s.topology.Size()); err != nil {
			return nil, fmt.Errorf("record propagation: %w", err)
		}
	}

	s.eventBus.Publish(Event{
		Type: EventPropagationDone,
		Payload: map[string]int{
			"source_address": result.SourceAddress,
			"visited":        len(result.Visited),
		},
	})

	return result, nil
}

// SynchronizeHeartbeat rebroadcasts the pattern to all active nodes and
// returns the number of nodes synchronized.
func (s *MeshService) SynchronizeHeartbeat(ctx context.Context, pattern string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return 0, fmt.Errorf("no topology built")
	}

	count := s.topology.Synchronize(pattern)

	if s.repo != nil {
		if _, err := s.repo.RecordSync(ctx, pattern, count); err != nil {
			return 0, fmt.Errorf("record sync: %w", err)
		}
	}

	s.eventBus.Publish(Event{
		Type:    EventHeartbeatSynced,
		Payload: map[string]interface{}{"pattern": pattern, "synced": count},
	})

	return count, nil
}

// DeactivateNodes deactivates every active node matching the predicate and
// returns the number of state changes.
func (s *MeshService) DeactivateNodes(ctx context.Context, predicate domain.NodePredicate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return 0, fmt.Errorf("no topology built")
	}

	count := s.topology.Deactivate(predicate)

	s.eventBus.Publish(Event{
		Type:    EventNodesDeactivated,
		Payload: map[string]int{"deactivated": count},
	})

	return count, nil
}

// ComputeMetrics derives aggregate statistics from a consistent snapshot of
// the topology and the last propagation run, persisting the snapshot when a
// repository is configured.
func (s *MeshService) ComputeMetrics(ctx context.Context) (domain.NetworkMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return domain.NetworkMetrics{}, fmt.Errorf("no topology built")
	}

	metrics := s.topology.ComputeMetrics(s.lastRun)

	if s.repo != nil {
		if _, err := s.repo.SaveMetricsSnapshot(ctx, metrics); err != nil {
			return domain.NetworkMetrics{}, fmt.Errorf("save metrics snapshot: %w", err)
		}
	}

	s.eventBus.Publish(Event{
		Type:    EventMetricsComputed,
		Payload: metrics,
	})

	return metrics, nil
}

// SaveState persists the mutable state of every node.
func (s *MeshService) SaveState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return fmt.Errorf("no topology built")
	}
	if s.repo == nil {
		return nil
	}

	return s.repo.SaveNodeStates(ctx, s.topology)
}

// snapshotFragment copies topology state under the lock.
func (s *MeshService) snapshotFragment() (*domain.TopologyFragment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.topology == nil {
		return nil, fmt.Errorf("no topology built")
	}
	return domain.DeriveFragment(s.topology), nil
}

// ExportJSON exports the current topology snapshot as JSON
func (s *MeshService) ExportJSON(ctx context.Context) ([]byte, error) {
	fragment, err := s.snapshotFragment()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	codec := codec.NewJSONCodec()
	if err := codec.Export(fragment, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportYAML exports the current topology snapshot as YAML
func (s *MeshService) ExportYAML(ctx context.Context, w io.Writer) error {
	fragment, err := s.snapshotFragment()
	if err != nil {
		return err
	}

	codec := codec.NewYAMLCodec()
	return codec.Export(fragment, w)
}
