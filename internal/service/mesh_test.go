package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hypermesh/internal/codec"
	"hypermesh/internal/domain"
	"hypermesh/internal/repository/sqlite"
)

func newTestService(t *testing.T) (*MeshService, chan Event) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	eventBus := NewEventBus()
	events := make(chan Event, 64)
	eventBus.Subscribe(events)

	return NewMeshService(repo, eventBus), events
}

func testMetadata() []domain.NodeMetadata {
	return []domain.NodeMetadata{
		{Name: "a", RepositoryCount: 4, UserCount: 1, Category: "core"},
		{Name: "b", RepositoryCount: 2, UserCount: 1, Category: "archive"},
		{Name: "c", RepositoryCount: 6, UserCount: 2, Category: "archive"},
		{Name: "d", RepositoryCount: 1, UserCount: 1, Category: "archive"},
	}
}

func drainEvents(ch chan Event) []Event {
	var events []Event
	for {
		select {
		case e := <-ch:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestMeshServiceLifecycle(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	if err := svc.BuildTopology(ctx, 5, testMetadata()); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	result, err := svc.Propagate(ctx, 0b0010, true)
	if err != nil {
		t.Fatalf("propagate failed: %v", err)
	}
	if len(result.Visited) != 32 {
		t.Errorf("visited %d nodes, want 32", len(result.Visited))
	}

	synced, err := svc.SynchronizeHeartbeat(ctx, "011001010")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if synced != 32 {
		t.Errorf("synced %d nodes, want 32", synced)
	}

	metrics, err := svc.ComputeMetrics(ctx)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.HeartbeatSyncRatio != 1.0 {
		t.Errorf("sync ratio %.4f, want 1.0", metrics.HeartbeatSyncRatio)
	}
	if metrics.PropagationEfficiency != 1.0 {
		t.Errorf("propagation efficiency %.4f, want 1.0", metrics.PropagationEfficiency)
	}

	deactivated, err := svc.DeactivateNodes(ctx, domain.CategoryIs("archive"))
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if deactivated != 3 {
		t.Errorf("deactivated %d nodes, want 3", deactivated)
	}

	after, err := svc.ComputeMetrics(ctx)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.ActiveNodeCount-after.ActiveNodeCount != 3 {
		t.Errorf("active count dropped by %d, want 3",
			metrics.ActiveNodeCount-after.ActiveNodeCount)
	}

	got := drainEvents(events)
	wantTypes := []EventType{
		EventTopologyBuilt,
		EventPropagationDone,
		EventHeartbeatSynced,
		EventMetricsComputed,
		EventNodesDeactivated,
		EventMetricsComputed,
	}
	if len(got) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d: %+v", len(wantTypes), len(got), got)
	}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("event %d: %s, want %s", i, got[i].Type, want)
		}
	}
}

func TestMeshServiceErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("operations before build fail", func(t *testing.T) {
		if _, err := svc.Propagate(ctx, 0, true); err == nil {
			t.Error("expected error")
		}
		if _, err := svc.SynchronizeHeartbeat(ctx, "01"); err == nil {
			t.Error("expected error")
		}
		if _, err := svc.ComputeMetrics(ctx); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("build surfaces configuration errors", func(t *testing.T) {
		err := svc.BuildTopology(ctx, 0, nil)
		var cfgErr *domain.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("propagate surfaces invalid addresses", func(t *testing.T) {
		if err := svc.BuildTopology(ctx, 3, nil); err != nil {
			t.Fatalf("build failed: %v", err)
		}
		_, err := svc.Propagate(ctx, 99, true)
		var addrErr *domain.InvalidAddressError
		if !errors.As(err, &addrErr) {
			t.Errorf("expected InvalidAddressError, got %v", err)
		}
	})
}

func TestMeshServicePersistence(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	bus := NewEventBus()

	first := NewMeshService(repo, bus)
	if err := first.BuildTopology(ctx, 3, testMetadata()); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := first.SynchronizeHeartbeat(ctx, "1010"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if _, err := first.DeactivateNodes(ctx, domain.CategoryIs("archive")); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := first.SaveState(ctx); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A second service over the same repository restores node state on build
	second := NewMeshService(repo, bus)
	if err := second.BuildTopology(ctx, 3, testMetadata()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	metrics, err := second.ComputeMetrics(ctx)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.ActiveNodeCount != 8-3 {
		t.Errorf("restored active count %d, want 5", metrics.ActiveNodeCount)
	}
}

func TestMeshServiceExport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.BuildTopology(ctx, 2, testMetadata()); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		data, err := svc.ExportJSON(ctx)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		parsed, err := codec.NewJSONCodec().Parse(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if parsed.Dimension != 2 || len(parsed.Nodes) != 4 {
			t.Errorf("export shape: d=%d nodes=%d", parsed.Dimension, len(parsed.Nodes))
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf strings.Builder
		if err := svc.ExportYAML(ctx, &buf); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(buf.String(), "dimension: 2") {
			t.Errorf("yaml export missing dimension: %s", buf.String())
		}
	})
}

func TestEventBusDropsSlowSubscribers(t *testing.T) {
	bus := NewEventBus()
	full := make(chan Event) // unbuffered, nobody reading
	bus.Subscribe(full)

	done := make(chan struct{})
	go func() {
		bus.Publish(Event{Type: EventTopologyBuilt})
		close(done)
	}()

	select {
	case <-done:
	case <-full:
		t.Fatal("unexpected delivery")
	}
}
