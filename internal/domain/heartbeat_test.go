package domain

import "testing"

func TestSynchronize(t *testing.T) {
	t.Run("stamps every active node and returns count", func(t *testing.T) {
		topology, err := NewTopology(3, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count := topology.Synchronize("011001010")
		if count != 8 {
			t.Errorf("expected 8 nodes synchronized, got %d", count)
		}

		for _, n := range topology.Nodes {
			if n.HeartbeatPattern != "011001010" {
				t.Errorf("node %d: pattern %q", n.Address, n.HeartbeatPattern)
			}
			if n.LastSyncTime == nil {
				t.Errorf("node %d: sync time not set", n.Address)
			}
		}

		if topology.LastPattern != "011001010" {
			t.Errorf("last pattern not recorded: %q", topology.LastPattern)
		}
	})

	t.Run("skips inactive nodes", func(t *testing.T) {
		topology, err := NewTopology(3, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		topology.Deactivate(func(n *Node) bool { return n.Address < 4 })

		count := topology.Synchronize("1010")
		if count != 4 {
			t.Errorf("expected 4 nodes synchronized, got %d", count)
		}
		for _, n := range topology.Nodes[:4] {
			if n.HeartbeatPattern != "" {
				t.Errorf("inactive node %d received pattern %q", n.Address, n.HeartbeatPattern)
			}
		}
	})
}

func TestDeactivate(t *testing.T) {
	metadata := []NodeMetadata{
		{Name: "a", Category: "core"},
		{Name: "b", Category: "archive"},
		{Name: "c", Category: "core"},
		{Name: "d", Category: "archive"},
		{Name: "e", Category: "archive"},
	}

	t.Run("counts state changes and keeps nodes in place", func(t *testing.T) {
		topology, err := NewTopology(5, metadata)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		edgesBefore := len(topology.Edges)

		count := topology.Deactivate(CategoryIs("archive"))
		if count != 3 {
			t.Errorf("expected 3 deactivations, got %d", count)
		}
		if topology.Size() != 32 {
			t.Errorf("deactivation removed nodes: %d left", topology.Size())
		}
		if len(topology.Edges) != edgesBefore {
			t.Errorf("deactivation removed edges: %d left", len(topology.Edges))
		}
		if topology.ActiveCount() != 32-3 {
			t.Errorf("expected %d active nodes, got %d", 32-3, topology.ActiveCount())
		}
	})

	t.Run("already-inactive matches are not counted", func(t *testing.T) {
		topology, err := NewTopology(5, metadata)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if count := topology.Deactivate(CategoryIs("archive")); count != 3 {
			t.Fatalf("first pass: expected 3, got %d", count)
		}
		if count := topology.Deactivate(CategoryIs("archive")); count != 0 {
			t.Errorf("second pass: expected 0, got %d", count)
		}
	})

	t.Run("name predicate", func(t *testing.T) {
		topology, err := NewTopology(3, metadata)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if count := topology.Deactivate(NameIs("c")); count != 1 {
			t.Errorf("expected 1 deactivation, got %d", count)
		}
		if topology.Nodes[2].Active {
			t.Error("node c still active")
		}
	})
}
