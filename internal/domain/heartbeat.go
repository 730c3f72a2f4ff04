package domain

import "time"

// Synchronize rebroadcasts the canonical heartbeat pattern to every active
// node, stamping each with the pattern and the current time, and records
// the pattern on the topology for later sync-ratio metrics. Returns the
// number of nodes touched.
func (t *Topology) Synchronize(pattern string) int {
	now := time.Now()
	count := 0
	for _, n := range t.Nodes {
		if !n.Active {
			continue
		}
		n.HeartbeatPattern = pattern
		n.LastSyncTime = &now
		count++
	}
	t.LastPattern = pattern
	return count
}

// Deactivate sets Active = false on every node matching the predicate.
// Nodes and edges are never removed; an inactive node is simply excluded
// from active aggregates, and a later Propagate reactivates it. The return
// value counts state changes, not matches: a node that was already
// inactive does not contribute.
func (t *Topology) Deactivate(predicate NodePredicate) int {
	count := 0
	for _, n := range t.Nodes {
		if n.Active && predicate(n) {
			n.Active = false
			count++
		}
	}
	return count
}
