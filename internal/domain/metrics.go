package domain

// NetworkMetrics is the aggregate health view derived from a topology and
// the most recent propagation result.
type NetworkMetrics struct {
	NodeCount             int     `json:"node_count"`
	ActiveNodeCount       int     `json:"active_node_count"`
	EdgeCount             int     `json:"edge_count"`
	TotalRepositories     int     `json:"total_repositories"`
	TotalUsers            int     `json:"total_users"`
	NetworkDensity        float64 `json:"network_density"`
	PropagationEfficiency float64 `json:"propagation_efficiency"`
	HeartbeatSyncRatio    float64 `json:"heartbeat_sync_ratio"`
}

// ComputeMetrics derives aggregate statistics from the topology's current
// state. lastResult may be nil, in which case PropagationEfficiency is 0.
// Counter totals cover active nodes only. HeartbeatSyncRatio compares
// active nodes against the last-synchronized pattern and is 0 when no node
// is active.
func (t *Topology) ComputeMetrics(lastResult *PropagationResult) NetworkMetrics {
	m := NetworkMetrics{
		NodeCount: len(t.Nodes),
		EdgeCount: len(t.Edges),
	}

	synced := 0
	for _, n := range t.Nodes {
		if !n.Active {
			continue
		}
		m.ActiveNodeCount++
		m.TotalRepositories += n.RepositoryCount
		m.TotalUsers += n.UserCount
		if t.LastPattern != "" && n.HeartbeatPattern == t.LastPattern {
			synced++
		}
	}

	if m.NodeCount > 1 {
		possible := float64(m.NodeCount) * float64(m.NodeCount-1) / 2
		m.NetworkDensity = float64(m.EdgeCount) / possible
	}

	if lastResult != nil && m.NodeCount > 0 {
		m.PropagationEfficiency = float64(len(lastResult.Visited)) / float64(m.NodeCount)
	}

	if m.ActiveNodeCount > 0 {
		m.HeartbeatSyncRatio = float64(synced) / float64(m.ActiveNodeCount)
	}

	return m
}
