package domain

// TopologyFragment is a flat snapshot of a topology for import/export
// operations. Unlike Topology it carries nodes by value and makes no
// structural guarantees; DeriveFragment produces one from a live topology.
type TopologyFragment struct {
	Dimension int    `json:"dimension"`
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
}

// NewTopologyFragment creates an empty fragment
func NewTopologyFragment() *TopologyFragment {
	return &TopologyFragment{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node to the fragment
func (f *TopologyFragment) AddNode(node Node) {
	f.Nodes = append(f.Nodes, node)
}

// AddEdge adds an edge to the fragment
func (f *TopologyFragment) AddEdge(edge Edge) {
	f.Edges = append(f.Edges, edge)
}

// DeriveFragment copies the current topology state into a fragment. The
// copy is deep with respect to node state, so exporting a fragment while
// the caller later mutates the topology is safe.
func DeriveFragment(t *Topology) *TopologyFragment {
	f := &TopologyFragment{
		Dimension: t.Dimension,
		Nodes:     make([]Node, 0, len(t.Nodes)),
		Edges:     make([]Edge, 0, len(t.Edges)),
	}

	for _, n := range t.Nodes {
		node := *n
		if n.LastSyncTime != nil {
			ts := *n.LastSyncTime
			node.LastSyncTime = &ts
		}
		f.AddNode(node)
	}
	f.Edges = append(f.Edges, t.Edges...)

	return f
}

// MetadataRecords extracts the ordered metadata list from a fragment,
// suitable for rebuilding a topology with NewTopology.
func (f *TopologyFragment) MetadataRecords() []NodeMetadata {
	records := make([]NodeMetadata, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		records = append(records, NodeMetadata{
			Name:            n.Name,
			RepositoryCount: n.RepositoryCount,
			UserCount:       n.UserCount,
			Category:        n.Category,
		})
	}
	return records
}
