package domain

import "fmt"

// MaxDimension bounds the hypercube dimension so node counts stay
// addressable and allocations stay sane (2^24 nodes is already 16M).
const MaxDimension = 24

// Topology is a binary hypercube of 2^Dimension nodes. It is constructed
// once by NewTopology and owned exclusively by its caller; afterward only
// the mutable per-node fields change, never the node or edge sets.
//
// Nodes is indexed directly by address for O(1) lookup.
type Topology struct {
	Dimension int     `json:"dimension"`
	Nodes     []*Node `json:"nodes"`
	Edges     []Edge  `json:"edges"`

	// LastPattern is the most recently broadcast heartbeat pattern,
	// recorded by Synchronize and consumed by ComputeMetrics.
	LastPattern string `json:"last_pattern,omitempty"`
}

// NewTopology builds a hypercube topology of dimension d from an ordered
// list of metadata records. Record i seeds the node at address i; addresses
// beyond len(metadata) are initialized with zero counters and an empty
// category. All nodes start active.
//
// Fails with ConfigurationError if d is outside [1, MaxDimension] or if
// there are more metadata records than address slots. The metadata slice is
// never mutated.
func NewTopology(dimension int, metadata []NodeMetadata) (*Topology, error) {
	if dimension < 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("dimension %d, minimum is 1", dimension)}
	}
	if dimension > MaxDimension {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("dimension %d exceeds maximum %d", dimension, MaxDimension)}
	}

	size := 1 << dimension
	if len(metadata) > size {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("%d metadata records for %d address slots", len(metadata), size),
		}
	}

	t := &Topology{
		Dimension: dimension,
		Nodes:     make([]*Node, size),
		Edges:     make([]Edge, 0, dimension*size/2),
	}

	for address := 0; address < size; address++ {
		var meta NodeMetadata
		if address < len(metadata) {
			meta = metadata[address]
		}
		t.Nodes[address] = NewNode(address, meta)
	}

	// Each unordered pair is added once, from its lower endpoint, giving
	// exactly d*2^(d-1) edges.
	for address := 0; address < size; address++ {
		for bit := 0; bit < dimension; bit++ {
			neighbor := address ^ (1 << bit)
			if address < neighbor {
				t.Edges = append(t.Edges, NewEdge(address, neighbor))
			}
		}
	}

	return t, nil
}

// Size returns the number of nodes, 2^Dimension.
func (t *Topology) Size() int {
	return len(t.Nodes)
}

// Contains reports whether address is a valid node address.
func (t *Topology) Contains(address int) bool {
	return address >= 0 && address < len(t.Nodes)
}

// Node returns the node at the given address, or nil if out of range.
func (t *Topology) Node(address int) *Node {
	if !t.Contains(address) {
		return nil
	}
	return t.Nodes[address]
}

// NeighborAddresses returns the d neighbors of address in increasing
// bit-index order, computed by XOR with each single-bit mask.
func (t *Topology) NeighborAddresses(address int) []int {
	neighbors := make([]int, t.Dimension)
	for bit := 0; bit < t.Dimension; bit++ {
		neighbors[bit] = address ^ (1 << bit)
	}
	return neighbors
}

// ActiveCount returns the number of nodes currently active.
func (t *Topology) ActiveCount() int {
	count := 0
	for _, n := range t.Nodes {
		if n.Active {
			count++
		}
	}
	return count
}
