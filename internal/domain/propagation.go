package domain

// PropagationResult records one flood propagation over the topology.
type PropagationResult struct {
	SourceAddress int   `json:"source_address"`
	Visited       []int `json:"visited"` // insertion order
	StepCount     int   `json:"step_count"`
}

// Propagate floods an activation signal from sourceAddress to every
// reachable node. The hypercube is connected for any dimension >= 1, so the
// traversal always covers all 2^d nodes.
//
// The traversal is an explicit-stack pre-order walk: a node's unvisited
// neighbors are entered in increasing bit-index order, which makes the
// visited order deterministic for a fixed source. Recursion is deliberately
// avoided; worst-case call depth would equal the node count.
//
// Every visited node's Active flag is set to signal. Fails with
// InvalidAddressError if sourceAddress is out of range; in that case no
// node state is touched.
func (t *Topology) Propagate(sourceAddress int, signal bool) (*PropagationResult, error) {
	if !t.Contains(sourceAddress) {
		return nil, &InvalidAddressError{Address: sourceAddress, NodeCount: len(t.Nodes)}
	}

	size := len(t.Nodes)
	visited := make([]bool, size)
	result := &PropagationResult{
		SourceAddress: sourceAddress,
		Visited:       make([]int, 0, size),
	}

	stack := make([]int, 0, size)
	stack = append(stack, sourceAddress)

	for len(stack) > 0 {
		address := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[address] {
			continue
		}
		visited[address] = true

		t.Nodes[address].Active = signal
		result.Visited = append(result.Visited, address)

		// Push in decreasing bit order so the lowest-bit neighbor is
		// popped, and therefore entered, first.
		for bit := t.Dimension - 1; bit >= 0; bit-- {
			neighbor := address ^ (1 << bit)
			if !visited[neighbor] {
				stack = append(stack, neighbor)
			}
		}
	}

	result.StepCount = len(result.Visited)
	return result, nil
}
