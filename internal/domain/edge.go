package domain

import (
	"crypto/sha256"
	"fmt"
	"math/bits"
)

// Edge represents an unordered pair of node addresses whose binary
// representations differ in exactly one bit. From < To always holds, so
// each pair appears exactly once in a topology's edge list.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// NewEdge creates an edge with normalized endpoint order.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{From: a, To: b}
}

// HammingDistance returns the number of differing bit positions between the
// two endpoint addresses. Always 1 for edges built by NewTopology.
func (e Edge) HammingDistance() int {
	return bits.OnesCount(uint(e.From ^ e.To))
}

// ID creates a deterministic identifier for the edge based on its endpoints.
func (e Edge) ID() string {
	key := fmt.Sprintf("%d-%d", e.From, e.To)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}
