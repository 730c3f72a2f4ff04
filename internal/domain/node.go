package domain

import "time"

// NodeMetadata is one caller-supplied metadata record consumed at build
// time. Records come from an external source (YAML file, import fragment);
// the core treats the counters and category as opaque payload.
type NodeMetadata struct {
	Name            string `json:"name" yaml:"name"`
	RepositoryCount int    `json:"repository_count" yaml:"repository_count"`
	UserCount       int    `json:"user_count" yaml:"user_count"`
	Category        string `json:"category" yaml:"category"`
}

// Node represents a single addressable member of the hypercube mesh.
type Node struct {
	Address         int    `json:"address"`
	Name            string `json:"name,omitempty"`
	Category        string `json:"category,omitempty"`
	RepositoryCount int    `json:"repository_count"`
	UserCount       int    `json:"user_count"`

	// Mutable state
	Active           bool       `json:"active"`
	HeartbeatPattern string     `json:"heartbeat_pattern,omitempty"`
	LastSyncTime     *time.Time `json:"last_sync_time,omitempty"`
}

// NewNode creates a node for the given address with the supplied metadata.
// All nodes start active with no heartbeat state.
func NewNode(address int, meta NodeMetadata) *Node {
	return &Node{
		Address:         address,
		Name:            meta.Name,
		Category:        meta.Category,
		RepositoryCount: meta.RepositoryCount,
		UserCount:       meta.UserCount,
		Active:          true,
	}
}

// NodePredicate selects nodes by their metadata, typically for deactivation.
type NodePredicate func(*Node) bool

// CategoryIs returns a predicate matching nodes with the given category.
func CategoryIs(category string) NodePredicate {
	return func(n *Node) bool {
		return n.Category == category
	}
}

// NameIs returns a predicate matching nodes with the given name.
func NameIs(name string) NodePredicate {
	return func(n *Node) bool {
		return n.Name == name
	}
}
