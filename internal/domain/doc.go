// Package domain defines the core domain types for the hypermesh interconnection-network model.
//
// This package contains the fundamental entities and value objects that represent
// a binary hypercube topology, including nodes, edges, propagation results, and
// derived network metrics.
//
// # Core Types
//
// Topology represents a fixed binary hypercube of 2^d nodes, each addressed by a
// distinct d-bit integer, with an edge between any two addresses that differ in
// exactly one bit. A Topology is built once and owned by its caller; nodes are
// never added or removed afterward, only their mutable fields change in place.
//
// Node represents a single addressable mesh member carrying caller-supplied
// metadata (name, category, repository and user counters), an activation flag,
// and heartbeat synchronization state.
//
// Edge represents an unordered pair of addresses at Hamming distance 1.
//
// PropagationResult records the insertion-ordered set of addresses visited by a
// flood propagation from a source node.
//
// NetworkMetrics is the aggregate view derived from the current topology and the
// most recent propagation result.
//
// # Operations
//
// Propagate, Synchronize, Deactivate and ComputeMetrics are deterministic,
// single-threaded operations over one owned Topology. They perform no locking
// themselves; serialization of concurrent callers is the responsibility of the
// owning service layer.
//
// # Design Principles
//
// - Neighbors are computed by XOR, never stored redundantly
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Deterministic behavior: no randomness, no wall-clock dependence beyond sync stamps
package domain
