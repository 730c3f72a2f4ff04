// Package repository defines the data access layer for hypermesh.
//
// This package documents the persistence abstraction; the actual
// implementation is in the sqlite subpackage.
//
// # SQLite Implementation
//
// The sqlite implementation persists the pieces of mesh state that outlive
// a process:
//
// - Per-node mutable state (activation, heartbeat pattern, sync time)
// - Propagation run history with visited counts
// - Heartbeat sync records
// - Metrics snapshots over time
//
// It uses WAL mode for concurrency and migrates the schema on startup.
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
