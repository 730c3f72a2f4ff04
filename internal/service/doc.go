// Package service provides the business logic layer for hypermesh.
//
// MeshService owns the Topology for its lifetime and serializes every
// operation behind a single mutex, satisfying the single-writer discipline
// the core algorithms require. It coordinates the domain operations with
// the sqlite run-history repository and publishes fire-and-forget events
// for completed operations on the EventBus.
package service
