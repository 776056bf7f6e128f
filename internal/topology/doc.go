// Package topology defines the canonical in-memory model of a network
// topology loaded from GraphML.
//
// The model is the single source of truth shared by every artifact
// generator. It adds one thing the raw document does not have: a stable,
// total ordering over nodes. Node IDs are parsed as integers and sorted
// ascending, so two generators running on the same document always agree
// on which node is "node N" without sharing any runtime state.
//
// # Types
//
// Node is a host or router with its ordered index and raw string
// attributes. Edge is a link between two nodes, keeping its position in
// document order because simulators name resources by declaration order.
//
// Topology wraps both and provides O(1) index lookup.
//
// # Defaults
//
// Optional attributes (datarate, delay, network, name) resolve through
// the accessor methods on Node and Edge, which fall back to the defaults
// in defaults.go. Generators must use the accessors rather than reading
// the attribute maps directly so the defaults cannot drift apart between
// output formats.
//
// The model is read-only after construction; there is no mutation,
// versioning, or persistence.
package topology
