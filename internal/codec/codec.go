package codec

import (
	"io"

	"topogen/internal/topology"
)

// Generator renders a topology model into one output format.
//
// Generators are pure consumers of the model: they look nodes up through
// Topology.Index and call the derive package for every synthesized value,
// so all output formats agree on indices, addresses, ports, and
// identities without sharing state. Each generator assembles its whole
// document before writing, so a failed generation produces no output.
type Generator interface {
	Generate(t *topology.Topology, w io.Writer) error
	Format() string
}
