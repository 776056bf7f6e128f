// Package derive computes the values the source document does not carry
// verbatim: concrete addresses and ports, link-delay encodings, stable
// node identities, and tap-device names.
//
// Every function here is pure. Cross-generator consistency rests on that
// purity: the simulation, mesh-config, and rendering generators never
// communicate, they just call the same functions with the same inputs.
package derive

import (
	"fmt"
	"strconv"
	"strings"

	"topogen/internal/topology"
)

// basePort is the first listen port; node N listens on basePort+N.
const basePort = 8000

// Endpoint is a synthesized network address and port for one node on
// one link.
type Endpoint struct {
	Address string
	Port    int
}

// String formats the endpoint as "address:port".
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Address, e.Port)
}

// HostAddress produces a concrete IPv4 address from a network prefix of
// the form "A.B.C.*" and a node's ordered index. The wildcard tail and
// any trailing dots are stripped and index+1 becomes the host octet.
func HostAddress(prefix string, index int) string {
	base := prefix
	if i := strings.Index(base, "*"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimRight(base, ".")
	return base + "." + strconv.Itoa(index+1)
}

// Port returns a node's listen port, 8000 + ordered index.
func Port(index int) int {
	return basePort + index
}

// NodeEndpoint combines HostAddress and Port for one node on one link.
func NodeEndpoint(prefix string, index int) Endpoint {
	return Endpoint{
		Address: HostAddress(prefix, index),
		Port:    Port(index),
	}
}

// Role says which side of an edge a node sits on. The two sides carry
// different tap-device attributes.
type Role int

const (
	// RoleSource is the edge's source side.
	RoleSource Role = iota
	// RoleTarget is the edge's target side.
	RoleTarget
)

// TapDevice returns the tap-device name for one side of an edge,
// falling back to tap_<nodeIndex>_<edgePosition> when the document does
// not declare one.
func TapDevice(e topology.Edge, role Role, nodeIndex int) string {
	attr := "tap_device_a"
	if role == RoleTarget {
		attr = "tap_device_b"
	}
	if v, ok := e.Attr(attr); ok && v != "" {
		return v
	}
	return fmt.Sprintf("tap_%d_%d", nodeIndex, e.Position)
}
