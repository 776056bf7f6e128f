package topology

import "fmt"

// Defaults for optional attributes. Every generator resolves absent
// attributes through the accessors below, so the defaults live in
// exactly one place.
const (
	// DefaultDatarate is the link bandwidth used when an edge carries
	// no datarate attribute.
	DefaultDatarate = "100Mbps"

	// DefaultDelay is the link delay used when an edge carries no
	// delay attribute.
	DefaultDelay = "1ms"
)

// Name returns the node's human-readable name, falling back to the raw
// node ID.
func (n Node) Name() string {
	if name, ok := n.Attrs["name"]; ok && name != "" {
		return name
	}
	return n.ID
}

// Attr returns a raw attribute value and whether it was declared in the
// source document.
func (n Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// Datarate returns the edge's declared bandwidth or DefaultDatarate.
func (e Edge) Datarate() string {
	if v, ok := e.Attrs["datarate"]; ok && v != "" {
		return v
	}
	return DefaultDatarate
}

// Delay returns the edge's declared delay string or DefaultDelay.
func (e Edge) Delay() string {
	if v, ok := e.Attrs["delay"]; ok && v != "" {
		return v
	}
	return DefaultDelay
}

// Network returns the edge's declared network prefix, or the synthesized
// default 10.0.<position+1>.* so parallel links land on distinct subnets.
func (e Edge) Network() string {
	if v, ok := e.Attrs["network"]; ok && v != "" {
		return v
	}
	return fmt.Sprintf("10.0.%d.*", e.Position+1)
}

// Attr returns a raw attribute value and whether it was declared in the
// source document.
func (e Edge) Attr(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}
