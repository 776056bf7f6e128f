package topology

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"topogen/internal/graphml"
)

var (
	// ErrInvalidNodeID reports a node ID that does not parse as an
	// integer. Ordering requires integer IDs; falling back to an
	// arbitrary position would let two generators disagree silently.
	ErrInvalidNodeID = errors.New("node id is not an integer")

	// ErrDanglingEdge reports an edge referencing a node that is not
	// in the node set.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrUnknownNode reports an index lookup for a node ID that is not
	// part of the topology.
	ErrUnknownNode = errors.New("unknown node")
)

// Node is a host or router in the topology.
type Node struct {
	ID    string
	Index int
	Attrs map[string]string
}

// Edge is a link between two nodes. Position is the edge's 0-based
// place in document order.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Position int
	Attrs    map[string]string
}

// Topology is the canonical ordered model built from a parsed GraphML
// document. It is read-only after construction.
type Topology struct {
	nodes []Node
	edges []Edge
	index map[string]int
}

// New builds a Topology from a parsed document. Nodes are sorted
// ascending by integer-parsed ID and assigned their 0-based index.
// Edges keep document order and are checked for referential integrity.
func New(doc *graphml.Document) (*Topology, error) {
	type keyed struct {
		numeric int
		node    graphml.Node
	}

	ordered := make([]keyed, 0, len(doc.Nodes))
	for id, n := range doc.Nodes {
		numeric, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNodeID, id)
		}
		ordered = append(ordered, keyed{numeric: numeric, node: n})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].numeric < ordered[j].numeric
	})

	t := &Topology{
		nodes: make([]Node, len(ordered)),
		edges: make([]Edge, len(doc.Edges)),
		index: make(map[string]int, len(ordered)),
	}

	for i, k := range ordered {
		t.nodes[i] = Node{
			ID:    k.node.ID,
			Index: i,
			Attrs: k.node.Attrs,
		}
		t.index[k.node.ID] = i
	}

	for i, e := range doc.Edges {
		if _, ok := t.index[e.Source]; !ok {
			return nil, fmt.Errorf("%w: edge %q source %q", ErrDanglingEdge, e.ID, e.Source)
		}
		if _, ok := t.index[e.Target]; !ok {
			return nil, fmt.Errorf("%w: edge %q target %q", ErrDanglingEdge, e.ID, e.Target)
		}
		t.edges[i] = Edge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Position: i,
			Attrs:    e.Attrs,
		}
	}

	return t, nil
}

// Nodes returns the node sequence sorted by integer-parsed ID. Callers
// must not modify the returned slice.
func (t *Topology) Nodes() []Node {
	return t.nodes
}

// Edges returns the edge sequence in document order. Callers must not
// modify the returned slice.
func (t *Topology) Edges() []Edge {
	return t.edges
}

// Index returns a node's position in the ordered node sequence.
func (t *Topology) Index(nodeID string) (int, error) {
	i, ok := t.index[nodeID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}
	return i, nil
}

// Node returns the node at the given ordered index.
func (t *Topology) Node(index int) Node {
	return t.nodes[index]
}

// NodeCount returns the number of nodes in the topology.
func (t *Topology) NodeCount() int {
	return len(t.nodes)
}
