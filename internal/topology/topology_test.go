package topology

import (
	"errors"
	"testing"

	"topogen/internal/graphml"
)

// doc builds a document from node IDs and (source, target) pairs.
func doc(nodeIDs []string, edges [][2]string) *graphml.Document {
	d := &graphml.Document{Nodes: make(map[string]graphml.Node)}
	for _, id := range nodeIDs {
		d.Nodes[id] = graphml.Node{ID: id, Attrs: map[string]string{"id": id}}
	}
	for _, e := range edges {
		d.Edges = append(d.Edges, graphml.Edge{
			ID:     "e" + e[0] + e[1],
			Source: e[0],
			Target: e[1],
			Attrs:  map[string]string{},
		})
	}
	return d
}

func TestNewOrdersNodesNumerically(t *testing.T) {
	// "10" must sort after "2": ordering is by integer value, not
	// lexicographic, and must not depend on document order.
	d := doc([]string{"10", "0", "2"}, nil)

	topo, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := []string{"0", "2", "10"}
	nodes := topo.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, id := range want {
		if nodes[i].ID != id {
			t.Errorf("nodes[%d].ID = %q, want %q", i, nodes[i].ID, id)
		}
		if nodes[i].Index != i {
			t.Errorf("nodes[%d].Index = %d, want %d", i, nodes[i].Index, i)
		}
	}
}

func TestIndexBijection(t *testing.T) {
	d := doc([]string{"5", "3", "8", "1"}, nil)

	topo, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	seen := make(map[int]bool)
	for _, n := range topo.Nodes() {
		idx, err := topo.Index(n.ID)
		if err != nil {
			t.Fatalf("Index(%q) error: %v", n.ID, err)
		}
		if idx != n.Index {
			t.Errorf("Index(%q) = %d, want %d", n.ID, idx, n.Index)
		}
		if idx < 0 || idx >= topo.NodeCount() {
			t.Errorf("Index(%q) = %d, out of range [0,%d)", n.ID, idx, topo.NodeCount())
		}
		if seen[idx] {
			t.Errorf("index %d assigned twice", idx)
		}
		seen[idx] = true
	}
}

func TestNodesDeterministic(t *testing.T) {
	d := doc([]string{"7", "2", "4"}, [][2]string{{"2", "4"}, {"4", "7"}})

	first, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	second, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for i := range first.Nodes() {
		if first.Nodes()[i].ID != second.Nodes()[i].ID {
			t.Fatalf("node order differs between builds at %d", i)
		}
	}
}

func TestNewInvalidNodeID(t *testing.T) {
	d := doc([]string{"0", "router_b"}, nil)

	_, err := New(d)
	if !errors.Is(err, ErrInvalidNodeID) {
		t.Fatalf("error = %v, want ErrInvalidNodeID", err)
	}
}

func TestNewDanglingEdge(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
	}{
		{"missing source", [][2]string{{"9", "1"}}},
		{"missing target", [][2]string{{"0", "9"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := doc([]string{"0", "1"}, tt.edges)
			_, err := New(d)
			if !errors.Is(err, ErrDanglingEdge) {
				t.Fatalf("error = %v, want ErrDanglingEdge", err)
			}
		})
	}
}

func TestIndexUnknownNode(t *testing.T) {
	d := doc([]string{"0"}, nil)
	topo, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := topo.Index("42"); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("error = %v, want ErrUnknownNode", err)
	}
}

func TestEdgesKeepDocumentOrder(t *testing.T) {
	d := doc([]string{"0", "1", "2"}, [][2]string{{"1", "2"}, {"0", "1"}})

	topo, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	edges := topo.Edges()
	if edges[0].Source != "1" || edges[1].Source != "0" {
		t.Errorf("edges reordered: %+v", edges)
	}
	for i, e := range edges {
		if e.Position != i {
			t.Errorf("edges[%d].Position = %d, want %d", i, e.Position, i)
		}
	}
}

func TestParallelEdgesAllowed(t *testing.T) {
	d := doc([]string{"0", "1"}, [][2]string{{"0", "1"}, {"0", "1"}})

	topo, err := New(d)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(topo.Edges()) != 2 {
		t.Fatalf("got %d edges, want 2", len(topo.Edges()))
	}
}
