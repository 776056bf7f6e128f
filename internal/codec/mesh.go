package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"topogen/internal/derive"
	"topogen/internal/topology"
)

// MeshOptions carries the deployment settings the mesh config embeds
// alongside the derived topology data.
type MeshOptions struct {
	Experiment string
	ImageTag   string
	CleanFirst bool
	VolumePath string
}

// MeshGenerator emits the peer-mesh configuration document (JSON5):
// one router entry per node with its identity hash and listen
// endpoints, plus the link list.
type MeshGenerator struct {
	opts MeshOptions
}

// NewMeshGenerator creates a new mesh-config generator.
func NewMeshGenerator(opts MeshOptions) *MeshGenerator {
	return &MeshGenerator{opts: opts}
}

// Format returns the generator format identifier.
func (g *MeshGenerator) Format() string {
	return "mesh"
}

// incidence records the links touching each node, in document order.
// A link's index within this list is its a_idx/b_idx in the config.
func incidence(t *topology.Topology) map[string][]int {
	inc := make(map[string][]int, t.NodeCount())
	for _, e := range t.Edges() {
		inc[e.Source] = append(inc[e.Source], e.Position)
		if e.Target != e.Source {
			inc[e.Target] = append(inc[e.Target], e.Position)
		}
	}
	return inc
}

// linkIndex returns the position of edge pos within a node's incident
// link list.
func linkIndex(incident []int, pos int) int {
	for i, p := range incident {
		if p == pos {
			return i
		}
	}
	return 0
}

// Generate writes the mesh configuration. Listen endpoints are derived
// per incident edge from the node's ordered index, so they match the
// addresses the simulation generator assigns to the same node.
func (g *MeshGenerator) Generate(t *topology.Topology, w io.Writer) error {
	var buf bytes.Buffer

	inc := incidence(t)
	edges := t.Edges()

	fmt.Fprintf(&buf, `{
    experiment: "%s",

    docker_image: {
        tag: "%s",
        clean_first: %t
    },

    volume: "%s",

    nodes: {`, g.opts.Experiment, g.opts.ImageTag, g.opts.CleanFirst, g.opts.VolumePath)

	for i, n := range t.Nodes() {
		endpoints := make([]string, 0, len(inc[n.ID]))
		for _, pos := range inc[n.ID] {
			ep := derive.NodeEndpoint(edges[pos].Network(), n.Index)
			endpoints = append(endpoints, fmt.Sprintf("%q", "tcp/"+ep.String()))
		}

		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, `
        "%s": {
            zid: {set: true, value: "%s"},
            listen_endpoints: [
                %s
            ],
            role: "router"
        }`, n.ID, derive.NodeZID(n.ID), strings.Join(endpoints, ",\n                "))
	}

	buf.WriteString(`
    },

    links: [`)

	for i, e := range edges {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, `
        { a: "%s", a_idx: %d, b: "%s", b_idx: %d }`,
			e.Source, linkIndex(inc[e.Source], e.Position),
			e.Target, linkIndex(inc[e.Target], e.Position))
	}

	buf.WriteString(`
    ]
}
`)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write mesh config: %w", err)
	}
	return nil
}
