package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestDOTGenerator(t *testing.T) {
	topo := buildTopology(t, attributedDoc)

	var buf bytes.Buffer
	gen := NewDOTGenerator(DOTOptions{Layout: "neato", DPI: 150})
	if err := gen.Generate(topo, &buf); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	out := buf.String()

	assertContains(t, out, []string{
		"graph network_topology {",
		"layout=neato;",
		"dpi=150;",
		`0 [label="gateway"];`,
		`1 [label="sensor"];`,
		`0 -- 1 [label="Rate: 1Gbps\nDelay: 250us\nNet: 192.168.7.*"];`,
	})
}

func TestDOTGeneratorBareEdges(t *testing.T) {
	// Edges without declared attributes render unlabeled: the picture
	// shows what the author wrote, not the synthesized defaults.
	topo := buildTopology(t, threeNodeDoc)

	var buf bytes.Buffer
	gen := NewDOTGenerator(DOTOptions{Layout: "dot", DPI: 96})
	if err := gen.Generate(topo, &buf); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	out := buf.String()

	assertContains(t, out, []string{
		"layout=dot;",
		"dpi=96;",
		`0 [label="0"];`,
		"0 -- 1;",
		"1 -- 2;",
	})

	if strings.Contains(out, "100Mbps") || strings.Contains(out, "10.0.1.*") {
		t.Error("defaults must not leak into edge labels")
	}
}
