package codec

import (
	"strings"
	"testing"

	"topogen/internal/graphml"
	"topogen/internal/topology"
)

// threeNodeDoc is the canonical consistency fixture: three nodes, two
// links, no optional attributes, so every value the generators emit is
// synthesized.
const threeNodeDoc = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <graph id="G" edgedefault="undirected">
    <node id="0"/>
    <node id="1"/>
    <node id="2"/>
    <edge id="e0" source="0" target="1"/>
    <edge id="e1" source="1" target="2"/>
  </graph>
</graphml>`

// attributedDoc exercises declared attributes and names.
const attributedDoc = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="d0" for="node" attr.name="name" attr.type="string"/>
  <key id="d1" for="edge" attr.name="datarate" attr.type="string"/>
  <key id="d2" for="edge" attr.name="delay" attr.type="string"/>
  <key id="d3" for="edge" attr.name="network" attr.type="string"/>
  <key id="d4" for="edge" attr.name="tap_device_a" attr.type="string"/>
  <key id="d5" for="edge" attr.name="tap_device_b" attr.type="string"/>
  <graph id="G" edgedefault="undirected">
    <node id="0"><data key="d0">gateway</data></node>
    <node id="1"><data key="d0">sensor</data></node>
    <edge id="e0" source="0" target="1">
      <data key="d1">1Gbps</data>
      <data key="d2">250us</data>
      <data key="d3">192.168.7.*</data>
      <data key="d4">tap_gw</data>
      <data key="d5">tap_sn</data>
    </edge>
  </graph>
</graphml>`

// badDelayDoc carries a delay that must abort generation.
const badDelayDoc = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns">
  <key id="d2" for="edge" attr.name="delay" attr.type="string"/>
  <graph id="G" edgedefault="undirected">
    <node id="0"/>
    <node id="1"/>
    <edge id="e0" source="0" target="1">
      <data key="d2">abcms</data>
    </edge>
  </graph>
</graphml>`

// buildTopology parses a GraphML literal into a model.
func buildTopology(t *testing.T, doc string) *topology.Topology {
	t.Helper()
	parsed, err := graphml.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	topo, err := topology.New(parsed)
	if err != nil {
		t.Fatalf("failed to build topology: %v", err)
	}
	return topo
}

// assertContains fails unless every want string appears in output.
func assertContains(t *testing.T, output string, wants []string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, output)
		}
	}
}
