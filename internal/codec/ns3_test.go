package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"topogen/internal/derive"
)

func TestNS3GeneratorDefaults(t *testing.T) {
	topo := buildTopology(t, threeNodeDoc)

	var buf bytes.Buffer
	if err := NewNS3Generator().Generate(topo, &buf); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	out := buf.String()

	assertContains(t, out, []string{
		"n.Create(3); // 0, 1, 2",
		// First link: defaults, indices 0 and 1
		`// --- LAN 10.0.1.* (0 <-> 1) ---`,
		`csma1.SetChannelAttribute("DataRate", StringValue("100Mbps"));`,
		`csma1.SetChannelAttribute("Delay", TimeValue(MilliSeconds(1)));`,
		"NetDeviceContainer d1 = csma1.Install(NodeContainer(n.Get(0), n.Get(1)));",
		// Second link: synthesized subnet advances with edge position
		`// --- LAN 10.0.2.* (1 <-> 2) ---`,
		"NetDeviceContainer d2 = csma2.Install(NodeContainer(n.Get(1), n.Get(2)));",
		// Tap bridges grouped per node, synthesized names
		`tb.SetAttribute("DeviceName", StringValue("tap_0_0")); tb.Install(n.Get(0), d1.Get(0));`,
		`tb.SetAttribute("DeviceName", StringValue("tap_1_0")); tb.Install(n.Get(1), d1.Get(1));`,
		`tb.SetAttribute("DeviceName", StringValue("tap_1_1")); tb.Install(n.Get(1), d2.Get(0));`,
		`tb.SetAttribute("DeviceName", StringValue("tap_2_1")); tb.Install(n.Get(2), d2.Get(1));`,
		"Simulator::Stop(Seconds(600.0));",
	})

	// Tap installs for node 1 sit under a single per-node comment
	if strings.Count(out, "// 1\n") != 1 {
		t.Errorf("expected exactly one tap group comment for node 1")
	}
}

func TestNS3GeneratorDeclaredAttributes(t *testing.T) {
	topo := buildTopology(t, attributedDoc)

	var buf bytes.Buffer
	if err := NewNS3Generator().Generate(topo, &buf); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertContains(t, buf.String(), []string{
		"n.Create(2); // gateway, sensor",
		`csma1.SetChannelAttribute("DataRate", StringValue("1Gbps"));`,
		`csma1.SetChannelAttribute("Delay", TimeValue(MicroSeconds(250)));`,
		`// --- LAN 192.168.7.* (0 <-> 1) ---`,
		`StringValue("tap_gw")`,
		`StringValue("tap_sn")`,
		"// gateway",
		"// sensor",
	})
}

func TestNS3GeneratorSecondsUnit(t *testing.T) {
	doc := strings.Replace(attributedDoc, ">250us<", ">2s<", 1)
	topo := buildTopology(t, doc)

	var buf bytes.Buffer
	if err := NewNS3Generator().Generate(topo, &buf); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertContains(t, buf.String(), []string{
		`csma1.SetChannelAttribute("Delay", TimeValue(Seconds(2)));`,
	})
}

func TestNS3GeneratorBadDelayProducesNoOutput(t *testing.T) {
	topo := buildTopology(t, badDelayDoc)

	var buf bytes.Buffer
	err := NewNS3Generator().Generate(topo, &buf)
	if !errors.Is(err, derive.ErrInvalidDelay) {
		t.Fatalf("error = %v, want ErrInvalidDelay", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed generation wrote %d bytes, want none", buf.Len())
	}
}
