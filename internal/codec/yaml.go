package codec

import (
	"fmt"
	"io"

	"topogen/internal/derive"
	"topogen/internal/topology"

	"gopkg.in/yaml.v3"
)

// ModelGenerator dumps the canonical model as YAML: every node with its
// derived index, identity, and port, and every edge with its resolved
// defaults and synthesized endpoints. It exposes exactly the values the
// other generators consume, which makes disagreements easy to spot.
type ModelGenerator struct{}

// NewModelGenerator creates a new model-dump generator.
func NewModelGenerator() *ModelGenerator {
	return &ModelGenerator{}
}

// Format returns the generator format identifier.
func (g *ModelGenerator) Format() string {
	return "model"
}

// yamlModel represents the YAML structure of the model dump.
type yamlModel struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

type yamlNode struct {
	ID    string `yaml:"id"`
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
	ZID   string `yaml:"zid"`
	Port  int    `yaml:"port"`
}

type yamlEdge struct {
	ID       string       `yaml:"id"`
	Source   string       `yaml:"source"`
	Target   string       `yaml:"target"`
	Position int          `yaml:"position"`
	Datarate string       `yaml:"datarate"`
	Delay    string       `yaml:"delay"`
	Network  string       `yaml:"network"`
	A        yamlEndpoint `yaml:"a"`
	B        yamlEndpoint `yaml:"b"`
}

type yamlEndpoint struct {
	Device  string `yaml:"device"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// Generate writes the model dump.
func (g *ModelGenerator) Generate(t *topology.Topology, w io.Writer) error {
	ym := yamlModel{
		Nodes: make([]yamlNode, 0, t.NodeCount()),
		Edges: make([]yamlEdge, 0, len(t.Edges())),
	}

	for _, n := range t.Nodes() {
		ym.Nodes = append(ym.Nodes, yamlNode{
			ID:    n.ID,
			Index: n.Index,
			Name:  n.Name(),
			ZID:   derive.NodeZID(n.ID),
			Port:  derive.Port(n.Index),
		})
	}

	for _, e := range t.Edges() {
		srcIdx, err := t.Index(e.Source)
		if err != nil {
			return fmt.Errorf("edge %q: %w", e.ID, err)
		}
		dstIdx, err := t.Index(e.Target)
		if err != nil {
			return fmt.Errorf("edge %q: %w", e.ID, err)
		}

		// Reject malformed delays here too: the dump must only show
		// values the simulation generator would accept.
		if _, err := derive.ParseDelay(e.Delay()); err != nil {
			return fmt.Errorf("edge %q: %w", e.ID, err)
		}

		srcEp := derive.NodeEndpoint(e.Network(), srcIdx)
		dstEp := derive.NodeEndpoint(e.Network(), dstIdx)

		ym.Edges = append(ym.Edges, yamlEdge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Position: e.Position,
			Datarate: e.Datarate(),
			Delay:    e.Delay(),
			Network:  e.Network(),
			A: yamlEndpoint{
				Device:  derive.TapDevice(e, derive.RoleSource, srcIdx),
				Address: srcEp.Address,
				Port:    srcEp.Port,
			},
			B: yamlEndpoint{
				Device:  derive.TapDevice(e, derive.RoleTarget, dstIdx),
				Address: dstEp.Address,
				Port:    dstEp.Port,
			},
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&ym); err != nil {
		return fmt.Errorf("failed to encode model dump: %w", err)
	}

	return nil
}
