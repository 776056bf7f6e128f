// Package graphml parses GraphML topology documents into raw node and
// edge attribute maps.
//
// GraphML names attributes indirectly: <key> elements declare a key ID,
// the element kind it applies to, and the attribute name; <data> elements
// inside nodes and edges reference the key ID. The parser resolves that
// indirection in a first pass and stores every attribute value verbatim
// as a string. Callers convert types as needed.
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Key describes one entry of the GraphML key schema.
type Key struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

// Node holds a node's raw attributes keyed by resolved attribute name.
// Attrs always contains an "id" entry with the raw node ID.
type Node struct {
	ID    string
	Attrs map[string]string
}

// Edge holds an edge's endpoints and raw attributes. Edges keep the
// order they appear in the document.
type Edge struct {
	ID     string
	Source string
	Target string
	Attrs  map[string]string
}

// Document is the parsed GraphML document: nodes keyed by ID plus edges
// in declaration order.
type Document struct {
	Nodes map[string]Node
	Edges []Edge
}

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed graphml document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// xmlDocument mirrors the GraphML file structure for decoding.
type xmlDocument struct {
	XMLName xml.Name   `xml:"graphml"`
	Keys    []Key      `xml:"key"`
	Graphs  []xmlGraph `xml:"graph"`
}

type xmlGraph struct {
	Nodes []xmlNode `xml:"node"`
	Edges []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Parse reads a GraphML document and resolves the key schema into
// per-node and per-edge attribute maps.
//
// A <data> element referencing an undeclared key ID is dropped rather
// than rejected; exporters in the wild emit stray keys and the consumers
// of this model only look up the attributes they know about.
func Parse(r io.Reader) (*Document, error) {
	var xdoc xmlDocument
	if err := xml.NewDecoder(r).Decode(&xdoc); err != nil {
		return nil, &ParseError{Err: err}
	}

	// First pass: key schema (key ID -> attribute name).
	schema := make(map[string]Key, len(xdoc.Keys))
	for _, k := range xdoc.Keys {
		schema[k.ID] = k
	}

	doc := &Document{
		Nodes: make(map[string]Node),
	}

	for _, g := range xdoc.Graphs {
		for _, xn := range g.Nodes {
			node := Node{
				ID:    xn.ID,
				Attrs: map[string]string{"id": xn.ID},
			}
			resolveData(schema, xn.Data, node.Attrs)
			doc.Nodes[xn.ID] = node
		}

		for _, xe := range g.Edges {
			edge := Edge{
				ID:     xe.ID,
				Source: xe.Source,
				Target: xe.Target,
				Attrs:  make(map[string]string),
			}
			resolveData(schema, xe.Data, edge.Attrs)
			doc.Edges = append(doc.Edges, edge)
		}
	}

	return doc, nil
}

// resolveData maps <data> elements to attribute names via the key schema.
func resolveData(schema map[string]Key, data []xmlData, attrs map[string]string) {
	for _, d := range data {
		key, ok := schema[d.Key]
		if !ok {
			continue // undeclared key, attribute dropped
		}
		attrs[key.Name] = d.Value
	}
}
