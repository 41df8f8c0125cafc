// Package fixture reads and writes documents as YAML.
//
// A fixture holds the children of the document root and an optional
// selection:
//
//	selection:
//	  anchor: {key: c1, offset: 0}
//	  focus: {key: c1, offset: 0}
//	document:
//	  - type: table
//	    data: {align: [left, right]}
//	    nodes:
//	      - type: table_row
//	        nodes:
//	          - type: table_cell
//	            nodes:
//	              - {key: c1, text: "hello"}
//
// A node without an explicit kind is a text leaf when it has a text field
// and neither type nor nodes, and a block otherwise. Nodes without a key get
// a fresh one. The format is meant for tests and debugging.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/edittable/internal/document"
	"github.com/dshills/edittable/internal/document/selection"
)

// ErrInvalidFixture indicates a fixture that does not describe a valid
// document.
var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture is a decoded document with its selection.
type Fixture struct {
	Document  *document.Document
	Selection selection.Range
}

type fileYAML struct {
	Selection *rangeYAML `yaml:"selection,omitempty"`
	Document  []nodeYAML `yaml:"document"`
}

type rangeYAML struct {
	Anchor pointYAML `yaml:"anchor"`
	Focus  pointYAML `yaml:"focus"`
}

type pointYAML struct {
	Key    string `yaml:"key"`
	Offset int    `yaml:"offset"`
}

type nodeYAML struct {
	Kind  string         `yaml:"kind,omitempty"`
	Type  string         `yaml:"type,omitempty"`
	Key   string         `yaml:"key,omitempty"`
	Text  *string        `yaml:"text,omitempty"`
	Data  map[string]any `yaml:"data,omitempty"`
	Nodes []nodeYAML     `yaml:"nodes,omitempty"`
}

// Load reads the fixture file at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads a fixture from r.
func Decode(r io.Reader) (*Fixture, error) {
	var file fileYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	children := make([]*document.Node, 0, len(file.Document))
	for i, ny := range file.Document {
		n, err := ny.node()
		if err != nil {
			return nil, fmt.Errorf("%w: document[%d]: %w", ErrInvalidFixture, i, err)
		}
		children = append(children, n)
	}
	doc, err := document.New(document.NewDocument(children...))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	f := &Fixture{Document: doc}
	if file.Selection != nil {
		f.Selection = selection.Range{
			Anchor: file.Selection.Anchor.point(),
			Focus:  file.Selection.Focus.point(),
		}
		for _, p := range []selection.Point{f.Selection.Anchor, f.Selection.Focus} {
			if _, ok := doc.Get(p.Key); !ok {
				return nil, fmt.Errorf("%w: selection key %q not in document", ErrInvalidFixture, p.Key)
			}
		}
	}
	return f, nil
}

func (p pointYAML) point() selection.Point {
	return selection.Point{Key: document.Key(p.Key), Offset: p.Offset}
}

func (ny nodeYAML) node() (*document.Node, error) {
	kind, err := ny.kind()
	if err != nil {
		return nil, err
	}

	var n *document.Node
	if kind == document.KindText {
		if len(ny.Nodes) > 0 {
			return nil, fmt.Errorf("text node %q has children", ny.Key)
		}
		text := ""
		if ny.Text != nil {
			text = *ny.Text
		}
		n = document.NewText(text)
	} else {
		if ny.Text != nil {
			return nil, fmt.Errorf("%s node %q has text", kind, ny.Type)
		}
		children := make([]*document.Node, 0, len(ny.Nodes))
		for i, c := range ny.Nodes {
			child, err := c.node()
			if err != nil {
				return nil, fmt.Errorf("nodes[%d]: %w", i, err)
			}
			children = append(children, child)
		}
		switch kind {
		case document.KindBlock:
			n = document.NewBlock(ny.Type, children...)
		case document.KindInline:
			n = document.NewInline(ny.Type, children...)
		default:
			return nil, fmt.Errorf("nested %s node", kind)
		}
	}

	if ny.Key != "" {
		n = n.WithKey(document.Key(ny.Key))
	}
	if len(ny.Data) > 0 {
		n = n.WithData(document.Data(ny.Data))
	}
	return n, nil
}

func (ny nodeYAML) kind() (document.Kind, error) {
	if ny.Kind != "" {
		return document.ParseKind(ny.Kind)
	}
	if ny.Text != nil && ny.Type == "" && len(ny.Nodes) == 0 {
		return document.KindText, nil
	}
	return document.KindBlock, nil
}

// EncodeOption configures Encode.
type EncodeOption func(*encoder)

type encoder struct {
	omitKeys bool
	keep     map[document.Key]bool
}

// OmitKeys leaves node keys out of the output, except for the nodes the
// selection points into.
func OmitKeys() EncodeOption {
	return func(e *encoder) {
		e.omitKeys = true
	}
}

// Encode writes f to w as YAML.
func Encode(w io.Writer, f *Fixture, opts ...EncodeOption) error {
	e := &encoder{keep: make(map[document.Key]bool)}
	for _, opt := range opts {
		opt(e)
	}

	var file fileYAML
	if f.Selection.IsSet() {
		file.Selection = &rangeYAML{
			Anchor: pointYAML{Key: string(f.Selection.Anchor.Key), Offset: f.Selection.Anchor.Offset},
			Focus:  pointYAML{Key: string(f.Selection.Focus.Key), Offset: f.Selection.Focus.Offset},
		}
		e.keep[f.Selection.Anchor.Key] = true
		e.keep[f.Selection.Focus.Key] = true
	}
	for _, child := range f.Document.Root().Children() {
		file.Document = append(file.Document, e.node(child))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return err
	}
	return enc.Close()
}

func (e *encoder) node(n *document.Node) nodeYAML {
	ny := nodeYAML{Type: n.Type()}
	if !e.omitKeys || e.keep[n.Key()] {
		ny.Key = string(n.Key())
	}
	if len(n.Data()) > 0 {
		ny.Data = n.Data()
	}
	switch n.Kind() {
	case document.KindText:
		text := n.Text()
		ny.Text = &text
	case document.KindInline:
		ny.Kind = document.KindInline.String()
	}
	for _, c := range n.Children() {
		ny.Nodes = append(ny.Nodes, e.node(c))
	}
	return ny
}
