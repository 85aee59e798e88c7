// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package astyaml decodes the YAML interchange form of untyped syntax trees.
//
// A node is a mapping whose kind key names the node kind (see ast.Kind), with one key per
// attribute of the node:
//
//	kind: FunctionDeclaration
//	name: main
//	params: [argv]
//	body:
//	  - kind: Return
//	    value: 0
//
// Scalars in node position are literal shorthands: integers decode to Int literals, floats to
// Float literals and other scalars to String literals. Type hints are written as in source text,
// e.g. `Array<Async<Int>>`, or as a mapping with name and args keys. Parameters may be written as a
// bare name. Identifier, type and module names are normalized to NFC.
package astyaml

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/zoidberg/ast"
)

// DecodeError is returned for malformed documents. Loc is the position of the offending YAML node.
type DecodeError struct {
	Loc ast.Location
	Msg string
}

func (e *DecodeError) Error() string { return e.Loc.String() + ": " + e.Msg }

// Decode a module document. path is recorded in the locations of decoded nodes.
func Decode(path string, data []byte) (*ast.Module, error) {
	d := &decoder{path: path}
	doc, err := d.document(data)
	if err != nil {
		return nil, err
	}
	n, err := d.node(doc)
	if err != nil {
		return nil, err
	}
	m, ok := n.(*ast.Module)
	if !ok {
		return nil, d.errorf(doc, "expected Module, found %s", n.Kind())
	}
	return m, nil
}

// DecodeNode decodes a document containing a single node of any kind.
func DecodeNode(path string, data []byte) (ast.Node, error) {
	d := &decoder{path: path}
	doc, err := d.document(data)
	if err != nil {
		return nil, err
	}
	return d.node(doc)
}

type decoder struct {
	path string
}

func (d *decoder) document(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Loc: ast.Location{Path: d.path}, Msg: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &DecodeError{Loc: ast.Location{Path: d.path}, Msg: "empty document"}
	}
	return doc.Content[0], nil
}

func (d *decoder) loc(n *yaml.Node) ast.Location {
	return ast.Location{Path: d.path, Line: n.Line, Column: n.Column}
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &DecodeError{Loc: d.loc(n), Msg: fmt.Sprintf(format, args...)}
}

// fields indexes the values of a mapping node by key, rejecting keys not listed in allowed.
type fields struct {
	node   *yaml.Node
	values map[string]*yaml.Node
}

func (d *decoder) fields(n *yaml.Node, allowed ...string) (*fields, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a mapping")
	}
	f := &fields{node: n, values: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		ok := key == "kind"
		for _, a := range allowed {
			ok = ok || a == key
		}
		if !ok {
			return nil, d.errorf(n.Content[i], "unknown key %q", key)
		}
		if _, dup := f.values[key]; dup {
			return nil, d.errorf(n.Content[i], "duplicate key %q", key)
		}
		f.values[key] = n.Content[i+1]
	}
	return f, nil
}

func (d *decoder) str(f *fields, key string, required bool) (string, error) {
	v, ok := f.values[key]
	if !ok {
		if required {
			return "", d.errorf(f.node, "missing %s", key)
		}
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", d.errorf(v, "expected a scalar %s", key)
	}
	return v.Value, nil
}

func (d *decoder) name(f *fields, key string, required bool) (string, error) {
	s, err := d.str(f, key, required)
	return norm.NFC.String(s), err
}

func (d *decoder) names(f *fields, key string) ([]string, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	if v.Kind != yaml.SequenceNode {
		return nil, d.errorf(v, "expected a list of names")
	}
	out := make([]string, 0, len(v.Content))
	for _, c := range v.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, d.errorf(c, "expected a name")
		}
		out = append(out, norm.NFC.String(c.Value))
	}
	return out, nil
}

func (d *decoder) child(f *fields, key string, required bool) (ast.Node, error) {
	v, ok := f.values[key]
	if !ok || (v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
		if required {
			return nil, d.errorf(f.node, "missing %s", key)
		}
		return nil, nil
	}
	return d.node(v)
}

func (d *decoder) list(f *fields, key string) ([]ast.Node, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	if v.Kind != yaml.SequenceNode {
		return nil, d.errorf(v, "expected a list for %s", key)
	}
	out := make([]ast.Node, 0, len(v.Content))
	for _, c := range v.Content {
		n, err := d.node(c)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (d *decoder) node(n *yaml.Node) (ast.Node, error) {
	if n.Kind == yaml.AliasNode {
		return d.node(n.Alias)
	}
	if n.Kind == yaml.ScalarNode {
		return d.literalShorthand(n), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a node")
	}
	var kindName string
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "kind" {
			kindName = n.Content[i+1].Value
		}
	}
	if kindName == "" {
		return nil, d.errorf(n, "missing kind")
	}
	kind, ok := ast.KindByName(kindName)
	if !ok {
		return nil, d.errorf(n, "unknown node kind %q", kindName)
	}
	decode := decoders[kind]
	if decode == nil {
		return nil, d.errorf(n, "unknown node kind %q", kindName)
	}
	node, err := decode(d, n)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (d *decoder) literalShorthand(n *yaml.Node) *ast.Literal {
	lit := &ast.Literal{Lit: ast.StringLit, Value: n.Value}
	switch n.Tag {
	case "!!int":
		lit.Lit = ast.IntLit
	case "!!float":
		lit.Lit = ast.FloatLit
	}
	lit.Loc = d.loc(n)
	return lit
}
