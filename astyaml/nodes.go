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

package astyaml

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/zoidberg/ast"
)

type decodeFunc func(d *decoder, n *yaml.Node) (ast.Node, error)

var decoders [ast.SequenceKind + 1]decodeFunc

func init() {
	decoders = [...]decodeFunc{
		ast.ModuleKind:               decodeModule,
		ast.UsingKind:                func(d *decoder, n *yaml.Node) (ast.Node, error) { return d.using(n) },
		ast.FunctionDeclarationKind:  decodeFunction,
		ast.ParameterKind:            func(d *decoder, n *yaml.Node) (ast.Node, error) { return d.param(n) },
		ast.ValueDeclarationKind:     decodeValue,
		ast.AssignmentKind:           decodeAssignment,
		ast.ReturnKind:               decodeReturn,
		ast.BinaryExpressionKind:     decodeBinary,
		ast.UnaryExpressionKind:      decodeUnary,
		ast.MemberAccessKind:         decodeMember,
		ast.FCallKind:                decodeCall,
		ast.IndexExpressionKind:      decodeIndex,
		ast.LiteralKind:              decodeLiteral,
		ast.InterpolationKind:        decodeInterpolation,
		ast.ArrayLiteralKind:         decodeArray,
		ast.IdentifierKind:           decodeIdentifier,
		ast.InterfaceDeclarationKind: decodeInterface,
		ast.PropertyDeclarationKind:  func(d *decoder, n *yaml.Node) (ast.Node, error) { return d.property(n) },
		ast.NamespaceDeclarationKind: decodeNamespace,
		ast.EmptyKind:                decodeEmpty,
		ast.SequenceKind:             decodeSequence,
	}
}

func decodeModule(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "path", "imports", "body")
	if err != nil {
		return nil, err
	}
	m := &ast.Module{}
	m.Loc = d.loc(n)
	if m.Path, err = d.name(f, "path", false); err != nil {
		return nil, err
	}
	if imports, ok := f.values["imports"]; ok {
		if imports.Kind != yaml.SequenceNode {
			return nil, d.errorf(imports, "expected a list for imports")
		}
		for _, c := range imports.Content {
			u, err := d.using(c)
			if err != nil {
				return nil, err
			}
			m.Imports = append(m.Imports, u)
		}
	}
	m.Body, err = d.list(f, "body")
	return m, err
}

// An import may be written as a bare module path.
func (d *decoder) using(n *yaml.Node) (*ast.Using, error) {
	u := &ast.Using{}
	u.Loc = d.loc(n)
	if n.Kind == yaml.ScalarNode {
		u.Path = norm.NFC.String(n.Value)
		return u, nil
	}
	f, err := d.fields(n, "path", "extract", "as")
	if err != nil {
		return nil, err
	}
	if u.Path, err = d.name(f, "path", true); err != nil {
		return nil, err
	}
	if u.Extractions, err = d.names(f, "extract"); err != nil {
		return nil, err
	}
	u.Alias, err = d.name(f, "as", false)
	return u, err
}

func decodeFunction(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "name", "params", "returns", "body")
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDeclaration{}
	fn.Loc = d.loc(n)
	if fn.Name, err = d.name(f, "name", false); err != nil {
		return nil, err
	}
	if fn.Params, err = d.params(f); err != nil {
		return nil, err
	}
	if fn.ReturnHint, err = d.hint(f, "returns"); err != nil {
		return nil, err
	}
	fn.Body, err = d.list(f, "body")
	return fn, err
}

// params returns nil if the key is absent, and a non-nil list otherwise.
func (d *decoder) params(f *fields) ([]*ast.Parameter, error) {
	v, ok := f.values["params"]
	if !ok {
		return nil, nil
	}
	if v.Kind != yaml.SequenceNode {
		return nil, d.errorf(v, "expected a list for params")
	}
	out := make([]*ast.Parameter, 0, len(v.Content))
	for _, c := range v.Content {
		p, err := d.param(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) param(n *yaml.Node) (*ast.Parameter, error) {
	p := &ast.Parameter{}
	p.Loc = d.loc(n)
	if n.Kind == yaml.ScalarNode {
		p.Name = norm.NFC.String(n.Value)
		return p, nil
	}
	f, err := d.fields(n, "name", "hint")
	if err != nil {
		return nil, err
	}
	if p.Name, err = d.name(f, "name", true); err != nil {
		return nil, err
	}
	p.Hint, err = d.hint(f, "hint")
	return p, err
}

func decodeValue(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "name", "hint", "value")
	if err != nil {
		return nil, err
	}
	v := &ast.ValueDeclaration{}
	v.Loc = d.loc(n)
	if v.Name, err = d.name(f, "name", true); err != nil {
		return nil, err
	}
	if v.Hint, err = d.hint(f, "hint"); err != nil {
		return nil, err
	}
	v.Value, err = d.child(f, "value", false)
	return v, err
}

func decodeAssignment(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "target", "value")
	if err != nil {
		return nil, err
	}
	a := &ast.Assignment{}
	a.Loc = d.loc(n)
	if a.Target, err = d.child(f, "target", true); err != nil {
		return nil, err
	}
	a.Value, err = d.child(f, "value", true)
	return a, err
}

func decodeReturn(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "value")
	if err != nil {
		return nil, err
	}
	r := &ast.Return{}
	r.Loc = d.loc(n)
	r.Value, err = d.child(f, "value", false)
	return r, err
}

func decodeBinary(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "op", "left", "right")
	if err != nil {
		return nil, err
	}
	b := &ast.BinaryExpression{}
	b.Loc = d.loc(n)
	if b.Op, err = d.str(f, "op", true); err != nil {
		return nil, err
	}
	if b.Left, err = d.child(f, "left", true); err != nil {
		return nil, err
	}
	b.Right, err = d.child(f, "right", true)
	return b, err
}

func decodeUnary(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "op", "operand")
	if err != nil {
		return nil, err
	}
	u := &ast.UnaryExpression{}
	u.Loc = d.loc(n)
	if u.Op, err = d.str(f, "op", true); err != nil {
		return nil, err
	}
	u.Operand, err = d.child(f, "operand", true)
	return u, err
}

func decodeMember(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "op", "object", "name")
	if err != nil {
		return nil, err
	}
	m := &ast.MemberAccess{}
	m.Loc = d.loc(n)
	if m.Op, err = d.str(f, "op", false); err != nil {
		return nil, err
	}
	switch m.Op {
	case "":
		m.Op = ast.FieldAccess
	case ast.FieldAccess, ast.StaticAccess, ast.DerefAccess:
	default:
		return nil, d.errorf(f.values["op"], "unknown member access operator %q", m.Op)
	}
	if m.Object, err = d.child(f, "object", true); err != nil {
		return nil, err
	}
	m.Name, err = d.name(f, "name", true)
	return m, err
}

func decodeCall(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "callee", "args")
	if err != nil {
		return nil, err
	}
	c := &ast.FCall{}
	c.Loc = d.loc(n)
	if c.Callee, err = d.child(f, "callee", true); err != nil {
		return nil, err
	}
	c.Args, err = d.list(f, "args")
	return c, err
}

func decodeIndex(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "object", "index")
	if err != nil {
		return nil, err
	}
	x := &ast.IndexExpression{}
	x.Loc = d.loc(n)
	if x.Object, err = d.child(f, "object", true); err != nil {
		return nil, err
	}
	x.Index, err = d.child(f, "index", true)
	return x, err
}

var litKinds = map[string]ast.LitKind{
	"String": ast.StringLit,
	"Int":    ast.IntLit,
	"Float":  ast.FloatLit,
	"Char":   ast.CharLit,
}

func decodeLiteral(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "lit", "value")
	if err != nil {
		return nil, err
	}
	l := &ast.Literal{}
	l.Loc = d.loc(n)
	name, err := d.str(f, "lit", true)
	if err != nil {
		return nil, err
	}
	kind, ok := litKinds[name]
	if !ok {
		return nil, d.errorf(f.values["lit"], "unknown literal kind %q", name)
	}
	l.Lit = kind
	l.Value, err = d.str(f, "value", true)
	return l, err
}

func decodeInterpolation(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "elements")
	if err != nil {
		return nil, err
	}
	i := &ast.Interpolation{}
	i.Loc = d.loc(n)
	i.Elements, err = d.list(f, "elements")
	return i, err
}

func decodeArray(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "elements")
	if err != nil {
		return nil, err
	}
	a := &ast.ArrayLiteral{}
	a.Loc = d.loc(n)
	a.Elements, err = d.list(f, "elements")
	return a, err
}

func decodeIdentifier(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "name")
	if err != nil {
		return nil, err
	}
	id := &ast.Identifier{}
	id.Loc = d.loc(n)
	id.Name, err = d.name(f, "name", true)
	return id, err
}

func decodeInterface(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "name", "params", "properties")
	if err != nil {
		return nil, err
	}
	i := &ast.InterfaceDeclaration{}
	i.Loc = d.loc(n)
	if i.Name, err = d.name(f, "name", true); err != nil {
		return nil, err
	}
	if i.Params, err = d.names(f, "params"); err != nil {
		return nil, err
	}
	props, ok := f.values["properties"]
	if !ok {
		return i, nil
	}
	if props.Kind != yaml.SequenceNode {
		return nil, d.errorf(props, "expected a list for properties")
	}
	for _, c := range props.Content {
		p, err := d.property(c)
		if err != nil {
			return nil, err
		}
		i.Properties = append(i.Properties, p)
	}
	return i, nil
}

// A property with a params key, even an empty one, is a method.
func (d *decoder) property(n *yaml.Node) (*ast.PropertyDeclaration, error) {
	f, err := d.fields(n, "name", "params", "hint", "static")
	if err != nil {
		return nil, err
	}
	p := &ast.PropertyDeclaration{}
	p.Loc = d.loc(n)
	if p.Name, err = d.name(f, "name", true); err != nil {
		return nil, err
	}
	if p.Params, err = d.params(f); err != nil {
		return nil, err
	}
	if p.Hint, err = d.hint(f, "hint"); err != nil {
		return nil, err
	}
	if v, ok := f.values["static"]; ok {
		if err := v.Decode(&p.Static); err != nil {
			return nil, d.errorf(v, "expected a boolean for static")
		}
	}
	return p, nil
}

func decodeNamespace(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "name", "body")
	if err != nil {
		return nil, err
	}
	ns := &ast.NamespaceDeclaration{}
	ns.Loc = d.loc(n)
	if ns.Name, err = d.name(f, "name", true); err != nil {
		return nil, err
	}
	ns.Body, err = d.list(f, "body")
	return ns, err
}

func decodeEmpty(d *decoder, n *yaml.Node) (ast.Node, error) {
	if _, err := d.fields(n); err != nil {
		return nil, err
	}
	e := &ast.Empty{}
	e.Loc = d.loc(n)
	return e, nil
}

func decodeSequence(d *decoder, n *yaml.Node) (ast.Node, error) {
	f, err := d.fields(n, "first", "second")
	if err != nil {
		return nil, err
	}
	s := &ast.Sequence{}
	s.Loc = d.loc(n)
	if s.First, err = d.child(f, "first", true); err != nil {
		return nil, err
	}
	s.Second, err = d.child(f, "second", true)
	return s, err
}

// Type hints:

func (d *decoder) hint(f *fields, key string) (*ast.TypeHint, error) {
	v, ok := f.values[key]
	if !ok || (v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
		return nil, nil
	}
	return d.hintNode(v)
}

func (d *decoder) hintNode(n *yaml.Node) (*ast.TypeHint, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		p := &hintParser{src: n.Value}
		h, err := p.parse()
		if err != nil {
			return nil, d.errorf(n, "invalid type hint %q: %v", n.Value, err)
		}
		setHintLoc(h, d.loc(n))
		return h, nil

	case yaml.MappingNode:
		f, err := d.fields(n, "name", "args")
		if err != nil {
			return nil, err
		}
		h := &ast.TypeHint{Loc: d.loc(n)}
		if h.Name, err = d.name(f, "name", true); err != nil {
			return nil, err
		}
		if args, ok := f.values["args"]; ok {
			if args.Kind != yaml.SequenceNode {
				return nil, d.errorf(args, "expected a list for args")
			}
			for _, c := range args.Content {
				arg, err := d.hintNode(c)
				if err != nil {
					return nil, err
				}
				h.Args = append(h.Args, arg)
			}
		}
		return h, nil
	}
	return nil, d.errorf(n, "expected a type hint")
}

func setHintLoc(h *ast.TypeHint, loc ast.Location) {
	h.Loc = loc
	for _, arg := range h.Args {
		setHintLoc(arg, loc)
	}
}

// hintParser reads `Name` or `Name<Hint, ...>`.
type hintParser struct {
	src string
	pos int
}

type hintSyntaxError string

func (e hintSyntaxError) Error() string { return string(e) }

func (p *hintParser) parse() (*ast.TypeHint, error) {
	h, err := p.hint()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, hintSyntaxError("unexpected " + p.src[p.pos:])
	}
	return h, nil
}

func (p *hintParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *hintParser) hint() (*ast.TypeHint, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>, ", rune(p.src[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return nil, hintSyntaxError("expected a type name")
	}
	h := &ast.TypeHint{Name: norm.NFC.String(p.src[start:p.pos])}
	p.skipSpace()
	if p.pos == len(p.src) || p.src[p.pos] != '<' {
		return h, nil
	}
	p.pos++
	for {
		arg, err := p.hint()
		if err != nil {
			return nil, err
		}
		h.Args = append(h.Args, arg)
		p.skipSpace()
		if p.pos == len(p.src) {
			return nil, hintSyntaxError("unterminated type arguments")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return h, nil
		default:
			return nil, hintSyntaxError("unexpected " + p.src[p.pos:])
		}
	}
}
