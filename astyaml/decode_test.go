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

package astyaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/zoidberg"
	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/astyaml"
	"github.com/wdamron/zoidberg/types"
)

const program = `
kind: Module
imports:
  - std.io
  - path: std.text
    extract: [upper]
body:
  - kind: InterfaceDeclaration
    name: Box
    params: [T]
    properties:
      - name: value
        hint: T
      - name: get
        params: []
        hint: T
      - name: empty
        static: true
        hint: Box<T>
  - kind: FunctionDeclaration
    name: first
    params:
      - name: arr
        hint: Array<Int>
    body:
      - kind: IndexExpression
        object: {kind: Identifier, name: arr}
        index: 0
  - kind: FunctionDeclaration
    name: main
    params: [argv]
    body:
      - kind: Return
        value:
          kind: UnaryExpression
          op: "&"
          operand: 0
`

func TestDecodeModule(t *testing.T) {
	m, err := astyaml.Decode("main.zb.yaml", []byte(program))
	require.NoError(t, err)
	require.Len(t, m.Imports, 2)
	assert.Equal(t, "io", m.Imports[0].BindingName())
	assert.Equal(t, []string{"upper"}, m.Imports[1].Extractions)
	require.Len(t, m.Body, 3)

	box := m.Body[0].(*ast.InterfaceDeclaration)
	assert.Equal(t, []string{"T"}, box.Params)
	require.Len(t, box.Properties, 3)
	assert.False(t, box.Properties[0].IsMethod())
	assert.True(t, box.Properties[1].IsMethod())
	assert.True(t, box.Properties[2].Static)
	assert.Equal(t, "Box<T>", box.Properties[2].Hint.String())

	first := m.Body[1].(*ast.FunctionDeclaration)
	assert.Equal(t, "Array<Int>", first.Params[0].Hint.String())
	idx := first.Body[0].(*ast.IndexExpression)
	assert.Equal(t, ast.IntLit, idx.Index.(*ast.Literal).Lit)
	assert.Equal(t, ast.Location{Path: "main.zb.yaml", Line: 26, Column: 9}, idx.Location())
	assert.Equal(t, "main.zb.yaml:26:9", idx.Location().String())
}

func TestDecodedModuleInference(t *testing.T) {
	m, err := astyaml.Decode("main.zb.yaml", []byte(program))
	require.NoError(t, err)
	m.Imports = nil

	scope := zoidberg.NewRootScope()
	_, err = zoidberg.NewContext().Infer(m, scope)
	require.NoError(t, err)
	first, err := scope.ResolveID("first")
	require.NoError(t, err)
	assert.Equal(t, "(Array<Int>) -> Int", types.TypeString(first))
	main, err := scope.ResolveID("main")
	require.NoError(t, err)
	assert.Equal(t, "(Array<String>) -> Async<Int>", types.TypeString(main))
}

func TestDecodeHints(t *testing.T) {
	n, err := astyaml.DecodeNode("", []byte(`
kind: ValueDeclaration
name: f
hint: "Function< Array<Int> , Async<String>>"
`))
	require.NoError(t, err)
	assert.Equal(t, "Function<Array<Int>, Async<String>>", n.(*ast.ValueDeclaration).Hint.String())

	n, err = astyaml.DecodeNode("", []byte(`
kind: ValueDeclaration
name: g
hint: {name: Array, args: [{name: Int}]}
`))
	require.NoError(t, err)
	assert.Equal(t, "Array<Int>", n.(*ast.ValueDeclaration).Hint.String())

	for _, bad := range []string{"Array<Int", "Array<>", "Array<Int>>", "<Int>"} {
		_, err = astyaml.DecodeNode("", []byte("kind: ValueDeclaration\nname: h\nhint: \""+bad+"\"\n"))
		assert.Error(t, err, bad)
	}
}

func TestDecodeShorthands(t *testing.T) {
	n, err := astyaml.DecodeNode("", []byte(`
kind: ArrayLiteral
elements: [1, 2.5, "s", {kind: Identifier, name: x}]
`))
	require.NoError(t, err)
	elems := n.(*ast.ArrayLiteral).Elements
	require.Len(t, elems, 4)
	assert.Equal(t, ast.IntLit, elems[0].(*ast.Literal).Lit)
	assert.Equal(t, ast.FloatLit, elems[1].(*ast.Literal).Lit)
	assert.Equal(t, ast.StringLit, elems[2].(*ast.Literal).Lit)
	assert.Equal(t, "x", elems[3].(*ast.Identifier).Name)

	n, err = astyaml.DecodeNode("", []byte(`{kind: MemberAccess, object: {kind: Identifier, name: p}, name: length}`))
	require.NoError(t, err)
	assert.Equal(t, ast.FieldAccess, n.(*ast.MemberAccess).Op)

	n, err = astyaml.DecodeNode("", []byte(`{kind: Literal, lit: Char, value: c}`))
	require.NoError(t, err)
	assert.Equal(t, ast.CharLit, n.(*ast.Literal).Lit)
}

func TestDecodeNormalizesNames(t *testing.T) {
	// "é" as e followed by a combining acute accent:
	n, err := astyaml.DecodeNode("", []byte("{kind: Identifier, name: \"caf\\u0065\\u0301\"}"))
	require.NoError(t, err)
	assert.Equal(t, "café", n.(*ast.Identifier).Name)
}

func TestDecodeErrors(t *testing.T) {
	for src, msg := range map[string]string{
		"kind: Bogus":                          `x.yaml:1:1: unknown node kind "Bogus"`,
		"name: f":                              "x.yaml:1:1: missing kind",
		"kind: Identifier\nname: x\nextra: 1":  `x.yaml:3:1: unknown key "extra"`,
		"kind: Return\nvalue: {kind: Assignment, target: x}": "x.yaml:2:8: missing value",
		"kind: Identifier":                     "x.yaml:1:1: missing name",
		"kind: MemberAccess\nop: '?'\nobject: 1\nname: x": `x.yaml:2:5: unknown member access operator "?"`,
	} {
		_, err := astyaml.DecodeNode("x.yaml", []byte(src))
		var decodeErr *astyaml.DecodeError
		require.True(t, errors.As(err, &decodeErr), "expected decode error for %q, found %v", src, err)
		assert.Equal(t, msg, err.Error())
	}

	_, err := astyaml.Decode("x.yaml", []byte("{kind: Empty}"))
	assert.EqualError(t, err, "x.yaml:1:1: expected Module, found Empty")
	_, err = astyaml.Decode("x.yaml", []byte(""))
	assert.EqualError(t, err, "x.yaml: empty document")
}
