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

package ast

// Children returns the child nodes of n, in source order. Absent optional children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *Module:
		for _, u := range n.Imports {
			add(u)
		}
		add(n.Body...)
	case *FunctionDeclaration:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body...)
	case *ValueDeclaration:
		add(n.Value)
	case *Assignment:
		add(n.Target, n.Value)
	case *Return:
		add(n.Value)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *MemberAccess:
		add(n.Object)
	case *FCall:
		add(n.Callee)
		add(n.Args...)
	case *IndexExpression:
		add(n.Object, n.Index)
	case *Interpolation:
		add(n.Elements...)
	case *ArrayLiteral:
		add(n.Elements...)
	case *InterfaceDeclaration:
		for _, p := range n.Properties {
			add(p)
		}
	case *PropertyDeclaration:
		for _, p := range n.Params {
			add(p)
		}
	case *NamespaceDeclaration:
		add(n.Body...)
	case *Sequence:
		add(n.First, n.Second)
	case *Using, *Parameter, *Literal, *Identifier, *Empty, nil:
	default:
		panic("unknown node kind: " + n.Kind().String())
	}
	return out
}

// Walk visits n and its descendants depth-first. pre is called before the children of a node are
// visited; if pre returns false, the children of the node are skipped. post is called after the
// children of a node are visited, and may be nil.
func Walk(n Node, pre func(Node) bool, post func(Node)) {
	if n == nil {
		return
	}
	if pre != nil && !pre(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, pre, post)
	}
	if post != nil {
		post(n)
	}
}
