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

import (
	"strings"
)

// NodeString returns a source-like string representation of a node.
func NodeString(n Node) string {
	var sb strings.Builder
	nodeString(&sb, false, n)
	return sb.String()
}

func nodeString(sb *strings.Builder, simple bool, n Node) {
	switch n := n.(type) {
	case nil:

	case *Module:
		for i, u := range n.Imports {
			if i > 0 {
				sb.WriteByte('\n')
			}
			nodeString(sb, false, u)
			sb.WriteByte(';')
		}
		for i, stmt := range n.Body {
			if i > 0 || len(n.Imports) > 0 {
				sb.WriteByte('\n')
			}
			nodeString(sb, false, stmt)
			sb.WriteByte(';')
		}

	case *Using:
		sb.WriteString("using ")
		sb.WriteString(n.Path)
		if len(n.Extractions) > 0 {
			sb.WriteString(" { ")
			sb.WriteString(strings.Join(n.Extractions, ", "))
			sb.WriteString(" }")
		}
		if n.Alias != "" {
			sb.WriteString(" as ")
			sb.WriteString(n.Alias)
		}

	case *FunctionDeclaration:
		if simple && n.Name == "" {
			sb.WriteByte('(')
		}
		sb.WriteString(n.Name)
		paramsString(sb, n.Params)
		if n.ReturnHint != nil {
			sb.WriteString(": ")
			sb.WriteString(n.ReturnHint.String())
		}
		sb.WriteByte(' ')
		blockString(sb, n.Body)
		if simple && n.Name == "" {
			sb.WriteByte(')')
		}

	case *Parameter:
		sb.WriteString(n.Name)
		if n.Hint != nil {
			sb.WriteString(": ")
			sb.WriteString(n.Hint.String())
		}

	case *ValueDeclaration:
		sb.WriteString("let ")
		sb.WriteString(n.Name)
		if n.Hint != nil {
			sb.WriteString(": ")
			sb.WriteString(n.Hint.String())
		}
		if n.Value != nil {
			sb.WriteString(" = ")
			nodeString(sb, false, n.Value)
		}

	case *Assignment:
		nodeString(sb, false, n.Target)
		sb.WriteString(" = ")
		nodeString(sb, false, n.Value)

	case *Return:
		sb.WriteString("return")
		if n.Value != nil {
			sb.WriteByte(' ')
			nodeString(sb, false, n.Value)
		}

	case *BinaryExpression:
		if simple {
			sb.WriteByte('(')
		}
		nodeString(sb, true, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Op)
		sb.WriteByte(' ')
		nodeString(sb, true, n.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *UnaryExpression:
		sb.WriteString(n.Op)
		nodeString(sb, true, n.Operand)

	case *MemberAccess:
		nodeString(sb, true, n.Object)
		sb.WriteString(n.Op)
		sb.WriteString(n.Name)

	case *FCall:
		nodeString(sb, true, n.Callee)
		sb.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			nodeString(sb, false, arg)
		}
		sb.WriteByte(')')

	case *IndexExpression:
		nodeString(sb, true, n.Object)
		sb.WriteByte('[')
		nodeString(sb, false, n.Index)
		sb.WriteByte(']')

	case *Literal:
		switch n.Lit {
		case StringLit:
			sb.WriteByte('"')
			sb.WriteString(n.Value)
			sb.WriteByte('"')
		case CharLit:
			sb.WriteByte('\'')
			sb.WriteString(n.Value)
			sb.WriteByte('\'')
		default:
			sb.WriteString(n.Value)
		}

	case *Interpolation:
		sb.WriteByte('"')
		for _, el := range n.Elements {
			if lit, ok := el.(*Literal); ok && lit.Lit == StringLit {
				sb.WriteString(lit.Value)
				continue
			}
			sb.WriteString("${")
			nodeString(sb, false, el)
			sb.WriteByte('}')
		}
		sb.WriteByte('"')

	case *ArrayLiteral:
		sb.WriteByte('[')
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			nodeString(sb, false, el)
		}
		sb.WriteByte(']')

	case *Identifier:
		sb.WriteString(n.Name)

	case *InterfaceDeclaration:
		sb.WriteString("interface ")
		sb.WriteString(n.Name)
		if len(n.Params) > 0 {
			sb.WriteByte('<')
			sb.WriteString(strings.Join(n.Params, ", "))
			sb.WriteByte('>')
		}
		if len(n.Properties) == 0 {
			sb.WriteString(" {}")
			return
		}
		sb.WriteString(" { ")
		for _, p := range n.Properties {
			nodeString(sb, false, p)
			sb.WriteString("; ")
		}
		sb.WriteByte('}')

	case *PropertyDeclaration:
		if n.Static {
			sb.WriteString("static ")
		}
		sb.WriteString(n.Name)
		if n.IsMethod() {
			paramsString(sb, n.Params)
		}
		if n.Hint != nil {
			sb.WriteString(": ")
			sb.WriteString(n.Hint.String())
		}

	case *NamespaceDeclaration:
		sb.WriteString("namespace ")
		sb.WriteString(n.Name)
		sb.WriteByte(' ')
		blockString(sb, n.Body)

	case *Empty:

	case *Sequence:
		if simple {
			sb.WriteByte('(')
		}
		nodeString(sb, false, n.First)
		sb.WriteString(", ")
		nodeString(sb, false, n.Second)
		if simple {
			sb.WriteByte(')')
		}
	}
}

func paramsString(sb *strings.Builder, params []*Parameter) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		nodeString(sb, false, p)
	}
	sb.WriteByte(')')
}

func blockString(sb *strings.Builder, body []Node) {
	if len(body) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	for _, stmt := range body {
		nodeString(sb, false, stmt)
		sb.WriteString("; ")
	}
	sb.WriteByte('}')
}
