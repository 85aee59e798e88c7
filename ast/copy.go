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

// Copy returns a deep copy of a syntax tree. Type slots and scopes are not copied.
func Copy(n Node) Node {
	switch n := n.(type) {
	case nil:
		return nil

	case *Module:
		imports := make([]*Using, len(n.Imports))
		for i, u := range n.Imports {
			imports[i] = Copy(u).(*Using)
		}
		return &Module{Meta: meta(n), Path: n.Path, Imports: imports, Body: copyList(n.Body)}

	case *Using:
		return &Using{Meta: meta(n), Path: n.Path, Extractions: copyStrings(n.Extractions), Alias: n.Alias}

	case *FunctionDeclaration:
		return &FunctionDeclaration{Meta: meta(n), Name: n.Name, Params: copyParams(n.Params), ReturnHint: n.ReturnHint, Body: copyList(n.Body)}

	case *Parameter:
		return &Parameter{Meta: meta(n), Name: n.Name, Hint: n.Hint}

	case *ValueDeclaration:
		return &ValueDeclaration{Meta: meta(n), Name: n.Name, Hint: n.Hint, Value: Copy(n.Value)}

	case *Assignment:
		return &Assignment{Meta: meta(n), Target: Copy(n.Target), Value: Copy(n.Value)}

	case *Return:
		return &Return{Meta: meta(n), Value: Copy(n.Value)}

	case *BinaryExpression:
		return &BinaryExpression{Meta: meta(n), Op: n.Op, Left: Copy(n.Left), Right: Copy(n.Right)}

	case *UnaryExpression:
		return &UnaryExpression{Meta: meta(n), Op: n.Op, Operand: Copy(n.Operand)}

	case *MemberAccess:
		return &MemberAccess{Meta: meta(n), Op: n.Op, Object: Copy(n.Object), Name: n.Name}

	case *FCall:
		return &FCall{Meta: meta(n), Callee: Copy(n.Callee), Args: copyList(n.Args)}

	case *IndexExpression:
		return &IndexExpression{Meta: meta(n), Object: Copy(n.Object), Index: Copy(n.Index)}

	case *Literal:
		return &Literal{Meta: meta(n), Lit: n.Lit, Value: n.Value}

	case *Interpolation:
		return &Interpolation{Meta: meta(n), Elements: copyList(n.Elements)}

	case *ArrayLiteral:
		return &ArrayLiteral{Meta: meta(n), Elements: copyList(n.Elements)}

	case *Identifier:
		return &Identifier{Meta: meta(n), Name: n.Name}

	case *InterfaceDeclaration:
		props := make([]*PropertyDeclaration, len(n.Properties))
		for i, p := range n.Properties {
			props[i] = Copy(p).(*PropertyDeclaration)
		}
		return &InterfaceDeclaration{Meta: meta(n), Name: n.Name, Params: copyStrings(n.Params), Properties: props}

	case *PropertyDeclaration:
		return &PropertyDeclaration{Meta: meta(n), Name: n.Name, Params: copyParams(n.Params), Hint: n.Hint, Static: n.Static}

	case *NamespaceDeclaration:
		return &NamespaceDeclaration{Meta: meta(n), Name: n.Name, Body: copyList(n.Body)}

	case *Empty:
		return &Empty{Meta: meta(n)}

	case *Sequence:
		return &Sequence{Meta: meta(n), First: Copy(n.First), Second: Copy(n.Second)}

	default:
		panic("unknown node kind: " + n.Kind().String())
	}
}

func meta(n Node) Meta { return Meta{Loc: n.Location()} }

func copyList(ns []Node) []Node {
	if ns == nil {
		return nil
	}
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = Copy(n)
	}
	return out
}

func copyParams(ps []*Parameter) []*Parameter {
	if ps == nil {
		return nil
	}
	out := make([]*Parameter, len(ps))
	for i, p := range ps {
		out[i] = Copy(p).(*Parameter)
	}
	return out
}

func copyStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
