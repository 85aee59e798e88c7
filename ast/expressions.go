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

var (
	_ Node = (*BinaryExpression)(nil)
	_ Node = (*UnaryExpression)(nil)
	_ Node = (*MemberAccess)(nil)
	_ Node = (*FCall)(nil)
	_ Node = (*IndexExpression)(nil)
	_ Node = (*Literal)(nil)
	_ Node = (*Interpolation)(nil)
	_ Node = (*ArrayLiteral)(nil)
	_ Node = (*Identifier)(nil)
	_ Node = (*Empty)(nil)
	_ Node = (*Sequence)(nil)
)

// LitKind classifies literal values.
type LitKind int

const (
	StringLit LitKind = iota
	IntLit
	FloatLit
	CharLit
)

var litTypeNames = [...]string{"String", "Int", "Float", "Char"}

// TypeName returns the name of the builtin type of literals of the kind.
func (k LitKind) TypeName() string { return litTypeNames[k] }

// Literal value
type Literal struct {
	Meta
	Lit LitKind
	// Value is the source text of the literal, without quotes.
	Value string
}

func (e *Literal) Kind() Kind { return LiteralKind }

// String interpolation: `"a${b}c"`. Elements are string fragments and embedded expressions.
type Interpolation struct {
	Meta
	Elements []Node
}

func (e *Interpolation) Kind() Kind { return InterpolationKind }

// Array literal: `[a, b]`
type ArrayLiteral struct {
	Meta
	Elements []Node
}

func (e *ArrayLiteral) Kind() Kind { return ArrayLiteralKind }

// Identifier reference
type Identifier struct {
	Meta
	Name string
}

func (e *Identifier) Kind() Kind { return IdentifierKind }

// Binary operator application: `a + b`. Operators are dispatched through the `operator<Op>`
// field of the left operand's type.
type BinaryExpression struct {
	Meta
	Op          string
	Left, Right Node
}

func (e *BinaryExpression) Kind() Kind { return BinaryExpressionKind }

// Unary operator application: `*a`, `&a`, `-a`. Operators other than `&` are dispatched through
// the `unary<Op>` field of the operand's type.
type UnaryExpression struct {
	Meta
	Op      string
	Operand Node
}

func (e *UnaryExpression) Kind() Kind { return UnaryExpressionKind }

// Member access operators
const (
	FieldAccess  = "."
	StaticAccess = "::"
	DerefAccess  = "->"
)

// Member access: `a.b`, `a::b`, `a->b`
type MemberAccess struct {
	Meta
	Op     string
	Object Node
	Name   string
}

func (e *MemberAccess) Kind() Kind { return MemberAccessKind }

// Function call: `f(a, b)`
type FCall struct {
	Meta
	Callee Node
	Args   []Node
}

func (e *FCall) Kind() Kind { return FCallKind }

// Index expression: `a[i]`, dispatched through the `operator[]` field of the object's type.
type IndexExpression struct {
	Meta
	Object, Index Node
}

func (e *IndexExpression) Kind() Kind { return IndexExpressionKind }

// Empty statement
type Empty struct {
	Meta
}

func (e *Empty) Kind() Kind { return EmptyKind }

// Sequence expression: `a, b`. The type of a sequence is the type of its second operand.
type Sequence struct {
	Meta
	First, Second Node
}

func (e *Sequence) Kind() Kind { return SequenceKind }
