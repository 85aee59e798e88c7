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
	"strconv"

	"github.com/wdamron/zoidberg/types"
)

// Node is the base for all syntax-tree nodes.
type Node interface {
	// Kind of the node.
	Kind() Kind
	// Location returns the source location captured by the parser.
	Location() Location
	// Type returns the type slot of the node. The slot is nil until the node is inferred: inference
	// assigns a fresh type-variable to every node of the tree before any rule runs, so rules never
	// observe a nil slot. Afterwards the slot is either an unresolved type-variable or a resolved
	// type.
	Type() types.Type
	// Assign a type to the node. Type assignments should occur indirectly, during inference.
	SetType(t types.Type)
	// Scope returns the lexical environment the node was inferred in.
	Scope() types.TypeEnv
	// Assign the lexical environment of the node. Assignments should occur during inference.
	SetScope(env types.TypeEnv)
}

// Kind enumerates the closed set of node variants.
type Kind int

const (
	InvalidKind Kind = iota
	ModuleKind
	UsingKind
	FunctionDeclarationKind
	ParameterKind
	ValueDeclarationKind
	AssignmentKind
	ReturnKind
	BinaryExpressionKind
	UnaryExpressionKind
	MemberAccessKind
	FCallKind
	IndexExpressionKind
	LiteralKind
	InterpolationKind
	ArrayLiteralKind
	IdentifierKind
	InterfaceDeclarationKind
	PropertyDeclarationKind
	NamespaceDeclarationKind
	EmptyKind
	SequenceKind

	kindCount
)

var kindNames = [kindCount]string{
	InvalidKind:              "Invalid",
	ModuleKind:               "Module",
	UsingKind:                "Using",
	FunctionDeclarationKind:  "FunctionDeclaration",
	ParameterKind:            "Parameter",
	ValueDeclarationKind:     "ValueDeclaration",
	AssignmentKind:           "Assignment",
	ReturnKind:               "Return",
	BinaryExpressionKind:     "BinaryExpression",
	UnaryExpressionKind:      "UnaryExpression",
	MemberAccessKind:         "MemberAccess",
	FCallKind:                "FCallExpression",
	IndexExpressionKind:      "IndexExpression",
	LiteralKind:              "Literal",
	InterpolationKind:        "Interpolation",
	ArrayLiteralKind:         "ArrayLiteral",
	IdentifierKind:           "Identifier",
	InterfaceDeclarationKind: "InterfaceDeclaration",
	PropertyDeclarationKind:  "PropertyDeclaration",
	NamespaceDeclarationKind: "NamespaceDeclaration",
	EmptyKind:                "Empty",
	SequenceKind:             "Sequence",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every valid node kind, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := ModuleKind; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindByName finds a node kind by its name.
func KindByName(name string) (Kind, bool) {
	for k := ModuleKind; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return InvalidKind, false
}

// Location is a position in a source file. Line and Column are 1-based; zero values are unknown.
type Location struct {
	Path         string
	Offset       int
	Line, Column int
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "<input>"
	}
	if l.Line == 0 {
		return path
	}
	return path + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Meta holds the attributes common to all nodes. It is embedded in every node. The type slot and
// scope of a node are unset until the node is inferred.
type Meta struct {
	Loc      Location
	inferred types.Type
	scope    types.TypeEnv
}

func (m *Meta) Location() Location { return m.Loc }

// Get the type slot of the node.
func (m *Meta) Type() types.Type { return m.inferred }

// Assign a type to the node. Type assignments should occur indirectly, during inference.
func (m *Meta) SetType(t types.Type) { m.inferred = t }

func (m *Meta) Scope() types.TypeEnv { return m.scope }

func (m *Meta) SetScope(env types.TypeEnv) { m.scope = env }

// TypeHint is a declared type annotation: `Int`, `Array<T>`, `Function<Int, String>`.
type TypeHint struct {
	Loc  Location
	Name string
	Args []*TypeHint
}

func (h *TypeHint) String() string {
	if h == nil {
		return "_"
	}
	if len(h.Args) == 0 {
		return h.Name
	}
	s := h.Name + "<"
	for i, arg := range h.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ">"
}
