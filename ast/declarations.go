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
	_ Node = (*Module)(nil)
	_ Node = (*Using)(nil)
	_ Node = (*FunctionDeclaration)(nil)
	_ Node = (*Parameter)(nil)
	_ Node = (*ValueDeclaration)(nil)
	_ Node = (*Assignment)(nil)
	_ Node = (*Return)(nil)
	_ Node = (*InterfaceDeclaration)(nil)
	_ Node = (*PropertyDeclaration)(nil)
	_ Node = (*NamespaceDeclaration)(nil)
)

// Module is the root of a compilation unit.
type Module struct {
	Meta
	// Path is the dotted module path, if the module was loaded by path.
	Path    string
	Imports []*Using
	Body    []Node
}

func (e *Module) Kind() Kind { return ModuleKind }

// Using imports a module: `using a.b.c { x, y } as m`.
//
// Each extracted name is bound in the importing scope. Without extractions, the module namespace
// is bound under Alias, or under the last segment of Path.
type Using struct {
	Meta
	Path        string
	Extractions []string
	Alias       string
}

func (e *Using) Kind() Kind { return UsingKind }

// BindingName returns the name the whole module namespace is bound under.
func (e *Using) BindingName() string {
	if e.Alias != "" {
		return e.Alias
	}
	path := e.Path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

// Function declaration or literal: `f(a, b: Int): String { ... }`. Function literals have no name.
type FunctionDeclaration struct {
	Meta
	Name       string
	Params     []*Parameter
	ReturnHint *TypeHint
	Body       []Node
}

func (e *FunctionDeclaration) Kind() Kind { return FunctionDeclarationKind }

// Function parameter, with an optional type hint.
type Parameter struct {
	Meta
	Name string
	Hint *TypeHint
}

func (e *Parameter) Kind() Kind { return ParameterKind }

// Value declaration: `let x: Int = v`. Hint and Value are optional.
type ValueDeclaration struct {
	Meta
	Name  string
	Hint  *TypeHint
	Value Node
}

func (e *ValueDeclaration) Kind() Kind { return ValueDeclarationKind }

// Assignment: `x = v`
type Assignment struct {
	Meta
	Target Node
	Value  Node
}

func (e *Assignment) Kind() Kind { return AssignmentKind }

// Return statement. Value is optional.
type Return struct {
	Meta
	Value Node
}

func (e *Return) Kind() Kind { return ReturnKind }

// Interface declaration: `interface Pair<A, B> { first: A; swap(): Pair<B, A> }`
type InterfaceDeclaration struct {
	Meta
	Name       string
	Params     []string
	Properties []*PropertyDeclaration
}

func (e *InterfaceDeclaration) Kind() Kind { return InterfaceDeclarationKind }

// Property declaration within an interface. A property with a nil parameter list is a value
// property; otherwise it is a method, whose type receives the implicit self type as its first
// parameter. Static properties are added to the static field table.
type PropertyDeclaration struct {
	Meta
	Name   string
	Params []*Parameter
	Hint   *TypeHint
	Static bool
}

func (e *PropertyDeclaration) Kind() Kind { return PropertyDeclarationKind }

// IsMethod indicates whether the property has a parameter list.
func (e *PropertyDeclaration) IsMethod() bool { return e.Params != nil }

// Namespace declaration: `namespace n { ... }`
type NamespaceDeclaration struct {
	Meta
	Name string
	Body []Node
}

func (e *NamespaceDeclaration) Kind() Kind { return NamespaceDeclarationKind }
