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

package construct

import (
	"strconv"

	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/types"
)

// Types

// Type instance: `Array<Int>`. Panics if the number of arguments does not match the base type.
func TInst(base *types.BaseType, args ...types.Type) *types.Instance {
	inst, err := base.Create(args...)
	if err != nil {
		panic(err)
	}
	return inst
}

// Function type: `(Int, Int) -> Int`
func TFunc(function *types.BaseType, params []types.Type, ret types.Type) *types.Instance {
	args := make([]types.Type, 0, len(params)+1)
	args = append(args, params...)
	return TInst(function, append(args, ret)...)
}

// Type hint: `Array<Int>`
func Hint(name string, args ...*ast.TypeHint) *ast.TypeHint {
	return &ast.TypeHint{Name: name, Args: args}
}

// Declarations:

// Module: `using a; f() {}`
func Module(imports []*ast.Using, body ...ast.Node) *ast.Module {
	return &ast.Module{Imports: imports, Body: body}
}

// Import: `using a.b { x, y }`
func Import(path string, extractions ...string) *ast.Using {
	return &ast.Using{Path: path, Extractions: extractions}
}

// Aliased import: `using a.b as m`
func ImportAs(path, alias string) *ast.Using {
	return &ast.Using{Path: path, Alias: alias}
}

// Function declaration: `f(x, y) { ... }`
func Func(name string, params []*ast.Parameter, body ...ast.Node) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{Name: name, Params: params, Body: body}
}

// Function declaration with a return-type hint: `f(x, y): Int { ... }`
func FuncHint(name string, params []*ast.Parameter, ret *ast.TypeHint, body ...ast.Node) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{Name: name, Params: params, ReturnHint: ret, Body: body}
}

// Function literal: `(x) { ... }`
func Lambda(params []*ast.Parameter, body ...ast.Node) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{Params: params, Body: body}
}

// Parameters without type hints: `(x, y)`. Params() returns an empty, non-nil list.
func Params(names ...string) []*ast.Parameter {
	params := make([]*ast.Parameter, len(names))
	for i, name := range names {
		params[i] = &ast.Parameter{Name: name}
	}
	return params
}

// Parameter with an optional type hint: `x: Int`
func Param(name string, hint *ast.TypeHint) *ast.Parameter {
	return &ast.Parameter{Name: name, Hint: hint}
}

// Value declaration: `let x = v`
func Let(name string, value ast.Node) *ast.ValueDeclaration {
	return &ast.ValueDeclaration{Name: name, Value: value}
}

// Value declaration with a type hint: `let x: Int = v`. The value may be nil.
func LetHint(name string, hint *ast.TypeHint, value ast.Node) *ast.ValueDeclaration {
	return &ast.ValueDeclaration{Name: name, Hint: hint, Value: value}
}

// Assignment: `x = v`
func Assign(target, value ast.Node) *ast.Assignment {
	return &ast.Assignment{Target: target, Value: value}
}

// Return statement: `return v`. The value may be nil.
func Ret(value ast.Node) *ast.Return {
	return &ast.Return{Value: value}
}

// Interface declaration: `interface Pair<A, B> { ... }`
func Interface(name string, params []string, props ...*ast.PropertyDeclaration) *ast.InterfaceDeclaration {
	return &ast.InterfaceDeclaration{Name: name, Params: params, Properties: props}
}

// Value property: `first: A`
func Prop(name string, hint *ast.TypeHint) *ast.PropertyDeclaration {
	return &ast.PropertyDeclaration{Name: name, Hint: hint}
}

// Method property: `swap(): Pair<B, A>`
func Method(name string, params []*ast.Parameter, ret *ast.TypeHint) *ast.PropertyDeclaration {
	if params == nil {
		params = []*ast.Parameter{}
	}
	return &ast.PropertyDeclaration{Name: name, Params: params, Hint: ret}
}

// Static value property: `static zero: Int`
func StaticProp(name string, hint *ast.TypeHint) *ast.PropertyDeclaration {
	return &ast.PropertyDeclaration{Name: name, Hint: hint, Static: true}
}

// Namespace declaration: `namespace n { ... }`
func Namespace(name string, body ...ast.Node) *ast.NamespaceDeclaration {
	return &ast.NamespaceDeclaration{Name: name, Body: body}
}

// Expressions:

// Identifier
func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// String literal: `"x"`
func Str(value string) *ast.Literal {
	return &ast.Literal{Lit: ast.StringLit, Value: value}
}

// Integer literal: `42`
func Int(value int) *ast.Literal {
	return &ast.Literal{Lit: ast.IntLit, Value: strconv.Itoa(value)}
}

// Floating-point literal: `1.5`
func Float(value string) *ast.Literal {
	return &ast.Literal{Lit: ast.FloatLit, Value: value}
}

// Character literal: `'c'`
func Char(value string) *ast.Literal {
	return &ast.Literal{Lit: ast.CharLit, Value: value}
}

// String interpolation: `"a${b}"`
func Interp(elements ...ast.Node) *ast.Interpolation {
	return &ast.Interpolation{Elements: elements}
}

// Array literal: `[a, b]`
func Array(elements ...ast.Node) *ast.ArrayLiteral {
	return &ast.ArrayLiteral{Elements: elements}
}

// Binary operator application: `a + b`
func Binary(op string, left, right ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Op: op, Left: left, Right: right}
}

// Unary operator application: `*a`
func Unary(op string, operand ast.Node) *ast.UnaryExpression {
	return &ast.UnaryExpression{Op: op, Operand: operand}
}

// Field access: `a.b`
func Member(object ast.Node, name string) *ast.MemberAccess {
	return &ast.MemberAccess{Op: ast.FieldAccess, Object: object, Name: name}
}

// Static field access: `a::b`
func Static(object ast.Node, name string) *ast.MemberAccess {
	return &ast.MemberAccess{Op: ast.StaticAccess, Object: object, Name: name}
}

// Dereferencing field access: `a->b`
func Deref(object ast.Node, name string) *ast.MemberAccess {
	return &ast.MemberAccess{Op: ast.DerefAccess, Object: object, Name: name}
}

// Function call: `f(x, y)`
func Call(callee ast.Node, args ...ast.Node) *ast.FCall {
	return &ast.FCall{Callee: callee, Args: args}
}

// Index expression: `a[i]`
func Index(object, index ast.Node) *ast.IndexExpression {
	return &ast.IndexExpression{Object: object, Index: index}
}

// Empty statement
func Empty() *ast.Empty {
	return &ast.Empty{}
}

// Sequence expression: `a, b`
func Seq(first, second ast.Node) *ast.Sequence {
	return &ast.Sequence{First: first, Second: second}
}
