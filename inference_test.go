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

package zoidberg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/zoidberg"
	"github.com/wdamron/zoidberg/ast"
	. "github.com/wdamron/zoidberg/construct"
	"github.com/wdamron/zoidberg/types"
)

func inferModule(t *testing.T, body ...ast.Node) *zoidberg.Scope {
	t.Helper()
	scope := zoidberg.NewRootScope()
	ctx := zoidberg.NewContext()
	_, err := ctx.Infer(Module(nil, body...), scope)
	require.NoError(t, err)
	return scope
}

func inferError(t *testing.T, body ...ast.Node) (error, ast.Node) {
	t.Helper()
	ctx := zoidberg.NewContext()
	_, err := ctx.Infer(Module(nil, body...), zoidberg.NewRootScope())
	require.Error(t, err)
	assert.Equal(t, err, ctx.Error())
	return err, ctx.InvalidNode()
}

func typeOf(t *testing.T, scope *zoidberg.Scope, name string) string {
	t.Helper()
	ty, err := scope.ResolveID(name)
	require.NoError(t, err)
	return types.TypeString(ty)
}

func TestLiteralReturnTypes(t *testing.T) {
	scope := inferModule(t,
		Func("s", Params(), Str("x")),
		Func("i", Params(), Int(42)),
		Func("f", Params(), Float("1.5")),
		Func("c", Params(), Char("c")),
		Func("v", Params()),
		Func("r", Params(), Ret(nil)),
		Func("e", Params(), Empty()),
	)
	assert.Equal(t, "() -> String", typeOf(t, scope, "s"))
	assert.Equal(t, "() -> Int", typeOf(t, scope, "i"))
	assert.Equal(t, "() -> Float", typeOf(t, scope, "f"))
	assert.Equal(t, "() -> Char", typeOf(t, scope, "c"))
	assert.Equal(t, "() -> Void", typeOf(t, scope, "v"))
	assert.Equal(t, "() -> Void", typeOf(t, scope, "r"))
	assert.Equal(t, "() -> Void", typeOf(t, scope, "e"))
}

func TestGenericFunctionCallSites(t *testing.T) {
	callStr, callInt := Call(Ident("f"), Str("s")), Call(Ident("f"), Int(1))
	scope := inferModule(t,
		Func("f", Params("x"), Ident("x")),
		callStr,
		callInt,
	)
	assert.Equal(t, "(%a) -> %a", typeOf(t, scope, "f"))
	assert.Equal(t, "String", types.TypeString(callStr.Type()))
	assert.Equal(t, "Int", types.TypeString(callInt.Type()))

	// Unifying the declaration's own parameter type is not instantiated:
	fn, _ := scope.ResolveID("f")
	params, _ := types.FunctionParts(types.RealType(fn).(*types.Instance))
	str, err := scope.Instance(zoidberg.StringType)
	require.NoError(t, err)
	integer, err := scope.Instance(zoidberg.IntType)
	require.NoError(t, err)
	require.NoError(t, types.Merge(params[0], str))
	err = types.Merge(params[0], integer)
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)
}

func TestMainSignature(t *testing.T) {
	scope := inferModule(t, Func("main", Params("argv"), Int(0)))
	assert.Equal(t, "(Array<String>) -> Async<Int>", typeOf(t, scope, "main"))

	scope = inferModule(t, Func("main", Params("argv"), Unary("&", Int(0))))
	assert.Equal(t, "(Array<String>) -> Async<Int>", typeOf(t, scope, "main"))

	err, invalid := inferError(t, Func("main", Params(), Unary("&", Str("x"))))
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)
	assert.Equal(t, "() -> Async<String>", inc.Left)
	assert.Equal(t, "(Array<String>) -> Async<Int>", inc.Right)
	assert.Equal(t, ast.FunctionDeclarationKind, invalid.Kind())
}

func TestIndexing(t *testing.T) {
	idx := Index(Ident("arr"), Int(0))
	scope := inferModule(t,
		Func("f", []*ast.Parameter{Param("arr", Hint("Array", Hint("Int")))}, idx),
	)
	assert.Equal(t, "Int", types.TypeString(idx.Type()))
	assert.Equal(t, "(Array<Int>) -> Int", typeOf(t, scope, "f"))
}

func TestOpenFieldConstraints(t *testing.T) {
	length := Call(Ident("len"), Str("abc"))
	scope := inferModule(t,
		Func("len", Params("x"), Member(Ident("x"), "length")),
		length,
	)
	assert.Equal(t, "(%a.{length:%b}) -> %b", typeOf(t, scope, "len"))
	assert.Equal(t, "Int", types.TypeString(length.Type()))

	err, _ := inferError(t,
		Func("len", Params("x"), Member(Ident("x"), "size")),
		Call(Ident("len"), Str("abc")),
	)
	var unknown *types.UnknownFieldError
	require.True(t, errors.As(err, &unknown), "expected unknown field, found %v", err)
	assert.Equal(t, "size", unknown.Name)
}

func TestOperators(t *testing.T) {
	sum, cmp, cat := Binary("+", Int(1), Int(2)), Binary("<", Float("1"), Float("2")), Binary("+", Str("a"), Str("b"))
	scope := inferModule(t,
		sum, cmp, cat,
		Func("inc", Params("x"), Binary("+", Ident("x"), Int(1))),
		Let("two", Call(Ident("inc"), Int(1))),
		Func("write", []*ast.Parameter{Param("s", Hint("Stream"))}, Binary("<<", Ident("s"), Str("x"))),
	)
	assert.Equal(t, "Int", types.TypeString(sum.Type()))
	assert.Equal(t, "Int", types.TypeString(cmp.Type()))
	assert.Equal(t, "String", types.TypeString(cat.Type()))
	assert.Equal(t, "Int", typeOf(t, scope, "two"))
	assert.Equal(t, "(Stream) -> Stream", typeOf(t, scope, "write"))

	err, _ := inferError(t,
		Func("inc", Params("x"), Binary("+", Ident("x"), Int(1))),
		Call(Ident("inc"), Str("s")),
	)
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)

	err, _ = inferError(t, Binary("+", Str("a"), Int(1)))
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)
}

func TestMethodCalls(t *testing.T) {
	push, join := Call(Member(Ident("a"), "push"), Int(3)), Call(Member(Ident("a"), "join"), Str(","))
	scope := inferModule(t,
		Let("a", Array(Int(1), Int(2))),
		push,
		join,
		Let("n", Member(Ident("a"), "length")),
	)
	assert.Equal(t, "Array<Int>", typeOf(t, scope, "a"))
	assert.Equal(t, "Int", types.TypeString(push.Type()))
	assert.Equal(t, "String", types.TypeString(join.Type()))
	assert.Equal(t, "Int", typeOf(t, scope, "n"))

	err, _ := inferError(t,
		Let("a", Array(Int(1))),
		Call(Member(Ident("a"), "push"), Str("x")),
	)
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)

	err, _ = inferError(t, Array(Int(1), Str("x")))
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)
}

func TestCallErrors(t *testing.T) {
	err, invalid := inferError(t, Let("x", Int(1)), Call(Ident("x"), Int(2)))
	var notCallable *zoidberg.NotCallableError
	require.True(t, errors.As(err, &notCallable), "expected not callable, found %v", err)
	assert.Equal(t, "Int", notCallable.Type)
	assert.Equal(t, ast.FCallKind, invalid.Kind())

	err, _ = inferError(t, Func("f", Params("x"), Ident("x")), Call(Ident("f")))
	var arity *types.ArityError
	require.True(t, errors.As(err, &arity), "expected arity error, found %v", err)
	assert.Equal(t, 1, arity.Expected)
	assert.Equal(t, 0, arity.Actual)

	err, _ = inferError(t, Call(Ident("missing")))
	var unknown *types.UnknownIdentifierError
	require.True(t, errors.As(err, &unknown), "expected unknown identifier, found %v", err)
	assert.Equal(t, "Symbol not found: missing", err.Error())
}

func TestDeclarations(t *testing.T) {
	scope := inferModule(t,
		LetHint("a", Hint("Int"), nil),
		Let("b", Ident("a")),
		Assign(Ident("c"), Str("x")),
		Let("d", Seq(Int(1), Str("y"))),
		Let("e", Interp(Str("n = "), Ident("a"))),
		Let("g", Lambda(Params("x"), Ret(Ident("x")))),
	)
	assert.Equal(t, "Int", typeOf(t, scope, "b"))
	assert.Equal(t, "String", typeOf(t, scope, "c"))
	assert.Equal(t, "String", typeOf(t, scope, "d"))
	assert.Equal(t, "String", typeOf(t, scope, "e"))
	assert.Equal(t, "(%a) -> %a", typeOf(t, scope, "g"))

	err, _ := inferError(t, Let("x", Int(1)), Let("x", Int(2)))
	var redef *types.RedefinitionError
	require.True(t, errors.As(err, &redef), "expected redefinition, found %v", err)

	err, _ = inferError(t, Assign(Ident("y"), Int(1)), Assign(Ident("y"), Str("s")))
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)

	err, _ = inferError(t, LetHint("z", Hint("Missing"), nil))
	var unknown *types.UnknownTypeError
	require.True(t, errors.As(err, &unknown), "expected unknown type, found %v", err)
}

func TestShadowing(t *testing.T) {
	scope := inferModule(t,
		Let("x", Int(1)),
		Func("f", Params(), Let("x", Str("s")), Ident("x")),
	)
	assert.Equal(t, "Int", typeOf(t, scope, "x"))
	assert.Equal(t, "() -> String", typeOf(t, scope, "f"))
}

func TestInterfaces(t *testing.T) {
	get, value := Call(Member(Ident("b"), "get")), Member(Ident("b"), "value")
	scope := inferModule(t,
		Interface("Box", []string{"T"},
			Prop("value", Hint("T")),
			Method("get", nil, Hint("T")),
			Method("set", []*ast.Parameter{Param("v", Hint("T"))}, Hint("Box", Hint("T"))),
			StaticProp("empty", Hint("Box", Hint("T"))),
		),
		Func("unbox", []*ast.Parameter{Param("b", Hint("Box", Hint("Int")))}, get),
		Func("peek", []*ast.Parameter{Param("b", Hint("Box", Hint("String")))}, value),
		Func("update", []*ast.Parameter{Param("b", Hint("Box", Hint("Int")))}, Call(Member(Ident("b"), "set"), Int(2))),
	)
	assert.Equal(t, "(Box<Int>) -> Int", typeOf(t, scope, "unbox"))
	assert.Equal(t, "(Box<String>) -> String", typeOf(t, scope, "peek"))
	assert.Equal(t, "(Box<Int>) -> Box<Int>", typeOf(t, scope, "update"))
	assert.Equal(t, "Int", types.TypeString(get.Type()))

	box, ok := scope.LookupType("Box")
	require.True(t, ok)
	assert.Equal(t, []string{"get", "set", "value"}, box.Fields.Names())
	assert.Equal(t, []string{"empty"}, box.Statics.Names())
	set, _ := box.Fields.Lookup("set")
	assert.Equal(t, "(Box<'T>, 'T) -> Box<'T>", types.TypeString(set))

	err, _ := inferError(t, Interface("P", []string{"A", "A"}))
	var redef *types.RedefinitionError
	require.True(t, errors.As(err, &redef), "expected redefinition, found %v", err)

	err, _ = inferError(t, Interface("Q", nil, Prop("x", Hint("Int")), Prop("x", Hint("Int"))))
	require.True(t, errors.As(err, &redef), "expected redefinition, found %v", err)
}

func TestDerefAccess(t *testing.T) {
	scope := inferModule(t,
		Func("size", []*ast.Parameter{Param("p", Hint("Async", Hint("String")))}, Deref(Ident("p"), "length")),
		Func("await", []*ast.Parameter{Param("p", Hint("Async", Hint("Int")))}, Unary("*", Ident("p"))),
	)
	assert.Equal(t, "(Async<String>) -> Async<Int>", typeOf(t, scope, "size"))
	assert.Equal(t, "(Async<Int>) -> Int", typeOf(t, scope, "await"))
}

func TestNamespaces(t *testing.T) {
	static, field := Call(Static(Ident("n"), "g")), Call(Member(Ident("n"), "g"))
	scope := inferModule(t,
		Namespace("n", Func("g", Params(), Int(1)), Let("h", Str("x"))),
		static,
		field,
		Let("k", Static(Ident("n"), "h")),
	)
	assert.Equal(t, "Int", types.TypeString(static.Type()))
	assert.Equal(t, "Int", types.TypeString(field.Type()))
	assert.Equal(t, "String", typeOf(t, scope, "k"))
	assert.Equal(t, "n", typeOf(t, scope, "n"))
	_, ok := scope.Lookup("g")
	assert.False(t, ok, "namespace bindings should not leak")

	err, _ := inferError(t, Namespace("n"), Static(Ident("n"), "missing"))
	var unknown *types.UnknownFieldError
	require.True(t, errors.As(err, &unknown), "expected unknown field, found %v", err)
}

type testLoader map[string]*ast.Module

func (l testLoader) LoadModule(path string, root *zoidberg.Scope) (*zoidberg.LoadedModule, error) {
	m, ok := l[path]
	if !ok {
		return nil, errors.New("not found")
	}
	ctx := zoidberg.NewContext()
	ctx.SetModuleLoader(l)
	return zoidberg.InferModule(ctx, path, m, root)
}

func TestImports(t *testing.T) {
	loader := testLoader{
		"std.text": Module(nil,
			Func("upper", Params("s"), Binary("+", Ident("s"), Str(""))),
			Interface("Doc", nil, Prop("title", Hint("String"))),
		),
	}
	upper, whole := Call(Ident("upper"), Str("a")), Call(Member(Ident("text"), "upper"), Str("b"))
	scope := zoidberg.NewRootScope()
	ctx := zoidberg.NewContext()
	ctx.SetModuleLoader(loader)
	m := Module([]*ast.Using{Import("std.text", "upper", "Doc"), Import("std.text")},
		upper,
		whole,
		Func("title", []*ast.Parameter{Param("d", Hint("Doc"))}, Member(Ident("d"), "title")),
	)
	_, err := ctx.Infer(m, scope)
	require.NoError(t, err)
	assert.Equal(t, "String", types.TypeString(upper.Type()))
	assert.Equal(t, "String", types.TypeString(whole.Type()))
	assert.Equal(t, "(Doc) -> String", typeOf(t, scope, "title"))
	_, ok := scope.Lookup("text")
	assert.True(t, ok)

	_, err = ctx.Infer(Module([]*ast.Using{Import("std.text", "lower")}), zoidberg.NewRootScope())
	var resolution *zoidberg.ModuleResolutionError
	require.True(t, errors.As(err, &resolution), "expected module resolution error, found %v", err)
	assert.Equal(t, "std.text", resolution.Path)
	assert.Equal(t, "lower", resolution.Name)
	assert.Equal(t, "std.text does not export lower", err.Error())

	_, err = ctx.Infer(Module([]*ast.Using{Import("std.missing")}), zoidberg.NewRootScope())
	require.True(t, errors.As(err, &resolution), "expected module resolution error, found %v", err)
	assert.True(t, strings.Contains(err.Error(), "std.missing"))

	_, err = zoidberg.NewContext().Infer(Module([]*ast.Using{ImportAs("std.text", "t")}), zoidberg.NewRootScope())
	require.True(t, errors.As(err, &resolution), "expected module resolution error without a loader, found %v", err)
}

func TestUnhandledNode(t *testing.T) {
	ctx := zoidberg.NewContextWithRules(nil)
	_, err := ctx.Infer(Module(nil), zoidberg.NewRootScope())
	var unhandled *zoidberg.UnhandledNodeError
	require.True(t, errors.As(err, &unhandled), "expected unhandled node, found %v", err)
	assert.Equal(t, ast.ModuleKind, unhandled.Kind)

	for _, k := range ast.Kinds() {
		found := false
		for _, r := range zoidberg.DefaultRules() {
			found = found || r.Kind == k
		}
		assert.True(t, found, "no default rule for %s", k)
	}
}

func TestContextReuse(t *testing.T) {
	ctx := zoidberg.NewContext()
	m := Module(nil, Func("f", Params(), Str("x")))
	for i := 0; i < 2; i++ {
		scope := zoidberg.NewRootScope()
		_, err := ctx.Infer(m, scope)
		require.NoError(t, err)
		assert.Equal(t, "() -> String", typeOf(t, scope, "f"))
	}
	_, err := ctx.Infer(Module(nil, Ident("nope")), zoidberg.NewRootScope())
	require.Error(t, err)
	_, err = ctx.Infer(m, zoidberg.NewRootScope())
	require.NoError(t, err)
	assert.Nil(t, ctx.Error())
	assert.Nil(t, ctx.InvalidNode())
}

func TestMethodsOfUnresolvedObjects(t *testing.T) {
	scope := inferModule(t,
		Func("addOne", Params("a"), Call(Member(Ident("a"), "push"), Int(1))),
		Func("use", []*ast.Parameter{Param("xs", Hint("Array", Hint("Int")))}, Call(Ident("addOne"), Ident("xs"))),
		Interface("Box", []string{"T"}, Method("get", nil, Hint("T"))),
		Func("unbox", Params("b"), Call(Member(Ident("b"), "get"))),
		Func("useBox", []*ast.Parameter{Param("b", Hint("Box", Hint("Int")))}, Call(Ident("unbox"), Ident("b"))),
	)
	assert.Equal(t, "(%a.{push:(%a, Int) -> %b}) -> %b", typeOf(t, scope, "addOne"))
	assert.Equal(t, "(Array<Int>) -> Int", typeOf(t, scope, "use"))
	assert.Equal(t, "(%a.{get:(%a) -> %b}) -> %b", typeOf(t, scope, "unbox"))
	assert.Equal(t, "(Box<Int>) -> Int", typeOf(t, scope, "useBox"))

	err, _ := inferError(t,
		Func("addOne", Params("a"), Call(Member(Ident("a"), "push"), Int(1))),
		Func("use", []*ast.Parameter{Param("xs", Hint("Array", Hint("String")))}, Call(Ident("addOne"), Ident("xs"))),
	)
	var inc *types.IncompatibleTypeError
	require.True(t, errors.As(err, &inc), "expected incompatible types, found %v", err)
	assert.NotEqual(t, inc.Left, inc.Right)
}

func TestEveryNodeHasATypeAfterInference(t *testing.T) {
	m := Module(nil,
		Func("f", Params("x"), Ret(Binary("+", Ident("x"), Int(1)))),
		Let("y", Call(Ident("f"), Int(2))),
		Namespace("n", Let("z", Interp(Str("a"), Ident("y")))),
	)
	ast.Walk(m, func(n ast.Node) bool {
		assert.Nil(t, n.Type(), "%s should have no type before inference", n.Kind())
		return true
	}, nil)
	_, err := zoidberg.NewContext().Infer(m, zoidberg.NewRootScope())
	require.NoError(t, err)
	ast.Walk(m, func(n ast.Node) bool {
		assert.NotNil(t, n.Type(), "%s should have a type after inference", n.Kind())
		assert.NotNil(t, n.Scope(), "%s should have a scope after inference", n.Kind())
		return true
	}, nil)
}

func TestShadowedFunctionTypeIsNotCallable(t *testing.T) {
	err, invalid := inferError(t,
		Namespace("n",
			Interface("Function", nil),
			Func("call", []*ast.Parameter{Param("f", Hint("Function"))}, Call(Ident("f"))),
		),
	)
	var notCallable *zoidberg.NotCallableError
	require.True(t, errors.As(err, &notCallable), "expected not callable, found %v", err)
	assert.Equal(t, "Function", notCallable.Type)
	assert.Equal(t, ast.FCallKind, invalid.Kind())
}
