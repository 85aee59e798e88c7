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

package astutil

import (
	"testing"

	"github.com/wdamron/zoidberg/ast"
	. "github.com/wdamron/zoidberg/construct"
)

func TestReturnsSkipsNestedFunctions(t *testing.T) {
	inner := Ret(Int(1))
	outer := Ret(Str("x"))
	body := []ast.Node{
		Func("g", Params(), inner),
		Let("h", Lambda(Params(), Ret(Int(2)))),
		outer,
	}
	returns := Returns(body)
	if len(returns) != 1 || returns[0] != outer {
		t.Fatalf("expected only the outer return, found %d", len(returns))
	}
}

func TestImplicitResult(t *testing.T) {
	last := Call(Ident("f"))
	if r := ImplicitResult([]ast.Node{Str("x"), last}); r != ast.Node(last) {
		t.Fatalf("expected last expression, found %v", r)
	}
	for _, body := range [][]ast.Node{
		nil,
		{Ret(Int(1))},
		{Let("x", Int(1))},
		{Func("g", Params())},
	} {
		if r := ImplicitResult(body); r != nil {
			t.Fatalf("expected no implicit result, found %s", ast.NodeString(r))
		}
	}
}

func TestImports(t *testing.T) {
	m := Module([]*ast.Using{Import("a.b", "x"), ImportAs("c", "d")},
		Func("f", Params(), Import("a.b"), Import("e")),
	)
	paths := Imports(m)
	want := []string{"a.b", "c", "e"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, found %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("expected %v, found %v", want, paths)
		}
	}
}
