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
	"github.com/wdamron/zoidberg/ast"
)

// Returns collects the return statements of a function body, without descending into nested
// function declarations or literals.
func Returns(body []ast.Node) []*ast.Return {
	var returns []*ast.Return
	for _, stmt := range body {
		ast.Walk(stmt, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FunctionDeclaration:
				return false
			case *ast.Return:
				returns = append(returns, n)
			}
			return true
		}, nil)
	}
	return returns
}

// ImplicitResult returns the last statement of a function body if it is an expression, or nil.
// The value of a trailing expression is returned implicitly.
func ImplicitResult(body []ast.Node) ast.Node {
	if len(body) == 0 {
		return nil
	}
	last := body[len(body)-1]
	switch last.(type) {
	case *ast.Return, *ast.ValueDeclaration, *ast.FunctionDeclaration, *ast.InterfaceDeclaration, *ast.NamespaceDeclaration, *ast.Using:
		return nil
	}
	return last
}

// Imports collects the distinct module paths imported anywhere within a module, in source order.
func Imports(m *ast.Module) []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(u *ast.Using) {
		if !seen[u.Path] {
			seen[u.Path] = true
			paths = append(paths, u.Path)
		}
	}
	for _, u := range m.Imports {
		add(u)
	}
	for _, stmt := range m.Body {
		ast.Walk(stmt, func(n ast.Node) bool {
			if u, ok := n.(*ast.Using); ok {
				add(u)
			}
			return true
		}, nil)
	}
	return paths
}
