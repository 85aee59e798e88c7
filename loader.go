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

package zoidberg

import (
	"github.com/wdamron/zoidberg/ast"
)

// ModuleLoader loads imported modules. Loaders are invoked for each import during inference.
type ModuleLoader interface {
	// LoadModule loads and infers the module at the dotted path. root is the root scope of the
	// importing compilation unit; loaded modules should be inferred in a child of root.
	LoadModule(path string, root *Scope) (*LoadedModule, error)
}

// LoadedModule is an inferred module.
type LoadedModule struct {
	Path string
	AST  *ast.Module
	// Scope contains the top-level bindings of the module.
	Scope *Scope
}

// InferModule infers a module in a new child of root, using ctx.
func InferModule(ctx *InferenceContext, path string, m *ast.Module, root *Scope) (*LoadedModule, error) {
	scope := root.CreateScope()
	if m.Path == "" {
		m.Path = path
	}
	if _, err := ctx.Infer(m, scope); err != nil {
		return nil, err
	}
	return &LoadedModule{Path: path, AST: m, Scope: scope}, nil
}
