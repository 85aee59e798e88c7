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

package modules

import (
	"log"
	"strings"

	"github.com/wdamron/zoidberg"
	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/internal/astutil"
	"github.com/wdamron/zoidberg/internal/util"
)

// ImportCycleError is returned when a module transitively imports itself. Paths starts and ends
// with the same module.
type ImportCycleError struct {
	Paths []string
}

func (e *ImportCycleError) Error() string {
	return "Import cycle: " + strings.Join(e.Paths, " -> ")
}

// Registry is a zoidberg.ModuleLoader which reads modules from a Source and infers each module
// once per root scope, in an isolated child of the root scope. Before a module is inferred, its
// import graph is read in full; a module which takes part in an import cycle is rejected with
// *ImportCycleError.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	source Source
	logger *log.Logger

	loaded map[*zoidberg.Scope]map[string]*zoidberg.LoadedModule
	order  []string

	// Import graph over module paths:
	trees map[string]*ast.Module
	index map[string]int
	paths []string
	graph util.Graph
}

func NewRegistry(source Source) *Registry {
	return &Registry{
		source: source,
		loaded: make(map[*zoidberg.Scope]map[string]*zoidberg.LoadedModule),
		trees:  make(map[string]*ast.Module),
		index:  make(map[string]int),
	}
}

// SetLogger enables tracing of module loads and of the inference of loaded modules.
func (r *Registry) SetLogger(logger *log.Logger) { r.logger = logger }

// LoadModule returns the inferred module for path, inferring it within root if it has not been
// loaded into root before.
func (r *Registry) LoadModule(path string, root *zoidberg.Scope) (*zoidberg.LoadedModule, error) {
	byPath := r.loaded[root]
	if m, ok := byPath[path]; ok {
		return m, nil
	}
	if err := r.scan(path); err != nil {
		return nil, err
	}
	if cycle := r.cycle(path); cycle != nil {
		return nil, &ImportCycleError{Paths: cycle}
	}
	tree := r.trees[path]
	// Trees are consumed by inference; a later load into another root reads the module again.
	delete(r.trees, path)

	if r.logger != nil {
		r.logger.Printf("inferring module %s", path)
	}
	ctx := zoidberg.NewContext()
	ctx.SetModuleLoader(r)
	ctx.SetLogger(r.logger)
	m, err := zoidberg.InferModule(ctx, path, tree, root)
	if err != nil {
		return nil, err
	}
	if byPath == nil {
		byPath = make(map[string]*zoidberg.LoadedModule)
		r.loaded[root] = byPath
	}
	byPath[path] = m
	r.order = append(r.order, path)
	return m, nil
}

// Loaded returns the paths of inferred modules, in the order their inference completed. Modules
// loaded into several root scopes are listed once per root.
func (r *Registry) Loaded() []string { return append([]string(nil), r.order...) }

// Imports returns the module paths imported by a module which has been read.
func (r *Registry) Imports(path string) []string {
	v, ok := r.index[path]
	if !ok {
		return nil
	}
	imports := make([]string, 0, len(r.graph[v]))
	for _, succ := range r.graph[v] {
		imports = append(imports, r.paths[succ])
	}
	return imports
}

func (r *Registry) vertex(path string) int {
	if v, ok := r.index[path]; ok {
		return v
	}
	v := r.graph.AddVertex()
	r.index[path] = v
	r.paths = append(r.paths, path)
	return v
}

// scan reads path and the modules it transitively imports, adding their imports to the graph.
// Imported modules which cannot be read are skipped; the failure is reported when the import is
// inferred.
func (r *Registry) scan(path string) error {
	if _, ok := r.trees[path]; ok {
		return nil
	}
	tree, err := r.source.Module(path)
	if err != nil {
		return err
	}
	r.trees[path] = tree
	v := r.vertex(path)
	for _, imported := range astutil.Imports(tree) {
		r.graph.AddEdge(v, r.vertex(imported))
		if err := r.scan(imported); err != nil && r.logger != nil {
			r.logger.Printf("cannot read module %s imported by %s: %v", imported, path, err)
		}
	}
	return nil
}

// cycle returns an import cycle through path, or nil.
func (r *Registry) cycle(path string) []string {
	start := r.index[path]
	for _, c := range r.graph.Cycles() {
		in := make(map[int]bool, len(c))
		for _, v := range c {
			in[v] = true
		}
		if !in[start] {
			continue
		}
		walk := r.walkCycle(start, in)
		out := make([]string, 0, len(walk))
		for _, v := range walk {
			out = append(out, r.paths[v])
		}
		return out
	}
	return nil
}

// walkCycle finds a path from start back to start through the vertices of a strongly connected
// component, preferring successors in import order.
func (r *Registry) walkCycle(start int, in map[int]bool) []int {
	seen := make(map[int]bool)
	var walk []int
	var visit func(v int) bool
	visit = func(v int) bool {
		walk = append(walk, v)
		for _, succ := range r.graph[v] {
			if succ == start {
				walk = append(walk, start)
				return true
			}
			if in[succ] && !seen[succ] {
				seen[succ] = true
				if visit(succ) {
					return true
				}
			}
		}
		walk = walk[:len(walk)-1]
		return false
	}
	seen[start] = true
	visit(start)
	return walk
}
