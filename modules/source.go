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

// Package modules provides module loaders for the inference context: sources of untyped module
// syntax trees (in memory, or YAML files below a set of search roots), and a caching Registry
// which infers each module once per root scope and reports import cycles.
package modules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/astyaml"
)

// Source provides the untyped syntax tree of a module by its dotted path. Each call returns a tree
// which is not shared with other callers, since inference annotates trees in place.
type Source interface {
	Module(path string) (*ast.Module, error)
}

// NotFoundError is returned by sources which do not contain a module.
type NotFoundError struct {
	Path string
	// Searched lists the files which were tried, if any.
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return "Module not found: " + e.Path
	}
	return "Module not found: " + e.Path + " (searched " + strings.Join(e.Searched, ", ") + ")"
}

// MemoryLoader is a Source of syntax trees held in memory. It is safe for concurrent use.
type MemoryLoader struct {
	mu      sync.RWMutex
	modules map[string]*ast.Module
}

func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{modules: make(map[string]*ast.Module)}
}

// Add a module, replacing any module with the same path.
func (l *MemoryLoader) Add(path string, m *ast.Module) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modules[path] = m
}

// Module returns a copy of the module stored for path.
func (l *MemoryLoader) Module(path string) (*ast.Module, error) {
	l.mu.RLock()
	m, ok := l.modules[path]
	l.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Path: path}
	}
	return ast.Copy(m).(*ast.Module), nil
}

// Paths returns the stored module paths, sorted.
func (l *MemoryLoader) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	paths := make([]string, 0, len(l.modules))
	for p := range l.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FSLoader is a Source of YAML syntax trees below a list of root directories. The module path
// a.b.c is read from the first existing file <root>/a/b/c<Ext>.
type FSLoader struct {
	Roots []string
	Ext   string
}

func NewFSLoader(roots []string, ext string) *FSLoader {
	return &FSLoader{Roots: roots, Ext: ext}
}

// Resolve returns the file containing a module.
func (l *FSLoader) Resolve(path string) (string, error) {
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" || s == ".." || strings.ContainsAny(s, `/\`) {
			return "", &NotFoundError{Path: path}
		}
	}
	rel := filepath.Join(segments...) + l.Ext
	searched := make([]string, 0, len(l.Roots))
	for _, root := range l.Roots {
		file := filepath.Join(root, rel)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return file, nil
		}
		searched = append(searched, file)
	}
	return "", &NotFoundError{Path: path, Searched: searched}
}

func (l *FSLoader) Module(path string) (*ast.Module, error) {
	file, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := astyaml.Decode(file, data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}
