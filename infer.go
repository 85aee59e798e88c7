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
	"errors"
	"log"

	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/types"
)

// Rule is a type-inference rule for a node kind.
//
// Pre is run before the children of a node are visited; it may return a new scope, which will be
// used for the children of the node and for Post. Post is run after the children of a node are
// visited. Either function may be nil.
type Rule struct {
	Kind ast.Kind
	Name string
	Pre  func(ctx *InferenceContext, scope *Scope, n ast.Node) (*Scope, error)
	Post func(ctx *InferenceContext, scope *Scope, n ast.Node) error
}

// InferenceContext is a reusable context for type inference.
//
// Inference is a single depth-first traversal of a syntax tree. At each node, the pre-rules for
// the node's kind are run in order, followed by the node's children, followed by the post-rules.
// The first failure aborts inference.
//
// An inference context cannot be used concurrently.
type InferenceContext struct {
	rules      map[ast.Kind][]Rule
	loader     ModuleLoader
	logger     *log.Logger
	signatures map[*ast.FunctionDeclaration]*types.Instance

	err        error
	invalid    ast.Node
	needsReset bool
}

// Create a new type-inference context with the default rules. A context may be reused for inference.
func NewContext() *InferenceContext { return NewContextWithRules(DefaultRules()) }

// Create a new type-inference context with the given rules. Inference fails for nodes of kinds
// without rules.
func NewContextWithRules(rules []Rule) *InferenceContext {
	ti := &InferenceContext{rules: make(map[ast.Kind][]Rule)}
	for _, r := range rules {
		ti.AddRule(r)
	}
	return ti
}

// AddRule appends a rule for a node kind. Rules for the same kind are run in the order they were added.
func (ti *InferenceContext) AddRule(r Rule) { ti.rules[r.Kind] = append(ti.rules[r.Kind], r) }

// Set the loader used to resolve imports. Without a loader, imports fail.
func (ti *InferenceContext) SetModuleLoader(loader ModuleLoader) { ti.loader = loader }

// ModuleLoader returns the loader used to resolve imports.
func (ti *InferenceContext) ModuleLoader() ModuleLoader { return ti.loader }

// Set a logger for tracing inference failures and imports. By default, nothing is logged.
func (ti *InferenceContext) SetLogger(logger *log.Logger) { ti.logger = logger }

// Logger returns the trace logger, or nil.
func (ti *InferenceContext) Logger() *log.Logger { return ti.logger }

// Get the error which caused inference to fail.
func (ti *InferenceContext) Error() error { return ti.err }

// Get the node which caused inference to fail.
func (ti *InferenceContext) InvalidNode() ast.Node { return ti.invalid }

func (ti *InferenceContext) reset() {
	ti.err, ti.invalid, ti.signatures, ti.needsReset = nil, nil, nil, false
}

// Reset the state of the context. The context will be reset automatically before inference.
func (ti *InferenceContext) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

// Infer the types of root and its descendants within scope. Every node is assigned a fresh type
// slot, which is unified according to the rules of the context. Bindings introduced by root are
// added to scope. The type of root is returned.
func (ti *InferenceContext) Infer(root ast.Node, scope *Scope) (types.Type, error) {
	if root == nil {
		return nil, errors.New("Empty syntax tree")
	}
	if ti.needsReset {
		ti.reset()
	}
	ti.needsReset = true
	ti.signatures = make(map[*ast.FunctionDeclaration]*types.Instance)
	ast.Walk(root, func(n ast.Node) bool {
		n.SetType(scope.NewVar())
		n.SetScope(nil)
		return true
	}, nil)
	if err := ti.visit(scope, root); err != nil {
		return nil, err
	}
	scope.Tracker().FlattenLinks()
	return root.Type(), nil
}

func (ti *InferenceContext) visit(scope *Scope, n ast.Node) error {
	n.SetScope(scope)
	rules, ok := ti.rules[n.Kind()]
	if !ok {
		return ti.fail(n, "", &UnhandledNodeError{Kind: n.Kind()})
	}
	inner := scope
	for _, r := range rules {
		if r.Pre == nil {
			continue
		}
		next, err := r.Pre(ti, inner, n)
		if err != nil {
			return ti.fail(n, r.Name, err)
		}
		if next != nil {
			inner = next
		}
	}
	for _, c := range ast.Children(n) {
		if err := ti.visit(inner, c); err != nil {
			return err
		}
	}
	for _, r := range rules {
		if r.Post == nil {
			continue
		}
		if err := r.Post(ti, inner, n); err != nil {
			return ti.fail(n, r.Name, err)
		}
	}
	return nil
}

func (ti *InferenceContext) fail(n ast.Node, rule string, err error) error {
	ti.invalid, ti.err = n, err
	if ti.logger != nil {
		ti.logger.Printf("%s: %s (%s): %v", n.Location(), n.Kind(), rule, err)
	}
	return err
}

func (ti *InferenceContext) tracef(format string, args ...interface{}) {
	if ti.logger != nil {
		ti.logger.Printf(format, args...)
	}
}
