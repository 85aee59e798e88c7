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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/zoidberg/ast"
	"github.com/wdamron/zoidberg/types"
)

var emptyMap = immutable.NewSortedMap(nil)

// Scope is a lexical environment containing mappings from names to declared types, and from
// identifiers to the types of their bindings. Lookups search enclosing scopes.
//
// All scopes created from the same root share a single type-variable allocator. A scope cannot
// be used concurrently for inference.
type Scope struct {
	parent  *Scope
	tracker *types.VarTracker
	// name -> *types.BaseType
	types *immutable.SortedMap
	// identifier -> types.Type
	ids *immutable.SortedMap
	// type-parameter name -> *types.Var
	params *immutable.SortedMap
}

var _ types.TypeEnv = (*Scope)(nil)

// Create an empty root scope. Use NewRootScope for a scope containing builtin types.
func NewScope(tracker *types.VarTracker) *Scope {
	if tracker == nil {
		tracker = types.NewVarTracker()
	}
	return &Scope{tracker: tracker, types: emptyMap, ids: emptyMap, params: emptyMap}
}

// Create a child scope.
func (s *Scope) CreateScope() *Scope {
	return &Scope{parent: s, tracker: s.tracker, types: emptyMap, ids: emptyMap, params: emptyMap}
}

func (s *Scope) Parent() types.TypeEnv {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// ParentScope returns the enclosing scope, or nil for a root scope.
func (s *Scope) ParentScope() *Scope { return s.parent }

// Root returns the outermost enclosing scope.
func (s *Scope) Root() *Scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// Tracker returns the type-variable allocator shared by the scope and its ancestors.
func (s *Scope) Tracker() *types.VarTracker { return s.tracker }

// Create an unbound type-variable.
func (s *Scope) NewVar() *types.Var { return s.tracker.New() }

// Register declares a new base type with the given type-parameter names in the current scope.
// A name may shadow a type of an enclosing scope, but not a type of the current scope.
func (s *Scope) Register(name string, params ...string) (*types.BaseType, error) {
	if _, ok := s.types.Get(name); ok {
		return nil, &types.RedefinitionError{Name: name}
	}
	for i, p := range params {
		for _, q := range params[:i] {
			if p == q {
				return nil, &types.RedefinitionError{Name: p, Owner: name}
			}
		}
	}
	base := types.NewBaseType(s.tracker, name, params...)
	s.types = s.types.Set(name, base)
	return base, nil
}

// RegisterType binds an existing base type to a name in the current scope.
func (s *Scope) RegisterType(name string, base *types.BaseType) error {
	if _, ok := s.types.Get(name); ok {
		return &types.RedefinitionError{Name: name}
	}
	s.types = s.types.Set(name, base)
	return nil
}

func (s *Scope) LookupType(name string) (*types.BaseType, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.types.Get(name); ok {
			return t.(*types.BaseType), true
		}
	}
	return nil, false
}

// LookupLocalType finds a type declared in the current scope.
func (s *Scope) LookupLocalType(name string) (*types.BaseType, bool) {
	if t, ok := s.types.Get(name); ok {
		return t.(*types.BaseType), true
	}
	return nil, false
}

// Get a declared type by name, or fail with *types.UnknownTypeError.
func (s *Scope) Get(name string) (*types.BaseType, error) {
	if base, ok := s.LookupType(name); ok {
		return base, nil
	}
	return nil, &types.UnknownTypeError{Name: name}
}

// Instance creates an instance of a declared type.
func (s *Scope) Instance(name string, args ...types.Type) (*types.Instance, error) {
	base, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return base.Create(args...)
}

// RegisterID binds an identifier to a type in the current scope. An identifier may shadow a
// binding of an enclosing scope, but not a binding of the current scope.
func (s *Scope) RegisterID(name string, t types.Type) error {
	if _, ok := s.ids.Get(name); ok {
		return &types.RedefinitionError{Name: name}
	}
	s.ids = s.ids.Set(name, t)
	return nil
}

func (s *Scope) Lookup(name string) (types.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.ids.Get(name); ok {
			return t.(types.Type), true
		}
	}
	return nil, false
}

// LookupLocal finds an identifier bound in the current scope.
func (s *Scope) LookupLocal(name string) (types.Type, bool) {
	if t, ok := s.ids.Get(name); ok {
		return t.(types.Type), true
	}
	return nil, false
}

// ResolveID finds the type bound to an identifier, or fails with *types.UnknownIdentifierError.
func (s *Scope) ResolveID(name string) (types.Type, error) {
	if t, ok := s.Lookup(name); ok {
		return t, nil
	}
	return nil, &types.UnknownIdentifierError{Name: name}
}

// IDs returns the identifiers bound in the current scope, sorted.
func (s *Scope) IDs() []string {
	names := make([]string, 0, s.ids.Len())
	iter := s.ids.Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		names = append(names, k.(string))
	}
	return names
}

// BindParam makes a type-parameter visible to type hints resolved within the current scope.
func (s *Scope) BindParam(name string, tv *types.Var) {
	s.params = s.params.Set(name, tv)
}

// LookupParam finds a type-parameter visible within the current scope.
func (s *Scope) LookupParam(name string) (*types.Var, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if tv, ok := sc.params.Get(name); ok {
			return tv.(*types.Var), true
		}
	}
	return nil, false
}

// ResolveHint converts a type hint to a type. A nil hint resolves to a fresh type-variable;
// names of visible type-parameters resolve to the parameter's type-variable.
func (s *Scope) ResolveHint(hint *ast.TypeHint) (types.Type, error) {
	if hint == nil {
		return s.NewVar(), nil
	}
	if len(hint.Args) == 0 {
		if tv, ok := s.LookupParam(hint.Name); ok {
			return tv, nil
		}
	}
	base, err := s.Get(hint.Name)
	if err != nil {
		return nil, err
	}
	args := make([]types.Type, len(hint.Args))
	for i, arg := range hint.Args {
		if args[i], err = s.ResolveHint(arg); err != nil {
			return nil, err
		}
	}
	return base.Create(args...)
}

// ToNamespace synthesizes a base type whose fields and static fields mirror the identifiers
// bound in the current scope. Field types are shared with the bindings.
func (s *Scope) ToNamespace(name string) (*types.BaseType, error) {
	ns := types.NewBaseType(s.tracker, name)
	var err error
	iter := s.ids.Iterator()
	for !iter.Done() && err == nil {
		k, v := iter.Next()
		id, t := k.(string), v.(types.Type)
		if err = ns.Fields.Declare(id, t); err == nil {
			err = ns.Statics.Declare(id, t)
		}
	}
	return ns, err
}
