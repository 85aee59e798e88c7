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

package types

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// FieldTable is a named collection of field types.
type FieldTable interface {
	// Get the type of a field, or fail with *UnknownFieldError. Open tables create unknown fields.
	Get(name string) (Type, error)
	// Unify the type of a field with t. Open tables create unknown fields.
	Set(name string, t Type) error
	// Lookup a field without creating it.
	Lookup(name string) (Type, bool)
	// Names returns the names of present fields, sorted.
	Names() []string
}

// FieldsOf returns the structural field table for t, following links.
func FieldsOf(t Type) FieldTable {
	switch t := RealType(t).(type) {
	case *Instance:
		return t.Fields()
	case *Var:
		return openFields{v: t}
	}
	return closedFields{}
}

// StaticsOf returns the static field table for t, following links.
func StaticsOf(t Type) FieldTable {
	switch t := RealType(t).(type) {
	case *Instance:
		return t.Statics()
	case *Var:
		return openFields{v: t, static: true}
	}
	return closedFields{}
}

// PropertySpec is an owning table of declared fields, sorted by name.
type PropertySpec struct {
	owner string
	m     *immutable.SortedMap
}

// Create an empty table for the named owner. The owner name is only used in error messages.
func NewPropertySpec(owner string) *PropertySpec {
	return &PropertySpec{owner: owner, m: emptyMap}
}

// Get the number of fields in the table.
func (s *PropertySpec) Len() int { return s.m.Len() }

func (s *PropertySpec) Lookup(name string) (Type, bool) {
	t, ok := s.m.Get(name)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

func (s *PropertySpec) Get(name string) (Type, error) {
	if t, ok := s.Lookup(name); ok {
		return t, nil
	}
	return nil, &UnknownFieldError{Owner: s.owner, Name: name}
}

// Set unifies an existing field with t, or adds the field.
func (s *PropertySpec) Set(name string, t Type) error {
	if existing, ok := s.Lookup(name); ok {
		return Merge(existing, t)
	}
	s.m = s.m.Set(name, t)
	return nil
}

// Declare adds a new field. Declaring a field twice fails with *RedefinitionError.
func (s *PropertySpec) Declare(name string, t Type) error {
	if _, ok := s.m.Get(name); ok {
		return &RedefinitionError{Name: name, Owner: s.owner}
	}
	s.m = s.m.Set(name, t)
	return nil
}

func (s *PropertySpec) Names() []string {
	names := make([]string, 0, s.m.Len())
	s.Range(func(name string, _ Type) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Iterate over fields in the table, sorted by name.
// If f returns false, iteration will be stopped.
func (s *PropertySpec) Range(f func(string, Type) bool) {
	iter := s.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

func (s *PropertySpec) flushTo(dst FieldTable) (err error) {
	s.Range(func(name string, t Type) bool {
		err = dst.Set(name, t)
		return err == nil
	})
	return err
}

// PropertySpecView is a table of fields for an instance of a base type. Field types are
// specialized lazily on first access, by substituting the instance's arguments for the
// type-parameters of the declared type. Unknown fields are not created.
type PropertySpecView struct {
	inst  *Instance
	spec  *PropertySpec
	cache map[string]Type
	subst map[int]Type
}

func newPropertySpecView(inst *Instance, spec *PropertySpec) *PropertySpecView {
	return &PropertySpecView{inst: inst, spec: spec}
}

func (v *PropertySpecView) Lookup(name string) (Type, bool) {
	if t, ok := v.cache[name]; ok {
		return t, true
	}
	declared, ok := v.spec.Lookup(name)
	if !ok {
		return nil, false
	}
	if v.cache == nil {
		v.cache = make(map[string]Type)
	}
	if v.subst == nil {
		v.subst = make(map[int]Type, len(v.inst.Args))
		for i, p := range v.inst.Base.params {
			if i < len(v.inst.Args) {
				v.subst[p.id] = v.inst.Args[i]
			}
		}
	}
	t := Substitute(declared, v.subst)
	v.cache[name] = t
	return t, true
}

func (v *PropertySpecView) Get(name string) (Type, error) {
	if t, ok := v.Lookup(name); ok {
		return t, nil
	}
	return nil, &UnknownFieldError{Owner: TypeString(v.inst), Name: name}
}

// Set unifies the specialized type of an existing field with t.
func (v *PropertySpecView) Set(name string, t Type) error {
	existing, ok := v.Lookup(name)
	if !ok {
		return &UnknownFieldError{Owner: TypeString(v.inst), Name: name}
	}
	return Merge(existing, t)
}

func (v *PropertySpecView) Names() []string { return v.spec.Names() }

// openFields is the field table of an unresolved type-variable.
type openFields struct {
	v      *Var
	static bool
}

func (f openFields) Lookup(name string) (Type, bool) {
	return f.v.pending(f.static).Lookup(name)
}

func (f openFields) Get(name string) (Type, error) {
	spec := f.v.pending(f.static)
	if t, ok := spec.Lookup(name); ok {
		return t, nil
	}
	t := f.v.tracker.New()
	spec.m = spec.m.Set(name, t)
	return t, nil
}

func (f openFields) Set(name string, t Type) error {
	return f.v.pending(f.static).Set(name, t)
}

func (f openFields) Names() []string { return f.v.pending(f.static).Names() }

type closedFields struct{}

func (closedFields) Lookup(string) (Type, bool) { return nil, false }
func (closedFields) Get(name string) (Type, error) {
	return nil, &UnknownFieldError{Name: name}
}
func (closedFields) Set(name string, _ Type) error {
	return &UnknownFieldError{Name: name}
}
func (closedFields) Names() []string { return nil }
