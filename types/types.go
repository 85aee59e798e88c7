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

// Type is the base interface for all types.
//
// A type is either an *Instance (a BaseType applied to arguments) or a *Var (a type-variable,
// which may be linked to another type). Use RealType to follow links before switching on the
// concrete type.
type Type interface {
	TypeName() string
}

func (t *Var) TypeName() string      { return "Var" }
func (t *Instance) TypeName() string { return "Instance" }

// BaseType is a nominal type declaration. Two base types are the same type only if they are
// the same declaration; display names may collide.
type BaseType struct {
	Name string
	// Structural fields, visible through instances of the type with type-parameters substituted.
	Fields *PropertySpec
	// Static (namespace) fields.
	Statics *PropertySpec

	id       int
	params   []*Var
	variadic bool
	tracker  *VarTracker
}

// Create a new base type with the given (possibly empty) list of type-parameter names. Each
// parameter is bound to a fresh labeled type-variable, retrievable via Param.
func NewBaseType(tracker *VarTracker, name string, params ...string) *BaseType {
	b := &BaseType{
		Name:    name,
		Fields:  NewPropertySpec(name),
		Statics: NewPropertySpec(name),
		id:      tracker.NextTypeId(),
		tracker: tracker,
	}
	if len(params) > 0 {
		b.params = make([]*Var, len(params))
		for i, p := range params {
			b.params[i] = tracker.NewNamed(p)
		}
	}
	return b
}

// Create a new base type which accepts any non-zero number of type-arguments, e.g. `Function`.
func NewVariadicBaseType(tracker *VarTracker, name string) *BaseType {
	b := NewBaseType(tracker, name)
	b.variadic = true
	return b
}

// Id returns the identity of the declaration.
func (b *BaseType) Id() int { return b.id }

// Variadic indicates whether the type accepts a variable number of type-arguments.
func (b *BaseType) Variadic() bool { return b.variadic }

// Tracker returns the allocator which owns the type's parameters.
func (b *BaseType) Tracker() *VarTracker { return b.tracker }

// Params returns the type-variables bound to the declared type-parameters, in order.
func (b *BaseType) Params() []*Var {
	params := make([]*Var, len(b.params))
	copy(params, b.params)
	return params
}

// Param returns the type-variable bound to the named type-parameter.
func (b *BaseType) Param(name string) (*Var, error) {
	for _, p := range b.params {
		if p.name == name {
			return p, nil
		}
	}
	return nil, &UnknownTypeError{Name: name, Owner: b.Name}
}

// Create an instance of the base type. The number of arguments must match the number of declared
// type-parameters, or be non-zero for variadic types.
func (b *BaseType) Create(args ...Type) (*Instance, error) {
	switch {
	case b.variadic && len(args) == 0:
		return nil, &ArityError{Type: b.Name, Expected: 1, Actual: 0, Variadic: true}
	case !b.variadic && len(args) != len(b.params):
		return nil, &ArityError{Type: b.Name, Expected: len(b.params), Actual: len(args)}
	}
	inst := &Instance{Base: b, Args: make([]Type, len(args))}
	copy(inst.Args, args)
	return inst, nil
}

// Instantiate the base type with its own type-parameters as arguments, e.g. `Array<'T>`.
func (b *BaseType) Self() *Instance {
	inst := &Instance{Base: b, Args: make([]Type, len(b.params))}
	for i, p := range b.params {
		inst.Args[i] = p
	}
	return inst
}

func (b *BaseType) String() string {
	if len(b.params) == 0 {
		return b.Name
	}
	return TypeString(b.Self())
}

// Instance is a base type applied to a list of type-arguments: `Array<Int>`.
type Instance struct {
	Base *BaseType
	Args []Type

	fields  *PropertySpecView
	statics *PropertySpecView
}

// Fields returns the structural fields of the base type, specialized for the instance's arguments.
func (t *Instance) Fields() *PropertySpecView {
	if t.fields == nil {
		t.fields = newPropertySpecView(t, t.Base.Fields)
	}
	return t.fields
}

// Statics returns the static fields of the base type, specialized for the instance's arguments.
func (t *Instance) Statics() *PropertySpecView {
	if t.statics == nil {
		t.statics = newPropertySpecView(t, t.Base.Statics)
	}
	return t.statics
}

// Get the underlying type for a chain of linked type-variables, when applicable.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || tv.link == nil {
			return t
		}
		t = tv.link
	}
}

// IsResolved indicates whether t is linked to a concrete instance.
func IsResolved(t Type) bool {
	_, ok := RealType(t).(*Instance)
	return ok
}

// IsA reports whether t and other resolve to instances of the same base type. Arguments are not
// compared.
func IsA(t, other Type) bool {
	ti, ok := RealType(t).(*Instance)
	if !ok {
		return false
	}
	oi, ok := RealType(other).(*Instance)
	return ok && ti.Base == oi.Base
}

// Equals reports whether a and b are structurally equal after resolution. Unresolved
// type-variables are only equal to themselves.
func Equals(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	if a == b {
		return true
	}
	ai, ok := a.(*Instance)
	if !ok {
		return false
	}
	bi, ok := b.(*Instance)
	if !ok || ai.Base != bi.Base || len(ai.Args) != len(bi.Args) {
		return false
	}
	for i := range ai.Args {
		if !Equals(ai.Args[i], bi.Args[i]) {
			return false
		}
	}
	return true
}

// FunctionParts splits a function instance into its parameter types and return type.
func FunctionParts(fn *Instance) (params []Type, ret Type) {
	n := len(fn.Args)
	if n == 0 {
		return nil, nil
	}
	return fn.Args[:n-1], fn.Args[n-1]
}
