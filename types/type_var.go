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

// Type-variable
//
// An unresolved type-variable may accumulate pending structural (and static) field constraints
// before it is linked. Linking a type-variable asserts its pending fields against the target.
type Var struct {
	link    Type
	fields  *PropertySpec
	statics *PropertySpec
	tracker *VarTracker
	name    string
	id      int
}

// Id returns the unique identifier of the type-variable.
func (tv *Var) Id() int { return tv.id }

// Name returns the label of the type-variable. Type-variables bound to declared type-parameters
// are labeled with the parameter name; other type-variables are anonymous.
func (tv *Var) Name() string { return tv.name }

// Link returns the type which the type-variable is bound to, if the type-variable is bound.
func (tv *Var) Link() Type { return tv.link }

// Tracker returns the allocator which created the type-variable.
func (tv *Var) Tracker() *VarTracker { return tv.tracker }

func (tv *Var) IsUnboundVar() bool { return tv.link == nil }
func (tv *Var) IsLinkVar() bool    { return tv.link != nil }

// Fields returns the structural fields of the type-variable. For a linked type-variable, the
// fields of the target are returned. For an unresolved type-variable, the returned table is open:
// unknown fields are created on access.
func (tv *Var) Fields() FieldTable { return FieldsOf(tv) }

// Statics returns the static fields of the type-variable. See Fields.
func (tv *Var) Statics() FieldTable { return StaticsOf(tv) }

// PendingFields returns the names of field constraints accumulated by an unresolved type-variable.
func (tv *Var) PendingFields() []string {
	if tv.link != nil || tv.fields == nil {
		return nil
	}
	return tv.fields.Names()
}

// PendingStatics returns the names of static field constraints accumulated by an unresolved
// type-variable.
func (tv *Var) PendingStatics() []string {
	if tv.link != nil || tv.statics == nil {
		return nil
	}
	return tv.statics.Names()
}

// Set the type which the type-variable is bound to. Pending field constraints are moved to the
// target and unified with its fields.
func (tv *Var) SetLink(t Type) error {
	fields, statics := tv.fields, tv.statics
	tv.link, tv.fields, tv.statics = t, nil, nil
	if fields != nil {
		if err := fields.flushTo(FieldsOf(t)); err != nil {
			return err
		}
	}
	if statics != nil {
		if err := statics.flushTo(StaticsOf(t)); err != nil {
			return err
		}
	}
	return nil
}

// Flatten a chain of linked type-variables.
func (tv *Var) Flatten() {
	if tv.IsLinkVar() {
		tv.link = RealType(tv.link)
	}
}

func (tv *Var) pending(static bool) *PropertySpec {
	if static {
		if tv.statics == nil {
			tv.statics = NewPropertySpec("")
		}
		return tv.statics
	}
	if tv.fields == nil {
		tv.fields = NewPropertySpec("")
	}
	return tv.fields
}
