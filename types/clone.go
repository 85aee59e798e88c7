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

// Clone returns a copy of t in which every unresolved type-variable reachable from t is replaced
// with a fresh type-variable, preserving sharing: repeated occurrences of a type-variable are
// replaced with the same fresh type-variable. Pending field constraints are copied.
//
// seen maps the ids of replaced type-variables to their replacements. It may be pre-populated to
// substitute type-variables with other types, and it may be nil.
func Clone(t Type, seen map[int]Type) Type {
	// Path compression:
	t = RealType(t)
	// Types without free type-variables can be shared:
	if !HasFreeVars(t) {
		return t
	}
	if seen == nil {
		seen = make(map[int]Type)
	}
	return visitClone(t, seen)
}

func visitClone(t Type, seen map[int]Type) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if r, ok := seen[t.id]; ok {
			return r
		}
		next := t.tracker.NewNamed(t.name)
		seen[t.id] = next
		if t.fields != nil {
			t.fields.Range(func(name string, ft Type) bool {
				next.pending(false).m = next.pending(false).m.Set(name, visitClone(ft, seen))
				return true
			})
		}
		if t.statics != nil {
			t.statics.Range(func(name string, ft Type) bool {
				next.pending(true).m = next.pending(true).m.Set(name, visitClone(ft, seen))
				return true
			})
		}
		return next

	case *Instance:
		if !HasFreeVars(t) {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = visitClone(arg, seen)
		}
		return &Instance{Base: t.Base, Args: args}

	default:
		return t
	}
}

// HasFreeVars indicates whether any unresolved type-variable is reachable from t.
func HasFreeVars(t Type) bool {
	switch t := RealType(t).(type) {
	case *Var:
		return true
	case *Instance:
		for _, arg := range t.Args {
			if HasFreeVars(arg) {
				return true
			}
		}
	}
	return false
}

// Substitute returns t with the type-variables in subst replaced by their mapped types. Other
// type-variables are kept, and instances are only copied if an argument changed.
func Substitute(t Type, subst map[int]Type) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if r, ok := subst[t.id]; ok {
			return r
		}
		return t
	case *Instance:
		var args []Type
		for i, arg := range t.Args {
			next := Substitute(arg, subst)
			if args == nil {
				if next == RealType(arg) {
					continue
				}
				args = make([]Type, len(t.Args))
				copy(args, t.Args[:i])
			}
			args[i] = next
		}
		if args == nil {
			return t
		}
		return &Instance{Base: t.Base, Args: args}
	default:
		return t
	}
}
