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
	"errors"

	"github.com/hashicorp/go-set/v2"
)

// Merge unifies a and b.
//
// An unresolved type-variable is linked to the other side, after which its pending field
// constraints are unified with the fields of the other side. Two instances unify if they share a
// base type and the same number of arguments, and their arguments unify pairwise. When arguments
// fail to unify, the error is reported for the outer instances, wrapping the nested error.
func Merge(a, b Type) error {
	if a == nil || b == nil {
		return errors.New("Cannot unify an undefined type")
	}
	// Path compression:
	a, b = RealType(a), RealType(b)
	if a == b {
		return nil
	}
	if av, ok := a.(*Var); ok {
		return bindVar(av, b)
	}
	if bv, ok := b.(*Var); ok {
		return bindVar(bv, a)
	}
	ai, bi := a.(*Instance), b.(*Instance)
	if ai.Base != bi.Base || len(ai.Args) != len(bi.Args) {
		return &IncompatibleTypeError{Left: TypeString(ai), Right: TypeString(bi)}
	}
	// Merging arguments may link type-variables of either side; failures describe the operands as
	// they were before the merge.
	var left, right string
	if HasFreeVars(ai) || HasFreeVars(bi) {
		left, right = TypeString(ai), TypeString(bi)
	}
	for i := range ai.Args {
		if err := Merge(ai.Args[i], bi.Args[i]); err != nil {
			var nested *IncompatibleTypeError
			if errors.As(err, &nested) {
				if left == "" {
					left, right = TypeString(ai), TypeString(bi)
				}
				return &IncompatibleTypeError{Left: left, Right: right, Cause: err}
			}
			return err
		}
	}
	return nil
}

func bindVar(tv *Var, t Type) error {
	if inst, ok := t.(*Instance); ok && occurs(tv, inst, set.New[*Instance](4)) {
		return &RecursiveTypeError{Var: TypeString(tv), Type: TypeString(inst)}
	}
	return tv.SetLink(t)
}

func occurs(tv *Var, inst *Instance, visited *set.Set[*Instance]) bool {
	if !visited.Insert(inst) {
		return false
	}
	for _, arg := range inst.Args {
		switch arg := RealType(arg).(type) {
		case *Var:
			if arg == tv {
				return true
			}
		case *Instance:
			if occurs(tv, arg, visited) {
				return true
			}
		}
	}
	return false
}
