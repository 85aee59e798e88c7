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
	"strconv"
)

// IncompatibleTypeError is returned when two types cannot be unified.
type IncompatibleTypeError struct {
	Left, Right string
	// Cause is the nested failure between type-arguments, if any.
	Cause error
}

func (e *IncompatibleTypeError) Error() string {
	return e.Left + " is not compatible with " + e.Right
}

func (e *IncompatibleTypeError) Unwrap() error { return e.Cause }

// RecursiveTypeError is returned when a type-variable would be linked to a type containing itself.
type RecursiveTypeError struct {
	Var, Type string
}

func (e *RecursiveTypeError) Error() string {
	return "Implicitly recursive types are not supported: " + e.Var + " occurs in " + e.Type
}

// UnknownFieldError is returned when a field is not present in a closed field table.
type UnknownFieldError struct {
	Owner, Name string
}

func (e *UnknownFieldError) Error() string {
	if e.Owner == "" {
		return "Unknown field " + e.Name
	}
	return "Unknown field " + e.Owner + "." + e.Name
}

// UnknownTypeError is returned when a type name or type-parameter cannot be resolved.
type UnknownTypeError struct {
	Name string
	// Owner is set for unknown type-parameters of a base type.
	Owner string
}

func (e *UnknownTypeError) Error() string {
	if e.Owner != "" {
		return "Unknown type parameter " + e.Owner + "." + e.Name
	}
	return "Unknown type " + e.Name
}

// UnknownIdentifierError is returned when an identifier cannot be resolved in any scope.
type UnknownIdentifierError struct {
	Name string
}

func (e *UnknownIdentifierError) Error() string { return "Symbol not found: " + e.Name }

// RedefinitionError is returned when a name is declared twice in the same scope or table.
type RedefinitionError struct {
	Name  string
	Owner string
}

func (e *RedefinitionError) Error() string {
	if e.Owner != "" {
		return "Redefinition of " + e.Name + " in " + e.Owner
	}
	return "Redefinition of " + e.Name
}

// ArityError is returned when a base type is instantiated with the wrong number of type-arguments,
// or a function is called with the wrong number of arguments.
type ArityError struct {
	Type             string
	Expected, Actual int
	Variadic         bool
	// Call is set for function calls.
	Call bool
}

func (e *ArityError) Error() string {
	expected := strconv.Itoa(e.Expected)
	if e.Variadic {
		expected = "at least " + expected
	}
	noun := " type arguments, got "
	if e.Call {
		noun = " arguments, got "
	}
	return e.Type + " expects " + expected + noun + strconv.Itoa(e.Actual)
}
