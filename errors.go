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
	"github.com/wdamron/zoidberg/ast"
)

// ModuleResolutionError is returned when an imported module cannot be loaded, or does not export
// an extracted name.
type ModuleResolutionError struct {
	Path string
	// Name is the missing export, if the module was loaded.
	Name  string
	Cause error
}

func (e *ModuleResolutionError) Error() string {
	if e.Name != "" {
		return e.Path + " does not export " + e.Name
	}
	if e.Cause == nil {
		return "Cannot load module " + e.Path
	}
	return "Cannot load module " + e.Path + ": " + e.Cause.Error()
}

func (e *ModuleResolutionError) Unwrap() error { return e.Cause }

// NotCallableError is returned when a value which is not a function is called.
type NotCallableError struct {
	Type string
}

func (e *NotCallableError) Error() string { return "Cannot call value of type " + e.Type }

// UnhandledNodeError is returned when no inference rule is registered for a node kind.
type UnhandledNodeError struct {
	Kind ast.Kind
}

func (e *UnhandledNodeError) Error() string { return "Unhandled node kind " + e.Kind.String() }
