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

// zoidberg provides type inference for the zoidberg language.
//
// The type-system is a restricted form of Hindley-Milner, extended with nominal types with
// structural (duck-typed) fields, parametric generics, and operator dispatch through fields.
// Types are inferred in a single depth-first pass over an untyped syntax tree; polymorphic
// functions are instantiated with fresh type-variables at each call site.
//
//
// Supported Features:
//
//   * Nominal types with structural fields and static fields
//   * Generic interfaces with methods and an implicit self parameter
//   * Open field constraints on unresolved types, checked when the type is resolved
//   * Per-call-site instantiation of generic function types
//   * Operators and indexing dispatched through fields (`operator+`, `operator[]`, `unary*`)
//   * Modules, imports and namespaces as first-class values
//
//
// Usage:
//
//	scope := zoidberg.NewRootScope()
//	ctx := zoidberg.NewContext()
//	ctx.SetModuleLoader(modules.NewRegistry(modules.NewFSLoader(dirs, ".zb.yaml")))
//	if _, err := ctx.Infer(module, scope); err != nil {
//		fmt.Println(ctx.InvalidNode().Location(), err)
//	}
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
package zoidberg
