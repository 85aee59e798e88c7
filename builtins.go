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
	"github.com/wdamron/zoidberg/types"
)

// Names of builtin types.
const (
	VoidType     = "Void"
	IntType      = "Int"
	FloatType    = "Float"
	CharType     = "Char"
	StringType   = "String"
	ArrayType    = "Array"
	AsyncType    = "Async"
	StreamType   = "Stream"
	FunctionType = types.FunctionTypeName
)

// Create a root scope containing the builtin types:
//
//	Void, Int, Float, Char
//	String { length: Int, operator+: (String, String) -> String }
//	Array<T> { length: Int, push: (Array<T>, T) -> Int, operator[]: (Array<T>, Int) -> T, join: (Array<T>, String) -> String }
//	Async<T> { unary*: (Async<T>) -> T }
//	Stream { operator<<: (Stream, String) -> Stream }
//	Function (variadic: parameter types followed by the return type)
//
// Int and Float declare the arithmetic operators + - * / and the comparisons < >, which yield Int.
func NewRootScope() *Scope {
	s := NewScope(types.NewVarTracker())
	if err := DeclareBuiltins(s); err != nil {
		panic("invalid builtin declarations: " + err.Error())
	}
	return s
}

// DeclareBuiltins registers the builtin types in s.
func DeclareBuiltins(s *Scope) error {
	d := &declarer{fn: types.NewVariadicBaseType(s.Tracker(), FunctionType)}
	d.check(s.RegisterType(FunctionType, d.fn))

	d.register(s, VoidType)
	integer := d.register(s, IntType)
	float := d.register(s, FloatType)
	d.register(s, CharType)
	str := d.register(s, StringType)
	array := d.register(s, ArrayType, "T")
	async := d.register(s, AsyncType, "T")
	stream := d.register(s, StreamType)
	if d.err != nil {
		return d.err
	}

	Int, Float, String, Stream := d.inst(integer), d.inst(float), d.inst(str), d.inst(stream)
	for _, num := range []types.Type{Int, Float} {
		base := num.(*types.Instance).Base
		for _, op := range []string{"+", "-", "*", "/"} {
			d.declare(base.Fields, "operator"+op, d.fun(num, num, num))
		}
		for _, op := range []string{"<", ">"} {
			d.declare(base.Fields, "operator"+op, d.fun(num, num, Int))
		}
	}

	d.declare(str.Fields, "length", Int)
	d.declare(str.Fields, "operator+", d.fun(String, String, String))

	T, err := array.Param("T")
	d.check(err)
	Array := array.Self()
	d.declare(array.Fields, "length", Int)
	d.declare(array.Fields, "push", d.fun(Array, T, Int))
	d.declare(array.Fields, "operator[]", d.fun(Array, Int, T))
	d.declare(array.Fields, "join", d.fun(Array, String, String))

	A, err := async.Param("T")
	d.check(err)
	d.declare(async.Fields, "unary*", d.fun(async.Self(), A))

	d.declare(stream.Fields, "operator<<", d.fun(Stream, String, Stream))
	return d.err
}

// declarer records the first error of a sequence of declarations.
type declarer struct {
	fn  *types.BaseType
	err error
}

func (d *declarer) check(err error) {
	if err != nil && d.err == nil {
		d.err = err
	}
}

func (d *declarer) register(s *Scope, name string, params ...string) *types.BaseType {
	base, err := s.Register(name, params...)
	d.check(err)
	return base
}

func (d *declarer) inst(base *types.BaseType, args ...types.Type) types.Type {
	inst, err := base.Create(args...)
	d.check(err)
	return inst
}

func (d *declarer) fun(args ...types.Type) types.Type { return d.inst(d.fn, args...) }

func (d *declarer) declare(table *types.PropertySpec, name string, t types.Type) {
	d.check(table.Declare(name, t))
}
