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
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{idNames: make(map[int]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.idNames {
		delete(p.idNames, k)
	}
	p.anon = 0
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type.
//
// Functions are printed as `(A, B) -> R`, other instances as `Name<A, B>`. Labeled
// type-variables are printed as `'T`; anonymous type-variables are named `%a`, `%b`, ... in
// order of appearance. Pending field constraints of an unresolved type-variable are printed
// after its first occurrence, as `%a.{length:Int}` and `%a::{x:String}` for static fields.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

type typePrinter struct {
	idNames map[int]string
	anon    int
	sb      strings.Builder
}

var _names [26]string

func init() {
	for i := range _names {
		_names[i] = "%" + string(byte('a'+i))
	}
}

func getVarName(i int) string {
	if i < len(_names) {
		return _names[i]
	}
	return _names[i%26] + strconv.Itoa(i/26)
}

// FunctionTypeName is the name of the base type printed with arrow syntax.
const FunctionTypeName = "Function"

func typeString(p *typePrinter, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<undefined>")

	case *Var:
		if t.IsLinkVar() {
			typeString(p, t.Link())
			return
		}
		if name, ok := p.idNames[t.Id()]; ok {
			p.sb.WriteString(name)
			return
		}
		var name string
		if t.name != "" {
			name = "'" + t.name
		} else {
			name = getVarName(p.anon)
			p.anon++
		}
		p.idNames[t.Id()] = name
		p.sb.WriteString(name)
		if t.fields != nil && t.fields.Len() > 0 {
			p.sb.WriteByte('.')
			fieldsString(p, t.fields)
		}
		if t.statics != nil && t.statics.Len() > 0 {
			p.sb.WriteString("::")
			fieldsString(p, t.statics)
		}

	case *Instance:
		if t.Base.Name == FunctionTypeName && t.Base.variadic && len(t.Args) > 0 {
			params, ret := FunctionParts(t)
			p.sb.WriteByte('(')
			for i, param := range params {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				typeString(p, param)
			}
			p.sb.WriteString(") -> ")
			typeString(p, ret)
			return
		}
		p.sb.WriteString(t.Base.Name)
		if len(t.Args) == 0 {
			return
		}
		p.sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, arg)
		}
		p.sb.WriteByte('>')
	}
}

func fieldsString(p *typePrinter, fields *PropertySpec) {
	p.sb.WriteByte('{')
	i := 0
	fields.Range(func(name string, t Type) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(name)
		p.sb.WriteByte(':')
		typeString(p, t)
		i++
		return true
	})
	p.sb.WriteByte('}')
}
