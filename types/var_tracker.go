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

// VarTracker allocates type-variables and type identities, and tracks allocations. All types
// which may be unified with each other should be allocated by the same tracker.
type VarTracker struct {
	NextId     int
	nextTypeId int
	count      int
	blocks     [][]Var
	block      []Var
}

// Create a new tracker.
func NewVarTracker() *VarTracker { return &VarTracker{} }

func (vt *VarTracker) Count() int { return vt.count }

// NextTypeId allocates an identity for a base type.
func (vt *VarTracker) NextTypeId() int {
	vt.nextTypeId++
	return vt.nextTypeId
}

// FlattenLinks compresses every chain of linked type-variables allocated by the tracker.
func (vt *VarTracker) FlattenLinks() {
	for _, b := range vt.blocks {
		for i := range b {
			b[i].Flatten()
		}
	}
}

// Create a new anonymous type-variable.
func (vt *VarTracker) New() *Var {
	if len(vt.block) == 0 {
		vt.block = make([]Var, 8)
		vt.blocks = append(vt.blocks, vt.block)
	}
	tv := &vt.block[0]
	vt.block = vt.block[1:]
	tv.id, tv.tracker = vt.NextId, vt
	vt.NextId, vt.count = vt.NextId+1, vt.count+1
	return tv
}

// Create a new labeled type-variable.
func (vt *VarTracker) NewNamed(name string) *Var {
	tv := vt.New()
	tv.name = name
	return tv
}

// Create a list of new anonymous type-variables.
func (vt *VarTracker) NewList(count int) []Type {
	vars := make([]Type, count)
	for i := range vars {
		vars[i] = vt.New()
	}
	return vars
}
