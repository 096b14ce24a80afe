// Copyright 2021 The SU2-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adj

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Axis selects the per-point width of a field: solution variables or
// spatial dimensions. Carrying the axis on the field keeps nvar-wide
// and ndim-wide quantities from ever aliasing each other.
type Axis int

const (
	VarAxis Axis = iota // width == nvar (number of solution variables)
	DimAxis             // width == ndim (number of spatial dimensions)
)

// Field holds one scalar quantity per (point, component) pair with a
// fixed [npoint][width] shape. Rows are allocated once at construction
// and never resized. GetVec returns the live row; SetVec copies in.
type Field struct {
	Name string      // name of quantity; e.g. "Sensitivity"
	Axis Axis        // per-point width axis
	V    [][]float64 // values [npoint][width]
}

// NewField allocates a field with npoint points and width components
// per point, all initialised to zero
func NewField(name string, axis Axis, npoint, width int) *Field {
	if npoint < 1 || width < 1 {
		chk.Panic("field %q: npoint=%d and width=%d must be positive", name, npoint, width)
	}
	return &Field{Name: name, Axis: axis, V: utl.Alloc(npoint, width)}
}

// Npoint returns the number of points
func (o *Field) Npoint() int { return len(o.V) }

// Width returns the number of components per point
func (o *Field) Width() int { return len(o.V[0]) }

// Get returns the value of component j @ point ip
func (o *Field) Get(ip, j int) float64 {
	o.check(ip, j)
	return o.V[ip][j]
}

// Set sets the value of component j @ point ip
func (o *Field) Set(ip, j int, val float64) {
	o.check(ip, j)
	o.V[ip][j] = val
}

// GetVec returns the component vector of point ip. The returned slice
// is the live row, not a copy.
func (o *Field) GetVec(ip int) []float64 {
	o.checkip(ip)
	return o.V[ip]
}

// SetVec copies vec into the components of point ip. len(vec) must
// equal the field's width.
func (o *Field) SetVec(ip int, vec []float64) {
	o.checkip(ip)
	if len(vec) != len(o.V[ip]) {
		chk.Panic("field %q: vector with %d components does not match width=%d", o.Name, len(vec), len(o.V[ip]))
	}
	copy(o.V[ip], vec)
}

// CopyPoint copies the components of point ip from src into this
// field. Both fields must have the same shape and axis.
func (o *Field) CopyPoint(ip int, src *Field) {
	if src.Axis != o.Axis || len(src.V) != len(o.V) || len(src.V[0]) != len(o.V[0]) {
		chk.Panic("field %q: cannot copy point values from field %q with different shape", o.Name, src.Name)
	}
	o.checkip(ip)
	copy(o.V[ip], src.V[ip])
}

// Fill sets all components of all points to val
func (o *Field) Fill(val float64) {
	for _, row := range o.V {
		for j := range row {
			row[j] = val
		}
	}
}

// check panics if point index ip or component index j is out of range
func (o *Field) check(ip, j int) {
	o.checkip(ip)
	if j < 0 || j >= len(o.V[ip]) {
		chk.Panic("field %q: component index %d is out of range [0,%d)", o.Name, j, len(o.V[ip]))
	}
}

// checkip panics if point index ip is out of range
func (o *Field) checkip(ip int) {
	if ip < 0 || ip >= len(o.V) {
		chk.Panic("field %q: point index %d is out of range [0,%d)", o.Name, ip, len(o.V))
	}
}
