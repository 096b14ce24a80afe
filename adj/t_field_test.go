// Copyright 2021 The SU2-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adj

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkPanic fails the test if fcn does not panic
func checkPanic(tst *testing.T, msg string, fcn func()) {
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("%s: panic should have happened", msg)
		} else if chk.Verbose {
			io.Pf("OK. %s panicked with: %v\n", msg, err)
		}
	}()
	fcn()
}

func Test_field01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field01. write/read round trip")

	f := NewField("SolutionBgs", VarAxis, 3, 4)
	chk.IntAssert(f.Npoint(), 3)
	chk.IntAssert(f.Width(), 4)

	// scalar round trip for every slot
	for ip := 0; ip < 3; ip++ {
		for j := 0; j < 4; j++ {
			v := float64(10*ip + j)
			f.Set(ip, j, v)
			chk.Float64(tst, io.Sf("f(%d,%d)", ip, j), 1e-17, f.Get(ip, j), v)
		}
	}

	// batched write copies the input
	vec := []float64{1, 2, 3, 4}
	f.SetVec(1, vec)
	vec[0] = -100
	chk.Array(tst, "f(1,:)", 1e-17, f.GetVec(1), []float64{1, 2, 3, 4})

	// batched read returns the live row
	row := f.GetVec(1)
	row[3] = 44
	chk.Float64(tst, "f(1,3) after view write", 1e-17, f.Get(1, 3), 44)
}

func Test_field02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field02. point copy and fill")

	a := NewField("SolutionGeom", DimAxis, 2, 3)
	b := NewField("SolutionGeomOld", DimAxis, 2, 3)
	a.SetVec(0, []float64{1, 2, 3})
	a.SetVec(1, []float64{4, 5, 6})

	b.CopyPoint(1, a)
	chk.Array(tst, "b(0,:)", 1e-17, b.GetVec(0), []float64{0, 0, 0})
	chk.Array(tst, "b(1,:)", 1e-17, b.GetVec(1), []float64{4, 5, 6})

	// copy is decoupled from later mutation of the source
	a.Set(1, 0, -1)
	chk.Array(tst, "b(1,:) after src write", 1e-17, b.GetVec(1), []float64{4, 5, 6})

	a.Fill(7)
	chk.Deep2(tst, "a filled", 1e-17, a.V, [][]float64{{7, 7, 7}, {7, 7, 7}})
}

func Test_field03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("field03. out-of-range and width-mismatch panics")

	f := NewField("Sensitivity", DimAxis, 3, 2)
	g := NewField("CrossTermDer", VarAxis, 3, 2)
	h := NewField("GeomCrossTermDer", DimAxis, 4, 2)

	checkPanic(tst, "point == npoint", func() { f.Get(3, 0) })
	checkPanic(tst, "negative point", func() { f.Get(-1, 0) })
	checkPanic(tst, "component == width", func() { f.Set(0, 2, 1) })
	checkPanic(tst, "vector too long", func() { f.SetVec(0, []float64{1, 2, 3}) })
	checkPanic(tst, "vector too short", func() { f.SetVec(0, []float64{1}) })
	checkPanic(tst, "view past range", func() { f.GetVec(3) })
	checkPanic(tst, "copy across axes", func() { f.CopyPoint(0, g) })
	checkPanic(tst, "copy across npoint", func() { f.CopyPoint(0, h) })
	checkPanic(tst, "empty field", func() { NewField("bad", VarAxis, 0, 2) })
}
