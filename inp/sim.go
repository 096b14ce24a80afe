// Copyright 2021 The SU2-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for the adjoint run
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	DualTime bool   `json:"dualtime"` // time-accurate adjoint: keep dual-time derivative history
	ShowInfo bool   `json:"showinfo"` // print run information after reading input
}

// AdjointData holds the shape and initialisation of the adjoint state
type AdjointData struct {
	Npoint int       `json:"npoint"` // number of mesh points owned by this partition
	Ndim   int       `json:"ndim"`   // number of spatial dimensions: 2 or 3
	Nvar   int       `json:"nvar"`   // number of solution variables
	Sol0   []float64 `json:"sol0"`   // initial adjoint guess; empty means zeros
}

// Simulation holds one adjoint run definition read from a .sim file
type Simulation struct {

	// input
	Data    Data        `json:"data"`    // global data
	Adjoint AdjointData `json:"adjoint"` // adjoint state definition

	// derived
	Key         string // simulation key; e.g. "adjwing" or "adjwing-alias"
	GoroutineId int    // id of goroutine to avoid race problems
}

// ReadSim reads all run data from a .sim JSON file and checks it
func ReadSim(simfilepath, alias string, goroutineId int) *Simulation {

	// new sim
	var o Simulation
	o.GoroutineId = goroutineId

	// read file
	b := io.ReadFile(simfilepath)

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)
	if alias != "" {
		o.Key += "-" + alias
	}

	// check adjoint data
	a := &o.Adjoint
	if a.Npoint < 1 {
		chk.Panic("ReadSim: npoint must be at least 1. npoint=%d is invalid", a.Npoint)
	}
	if a.Ndim != 2 && a.Ndim != 3 {
		chk.Panic("ReadSim: ndim must be 2 or 3. ndim=%d is invalid", a.Ndim)
	}
	if a.Nvar < 1 {
		chk.Panic("ReadSim: nvar must be at least 1. nvar=%d is invalid", a.Nvar)
	}
	if len(a.Sol0) != 0 && len(a.Sol0) != a.Nvar {
		chk.Panic("ReadSim: sol0 must have nvar=%d components. len(sol0)=%d is invalid", a.Nvar, len(a.Sol0))
	}

	// show info
	if o.Data.ShowInfo && o.GoroutineId == 0 {
		io.Pf("%v: npoint=%d ndim=%d nvar=%d dualtime=%v\n", o.Key, a.Npoint, a.Ndim, a.Nvar, o.Data.DualTime)
	}
	return &o
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
