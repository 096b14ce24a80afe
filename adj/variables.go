// Copyright 2021 The SU2-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package adj implements the nodal state of the discrete-adjoint
// solver: the adjoint solution and its snapshots for the outer
// block-Gauss-Seidel (BGS) coupling loop, the converged primal
// (direct) state, the dual-time derivative history, the cross-term
// coupling derivatives exchanged between physics subsystems, and the
// sensitivities of the target functional w.r.t. mesh coordinates.
//
// The store is a plain data structure: no goroutines, no locking.
// Operations on different points never conflict and may run
// concurrently (one goroutine per sub-domain); operations on the same
// point must be sequenced by the caller, snapshots before mutations.
package adj

import (
	"encoding/json"
	goio "io"

	"github.com/lennaertttol/SU2/inp"

	"github.com/cpmech/gosl/chk"
)

// FieldId identifies one tracked per-point quantity
type FieldId int

const (
	Sensitivity          FieldId = iota // dJ/dX: derivative of target functional w.r.t. coordinates [ndim]
	SolutionDirect                      // converged primal solution [nvar]
	GeometryDirect                      // converged primal coordinates [ndim]
	DualTimeDer                         // current dual-time derivative term [nvar]
	DualTimeDerN                        // dual-time derivative term of the previous physical step [nvar]
	CrossTermDer                        // generic cross-physics coupling derivative [nvar]
	GeomCrossTermDer                    // mesh-adjoint cross-term derivative [ndim]
	GeomCrossTermDerFlow                // mesh cross-term derivative from the flow solution [ndim]
	SolutionGeom                        // mesh-adjoint solution [ndim]
	SolutionGeomOld                     // mesh-adjoint solution @ start of current physical step [ndim]
	SolutionBgs                         // live adjoint solution in the current BGS subiteration [nvar]
	SolutionBgsK                        // adjoint solution @ entry of current BGS subiteration [nvar]
	SolutionGeomBgsK                    // mesh-adjoint solution @ entry of current BGS subiteration [ndim]
	nfields                             // number of fields
)

// fieldNames maps field ids to names
var fieldNames = [nfields]string{
	"Sensitivity",
	"SolutionDirect",
	"GeometryDirect",
	"DualTimeDer",
	"DualTimeDerN",
	"CrossTermDer",
	"GeomCrossTermDer",
	"GeomCrossTermDerFlow",
	"SolutionGeom",
	"SolutionGeomOld",
	"SolutionBgs",
	"SolutionBgsK",
	"SolutionGeomBgsK",
}

// fieldAxes maps field ids to their per-point width axis
var fieldAxes = [nfields]Axis{
	DimAxis, // Sensitivity
	VarAxis, // SolutionDirect
	DimAxis, // GeometryDirect
	VarAxis, // DualTimeDer
	VarAxis, // DualTimeDerN
	VarAxis, // CrossTermDer
	DimAxis, // GeomCrossTermDer
	DimAxis, // GeomCrossTermDerFlow
	DimAxis, // SolutionGeom
	DimAxis, // SolutionGeomOld
	VarAxis, // SolutionBgs
	VarAxis, // SolutionBgsK
	DimAxis, // SolutionGeomBgsK
}

// Variables holds all per-point adjoint quantities of one run. The
// shape (npoint, ndim, nvar) is fixed at construction; rows are never
// resized and points are never added or removed.
type Variables struct {
	Npoint   int  // number of points owned by this partition
	Ndim     int  // number of spatial dimensions
	Nvar     int  // number of solution variables
	DualTime bool // time-accurate run: dual-time derivative history is allocated

	fields [nfields]*Field
}

// New allocates the store from a run definition
func New(sim *inp.Simulation) *Variables {
	a := &sim.Adjoint
	return NewVariables(a.Sol0, a.Npoint, a.Ndim, a.Nvar, sim.Data.DualTime)
}

// NewVariables allocates the store with a fixed shape. sol0 is the
// initial adjoint guess seeding the live solution (empty means zeros);
// all other fields start at zero. The dual-time derivative fields are
// only allocated when dualTime is true.
func NewVariables(sol0 []float64, npoint, ndim, nvar int, dualTime bool) (o *Variables) {
	if npoint < 1 {
		chk.Panic("adjoint store needs at least one point. npoint=%d is invalid", npoint)
	}
	if ndim != 2 && ndim != 3 {
		chk.Panic("ndim must be 2 or 3. ndim=%d is invalid", ndim)
	}
	if nvar < 1 {
		chk.Panic("nvar must be positive. nvar=%d is invalid", nvar)
	}
	if len(sol0) > 0 && len(sol0) != nvar {
		chk.Panic("initial adjoint guess has %d components but nvar=%d", len(sol0), nvar)
	}
	o = &Variables{Npoint: npoint, Ndim: ndim, Nvar: nvar, DualTime: dualTime}
	for fid := FieldId(0); fid < nfields; fid++ {
		if (fid == DualTimeDer || fid == DualTimeDerN) && !dualTime {
			continue
		}
		width := nvar
		if fieldAxes[fid] == DimAxis {
			width = ndim
		}
		o.fields[fid] = NewField(fieldNames[fid], fieldAxes[fid], npoint, width)
	}
	if len(sol0) > 0 {
		for ip := 0; ip < npoint; ip++ {
			o.fields[SolutionBgs].SetVec(ip, sol0)
		}
	}
	return
}

// Field returns the field identified by fid
func (o *Variables) Field(fid FieldId) *Field {
	return o.field(fid)
}

// Get returns the value of component j of field fid @ point ip
func (o *Variables) Get(fid FieldId, ip, j int) float64 {
	return o.field(fid).Get(ip, j)
}

// Set sets the value of component j of field fid @ point ip
func (o *Variables) Set(fid FieldId, ip, j int, val float64) {
	o.field(fid).Set(ip, j, val)
}

// GetVec returns the live component vector of field fid @ point ip
func (o *Variables) GetVec(fid FieldId, ip int) []float64 {
	return o.field(fid).GetVec(ip)
}

// SetVec copies vec into the components of field fid @ point ip
func (o *Variables) SetVec(fid FieldId, ip int, vec []float64) {
	o.field(fid).SetVec(ip, vec)
}

// sensitivity ////////////////////////////////////////////////////////////////////////////////////

// SetSensitivity overwrites dJ/dX @ point ip along dimension idim.
// Contributions from multiple physics are never accumulated here;
// callers needing accumulation must read-modify-write.
func (o *Variables) SetSensitivity(ip, idim int, val float64) {
	o.field(Sensitivity).Set(ip, idim, val)
}

// GetSensitivity returns dJ/dX @ point ip along dimension idim
func (o *Variables) GetSensitivity(ip, idim int) float64 {
	return o.field(Sensitivity).Get(ip, idim)
}

// direct (primal) state //////////////////////////////////////////////////////////////////////////

// SetSolutionDirect copies the converged primal solution of point ip.
// Called once per adjoint evaluation, before the reverse sweep starts.
func (o *Variables) SetSolutionDirect(ip int, sol []float64) {
	o.field(SolutionDirect).SetVec(ip, sol)
}

// GetSolutionDirect returns the live primal solution vector of point ip
func (o *Variables) GetSolutionDirect(ip int) []float64 {
	return o.field(SolutionDirect).GetVec(ip)
}

// SetGeometryDirect copies the converged primal coordinates of point ip
func (o *Variables) SetGeometryDirect(ip int, coords []float64) {
	o.field(GeometryDirect).SetVec(ip, coords)
}

// GetGeometryDirect returns the live primal coordinate vector of point ip
func (o *Variables) GetGeometryDirect(ip int) []float64 {
	return o.field(GeometryDirect).GetVec(ip)
}

// GetGeometryDirectDim returns the primal coordinate of point ip along dimension idim
func (o *Variables) GetGeometryDirectDim(ip, idim int) float64 {
	return o.field(GeometryDirect).Get(ip, idim)
}

// dual-time derivative history ///////////////////////////////////////////////////////////////////

// SetDualTimeDer sets the current dual-time derivative term. The
// history slot is NOT rolled here; the time-stepping driver commits
// current into previous (see CommitTimeStep) only for accepted steps,
// so rejected steps cannot corrupt the history.
func (o *Variables) SetDualTimeDer(ip, ivar int, der float64) {
	o.field(DualTimeDer).Set(ip, ivar, der)
}

// GetDualTimeDer returns the current dual-time derivative term
func (o *Variables) GetDualTimeDer(ip, ivar int) float64 {
	return o.field(DualTimeDer).Get(ip, ivar)
}

// SetDualTimeDerN sets the dual-time derivative term of the previous
// physical step; an independent overwrite, as SetDualTimeDer
func (o *Variables) SetDualTimeDerN(ip, ivar int, der float64) {
	o.field(DualTimeDerN).Set(ip, ivar, der)
}

// GetDualTimeDerN returns the dual-time derivative term of the previous physical step
func (o *Variables) GetDualTimeDerN(ip, ivar int) float64 {
	return o.field(DualTimeDerN).Get(ip, ivar)
}

// cross-term derivatives /////////////////////////////////////////////////////////////////////////

// Each cross-term field is owned by exactly one physics module per BGS
// subiteration and fully rewritten by it; the store never combines
// cross terms arithmetically.

// SetCrossTermDer sets the generic cross-physics coupling derivative
func (o *Variables) SetCrossTermDer(ip, ivar int, der float64) {
	o.field(CrossTermDer).Set(ip, ivar, der)
}

// GetCrossTermDer returns the generic cross-physics coupling derivative
func (o *Variables) GetCrossTermDer(ip, ivar int) float64 {
	return o.field(CrossTermDer).Get(ip, ivar)
}

// SetGeomCrossTermDer sets the mesh-adjoint cross-term derivative
func (o *Variables) SetGeomCrossTermDer(ip, idim int, der float64) {
	o.field(GeomCrossTermDer).Set(ip, idim, der)
}

// GetGeomCrossTermDer returns the mesh-adjoint cross-term derivative
func (o *Variables) GetGeomCrossTermDer(ip, idim int) float64 {
	return o.field(GeomCrossTermDer).Get(ip, idim)
}

// SetGeomCrossTermDerFlow sets the mesh cross-term derivative coming from the flow solution
func (o *Variables) SetGeomCrossTermDerFlow(ip, idim int, der float64) {
	o.field(GeomCrossTermDerFlow).Set(ip, idim, der)
}

// GetGeomCrossTermDerFlow returns the mesh cross-term derivative coming from the flow solution
func (o *Variables) GetGeomCrossTermDerFlow(ip, idim int) float64 {
	return o.field(GeomCrossTermDerFlow).Get(ip, idim)
}

// mesh-adjoint (geometry) solution ///////////////////////////////////////////////////////////////

// SetSolutionGeom copies the mesh-adjoint solution vector of point ip
func (o *Variables) SetSolutionGeom(ip int, sol []float64) {
	o.field(SolutionGeom).SetVec(ip, sol)
}

// SetSolutionGeomVal sets one component of the mesh-adjoint solution of point ip
func (o *Variables) SetSolutionGeomVal(ip, idim int, val float64) {
	o.field(SolutionGeom).Set(ip, idim, val)
}

// GetSolutionGeom returns the mesh-adjoint solution of point ip along dimension idim
func (o *Variables) GetSolutionGeom(ip, idim int) float64 {
	return o.field(SolutionGeom).Get(ip, idim)
}

// GetOldSolutionGeom returns the mesh-adjoint solution as it stood at
// the start of the current physical time step
func (o *Variables) GetOldSolutionGeom(ip, idim int) float64 {
	return o.field(SolutionGeomOld).Get(ip, idim)
}

// BGS solution and snapshots /////////////////////////////////////////////////////////////////////

// SetBGSSolution sets one component of the live adjoint solution of point ip
func (o *Variables) SetBGSSolution(ip, ivar int, val float64) {
	o.field(SolutionBgs).Set(ip, ivar, val)
}

// GetBGSSolution returns one component of the live adjoint solution of point ip
func (o *Variables) GetBGSSolution(ip, ivar int) float64 {
	return o.field(SolutionBgs).Get(ip, ivar)
}

// GetBGSSolutionK returns the adjoint solution as it stood at entry of
// the current BGS subiteration
func (o *Variables) GetBGSSolutionK(ip, ivar int) float64 {
	return o.field(SolutionBgsK).Get(ip, ivar)
}

// GetBGSSolutionGeomK returns the mesh-adjoint solution as it stood at
// entry of the current BGS subiteration
func (o *Variables) GetBGSSolutionGeomK(ip, idim int) float64 {
	return o.field(SolutionGeomBgsK).Get(ip, idim)
}

// SnapshotBGS copies the live adjoint solution of point ip into the
// previous-subiteration slot. Must run before the solves of the new
// subiteration mutate the live solution; the store never snapshots
// implicitly.
func (o *Variables) SnapshotBGS(ip int) {
	o.field(SolutionBgsK).CopyPoint(ip, o.field(SolutionBgs))
}

// SnapshotBGSGeometry copies the live mesh-adjoint solution of point
// ip into the previous-subiteration slot
func (o *Variables) SnapshotBGSGeometry(ip int) {
	o.field(SolutionGeomBgsK).CopyPoint(ip, o.field(SolutionGeom))
}

// SnapshotOldGeometry copies the live mesh-adjoint solution of point
// ip into the old-solution slot. Time-step scoped: independent of the
// subiteration-scoped BGS snapshots.
func (o *Variables) SnapshotOldGeometry(ip int) {
	o.field(SolutionGeomOld).CopyPoint(ip, o.field(SolutionGeom))
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// GetInfo returns formatted information
func (o *Variables) GetInfo(w goio.Writer) (err error) {
	type fldinfo struct {
		Name   string `json:"name"`
		Npoint int    `json:"npoint"`
		Width  int    `json:"width"`
	}
	info := struct {
		Npoint   int       `json:"npoint"`
		Ndim     int       `json:"ndim"`
		Nvar     int       `json:"nvar"`
		DualTime bool      `json:"dualtime"`
		Fields   []fldinfo `json:"fields"`
	}{Npoint: o.Npoint, Ndim: o.Ndim, Nvar: o.Nvar, DualTime: o.DualTime}
	for _, f := range o.fields {
		if f == nil {
			continue
		}
		info.Fields = append(info.Fields, fldinfo{f.Name, f.Npoint(), f.Width()})
	}
	b, err := json.MarshalIndent(&info, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// field returns the field identified by fid; panics if fid is unknown
// or the field is not allocated in this run
func (o *Variables) field(fid FieldId) *Field {
	if fid < 0 || fid >= nfields {
		chk.Panic("field id %d is unknown", fid)
	}
	f := o.fields[fid]
	if f == nil {
		chk.Panic("field %q is not allocated in a steady run", fieldNames[fid])
	}
	return f
}
