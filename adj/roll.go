// Copyright 2021 The SU2-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adj

// This file holds the store-wide boundary helpers. The per-point
// snapshot primitives in variables.go remain the authoritative
// operations; these helpers only loop them over all points so a
// driver has one call per subiteration/step boundary instead of a
// per-point loop it can misorder.

// BeginBGSIteration marks the start of a BGS subiteration: the live
// adjoint and mesh-adjoint solutions of every point become the
// previous-subiteration values the outer loop will diff against.
func (o *Variables) BeginBGSIteration() {
	for ip := 0; ip < o.Npoint; ip++ {
		o.SnapshotBGS(ip)
		o.SnapshotBGSGeometry(ip)
	}
}

// CommitTimeStep accepts the current physical time step: the old
// mesh-adjoint solution is refreshed for every point and, in
// time-accurate runs, the dual-time derivative history advances one
// slot (the current term stays in place and may then be overwritten
// by the next step). Rejected steps simply never call this.
func (o *Variables) CommitTimeStep() {
	for ip := 0; ip < o.Npoint; ip++ {
		o.SnapshotOldGeometry(ip)
	}
	if !o.DualTime {
		return
	}
	der, derN := o.fields[DualTimeDer], o.fields[DualTimeDerN]
	for ip := 0; ip < o.Npoint; ip++ {
		derN.CopyPoint(ip, der)
	}
}
