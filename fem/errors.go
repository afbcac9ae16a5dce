// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// SingularSystemError indicates a structurally unstable model: the factored
// stiffness matrix hit a (near) zero pivot. The offending equations are
// mapped back to node ids and DOF keys so the caller can point at the
// mechanism instead of printing a bare matrix index.
type SingularSystemError struct {
	Eqs   []int    // global equation numbers with zero pivots
	Nodes []int    // node ids owning those equations
	Keys  []string // DOF keys, e.g. "uy", "rz"
}

// Error implements the error interface
func (e *SingularSystemError) Error() string {
	if len(e.Nodes) == 0 {
		return "singular system: stiffness matrix cannot be factored"
	}
	s := "singular system: unconstrained or mechanism DOFs at"
	for i := range e.Nodes {
		s += io.Sf(" node %d (%s)", e.Nodes[i], e.Keys[i])
	}
	return s
}

// NumericPrecisionWarning flags an ill-conditioned but solvable system, e.g.
// from extreme stiffness ratios between neighbouring members. The solve
// proceeds; results carry the warning.
type NumericPrecisionWarning struct {
	ConditionRatio float64 // max/min pivot magnitude of the factorization
}

// Warning renders the warning text
func (w *NumericPrecisionWarning) Warning() string {
	return io.Sf("ill-conditioned system: pivot ratio %.3e exceeds threshold; results may lose precision", w.ConditionRatio)
}
