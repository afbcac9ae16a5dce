// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Options configures one linear solve
type Options struct {
	Analysis AnalysisType

	// load selection: a single case, a single combination, or neither
	// (all cases at factor one)
	CaseID  int
	ComboID int

	// GeometricNonlinear requests second-order effects, which the linear
	// engine does not provide; setting it is a validation error rather
	// than a silently linear answer
	GeometricNonlinear bool

	LinSolName    string  // linear solver name; "" selects "ldlt"
	Nstations     int     // station count per beam; <2 selects 21
	PivotTol      float64 // relative zero-pivot threshold; 0 selects 1e-12
	CondThreshold float64 // pivot-ratio warning threshold; 0 selects 1e12
}

// defaults fills zero-valued options
func (o *Options) defaults() {
	if o.LinSolName == "" {
		o.LinSolName = "ldlt"
	}
	if o.Nstations < 2 {
		o.Nstations = 21
	}
	if o.PivotTol == 0 {
		o.PivotTol = 1e-12
	}
	if o.CondThreshold == 0 {
		o.CondThreshold = 1e12
	}
}

// factors resolves the load selection into per-case factors
func factors(m *inp.Model, opts *Options) (map[int]float64, error) {
	f := make(map[int]float64)
	switch {
	case opts.ComboID != 0:
		cb := m.Combination(opts.ComboID)
		if cb == nil {
			return nil, inp.Valerr("missing-combination", "combination %d does not exist", opts.ComboID)
		}
		for cid, v := range cb.Factors {
			f[cid] = v
		}
	case opts.CaseID != 0:
		if m.LoadCase(opts.CaseID) == nil {
			return nil, inp.Valerr("missing-case", "load case %d does not exist", opts.CaseID)
		}
		f[opts.CaseID] = 1
	default:
		for _, lc := range m.Cases {
			f[lc.ID] = 1
		}
	}
	return f, nil
}

// Solve runs one linear analysis on the model: validate, number equations,
// assemble, eliminate supports, factorize, back-substitute and post-process.
// The model is not mutated; reactive callers pass a Snapshot.
func Solve(m *inp.Model, opts Options) (*Result, error) {
	opts.defaults()
	if !opts.Analysis.Valid() {
		return nil, inp.Valerr("bad-analysis", "unknown analysis type %q", opts.Analysis)
	}
	if opts.GeometricNonlinear {
		return nil, inp.Valerr("unsupported", "geometric nonlinear analysis is not implemented")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	fac, err := factors(m, &opts)
	if err != nil {
		return nil, err
	}

	// domain and loads
	dom, err := NewDomain(&m.Mesh, opts.Analysis)
	if err != nil {
		return nil, err
	}
	for _, lc := range m.Cases {
		if f, ok := fac[lc.ID]; ok {
			dom.ApplyCase(lc, f)
		}
	}
	dom.Assemble()

	res := &Result{
		Analysis:    opts.Analysis,
		Version:     m.Version,
		NodeIDOrder: dom.NodeIDs,
	}

	// zero-stiffness equations: loaded ones are mechanisms; unloaded ones
	// (e.g. drilling rotations in a fully hinged truss, or nodes outside
	// the active analysis) are restrained automatically
	var mech []int
	for eq := 0; eq < dom.Ny; eq++ {
		if dom.Pres[eq] || dom.Kfull[eq][eq] != 0 {
			continue
		}
		if dom.F[eq] != 0 {
			mech = append(mech, eq)
			continue
		}
		dom.Pres[eq] = true
	}
	if len(mech) > 0 {
		return nil, singularErr(dom, mech)
	}

	// reduced system
	free := make([]int, 0, dom.Ny)
	for eq := 0; eq < dom.Ny; eq++ {
		if !dom.Pres[eq] {
			free = append(free, eq)
		}
	}
	nf := len(free)
	if nf == 0 && dom.Ny > 0 {
		// fully restrained model: all displacements are zero
		res.Displace = make([]float64, dom.Ny)
		dom.recoverReactions(res, res.Displace)
		dom.postprocess(res, res.Displace, opts.Nstations)
		return res, nil
	}
	kff := la.MatAlloc(nf, nf)
	ff := make([]float64, nf)
	for i, I := range free {
		ff[i] = dom.F[I]
		for j, J := range free {
			kff[i][j] = dom.Kfull[I][J]
		}
	}

	// factorize and solve
	sol := GetLinSol(opts.LinSolName)
	zeroPivs, condRatio, err := sol.Fact(kff, opts.PivotTol)
	if err != nil {
		glob := make([]int, len(zeroPivs))
		for i, p := range zeroPivs {
			glob[i] = free[p]
		}
		return nil, singularErr(dom, glob)
	}
	if condRatio > opts.CondThreshold {
		w := &NumericPrecisionWarning{ConditionRatio: condRatio}
		io.Pfyel("%s\n", w.Warning())
		res.Warnings = append(res.Warnings, w.Warning())
	}
	uf := make([]float64, nf)
	sol.Solve(uf, ff)

	// scatter to the full vector; prescribed DOFs stay zero
	u := make([]float64, dom.Ny)
	for i, I := range free {
		u[I] = uf[i]
	}
	res.Displace = u

	dom.recoverReactions(res, u)
	dom.postprocess(res, u, opts.Nstations)
	return res, nil
}

// singularErr maps zero-pivot equations to node/DOF diagnostics
func singularErr(dom *Domain, eqs []int) *SingularSystemError {
	e := &SingularSystemError{Eqs: eqs}
	for _, eq := range eqs {
		nid, key := dom.NodeOfEq(eq)
		e.Nodes = append(e.Nodes, nid)
		e.Keys = append(e.Keys, key)
	}
	return e
}

// recoverReactions computes r = K·u - F at supported nodes and the elastic
// forces -k·u at spring-supported nodes
func (o *Domain) recoverReactions(res *Result, u []float64) {
	r := make([]float64, o.Ny)
	la.SpMatVecMulAdd(r, 1, o.Kt.ToMatrix(nil), u) // r += K * u
	for eq := 0; eq < o.Ny; eq++ {
		r[eq] -= o.F[eq]
	}

	ndof := o.Analysis.Ndof()
	res.Reactions = make(map[int][]float64)
	for _, n := range o.Msh.Nodes {
		eq := o.eqOf[n.ID]
		var comps []float64
		hasAny := false
		for d := 0; d < ndof; d++ {
			v := 0.0
			if o.Pres[eq+d] {
				v = r[eq+d]
				hasAny = true
			} else if o.Springs[eq+d] != 0 {
				v = -o.Springs[eq+d] * u[eq+d]
				hasAny = true
			}
			comps = append(comps, v)
		}
		if hasAny && n.Constraints.Any() || n.Springs != nil && hasAny {
			res.Reactions[n.ID] = comps
		}
	}

	// drop numeric dust so perfectly unloaded supports report clean zeros
	for _, comps := range res.Reactions {
		for i, v := range comps {
			if math.Abs(v) < 1e-9 {
				comps[i] = 0
			}
		}
	}
}
