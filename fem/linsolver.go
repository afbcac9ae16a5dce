// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// LinSol solves the symmetric reduced system K·u = f. Implementations must
// report zero pivots through their factorization error so the caller can map
// them back to model DOFs.
type LinSol interface {

	// Fact factorizes the matrix in place. pivTol scales the relative
	// zero-pivot threshold. Returns the indices of (near) zero pivots, if
	// any, and the pivot magnitude ratio for conditioning diagnostics.
	Fact(a [][]float64, pivTol float64) (zeroPivs []int, condRatio float64, err error)

	// Solve performs back-substitution after a successful Fact
	Solve(x, b []float64)
}

// linsolvers holds the available solver allocators
var linsolvers = make(map[string]func() LinSol)

// GetLinSol returns a new named linear solver
func GetLinSol(name string) LinSol {
	alloc, ok := linsolvers[name]
	if !ok {
		chk.Panic("linear solver %q is not available", name)
	}
	return alloc()
}

func init() {
	linsolvers["ldlt"] = func() LinSol { return new(ldltSolver) }
}

// ldltSolver factorizes a dense symmetric matrix as L·D·Lᵀ without pivoting.
// Stiffness matrices of stable models are positive definite, so a vanishing
// diagonal during elimination is exactly the structural-mechanism signal the
// caller wants; permuting it away would only obscure which DOF is loose.
type ldltSolver struct {
	n int
	l [][]float64 // unit lower factor
	d []float64   // diagonal of D
}

// Fact performs the LDLT decomposition
func (o *ldltSolver) Fact(a [][]float64, pivTol float64) (zeroPivs []int, condRatio float64, err error) {
	n := len(a)
	o.n = n
	o.l = make([][]float64, n)
	o.d = make([]float64, n)
	for i := 0; i < n; i++ {
		o.l[i] = make([]float64, n)
	}
	if n == 0 {
		return
	}

	// absolute pivot threshold relative to the largest diagonal entry
	maxDiag := 0.0
	for i := 0; i < n; i++ {
		if m := math.Abs(a[i][i]); m > maxDiag {
			maxDiag = m
		}
	}
	if maxDiag == 0 {
		maxDiag = 1
	}
	tol := pivTol * maxDiag

	minPiv, maxPiv := math.MaxFloat64, 0.0
	for j := 0; j < n; j++ {
		dj := a[j][j]
		for k := 0; k < j; k++ {
			dj -= o.l[j][k] * o.l[j][k] * o.d[k]
		}
		if math.Abs(dj) <= tol {
			zeroPivs = append(zeroPivs, j)
			// keep eliminating with a unit pivot to catch further mechanisms
			dj = maxDiag
		}
		o.d[j] = dj
		if m := math.Abs(dj); m > 0 {
			if m < minPiv {
				minPiv = m
			}
			if m > maxPiv {
				maxPiv = m
			}
		}
		o.l[j][j] = 1
		for i := j + 1; i < n; i++ {
			lij := a[i][j]
			for k := 0; k < j; k++ {
				lij -= o.l[i][k] * o.l[j][k] * o.d[k]
			}
			o.l[i][j] = lij / dj
		}
	}
	if minPiv > 0 {
		condRatio = maxPiv / minPiv
	}
	if len(zeroPivs) > 0 {
		err = chk.Err("LDLT factorization found %d zero pivot(s)", len(zeroPivs))
	}
	return
}

// Solve computes x from L·D·Lᵀ·x = b
func (o *ldltSolver) Solve(x, b []float64) {
	n := o.n

	// forward: L y = b
	for i := 0; i < n; i++ {
		x[i] = b[i]
		for k := 0; k < i; k++ {
			x[i] -= o.l[i][k] * x[k]
		}
	}

	// diagonal: D z = y
	for i := 0; i < n; i++ {
		x[i] /= o.d[i]
	}

	// backward: Lᵀ x = z
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			x[i] -= o.l[k][i] * x[k]
		}
	}
}
