// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Tri3 is the constant-strain triangle for plane stress / plane strain.
// Local DOFs: [u1 v1 u2 v2 u3 v3], nodes counterclockwise.
type Tri3 struct {
	X, Y      [3]float64  // nodal coordinates
	Thickness float64     // out-of-plane thickness
	D         [][]float64 // elasticity matrix
	Area      float64     // (derived) triangle area
	B         [][]float64 // strain-displacement matrix (constant)
	K         [][]float64 // global K matrix [6][6]
	Umap      []int       // assembly map

	f0   []float64 // equivalent nodal loads (thermal)
	eps0 []float64 // restrained thermal strain
}

// NewTri3 returns a new constant-strain triangle. Degenerate (zero-area or
// clockwise) triangles are rejected.
func NewTri3(x, y [3]float64, d [][]float64, thickness float64) (*Tri3, error) {
	o := &Tri3{X: x, Y: y, D: d, Thickness: thickness}
	a2 := (x[1]-x[0])*(y[2]-y[0]) - (x[2]-x[0])*(y[1]-y[0])
	if a2 < 1e-12 {
		return nil, chk.Err("triangle is degenerate or clockwise (2A=%g)", a2)
	}
	o.Area = a2 / 2

	// B is constant over the element
	o.B = la.MatAlloc(3, 6)
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		k := (i + 2) % 3
		bi := (y[j] - y[k]) / a2
		ci := (x[k] - x[j]) / a2
		o.B[0][2*i] = bi
		o.B[1][2*i+1] = ci
		o.B[2][2*i] = ci
		o.B[2][2*i+1] = bi
	}

	// K = t A Bt D B
	o.K = la.MatAlloc(6, 6)
	db := la.MatAlloc(3, 6)
	la.MatMul(db, 1, d, o.B)
	f := thickness * o.Area
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 3; k++ {
				o.K[i][j] += f * o.B[k][i] * db[k][j]
			}
		}
	}
	o.f0 = make([]float64, 6)
	return o, nil
}

// AddThermal accumulates the equivalent nodal load of a restrained thermal
// strain: f = t A Bt D eps0
func (o *Tri3) AddThermal(eps0 []float64) {
	o.eps0 = eps0
	s := make([]float64, 3)
	la.MatVecMul(s, 1, o.D, eps0)
	f := o.Thickness * o.Area
	for i := 0; i < 6; i++ {
		for k := 0; k < 3; k++ {
			o.f0[i] += f * o.B[k][i] * s[k]
		}
	}
}

// F returns the accumulated equivalent nodal load vector
func (o *Tri3) F() []float64 { return o.f0 }

// Stress recovers the (constant) element stress [sx sy txy] from the global
// solution, subtracting the restrained thermal strain
func (o *Tri3) Stress(uglob []float64) []float64 {
	ue := make([]float64, 6)
	for i, I := range o.Umap {
		ue[i] = uglob[I]
	}
	eps := make([]float64, 3)
	la.MatVecMul(eps, 1, o.B, ue)
	if o.eps0 != nil {
		for k := 0; k < 3; k++ {
			eps[k] -= o.eps0[k]
		}
	}
	sig := make([]float64, 3)
	la.MatVecMul(sig, 1, o.D, eps)
	return sig
}

// VonMises returns the equivalent stress of an in-plane state. For plane
// strain the out-of-plane component sz = nu (sx + sy) enters the deviator.
func VonMises(sig []float64, nu float64, planeStrain bool) float64 {
	sx, sy, txy := sig[0], sig[1], sig[2]
	if !planeStrain {
		return math.Sqrt(sx*sx - sx*sy + sy*sy + 3*txy*txy)
	}
	sz := nu * (sx + sy)
	return math.Sqrt(((sx-sy)*(sx-sy)+(sy-sz)*(sy-sz)+(sz-sx)*(sz-sx))/2.0 + 3*txy*txy)
}
