// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// gauss2 holds the 2-point Gauss-Legendre abscissae (weights are 1)
var gauss2 = []float64{-0.5773502691896257, 0.5773502691896257}

// Qua4 is the 4-node isoparametric quadrilateral for plane stress / plane
// strain, integrated with a 2x2 Gauss rule. Local DOFs: [u1 v1 ... u4 v4],
// nodes counterclockwise.
type Qua4 struct {
	X, Y      [4]float64  // nodal coordinates
	Thickness float64     // out-of-plane thickness
	D         [][]float64 // elasticity matrix
	K         [][]float64 // global K matrix [8][8]
	Umap      []int       // assembly map

	f0   []float64 // equivalent nodal loads
	eps0 []float64 // restrained thermal strain

	// scratchpad
	b [][]float64 // strain-displacement matrix @ current point
}

// natural coordinates of the four corners
var qua4Xi = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// NewQua4 returns a new plane quadrilateral
func NewQua4(x, y [4]float64, d [][]float64, thickness float64) (*Qua4, error) {
	o := &Qua4{X: x, Y: y, D: d, Thickness: thickness}
	o.K = la.MatAlloc(8, 8)
	o.b = la.MatAlloc(3, 8)
	o.f0 = make([]float64, 8)
	db := la.MatAlloc(3, 8)
	for _, xi := range gauss2 {
		for _, eta := range gauss2 {
			detJ, err := o.bmatrix(xi, eta)
			if err != nil {
				return nil, err
			}
			la.MatMul(db, 1, d, o.b)
			f := thickness * detJ
			for i := 0; i < 8; i++ {
				for j := 0; j < 8; j++ {
					for k := 0; k < 3; k++ {
						o.K[i][j] += f * o.b[k][i] * db[k][j]
					}
				}
			}
		}
	}
	return o, nil
}

// bmatrix evaluates the strain-displacement matrix at (xi,eta) and returns
// the Jacobian determinant
func (o *Qua4) bmatrix(xi, eta float64) (detJ float64, err error) {

	// shape function derivatives in natural coordinates
	var dNdXi, dNdEta [4]float64
	for i := 0; i < 4; i++ {
		xii, etai := qua4Xi[i][0], qua4Xi[i][1]
		dNdXi[i] = xii * (1 + etai*eta) / 4
		dNdEta[i] = etai * (1 + xii*xi) / 4
	}

	// Jacobian
	var j00, j01, j10, j11 float64
	for i := 0; i < 4; i++ {
		j00 += dNdXi[i] * o.X[i]
		j01 += dNdXi[i] * o.Y[i]
		j10 += dNdEta[i] * o.X[i]
		j11 += dNdEta[i] * o.Y[i]
	}
	detJ = j00*j11 - j01*j10
	if detJ < 1e-14 {
		return 0, chk.Err("quadrilateral is degenerate or clockwise (detJ=%g)", detJ)
	}

	// cartesian derivatives and B
	for i := 0; i < 4; i++ {
		dNdx := (j11*dNdXi[i] - j01*dNdEta[i]) / detJ
		dNdy := (-j10*dNdXi[i] + j00*dNdEta[i]) / detJ
		o.b[0][2*i] = dNdx
		o.b[0][2*i+1] = 0
		o.b[1][2*i] = 0
		o.b[1][2*i+1] = dNdy
		o.b[2][2*i] = dNdy
		o.b[2][2*i+1] = dNdx
	}
	return
}

// AddThermal accumulates the equivalent nodal load of a restrained thermal
// strain: f = Σ Bt D eps0 t detJ over the Gauss points
func (o *Qua4) AddThermal(eps0 []float64) {
	o.eps0 = eps0
	s := make([]float64, 3)
	la.MatVecMul(s, 1, o.D, eps0)
	for _, xi := range gauss2 {
		for _, eta := range gauss2 {
			detJ, _ := o.bmatrix(xi, eta)
			f := o.Thickness * detJ
			for i := 0; i < 8; i++ {
				for k := 0; k < 3; k++ {
					o.f0[i] += f * o.b[k][i] * s[k]
				}
			}
		}
	}
}

// AddEdgeLoad accumulates a linearly varying in-plane traction [N/m] on the
// element edge between local nodes n1 and n2=(n1+1)%4, consistent with the
// linear edge shapes
func (o *Qua4) AddEdgeLoad(n1 int, qxa, qxb, qya, qyb float64) {
	n2 := (n1 + 1) % 4
	dx := o.X[n2] - o.X[n1]
	dy := o.Y[n2] - o.Y[n1]
	l := math.Hypot(dx, dy)
	// ∫ N1 q = l(2qa+qb)/6, ∫ N2 q = l(qa+2qb)/6
	o.f0[2*n1] += l * (2*qxa + qxb) / 6
	o.f0[2*n1+1] += l * (2*qya + qyb) / 6
	o.f0[2*n2] += l * (qxa + 2*qxb) / 6
	o.f0[2*n2+1] += l * (qya + 2*qyb) / 6
}

// F returns the accumulated equivalent nodal load vector
func (o *Qua4) F() []float64 { return o.f0 }

// Stress recovers the element stress [sx sy txy] at the element center
func (o *Qua4) Stress(uglob []float64) []float64 {
	ue := make([]float64, 8)
	for i, I := range o.Umap {
		ue[i] = uglob[I]
	}
	o.bmatrix(0, 0)
	eps := make([]float64, 3)
	la.MatVecMul(eps, 1, o.b, ue)
	if o.eps0 != nil {
		for k := 0; k < 3; k++ {
			eps[k] -= o.eps0[k]
		}
	}
	sig := make([]float64, 3)
	la.MatVecMul(sig, 1, o.D, eps)
	return sig
}
