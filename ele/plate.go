// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// PlateQuad is the 4-node MZC (Melosh-Zienkiewicz-Cheung) rectangle for
// Kirchhoff plate bending. The element must be an axis-aligned rectangle,
// which the plate-region mesher guarantees.
//
// Local DOFs per node: [w, tx, ty] with tx = ∂w/∂y and ty = -∂w/∂x (the
// rotations about the x and y axes), nodes counterclockwise from the
// bottom-left corner. Integrated with a 3x3 Gauss rule which is exact for
// the quartic shape products.
type PlateQuad struct {
	X, Y [4]float64  // nodal coordinates
	A    float64     // half-length in x
	B    float64     // half-length in y
	D    [][]float64 // flexural rigidity matrix
	K    [][]float64 // K matrix [12][12] (local = global for plates)
	Umap []int       // assembly map

	f0 []float64 // equivalent nodal loads

	// scratchpad
	b [][]float64 // curvature-displacement matrix @ current point
}

// 3-point Gauss-Legendre rule
var (
	gauss3  = []float64{-0.7745966692414834, 0, 0.7745966692414834}
	gauss3W = []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}
)

// NewPlateQuad returns a new plate bending rectangle. Non-rectangular or
// degenerate quads are rejected; plate regions only ever generate
// axis-aligned cells.
func NewPlateQuad(x, y [4]float64, d [][]float64) (*PlateQuad, error) {
	tol := 1e-9
	if math.Abs(y[1]-y[0]) > tol || math.Abs(x[3]-x[0]) > tol ||
		math.Abs(x[2]-x[1]) > tol || math.Abs(y[3]-y[2]) > tol {
		return nil, chk.Err("plate bending requires axis-aligned rectangular elements")
	}
	o := &PlateQuad{X: x, Y: y, D: d}
	o.A = (x[1] - x[0]) / 2
	o.B = (y[3] - y[0]) / 2
	if o.A < 1e-12 || o.B < 1e-12 {
		return nil, chk.Err("plate element is degenerate (%g x %g)", 2*o.A, 2*o.B)
	}
	o.K = la.MatAlloc(12, 12)
	o.b = la.MatAlloc(3, 12)
	o.f0 = make([]float64, 12)

	db := la.MatAlloc(3, 12)
	for gi, xi := range gauss3 {
		for gj, eta := range gauss3 {
			o.bmatrix(xi, eta)
			la.MatMul(db, 1, d, o.b)
			f := o.A * o.B * gauss3W[gi] * gauss3W[gj]
			for i := 0; i < 12; i++ {
				for j := 0; j < 12; j++ {
					for k := 0; k < 3; k++ {
						o.K[i][j] += f * o.b[k][i] * db[k][j]
					}
				}
			}
		}
	}
	return o, nil
}

// bmatrix evaluates the curvature-displacement matrix at (xi,eta). The
// curvature vector is [-w,xx -w,yy -2w,xy] with x = A·xi, y = B·eta.
func (o *PlateQuad) bmatrix(xi, eta float64) {
	a, b := o.A, o.B
	for i := 0; i < 4; i++ {
		xii, etai := qua4Xi[i][0], qua4Xi[i][1]
		x0 := xii * xi
		e0 := etai * eta
		s := 2 + x0 + e0 - xi*xi - eta*eta

		// second derivatives of the deflection shape
		wXX := -0.75 * xii * xi * (1 + e0)
		wEE := -0.75 * etai * eta * (1 + x0)
		wXE := (etai*(xii*s+(1+x0)*(xii-2*xi)) + (1+e0)*xii*(etai-2*eta)) / 8

		// rotation shapes: Nx couples tx with η, Ny couples ty with ξ
		nxEE := b / 8 * (1 + x0) * (6*eta + 2*etai)
		nxXE := b / 8 * xii * (3*eta*eta + 2*etai*eta - 1)
		nyXX := -a / 8 * (6*xi + 2*xii) * (1 + e0)
		nyXE := -a / 8 * (3*xi*xi + 2*xii*xi - 1) * etai

		c := 3 * i
		o.b[0][c] = -wXX / (a * a)
		o.b[0][c+1] = 0
		o.b[0][c+2] = -nyXX / (a * a)
		o.b[1][c] = -wEE / (b * b)
		o.b[1][c+1] = -nxEE / (b * b)
		o.b[1][c+2] = 0
		o.b[2][c] = -2 * wXE / (a * b)
		o.b[2][c+1] = -2 * nxXE / (a * b)
		o.b[2][c+2] = -2 * nyXE / (a * b)
	}
}

// shapes evaluates the deflection interpolation functions at (xi,eta):
// w = Σ nw·w_i + nx·tx_i + ny·ty_i
func (o *PlateQuad) shapes(xi, eta float64) (n [12]float64) {
	a, b := o.A, o.B
	for i := 0; i < 4; i++ {
		xii, etai := qua4Xi[i][0], qua4Xi[i][1]
		x0 := xii * xi
		e0 := etai * eta
		n[3*i] = (1 + x0) * (1 + e0) * (2 + x0 + e0 - xi*xi - eta*eta) / 8
		n[3*i+1] = b / 8 * (1 + x0) * (etai + eta) * (eta*eta - 1)
		n[3*i+2] = -a / 8 * (xii + xi) * (xi*xi - 1) * (1 + e0)
	}
	return
}

// AddPressure accumulates the consistent nodal load of a uniform transverse
// pressure q [N/m²]
func (o *PlateQuad) AddPressure(q float64) {
	for gi, xi := range gauss3 {
		for gj, eta := range gauss3 {
			n := o.shapes(xi, eta)
			f := q * o.A * o.B * gauss3W[gi] * gauss3W[gj]
			for i := 0; i < 12; i++ {
				o.f0[i] += f * n[i]
			}
		}
	}
}

// AddEdgeLoad accumulates a linearly varying transverse line load [N/m] on
// the element edge between local nodes n1 and n2=(n1+1)%4, consistent with
// Hermite interpolation of the deflection along the edge. The edge-slope
// moment splits into the two rotation DOFs by the edge direction.
func (o *PlateQuad) AddEdgeLoad(n1 int, qa, qb float64) {
	n2 := (n1 + 1) % 4
	dx := o.X[n2] - o.X[n1]
	dy := o.Y[n2] - o.Y[n1]
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return
	}
	tx, ty := dx/l, dy/l
	ll := l * l
	fw1 := l * (7*qa + 3*qb) / 20
	m1 := ll * (3*qa + 2*qb) / 60
	fw2 := l * (3*qa + 7*qb) / 20
	m2 := -ll * (2*qa + 3*qb) / 60

	// m is conjugate to the slope ∂w/∂s = ty·tx_dof - tx·ty_dof
	o.f0[3*n1] += fw1
	o.f0[3*n1+1] += m1 * ty
	o.f0[3*n1+2] += -m1 * tx
	o.f0[3*n2] += fw2
	o.f0[3*n2+1] += m2 * ty
	o.f0[3*n2+2] += -m2 * tx
}

// F returns the accumulated equivalent nodal load vector
func (o *PlateQuad) F() []float64 { return o.f0 }

// Moments recovers the bending and twisting moments [Mx My Mxy] per unit
// width at the element center
func (o *PlateQuad) Moments(uglob []float64) []float64 {
	return o.momentsAt(0, 0, o.localU(uglob))
}

// Shears estimates the transverse shear forces [Vx Vy] per unit width at the
// element center by central differencing of the moment field:
// Vx = ∂Mx/∂x + ∂Mxy/∂y, Vy = ∂Mxy/∂x + ∂My/∂y
func (o *PlateQuad) Shears(uglob []float64) []float64 {
	ue := o.localU(uglob)
	h := 0.5
	mxp := o.momentsAt(h, 0, ue)
	mxm := o.momentsAt(-h, 0, ue)
	myp := o.momentsAt(0, h, ue)
	mym := o.momentsAt(0, -h, ue)
	dxx := 2 * h * o.A
	dyy := 2 * h * o.B
	vx := (mxp[0]-mxm[0])/dxx + (myp[2]-mym[2])/dyy
	vy := (mxp[2]-mxm[2])/dxx + (myp[1]-mym[1])/dyy
	return []float64{vx, vy}
}

func (o *PlateQuad) localU(uglob []float64) []float64 {
	ue := make([]float64, 12)
	for i, I := range o.Umap {
		ue[i] = uglob[I]
	}
	return ue
}

func (o *PlateQuad) momentsAt(xi, eta float64, ue []float64) []float64 {
	o.bmatrix(xi, eta)
	kap := make([]float64, 3)
	la.MatVecMul(kap, 1, o.b, ue)
	m := make([]float64, 3)
	la.MatVecMul(m, 1, o.D, kap)
	return m
}
