// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Beam is a 2D Euler-Bernoulli frame member (linear elastic)
//
//         y                                   Local DOFs:
//         ^                                    [u1, v1, θ1, u2, v2, θ2]
//         |
//         o-------------------------------o   Props:   Nodes:
//         |                               |    E, A, I  0 and 1
//        (0)-----------------------------(1)------> x
//
// Moment releases at either end are handled by static condensation of the
// local stiffness and load vector, so a released end transmits no bending
// moment into its node. Distributed loads act on parametric sub-spans and
// may vary linearly; their equivalent nodal forces are consistent (Hermite).
type Beam struct {

	// geometry and properties
	X1, Y1   float64 // start node coordinates
	X2, Y2   float64 // end node coordinates
	E        float64 // Young's modulus
	A        float64 // cross-sectional area
	I        float64 // second moment of area
	L        float64 // (derived) member length
	RelStart bool    // moment release at start
	RelEnd   bool    // moment release at end

	// vectors and matrices
	T  [][]float64 // global-to-local transformation matrix [6][6]
	Kl [][]float64 // local K matrix (uncondensed)
	Kc [][]float64 // local K matrix after release condensation
	K  [][]float64 // global K matrix

	// problem variables
	Umap []int // assembly map (element equations)

	// loads in local system
	spans []spanLoad // distributed load segments
	f0    []float64  // accumulated local equivalent nodal load [6]

	// scratchpad
	ua []float64 // local u vector with recovered released rotations
	fe []float64 // local end forces
}

// spanLoad is one linearly varying load segment in the local system.
// a and b are absolute positions along the member (0 ≤ a < b ≤ L).
type spanLoad struct {
	a, b     float64
	qxa, qxb float64 // axial intensity at a and b
	qya, qyb float64 // transverse intensity at a and b
}

// BeamState carries station values recovered along one member
type BeamState struct {
	X     []float64 // station positions [m] from start node
	N     []float64 // axial force, tension positive
	V     []float64 // shear force
	M     []float64 // bending moment, sagging positive
	DeflX []float64 // global x-displacement along the member
	DeflY []float64 // global y-displacement along the member
}

// NewBeam returns a new beam element. Zero-length members are rejected.
func NewBeam(x1, y1, x2, y2, e, a, i float64, relStart, relEnd bool) (*Beam, error) {
	o := &Beam{X1: x1, Y1: y1, X2: x2, Y2: y2, E: e, A: a, I: i, RelStart: relStart, RelEnd: relEnd}
	o.L = math.Hypot(x2-x1, y2-y1)
	if o.L < 1e-10 {
		return nil, chk.Err("beam has zero length: (%g,%g)-(%g,%g)", x1, y1, x2, y2)
	}
	o.T = la.MatAlloc(6, 6)
	o.Kl = la.MatAlloc(6, 6)
	o.Kc = la.MatAlloc(6, 6)
	o.K = la.MatAlloc(6, 6)
	o.f0 = make([]float64, 6)
	o.ua = make([]float64, 6)
	o.fe = make([]float64, 6)
	o.recompute()
	return o, nil
}

// recompute builds T, Kl, the condensed Kc and the global K
func (o *Beam) recompute() {

	// T
	l := o.L
	c := (o.X2 - o.X1) / l
	s := (o.Y2 - o.Y1) / l
	o.T[0][0] = c
	o.T[0][1] = s
	o.T[1][0] = -s
	o.T[1][1] = c
	o.T[2][2] = 1
	o.T[3][3] = c
	o.T[3][4] = s
	o.T[4][3] = -s
	o.T[4][4] = c
	o.T[5][5] = 1

	// aux vars
	ll := l * l
	m := o.E * o.A / l
	n := o.E * o.I / (ll * l)

	// Kl
	o.Kl[0][0] = m
	o.Kl[0][3] = -m
	o.Kl[1][1] = 12 * n
	o.Kl[1][2] = 6 * l * n
	o.Kl[1][4] = -12 * n
	o.Kl[1][5] = 6 * l * n
	o.Kl[2][1] = 6 * l * n
	o.Kl[2][2] = 4 * ll * n
	o.Kl[2][4] = -6 * l * n
	o.Kl[2][5] = 2 * ll * n
	o.Kl[3][0] = -m
	o.Kl[3][3] = m
	o.Kl[4][1] = -12 * n
	o.Kl[4][2] = -6 * l * n
	o.Kl[4][4] = 12 * n
	o.Kl[4][5] = -6 * l * n
	o.Kl[5][1] = 6 * l * n
	o.Kl[5][2] = 2 * ll * n
	o.Kl[5][4] = -6 * l * n
	o.Kl[5][5] = 4 * ll * n

	// Kc = Kl with released rotations condensed out
	o.condense(o.Kc, nil, nil)

	// K := 1 * trans(T) * Kc * T
	la.MatTrMul3(o.K, 1, o.T, o.Kc, o.T)
}

// releasedDofs returns the local DOF indices condensed out by end releases
func (o *Beam) releasedDofs() (r []int) {
	if o.RelStart {
		r = append(r, 2)
	}
	if o.RelEnd {
		r = append(r, 5)
	}
	return
}

// condense computes the statically condensed stiffness Kc and, when f and fc
// are given, the condensed load fc = ff - Kfr inv(Krr) fr. With no releases
// it copies Kl and f through.
func (o *Beam) condense(Kc [][]float64, f, fc []float64) {
	r := o.releasedDofs()
	if len(r) == 0 {
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				Kc[i][j] = o.Kl[i][j]
			}
			if f != nil {
				fc[i] = f[i]
			}
		}
		return
	}

	// inv(Krr)
	kinv := o.invKrr(r)

	// G = inv(Krr) * Krf  and  g = inv(Krr) * fr
	isr := make(map[int]bool, len(r))
	for _, k := range r {
		isr[k] = true
	}
	G := la.MatAlloc(len(r), 6)
	g := make([]float64, len(r))
	for a := range r {
		for b := range r {
			for j := 0; j < 6; j++ {
				if !isr[j] {
					G[a][j] += kinv[a][b] * o.Kl[r[b]][j]
				}
			}
			if f != nil {
				g[a] += kinv[a][b] * f[r[b]]
			}
		}
	}

	// Kc = Kff - Kfr*G, zero rows/cols at released DOFs
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			Kc[i][j] = 0
			if isr[i] || isr[j] {
				continue
			}
			Kc[i][j] = o.Kl[i][j]
			for a, k := range r {
				Kc[i][j] -= o.Kl[i][k] * G[a][j]
			}
		}
		if f != nil {
			fc[i] = 0
			if !isr[i] {
				fc[i] = f[i]
				for a, k := range r {
					fc[i] -= o.Kl[i][k] * g[a]
				}
			}
		}
	}
}

// invKrr inverts the released-rotation block of Kl (1x1 or 2x2)
func (o *Beam) invKrr(r []int) [][]float64 {
	kinv := la.MatAlloc(len(r), len(r))
	if len(r) == 1 {
		kinv[0][0] = 1.0 / o.Kl[r[0]][r[0]]
		return kinv
	}
	a := o.Kl[r[0]][r[0]]
	b := o.Kl[r[0]][r[1]]
	c := o.Kl[r[1]][r[0]]
	d := o.Kl[r[1]][r[1]]
	det := a*d - b*c
	kinv[0][0] = d / det
	kinv[0][1] = -b / det
	kinv[1][0] = -c / det
	kinv[1][1] = a / det
	return kinv
}

// loads ////////////////////////////////////////////////////////////////////

// AddSpanLoad accumulates a linearly varying distributed load over the
// parametric sub-span [ta,tb] of the member. Global components are projected
// onto the member axes first; projection is linear so projecting the two
// endpoint intensities suffices.
func (o *Beam) AddSpanLoad(qxa, qxb, qya, qyb, ta, tb float64, global bool) {
	if global {
		c := (o.X2 - o.X1) / o.L
		s := (o.Y2 - o.Y1) / o.L
		qxa, qya = c*qxa+s*qya, -s*qxa+c*qya
		qxb, qyb = c*qxb+s*qyb, -s*qxb+c*qyb
	}
	sl := spanLoad{a: ta * o.L, b: tb * o.L, qxa: qxa, qxb: qxb, qya: qya, qyb: qyb}
	o.spans = append(o.spans, sl)

	// consistent equivalent nodal forces: f_i = ∫ q(x) N_i(x) dx over [a,b].
	// With q(x) = qa + s(x-a) this splits into the antiderivatives of N_i
	// and x·N_i evaluated at the span ends.
	l := o.L
	sy := (sl.qyb - sl.qya) / (sl.b - sl.a)
	sx := (sl.qxb - sl.qxa) / (sl.b - sl.a)
	for i := 0; i < 4; i++ {
		in := intN(i, sl.b, l) - intN(i, sl.a, l)
		ixn := intXN(i, sl.b, l) - intXN(i, sl.a, l)
		fi := sl.qya*in + sy*(ixn-sl.a*in)
		switch i {
		case 0:
			o.f0[1] += fi
		case 1:
			o.f0[2] += fi
		case 2:
			o.f0[4] += fi
		case 3:
			o.f0[5] += fi
		}
	}
	for i := 0; i < 2; i++ {
		in := intNa(i, sl.b, l) - intNa(i, sl.a, l)
		ixn := intXNa(i, sl.b, l) - intXNa(i, sl.a, l)
		fi := sl.qxa*in + sx*(ixn-sl.a*in)
		o.f0[3*i] += fi
	}
}

// AddThermal accumulates a uniform elongation load with restrained strain
// eps0 (= alpha * deltaT). Fully restrained, the member ends up in uniform
// compression E*A*eps0.
func (o *Beam) AddThermal(eps0 float64) {
	f := o.E * o.A * eps0
	o.f0[0] -= f
	o.f0[3] += f
}

// F returns the global consistent nodal load vector of the accumulated
// element loads, release-condensed so no moment is injected at a hinge
func (o *Beam) F() []float64 {
	fc := make([]float64, 6)
	kc := la.MatAlloc(6, 6)
	o.condense(kc, o.f0, fc)
	f := make([]float64, 6)
	la.MatTrVecMulAdd(f, 1, o.T, fc) // f += trans(T) * fc
	return f
}

// Hermite shape function antiderivatives. x is measured from the start node.
// intN(i) = ∫N_i dx and intXN(i) = ∫x·N_i dx for the four bending shapes;
// intNa/intXNa are the linear axial counterparts.
func intN(i int, x, l float64) float64 {
	x2, x3, x4 := x*x, x*x*x, x*x*x*x
	switch i {
	case 0:
		return x - x3/(l*l) + x4/(2*l*l*l)
	case 1:
		return x2/2 - 2*x3/(3*l) + x4/(4*l*l)
	case 2:
		return x3/(l*l) - x4/(2*l*l*l)
	}
	return -x3/(3*l) + x4/(4*l*l)
}

func intXN(i int, x, l float64) float64 {
	x2, x4 := x*x, x*x*x*x
	x3 := x2 * x
	x5 := x4 * x
	switch i {
	case 0:
		return x2/2 - 3*x4/(4*l*l) + 2*x5/(5*l*l*l)
	case 1:
		return x3/3 - x4/(2*l) + x5/(5*l*l)
	case 2:
		return 3*x4/(4*l*l) - 2*x5/(5*l*l*l)
	}
	return -x4/(4*l) + x5/(5*l*l)
}

func intNa(i int, x, l float64) float64 {
	if i == 0 {
		return x - x*x/(2*l)
	}
	return x * x / (2 * l)
}

func intXNa(i int, x, l float64) float64 {
	if i == 0 {
		return x*x/2 - x*x*x/(3*l)
	}
	return x * x * x / (3 * l)
}

// results //////////////////////////////////////////////////////////////////

// localU extracts the member-aligned displacement vector from the global
// solution and recovers released rotations from the condensed-out equations:
// θ_r = inv(Krr) (f_r - Krf u_f)
func (o *Beam) localU(uglob []float64) []float64 {
	ue := make([]float64, 6)
	for i, I := range o.Umap {
		ue[i] = uglob[I]
	}
	la.MatVecMul(o.ua, 1, o.T, ue) // ua := T * ue
	r := o.releasedDofs()
	if len(r) == 0 {
		return o.ua
	}
	kinv := o.invKrr(r)
	isr := make(map[int]bool, len(r))
	for _, k := range r {
		isr[k] = true
	}
	rhs := make([]float64, len(r))
	for a, k := range r {
		rhs[a] = o.f0[k]
		for j := 0; j < 6; j++ {
			if !isr[j] {
				rhs[a] -= o.Kl[k][j] * o.ua[j]
			}
		}
	}
	for a, k := range r {
		o.ua[k] = 0
		for b := range r {
			o.ua[k] += kinv[a][b] * rhs[b]
		}
	}
	return o.ua
}

// EndForces returns the local end forces fe = Kl·ul - f0 given the global
// solution vector. Released ends come out with (numerically) zero moment.
func (o *Beam) EndForces(uglob []float64) []float64 {
	ul := o.localU(uglob)
	la.MatVecMul(o.fe, 1, o.Kl, ul) // fe := Kl * ul
	for i := 0; i < 6; i++ {
		o.fe[i] -= o.f0[i]
	}
	return o.fe
}

// span load integrals up to position x:
//
//	Q(x)  = ∫ qy dt    Qt(x) = ∫ qx dt    Sm(x) = ∫ t·qy(t) dt
func (o *Beam) loadIntegrals(x float64) (q, qt, sm float64) {
	for _, sl := range o.spans {
		if x <= sl.a {
			continue
		}
		e := math.Min(x, sl.b)
		d := e - sl.a
		ry := (sl.qyb - sl.qya) / (sl.b - sl.a)
		rx := (sl.qxb - sl.qxa) / (sl.b - sl.a)
		q += sl.qya*d + ry*d*d/2
		qt += sl.qxa*d + rx*d*d/2
		sm += sl.a*(sl.qya*d+ry*d*d/2) + sl.qya*d*d/2 + ry*d*d*d/3
	}
	return
}

// Stations recovers internal forces and the deflection curve at nst evenly
// spaced stations from segment equilibrium:
//
//	N(x) = N1 - Qt(x)
//	V(x) = V1 + Q(x)
//	M(x) = M1 + V1·x + x·Q(x) - Sm(x)
//
// with N1 = -fe[0], V1 = fe[1], M1 = -fe[2] (tension and sagging positive).
// Deflections interpolate the member-aligned nodal displacements with the
// Hermite shapes and are reported in global components.
func (o *Beam) Stations(uglob []float64, nst int) *BeamState {
	if nst < 2 {
		nst = 2
	}
	fe := o.EndForces(uglob)
	ul := o.ua // EndForces leaves localU in o.ua
	n1 := -fe[0]
	v1 := fe[1]
	m1 := -fe[2]

	l := o.L
	c := (o.X2 - o.X1) / l
	s := (o.Y2 - o.Y1) / l
	st := &BeamState{
		X:     make([]float64, nst),
		N:     make([]float64, nst),
		V:     make([]float64, nst),
		M:     make([]float64, nst),
		DeflX: make([]float64, nst),
		DeflY: make([]float64, nst),
	}
	dx := l / float64(nst-1)
	for i := 0; i < nst; i++ {
		x := float64(i) * dx
		q, qt, sm := o.loadIntegrals(x)
		st.X[i] = x
		st.N[i] = n1 - qt
		st.V[i] = v1 + q
		st.M[i] = m1 + v1*x + x*q - sm

		// Hermite deflection in local axes
		r := x / l
		h1 := 1 - 3*r*r + 2*r*r*r
		h2 := x * (1 - r) * (1 - r)
		h3 := 3*r*r - 2*r*r*r
		h4 := x * r * (r - 1)
		u := (1-r)*ul[0] + r*ul[3]
		v := h1*ul[1] + h2*ul[2] + h3*ul[4] + h4*ul[5]
		st.DeflX[i] = c*u - s*v
		st.DeflY[i] = s*u + c*v
	}
	return st
}
