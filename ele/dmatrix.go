// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/la"

// PlaneStressD returns the 3x3 elasticity matrix for plane stress
func PlaneStressD(e, nu float64) [][]float64 {
	d := la.MatAlloc(3, 3)
	f := e / (1 - nu*nu)
	d[0][0] = f
	d[0][1] = f * nu
	d[1][0] = f * nu
	d[1][1] = f
	d[2][2] = f * (1 - nu) / 2
	return d
}

// PlaneStrainD returns the 3x3 elasticity matrix for plane strain
func PlaneStrainD(e, nu float64) [][]float64 {
	d := la.MatAlloc(3, 3)
	f := e / ((1 + nu) * (1 - 2*nu))
	d[0][0] = f * (1 - nu)
	d[0][1] = f * nu
	d[1][0] = f * nu
	d[1][1] = f * (1 - nu)
	d[2][2] = f * (1 - 2*nu) / 2
	return d
}

// PlateD returns the 3x3 flexural rigidity matrix of a Kirchhoff plate,
// relating curvatures [-w,xx -w,yy -2w,xy] to moments [Mx My Mxy]
func PlateD(e, nu, thickness float64) [][]float64 {
	d := la.MatAlloc(3, 3)
	f := e * thickness * thickness * thickness / (12 * (1 - nu*nu))
	d[0][0] = f
	d[0][1] = f * nu
	d[1][0] = f * nu
	d[1][1] = f
	d[2][2] = f * (1 - nu) / 2
	return d
}

// ThermalStrain returns the restrained thermal strain vector for membrane
// elements. Plane strain carries the (1+nu) out-of-plane amplification.
func ThermalStrain(alpha, deltaT, nu float64, planeStrain bool) []float64 {
	e0 := alpha * deltaT
	if planeStrain {
		e0 *= 1 + nu
	}
	return []float64{e0, e0, 0}
}
