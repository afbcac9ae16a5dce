// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

// SimplySupportedCentral computes the classical solution of a single-span
// simply supported beam with a transverse point load P at midspan
//
//                      P
//                      |
//                      V
//         o------------+------------o
//         ^                         ^
//         |<----------- L --------->|
//
type SimplySupportedCentral struct {
	E float64 // Young's modulus
	I float64 // second moment of area
	L float64 // span
	P float64 // point load magnitude (downward positive)
}

// Reaction returns the vertical reaction at either support
func (o *SimplySupportedCentral) Reaction() float64 { return o.P / 2.0 }

// MaxMoment returns the midspan bending moment
func (o *SimplySupportedCentral) MaxMoment() float64 { return o.P * o.L / 4.0 }

// MaxDeflection returns the midspan deflection
func (o *SimplySupportedCentral) MaxDeflection() float64 {
	return o.P * o.L * o.L * o.L / (48.0 * o.E * o.I)
}

// SimplySupportedUniform computes the classical solution of a single-span
// simply supported beam under a uniform transverse load q
type SimplySupportedUniform struct {
	E float64 // Young's modulus
	I float64 // second moment of area
	L float64 // span
	Q float64 // load intensity (downward positive)
}

// Reaction returns the vertical reaction at either support
func (o *SimplySupportedUniform) Reaction() float64 { return o.Q * o.L / 2.0 }

// MaxMoment returns the midspan bending moment qL²/8
func (o *SimplySupportedUniform) MaxMoment() float64 { return o.Q * o.L * o.L / 8.0 }

// MaxDeflection returns the midspan deflection 5qL⁴/(384EI)
func (o *SimplySupportedUniform) MaxDeflection() float64 {
	l2 := o.L * o.L
	return 5.0 * o.Q * l2 * l2 / (384.0 * o.E * o.I)
}

// Moment returns the bending moment at position x from the left support
func (o *SimplySupportedUniform) Moment(x float64) float64 {
	return o.Q * x * (o.L - x) / 2.0
}

// CantileverEndForce computes the classical solution of a cantilever with a
// transverse point load P at the free end
type CantileverEndForce struct {
	E float64 // Young's modulus
	I float64 // second moment of area
	L float64 // span
	P float64 // point load magnitude (downward positive)
}

// FixedMoment returns the bending moment magnitude at the fixed end
func (o *CantileverEndForce) FixedMoment() float64 { return o.P * o.L }

// MaxDeflection returns the free-end deflection PL³/(3EI)
func (o *CantileverEndForce) MaxDeflection() float64 {
	return o.P * o.L * o.L * o.L / (3.0 * o.E * o.I)
}

// CantileverUniform computes the classical solution of a cantilever under a
// uniform transverse load q
type CantileverUniform struct {
	E float64 // Young's modulus
	I float64 // second moment of area
	L float64 // span
	Q float64 // load intensity (downward positive)
}

// FixedMoment returns the bending moment magnitude qL²/2 at the fixed end
func (o *CantileverUniform) FixedMoment() float64 { return o.Q * o.L * o.L / 2.0 }

// FixedShear returns the shear force magnitude qL at the fixed end
func (o *CantileverUniform) FixedShear() float64 { return o.Q * o.L }

// MaxDeflection returns the free-end deflection qL⁴/(8EI)
func (o *CantileverUniform) MaxDeflection() float64 {
	l2 := o.L * o.L
	return o.Q * l2 * l2 / (8.0 * o.E * o.I)
}

// SquarePlateUniform computes the thin-plate solution of a simply supported
// square plate under uniform pressure q (Navier series coefficients)
type SquarePlateUniform struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson ratio
	T  float64 // thickness
	A  float64 // side length
	Q  float64 // pressure (downward positive)
}

// FlexuralRigidity returns D = Et³/(12(1-ν²))
func (o *SquarePlateUniform) FlexuralRigidity() float64 {
	return o.E * o.T * o.T * o.T / (12.0 * (1.0 - o.Nu*o.Nu))
}

// CenterDeflection returns the central deflection 0.00406·qa⁴/D
func (o *SquarePlateUniform) CenterDeflection() float64 {
	a2 := o.A * o.A
	return 0.00406 * o.Q * a2 * a2 / o.FlexuralRigidity()
}
