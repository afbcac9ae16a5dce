// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/ana"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_frame01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame01. simply supported beam. midspan point load")

	// 6m span, 10kN downwards at midspan
	m, b := inp.BuildSimplySupported(6)
	sn, err := m.AddSubNode(b.ID, 0.5)
	if err != nil {
		tst.Errorf("AddSubNode failed: %v", err)
		return
	}
	lc := m.AddLoadCase("live", inp.ULS)
	_, err = m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)
	if err != nil {
		tst.Errorf("AddPointLoad failed: %v", err)
		return
	}

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	an := &ana.SimplySupportedCentral{E: 210e9, I: 1940e-8, L: 6, P: 10000}

	// reactions: half the load at each support, upwards
	chk.Scalar(tst, "R left", 1e-8, res.Reactions[b.NodeIDs[0]][1], an.Reaction())
	chk.Scalar(tst, "R right", 1e-8, res.Reactions[b.NodeIDs[1]][1], an.Reaction())

	// midspan moment P*L/4 and midspan deflection P*L³/48EI
	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "max M", 1e-6, d.MaxM, an.MaxMoment())
	io.Pforan("max M = %v\n", d.MaxM)
	uy := res.NodeDisp(sn.NodeID)[1]
	chk.Scalar(tst, "uy mid", 1e-9, -uy, an.MaxDeflection())

	// moment vanishes at the pins
	chk.Scalar(tst, "M1", 1e-7, d.M1, 0)
	chk.Scalar(tst, "M2", 1e-7, d.M2, 0)
}

func Test_frame02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame02. simply supported beam. uniform load")

	// 4m span, 5kN/m downwards
	m, b := inp.BuildSimplySupported(4)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	lc := m.AddLoadCase("dead", inp.ULS)
	_, err := m.AddDistributedLoad(lc.ID, inp.DistributedLoad{
		BeamID: b.ID, QyStart: -5000, QyEnd: -5000, StartT: 0, EndT: 1,
	})
	if err != nil {
		tst.Errorf("AddDistributedLoad failed: %v", err)
		return
	}

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	an := &ana.SimplySupportedUniform{E: 210e9, I: 1940e-8, L: 4, Q: 5000}
	chk.Scalar(tst, "R left", 1e-8, res.Reactions[b.NodeIDs[0]][1], an.Reaction())
	chk.Scalar(tst, "R right", 1e-8, res.Reactions[b.NodeIDs[1]][1], an.Reaction())

	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "max M", 1e-6, d.MaxM, an.MaxMoment())
	chk.Scalar(tst, "V1", 1e-6, d.V1, an.Reaction())
	chk.IntAssert(len(d.Stations), 21)

	// parabolic moment along the member
	for i, x := range d.Stations {
		chk.Scalar(tst, io.Sf("M(%.2f)", x), 1e-6, d.BendingMoment[i], an.Moment(x))
	}

	// consistent nodal loads reproduce the exact midspan deflection
	uy := res.NodeDisp(sn.NodeID)[1]
	chk.Scalar(tst, "uy mid", 1e-9, -uy, an.MaxDeflection())
}

func Test_frame03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame03. cantilever. end point load")

	// 3m cantilever, 5kN downwards at the tip
	m, b := inp.BuildCantilever(3)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, b.NodeIDs[1], 0, -5000, 0)

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	an := &ana.CantileverEndForce{E: 210e9, I: 1940e-8, L: 3, P: 5000}
	r := res.Reactions[b.NodeIDs[0]]
	chk.Scalar(tst, "Ry", 1e-8, r[1], 5000)
	chk.Scalar(tst, "Mz", 1e-7, r[2], an.FixedMoment())

	// hogging moment at the fixed end, constant shear
	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "M1", 1e-6, d.M1, -an.FixedMoment())
	chk.Scalar(tst, "V1", 1e-6, d.V1, 5000)
	chk.Scalar(tst, "max M", 1e-6, d.MaxM, -an.FixedMoment())

	uy := res.NodeDisp(b.NodeIDs[1])[1]
	chk.Scalar(tst, "uy tip", 1e-9, -uy, an.MaxDeflection())
}

func Test_frame04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame04. cantilever. uniform load")

	m, b := inp.BuildCantilever(3)
	lc := m.AddLoadCase("dead", inp.ULS)
	m.AddDistributedLoad(lc.ID, inp.DistributedLoad{
		BeamID: b.ID, QyStart: -2000, QyEnd: -2000, StartT: 0, EndT: 1,
	})

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	an := &ana.CantileverUniform{E: 210e9, I: 1940e-8, L: 3, Q: 2000}
	r := res.Reactions[b.NodeIDs[0]]
	chk.Scalar(tst, "Ry", 1e-8, r[1], an.FixedShear())
	chk.Scalar(tst, "Mz", 1e-7, r[2], an.FixedMoment())

	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "M1", 1e-6, d.M1, -an.FixedMoment())
	chk.Scalar(tst, "V1", 1e-6, d.V1, an.FixedShear())
	chk.Scalar(tst, "M2", 1e-6, d.M2, 0) // free end
	chk.Scalar(tst, "V2", 1e-6, d.V2, 0)
}

func Test_frame05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame05. load combinations. scaling and exclusion")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)

	cb1, err := m.AddCombination("1.5 live", inp.ULS, map[int]float64{lc.ID: 1.5})
	if err != nil {
		tst.Errorf("AddCombination failed: %v", err)
		return
	}
	cb2, _ := m.AddCombination("unscaled", inp.ULS, map[int]float64{lc.ID: 1})
	cb3, _ := m.AddCombination("empty", inp.ULS, map[int]float64{lc.ID: 0})

	base, err := Solve(m, Options{Analysis: Frame, CaseID: lc.ID})
	if err != nil {
		tst.Errorf("Solve(case) failed: %v", err)
		return
	}
	scaled, err := Solve(m, Options{Analysis: Frame, ComboID: cb1.ID})
	if err != nil {
		tst.Errorf("Solve(combo 1.5) failed: %v", err)
		return
	}
	same, _ := Solve(m, Options{Analysis: Frame, ComboID: cb2.ID})
	empty, _ := Solve(m, Options{Analysis: Frame, ComboID: cb3.ID})

	// factor one reproduces the case; factor 1.5 scales every displacement
	chk.Vector(tst, "u factor 1", 1e-14, same.Displace, base.Displace)
	for i := range base.Displace {
		chk.Scalar(tst, io.Sf("u[%d] x 1.5", i), 1e-12, scaled.Displace[i], 1.5*base.Displace[i])
	}

	// factor zero excludes the case entirely
	chk.Vector(tst, "u factor 0", 1e-15, empty.Displace, make([]float64, len(empty.Displace)))

	// repeat solves do not mutate the model
	again, _ := Solve(m, Options{Analysis: Frame, CaseID: lc.ID})
	chk.Vector(tst, "u idempotent", 1e-15, again.Displace, base.Displace)
}

func Test_frame06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame06. unsupported model. singular system")

	m := inp.NewModel()
	mat := m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(4, 0)
	b, _ := m.AddBeam(n1.ID, n2.ID, mat.ID, inp.SectionIPE200)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, b.NodeIDs[1], 0, -1000, 0)

	_, err := Solve(m, Options{Analysis: Frame})
	if err == nil {
		tst.Errorf("Solve must fail without supports")
		return
	}
	se, ok := err.(*SingularSystemError)
	if !ok {
		tst.Errorf("expected SingularSystemError, got %T: %v", err, err)
		return
	}
	if len(se.Eqs) == 0 || len(se.Nodes) == 0 {
		tst.Errorf("singular error carries no diagnostics: %v", se)
	}
	io.Pforan("err = %v\n", se)
}

func Test_frame07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame07. truss. hinged members and drilling rotations")

	m, beams := inp.BuildTruss(2, 1.5, 4)

	// 20kN downwards at the bottom chord midpoint
	var mid *inp.Node
	for _, n := range m.Mesh.Nodes {
		if n.X == 4 && n.Y == 0 {
			mid = n
		}
	}
	if mid == nil {
		tst.Errorf("midspan node not found")
		return
	}
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, mid.ID, 0, -20000, 0)

	// the fully hinged node rotations have no stiffness; they must be
	// restrained automatically instead of failing the factorization
	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	sumRy, sumRx := 0.0, 0.0
	for _, r := range res.Reactions {
		sumRx += r[0]
		sumRy += r[1]
	}
	chk.Scalar(tst, "sum Rx", 1e-7, sumRx, 0)
	chk.Scalar(tst, "sum Ry", 1e-7, sumRy, 20000)

	// axial-only members
	for _, b := range beams {
		d := res.BeamForces[b.ID]
		chk.Scalar(tst, io.Sf("beam %d max M", b.ID), 1e-5, d.MaxM, 0)
		chk.Scalar(tst, io.Sf("beam %d max V", b.ID), 1e-5, d.MaxV, 0)
	}
}

func Test_frame08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame08. portal frame. global equilibrium")

	m, beams := inp.BuildPortalFrame(6, 3)
	girder := beams[1]
	lc := m.AddLoadCase("roof", inp.ULS)
	m.AddDistributedLoad(lc.ID, inp.DistributedLoad{
		BeamID: girder.ID, QyStart: -8000, QyEnd: -8000, StartT: 0, EndT: 1,
		System: inp.SystemGlobal,
	})

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	sumRx, sumRy := 0.0, 0.0
	for _, r := range res.Reactions {
		sumRx += r[0]
		sumRy += r[1]
	}
	chk.Scalar(tst, "sum Rx", 1e-7, sumRx, 0)
	chk.Scalar(tst, "sum Ry", 1e-7, sumRy, 48000)

	// symmetric structure, symmetric load
	rl := res.Reactions[beams[0].NodeIDs[0]]
	rr := res.Reactions[beams[2].NodeIDs[0]]
	chk.Scalar(tst, "Ry left", 1e-7, rl[1], 24000)
	chk.Scalar(tst, "Ry right", 1e-7, rr[1], 24000)
	chk.Scalar(tst, "Rx antisymmetric", 1e-7, rl[0]+rr[0], 0)
}

func Test_frame09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame09. elastic spring support at the cantilever tip")

	m, b := inp.BuildCantilever(3)
	tip := b.NodeIDs[1]
	k := 1e6
	m.SetSprings(tip, 0, k, 0)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, tip, 0, -10000, 0)

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	// tip stiffness of the cantilever in parallel with the spring
	kb := 3.0 * 210e9 * 1940e-8 / 27.0
	uref := -10000 / (k + kb)
	uy := res.NodeDisp(tip)[1]
	chk.Scalar(tst, "uy tip", 1e-12, uy, uref)

	// spring reaction -k*u, and the two supports balance the load
	chk.Scalar(tst, "R spring", 1e-7, res.Reactions[tip][1], -k*uref)
	chk.Scalar(tst, "R fixed", 1e-7, res.Reactions[b.NodeIDs[0]][1], 10000+k*uref)
}

func Test_frame10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame10. restrained thermal expansion")

	m := inp.NewModel()
	mat := m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(3, 0)
	m.SetSupport(n1.ID, "fixed")
	m.SetSupport(n2.ID, "fixed")
	b, _ := m.AddBeam(n1.ID, n2.ID, mat.ID, inp.SectionIPE200)
	lc := m.AddLoadCase("temperature", inp.SLS)
	_, err := m.AddThermalLoad(lc.ID, b.ID, 30)
	if err != nil {
		tst.Errorf("AddThermalLoad failed: %v", err)
		return
	}

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	// N = -E*A*alpha*dT (compression), uniform along the member
	nref := -210e9 * 28.5e-4 * 1.2e-5 * 30
	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "N1", 1e-6, d.N1, nref)
	chk.Scalar(tst, "N2", 1e-6, d.N2, nref)
	chk.Scalar(tst, "max N", 1e-6, d.MaxN, nref)

	// axial wall reactions
	chk.Scalar(tst, "Rx left", 1e-6, res.Reactions[n1.ID][0], -nref)
	chk.Scalar(tst, "Rx right", 1e-6, res.Reactions[n2.ID][0], nref)
}

func Test_frame11(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame11. end releases. hinged member between fixed nodes")

	m := inp.NewModel()
	mat := m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(6, 0)
	m.SetSupport(n1.ID, "fixed")
	m.SetSupport(n2.ID, "fixed")
	b, _ := m.AddBeam(n1.ID, n2.ID, mat.ID, inp.SectionIPE200)
	m.SetReleases(b.ID, true, true)
	lc := m.AddLoadCase("dead", inp.ULS)
	m.AddDistributedLoad(lc.ID, inp.DistributedLoad{
		BeamID: b.ID, QyStart: -4000, QyEnd: -4000, StartT: 0, EndT: 1,
	})

	res, err := Solve(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}

	// hinges at both ends: the member behaves simply supported
	an := &ana.SimplySupportedUniform{E: 210e9, I: 1940e-8, L: 6, Q: 4000}
	d := res.BeamForces[b.ID]
	chk.Scalar(tst, "M1", 1e-6, d.M1, 0)
	chk.Scalar(tst, "M2", 1e-6, d.M2, 0)
	chk.Scalar(tst, "max M", 1e-6, d.MaxM, an.MaxMoment())
	chk.Scalar(tst, "M mid", 1e-6, d.BendingMoment[10], an.MaxMoment())

	// no fixing moments at the supports
	chk.Scalar(tst, "Mz left", 1e-7, res.Reactions[n1.ID][2], 0)
	chk.Scalar(tst, "Mz right", 1e-7, res.Reactions[n2.ID][2], 0)
}

func Test_frame12(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame12. ill-conditioned system warning")

	// two spring-supported nodes with stiffnesses 16 orders apart
	m := inp.NewModel()
	m.DefaultSteel()
	n1 := m.AddNode(0, 0)
	n2 := m.AddNode(1, 0)
	m.SetSprings(n1.ID, 0, 1e16, 0)
	m.SetSprings(n2.ID, 0, 1, 0)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, n1.ID, 0, -5, 0)
	m.AddPointLoad(lc.ID, n2.ID, 0, -5, 0)

	res, err := Solve(m, Options{Analysis: Frame, PivotTol: 1e-20})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	if len(res.Warnings) == 0 {
		tst.Errorf("expected a numeric precision warning")
		return
	}
	io.Pforan("warning = %v\n", res.Warnings[0])
	chk.Scalar(tst, "uy soft", 1e-12, res.NodeDisp(n2.ID)[1], -5)
}
