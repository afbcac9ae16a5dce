// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_env01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env01. two opposing combinations. symmetric bounds")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	down := m.AddLoadCase("down", inp.ULS)
	m.AddPointLoad(down.ID, sn.NodeID, 0, -10000, 0)
	up := m.AddLoadCase("up", inp.ULS)
	m.AddPointLoad(up.ID, sn.NodeID, 0, 10000, 0)

	c1, _ := m.AddCombination("down", inp.ULS, map[int]float64{down.ID: 1})
	c2, _ := m.AddCombination("up", inp.ULS, map[int]float64{up.ID: 1})

	env, err := SolveEnvelope(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("SolveEnvelope failed: %v", err)
		return
	}
	if env.Partial() {
		tst.Errorf("envelope must not be partial: %v", env.Failures)
		return
	}

	be := env.Beams[b.ID]
	chk.IntAssert(len(be.Stations), 21)

	// P*L/4 bounds at midspan, both signs
	chk.Scalar(tst, "maxM mid", 1e-6, be.MaxM[10], 15000)
	chk.Scalar(tst, "minM mid", 1e-6, be.MinM[10], -15000)
	chk.Scalar(tst, "maxM end", 1e-6, be.MaxM[0], 0)
	chk.Scalar(tst, "minM end", 1e-6, be.MinM[0], 0)

	// every single-combination result lies inside the envelope
	for _, cb := range []int{c1.ID, c2.ID} {
		res, err := Solve(m, Options{Analysis: Frame, ComboID: cb})
		if err != nil {
			tst.Errorf("Solve(combo %d) failed: %v", cb, err)
			return
		}
		d := res.BeamForces[b.ID]
		for k := range d.Stations {
			if d.BendingMoment[k] < be.MinM[k]-1e-9 || d.BendingMoment[k] > be.MaxM[k]+1e-9 {
				tst.Errorf("combo %d moment %v outside envelope [%v,%v] at station %d",
					cb, d.BendingMoment[k], be.MinM[k], be.MaxM[k], k)
				return
			}
		}
	}

	// both combos govern with the same magnitude; the later id wins the tie
	chk.IntAssert(env.GoverningCombo[b.ID], c2.ID)
}

func Test_env02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env02. failing combination. partial envelope")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	live := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(live.ID, sn.NodeID, 0, -10000, 0)

	// a load on a node connected to nothing turns any combination that
	// activates it into a mechanism
	loose := m.AddNode(10, 0)
	bad := m.AddLoadCase("bad", inp.ULS)
	m.AddPointLoad(bad.ID, loose.ID, 0, -1, 0)

	good, _ := m.AddCombination("1.35 live", inp.ULS, map[int]float64{live.ID: 1.35})
	_, err := m.AddCombination("broken", inp.ULS, map[int]float64{bad.ID: 1})
	if err != nil {
		tst.Errorf("AddCombination failed: %v", err)
		return
	}

	env, err := SolveEnvelope(m, Options{Analysis: Frame})
	if err != nil {
		tst.Errorf("partial envelope must still succeed: %v", err)
		return
	}
	if !env.Partial() {
		tst.Errorf("envelope must be partial")
		return
	}
	chk.IntAssert(len(env.Failures), 1)
	if _, ok := env.Failures[0].Err.(*SingularSystemError); !ok {
		tst.Errorf("expected SingularSystemError, got %T", env.Failures[0].Err)
	}
	if len(env.Warnings) == 0 {
		tst.Errorf("partial envelope must carry warnings")
	}
	io.Pforan("warnings = %v\n", env.Warnings)

	// the surviving combination still produced bounds
	be := env.Beams[b.ID]
	chk.Scalar(tst, "maxM mid", 1e-6, be.MaxM[10], 1.35*15000)
	chk.IntAssert(env.GoverningCombo[b.ID], good.ID)
}

func Test_env03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env03. envelope without combinations is an input error")

	m, _ := inp.BuildSimplySupported(6)
	_, err := SolveEnvelope(m, Options{Analysis: Frame})
	if err == nil {
		tst.Errorf("SolveEnvelope must fail without combinations")
		return
	}
	io.Pforan("err = %v\n", err)
}

func Test_env04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env04. membrane element envelope. scaled combinations")

	// unit square patch in uniaxial tension, combinations at 1.0 and 1.5
	m := inp.NewModel()
	mat := m.DefaultSteel()
	t := 0.02
	q := 1e5
	reg, err := m.AddPlateRect(0, 0, 1, 1, mat.ID, t, 1)
	if err != nil {
		tst.Errorf("AddPlateRect failed: %v", err)
		return
	}
	for _, nid := range reg.GenNodes {
		n := m.Mesh.Node(nid)
		if n.X == 0 {
			if n.Y == 0 {
				m.SetSupport(nid, "pinned")
			} else {
				m.SetSupport(nid, "roller_x")
			}
		}
	}
	lc := m.AddLoadCase("tension", inp.ULS)
	if _, err = m.AddEdgeLoad(lc.ID, inp.EdgeLoad{RegionID: reg.ID, Edge: 1, QxStart: q, QxEnd: q}); err != nil {
		tst.Errorf("AddEdgeLoad failed: %v", err)
		return
	}
	m.AddCombination("sls", inp.SLS, map[int]float64{lc.ID: 1.0})
	m.AddCombination("uls", inp.ULS, map[int]float64{lc.ID: 1.5})

	env, err := SolveEnvelope(m, Options{Analysis: PlaneStress})
	if err != nil {
		tst.Errorf("SolveEnvelope failed: %v", err)
		return
	}
	if env.Partial() {
		tst.Errorf("envelope must not be partial: %v", env.Failures)
		return
	}

	// no frame members, so the element map carries the extremes
	chk.IntAssert(len(env.Beams), 0)
	chk.IntAssert(len(env.Elements), len(reg.GenElems))

	// min at factor 1.0, max at factor 1.5, linear in the loads
	sx := q / t
	for eid, ee := range env.Elements {
		chk.Scalar(tst, io.Sf("elem %d min sx", eid), 1e-4, ee.Min.Sx, sx)
		chk.Scalar(tst, io.Sf("elem %d max sx", eid), 1e-4, ee.Max.Sx, 1.5*sx)
		chk.Scalar(tst, io.Sf("elem %d min svm", eid), 1e-4, ee.Min.VonMises, sx)
		chk.Scalar(tst, io.Sf("elem %d max svm", eid), 1e-4, ee.Max.VonMises, 1.5*sx)
	}
}

func Test_env05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("env05. plate element envelope. opposing pressures")

	// simply supported plate, combinations at +1 and -1: componentwise
	// symmetric bounds
	m := inp.NewModel()
	mat := m.DefaultSteel()
	a := 2.0
	reg, err := m.AddPlateRect(0, 0, a, a, mat.ID, 0.02, a/4)
	if err != nil {
		tst.Errorf("AddPlateRect failed: %v", err)
		return
	}
	for _, nid := range reg.GenNodes {
		n := m.Mesh.Node(nid)
		if n.X == 0 || n.X == a || n.Y == 0 || n.Y == a {
			m.SetSupport(nid, "roller")
		}
	}
	lc := m.AddLoadCase("pressure", inp.ULS)
	if _, err = m.AddSurfaceLoad(lc.ID, reg.ID, -10000); err != nil {
		tst.Errorf("AddSurfaceLoad failed: %v", err)
		return
	}
	m.AddCombination("down", inp.ULS, map[int]float64{lc.ID: 1})
	m.AddCombination("up", inp.ULS, map[int]float64{lc.ID: -1})

	env, err := SolveEnvelope(m, Options{Analysis: PlateBending})
	if err != nil {
		tst.Errorf("SolveEnvelope failed: %v", err)
		return
	}
	chk.IntAssert(len(env.Elements), len(reg.GenElems))
	for eid, ee := range env.Elements {
		chk.Scalar(tst, io.Sf("elem %d mx", eid), 1e-9, ee.Min.Mx, -ee.Max.Mx)
		chk.Scalar(tst, io.Sf("elem %d my", eid), 1e-9, ee.Min.My, -ee.Max.My)
		chk.Scalar(tst, io.Sf("elem %d mxy", eid), 1e-9, ee.Min.Mxy, -ee.Max.Mxy)
		chk.Scalar(tst, io.Sf("elem %d vx", eid), 1e-9, ee.Min.Vx, -ee.Max.Vx)
		chk.Scalar(tst, io.Sf("elem %d vy", eid), 1e-9, ee.Min.Vy, -ee.Max.Vy)
	}

	// every single-combination stress lies inside the element envelope
	res, err := Solve(m, Options{Analysis: PlateBending, ComboID: m.Combinations[0].ID})
	if err != nil {
		tst.Errorf("Solve failed: %v", err)
		return
	}
	for eid, s := range res.Stresses {
		ee := env.Elements[eid]
		if s.Mx < ee.Min.Mx-1e-9 || s.Mx > ee.Max.Mx+1e-9 {
			tst.Errorf("element %d mx %v outside envelope [%v,%v]", eid, s.Mx, ee.Min.Mx, ee.Max.Mx)
			return
		}
	}
}
