// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. builders and validation")

	m, beams := BuildPortalFrame(6, 3)
	if err := m.Validate(); err != nil {
		tst.Errorf("Validate failed: %v", err)
		return
	}
	chk.IntAssert(len(m.Mesh.Nodes), 4)
	chk.IntAssert(len(m.Mesh.Beams), 3)
	chk.Scalar(tst, "girder length", 1e-15, m.Mesh.BeamLength(beams[1]), 6)
	chk.Scalar(tst, "column length", 1e-15, m.Mesh.BeamLength(beams[0]), 3)

	// unknown support types are rejected
	if err := m.SetSupport(beams[0].NodeIDs[0], "clamped"); err == nil {
		tst.Errorf("unknown support type must be rejected")
	}

	// beams referencing a missing node fail validation
	m.Mesh.Beams = append(m.Mesh.Beams, &BeamElement{ID: 999, NodeIDs: [2]int{1, 12345}, MaterialID: beams[0].MaterialID})
	if err := m.Validate(); err == nil {
		tst.Errorf("dangling beam reference must fail validation")
	}
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. beam removal cascades to loads and sub-nodes")

	m, b := BuildSimplySupported(6)
	sn, err := m.AddSubNode(b.ID, 0.5)
	if err != nil {
		tst.Errorf("AddSubNode failed: %v", err)
		return
	}
	lc := m.AddLoadCase("live", ULS)
	m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)
	m.AddDistributedLoad(lc.ID, DistributedLoad{BeamID: b.ID, QyStart: -1000, QyEnd: -1000, StartT: 0, EndT: 1})
	m.AddThermalLoad(lc.ID, b.ID, 25)

	m.RemoveBeam(b.ID)
	chk.IntAssert(len(m.Mesh.Beams), 0)
	chk.IntAssert(len(m.Mesh.SubNodes), 0)
	chk.IntAssert(len(lc.Distributed), 0)
	chk.IntAssert(len(lc.Thermals), 0)
	if err := m.Validate(); err != nil {
		tst.Errorf("model must stay valid after the cascade: %v", err)
		return
	}

	// the sub-node's mesh node survives while its point load exists
	chk.IntAssert(len(lc.Points), 1)
	m.RemoveNode(sn.NodeID)
	chk.IntAssert(len(lc.Points), 0)

	// orphan cleanup keeps the supported end nodes
	removed := m.RemoveOrphanNodes()
	chk.IntAssert(removed, 0)
	chk.IntAssert(len(m.Mesh.Nodes), 2)
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. case removal cascades to combination factors")

	m, b := BuildSimplySupported(4)
	dead := m.AddLoadCase("dead", ULS)
	live := m.AddLoadCase("live", ULS)
	m.AddDistributedLoad(dead.ID, DistributedLoad{BeamID: b.ID, QyStart: -500, QyEnd: -500, StartT: 0, EndT: 1})
	m.AddDistributedLoad(live.ID, DistributedLoad{BeamID: b.ID, QyStart: -800, QyEnd: -800, StartT: 0, EndT: 1})
	cb, err := m.AddCombination("uls", ULS, map[int]float64{dead.ID: 1.35, live.ID: 1.5})
	if err != nil {
		tst.Errorf("AddCombination failed: %v", err)
		return
	}

	// combinations must not reference unknown cases
	if _, err := m.AddCombination("bad", ULS, map[int]float64{99999: 1}); err == nil {
		tst.Errorf("combination with a missing case must be rejected")
		return
	}

	m.RemoveLoadCase(dead.ID)
	chk.IntAssert(len(m.Cases), 1)
	chk.IntAssert(len(cb.Factors), 1)
	chk.Scalar(tst, "surviving factor", 1e-15, cb.Factors[live.ID], 1.5)
	if err := m.Validate(); err != nil {
		tst.Errorf("model must stay valid after the cascade: %v", err)
	}
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. sub-node placement")

	m, b := BuildSimplySupported(6)
	sn, err := m.AddSubNode(b.ID, 0.25)
	if err != nil {
		tst.Errorf("AddSubNode failed: %v", err)
		return
	}
	n := m.Mesh.Node(sn.NodeID)
	chk.Scalar(tst, "x", 1e-15, n.X, 1.5)
	chk.Scalar(tst, "y", 1e-15, n.Y, 0)

	// positions must be strictly inside the member
	if _, err := m.AddSubNode(b.ID, 0); err == nil {
		tst.Errorf("t=0 must be rejected")
	}
	if _, err := m.AddSubNode(b.ID, 1.2); err == nil {
		tst.Errorf("t>1 must be rejected")
	}

	// sub-nodes come back sorted by position
	m.AddSubNode(b.ID, 0.75)
	m.AddSubNode(b.ID, 0.5)
	subs := m.Mesh.SubNodesOf(b.NodeIDs[0], b.NodeIDs[1])
	chk.IntAssert(len(subs), 3)
	chk.Scalar(tst, "t0", 1e-15, subs[0].T, 0.25)
	chk.Scalar(tst, "t1", 1e-15, subs[1].T, 0.5)
	chk.Scalar(tst, "t2", 1e-15, subs[2].T, 0.75)

	m.RemoveSubNode(sn.ID)
	chk.IntAssert(len(m.Mesh.SubNodesOf(b.NodeIDs[0], b.NodeIDs[1])), 2)
}

func Test_model05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model05. snapshot isolation and json round trip")

	m, b := BuildSimplySupported(6)
	lc := m.AddLoadCase("live", ULS)
	m.AddDistributedLoad(lc.ID, DistributedLoad{BeamID: b.ID, QyStart: -2000, QyEnd: -2000, StartT: 0, EndT: 1})
	m.AddCombination("uls", ULS, map[int]float64{lc.ID: 1.5})

	snap := m.Snapshot()
	if snap.Version != m.Version {
		tst.Errorf("snapshot must preserve the version")
		return
	}

	// edits after the snapshot do not leak into it
	m.AddNode(9, 9)
	chk.IntAssert(len(snap.Mesh.Nodes), 2)
	chk.IntAssert(len(m.Mesh.Nodes), 3)
	if snap.Version == m.Version {
		tst.Errorf("edit must bump the version")
		return
	}
	if err := snap.Validate(); err != nil {
		tst.Errorf("snapshot must validate: %v", err)
		return
	}

	// ids allocated on the snapshot never collide with existing entities
	n := snap.AddNode(1, 1)
	if snap.Mesh.Node(n.ID) != n || snap.Mesh.Beam(n.ID) != nil {
		tst.Errorf("snapshot id allocation collided")
		return
	}

	// file round trip
	path := filepath.Join(tst.TempDir(), "model.json")
	if err := m.SaveJSON(path); err != nil {
		tst.Errorf("SaveJSON failed: %v", err)
		return
	}
	m2, err := ReadModel(path)
	if err != nil {
		tst.Errorf("ReadModel failed: %v", err)
		return
	}
	chk.IntAssert(len(m2.Mesh.Nodes), len(m.Mesh.Nodes))
	chk.IntAssert(len(m2.Mesh.Beams), len(m.Mesh.Beams))
	chk.IntAssert(len(m2.Cases), len(m.Cases))
	chk.IntAssert(len(m2.Combinations), len(m.Combinations))
	chk.Scalar(tst, "qy", 1e-15, m2.Cases[0].Distributed[0].QyStart, -2000)
}

func Test_model06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model06. load spans and systems")

	m, b := BuildSimplySupported(6)
	lc := m.AddLoadCase("live", ULS)

	// invalid spans are rejected
	if _, err := m.AddDistributedLoad(lc.ID, DistributedLoad{BeamID: b.ID, QyStart: -1, QyEnd: -1, StartT: 0.8, EndT: 0.2}); err == nil {
		tst.Errorf("reversed span must be rejected")
	}
	if _, err := m.AddDistributedLoad(lc.ID, DistributedLoad{BeamID: b.ID, QyStart: -1, QyEnd: -1, StartT: 0, EndT: 1.5}); err == nil {
		tst.Errorf("span beyond the member must be rejected")
	}

	// the local system is the default
	d, err := m.AddDistributedLoad(lc.ID, DistributedLoad{BeamID: b.ID, QyStart: -1, QyEnd: -1, StartT: 0.25, EndT: 0.75})
	if err != nil {
		tst.Errorf("AddDistributedLoad failed: %v", err)
		return
	}
	if d.System != SystemLocal {
		tst.Errorf("default system must be local, got %q", d.System)
	}

	// thermal gradients are not implemented and must be rejected
	th, _ := m.AddThermalLoad(lc.ID, b.ID, 20)
	th.Gradient = 5
	if err := m.Validate(); err == nil {
		tst.Errorf("thermal gradient must be rejected")
	}
	th.Gradient = 0

	// RemoveLoad reaches every kind
	m.RemoveLoad(d.ID)
	m.RemoveLoad(th.ID)
	chk.IntAssert(len(lc.Distributed), 0)
	chk.IntAssert(len(lc.Thermals), 0)
}

func Test_model07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model07. id counter recovery from a hand-authored file")

	// no nextId in the file; the highest id lives on a point load, which only
	// a full scan over cases and combinations can see
	data := `{
  "mesh": {
    "nodes": [{"id": 5, "x": 0, "y": 0, "constraints": {"x": true, "y": true, "rotation": true}}],
    "beams": [],
    "materials": [{"id": 3, "name": "steel", "E": 210e9, "nu": 0.3, "rho": 7850, "alpha": 1.2e-5}]
  },
  "loadCases": [{"id": 9, "name": "dead", "type": "ULS",
    "pointLoads": [{"id": 12, "nodeId": 5, "fx": 0, "fy": -1000, "mz": 0}]}],
  "loadCombinations": [{"id": 14, "name": "uls", "type": "ULS", "factors": {"9": 1.35}}]
}`
	path := filepath.Join(tst.TempDir(), "hand.json")
	io.WriteBytesToFile(path, []byte(data))

	m, err := ReadModel(path)
	if err != nil {
		tst.Errorf("ReadModel failed: %v", err)
		return
	}

	// fresh ids start above every id in the file
	n := m.AddNode(1, 0)
	chk.IntAssert(n.ID, 15)
	lc := m.AddLoadCase("live", ULS)
	chk.IntAssert(lc.ID, 16)
	p, err := m.AddPointLoad(lc.ID, n.ID, 0, -1, 0)
	if err != nil {
		tst.Errorf("AddPointLoad failed: %v", err)
		return
	}
	chk.IntAssert(p.ID, 17)
	io.Pforan("nextId recovered to %d\n", m.Mesh.NextID)
}
