// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Model is the complete analysis input: mesh plus load cases and
// combinations. All mutations go through the methods below; each one bumps
// the Version counter which callers use to serialize solves against edits
// and to discard stale results.
//
// The solver never mutates a Model. Reactive callers hand the solver a
// Snapshot and compare Version afterwards.
type Model struct {
	Mesh         Mesh               `json:"mesh"`
	Cases        []*LoadCase        `json:"loadCases,omitempty"`
	Combinations []*LoadCombination `json:"loadCombinations,omitempty"`
	Version      int64              `json:"-"`
}

// NewModel returns an empty model
func NewModel() *Model {
	return &Model{Mesh: Mesh{NextID: 1}}
}

func (o *Model) bump() { o.Version++ }

// Validate checks the whole model: mesh referential integrity first, then
// load references. No partial assembly is ever attempted on invalid input.
func (o *Model) Validate() error {
	if err := o.Mesh.Validate(); err != nil {
		return err
	}
	return validateLoads(&o.Mesh, o.Cases, o.Combinations)
}

// node operations //////////////////////////////////////////////////////////

// AddNode creates a new node and returns it
func (o *Model) AddNode(x, y float64) *Node {
	n := &Node{ID: o.Mesh.allocID(), X: x, Y: y}
	o.Mesh.Nodes = append(o.Mesh.Nodes, n)
	o.bump()
	return n
}

// UpdateNode moves a node. Updating a non-existent id is a no-op.
func (o *Model) UpdateNode(id int, x, y float64) {
	if n := o.Mesh.Node(id); n != nil {
		n.X, n.Y = x, y
		o.bump()
	}
}

// SetSupport applies a named support to a node: "fixed", "pinned", "roller"
// (vertical reaction only), "roller_x" (horizontal reaction only) or "free"
func (o *Model) SetSupport(id int, kind string) error {
	n := o.Mesh.Node(id)
	if n == nil {
		return Valerr("missing-node", "cannot set support on missing node %d", id)
	}
	switch kind {
	case "fixed":
		n.Constraints = Constraints{X: true, Y: true, Rotation: true}
	case "pinned":
		n.Constraints = Constraints{X: true, Y: true}
	case "roller":
		n.Constraints = Constraints{Y: true}
	case "roller_x":
		n.Constraints = Constraints{X: true}
	case "free":
		n.Constraints = Constraints{}
	default:
		return Valerr("bad-support", "unknown support type %q", kind)
	}
	o.bump()
	return nil
}

// SetSprings sets Winkler spring stiffnesses on a node
func (o *Model) SetSprings(id int, kx, ky, kr float64) error {
	n := o.Mesh.Node(id)
	if n == nil {
		return Valerr("missing-node", "cannot set springs on missing node %d", id)
	}
	if kx == 0 && ky == 0 && kr == 0 {
		n.Springs = nil
	} else {
		n.Springs = &Springs{Kx: kx, Ky: ky, Kr: kr}
	}
	o.bump()
	return nil
}

// RemoveNode removes a node and cascades: every beam and plane element
// referencing it, every sub-node on those beams or anchored at the node, and
// every load targeting the removed entities. Removing a non-existent id is a
// no-op.
func (o *Model) RemoveNode(id int) {
	if o.Mesh.Node(id) == nil {
		return
	}
	var beams []*BeamElement
	for _, b := range o.Mesh.Beams {
		if b.NodeIDs[0] == id || b.NodeIDs[1] == id {
			o.dropBeamLoads(b)
			o.dropSubNodesOf(b)
			continue
		}
		beams = append(beams, b)
	}
	o.Mesh.Beams = beams

	var planes []*PlaneElement
	for _, p := range o.Mesh.Planes {
		keep := true
		for _, nid := range p.NodeIDs {
			if nid == id {
				keep = false
				break
			}
		}
		if keep {
			planes = append(planes, p)
		} else {
			o.dropThermalLoads(p.ID)
		}
	}
	o.Mesh.Planes = planes

	var subs []*SubNode
	for _, s := range o.Mesh.SubNodes {
		if s.NodeID != id {
			subs = append(subs, s)
		}
	}
	o.Mesh.SubNodes = subs

	var nodes []*Node
	for _, n := range o.Mesh.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	o.Mesh.Nodes = nodes
	o.dropPointLoads(id)
	o.bump()
}

// RemoveOrphanNodes removes nodes referenced by no beam, plane element,
// plate region or sub-node, and returns how many were removed. Supported
// and loaded nodes are kept.
func (o *Model) RemoveOrphanNodes() int {
	used := make(map[int]bool)
	for _, b := range o.Mesh.Beams {
		used[b.NodeIDs[0]] = true
		used[b.NodeIDs[1]] = true
	}
	for _, p := range o.Mesh.Planes {
		for _, nid := range p.NodeIDs {
			used[nid] = true
		}
	}
	for _, s := range o.Mesh.SubNodes {
		used[s.NodeID] = true
	}
	for _, lc := range o.Cases {
		for _, p := range lc.Points {
			used[p.NodeID] = true
		}
	}
	var kept []*Node
	removed := 0
	for _, n := range o.Mesh.Nodes {
		if used[n.ID] || n.Constraints.Any() || n.Springs != nil {
			kept = append(kept, n)
		} else {
			removed++
		}
	}
	if removed > 0 {
		o.Mesh.Nodes = kept
		o.bump()
	}
	return removed
}

// beam and plane operations ////////////////////////////////////////////////

// AddBeam creates a beam between two existing nodes
func (o *Model) AddBeam(n1, n2, materialID int, sec Section) (*BeamElement, error) {
	if o.Mesh.Node(n1) == nil || o.Mesh.Node(n2) == nil {
		return nil, Valerr("missing-node", "beam references missing node (%d or %d)", n1, n2)
	}
	if o.Mesh.Material(materialID) == nil {
		return nil, Valerr("missing-material", "beam references missing material %d", materialID)
	}
	b := &BeamElement{ID: o.Mesh.allocID(), NodeIDs: [2]int{n1, n2}, Section: sec, MaterialID: materialID}
	o.Mesh.Beams = append(o.Mesh.Beams, b)
	o.bump()
	return b, nil
}

// SetReleases sets the end moment releases of a beam
func (o *Model) SetReleases(beamID int, start, end bool) error {
	b := o.Mesh.Beam(beamID)
	if b == nil {
		return Valerr("missing-beam", "cannot set releases on missing beam %d", beamID)
	}
	if !start && !end {
		b.Releases = nil
	} else {
		b.Releases = &EndReleases{StartMoment: start, EndMoment: end}
	}
	o.bump()
	return nil
}

// SetProfile names the beam's steel profile and stores its resolved section
// properties (the caller resolves the name through the steel tables)
func (o *Model) SetProfile(beamID int, profile string, sec Section) error {
	b := o.Mesh.Beam(beamID)
	if b == nil {
		return Valerr("missing-beam", "cannot set profile on missing beam %d", beamID)
	}
	b.Profile = profile
	b.Section = sec
	o.bump()
	return nil
}

// RemoveBeam removes a beam, its sub-nodes and loads targeting it. No-op for
// a non-existent id.
func (o *Model) RemoveBeam(id int) {
	b := o.Mesh.Beam(id)
	if b == nil {
		return
	}
	o.dropBeamLoads(b)
	o.dropSubNodesOf(b)
	var beams []*BeamElement
	for _, bb := range o.Mesh.Beams {
		if bb.ID != id {
			beams = append(beams, bb)
		}
	}
	o.Mesh.Beams = beams
	o.bump()
}

// AddPlane creates a 3- or 4-node plane element
func (o *Model) AddPlane(nodeIDs []int, materialID int, thickness float64) (*PlaneElement, error) {
	if len(nodeIDs) != 3 && len(nodeIDs) != 4 {
		return nil, Valerr("bad-element", "plane element must have 3 or 4 nodes, got %d", len(nodeIDs))
	}
	for _, nid := range nodeIDs {
		if o.Mesh.Node(nid) == nil {
			return nil, Valerr("missing-node", "plane element references missing node %d", nid)
		}
	}
	if o.Mesh.Material(materialID) == nil {
		return nil, Valerr("missing-material", "plane element references missing material %d", materialID)
	}
	p := &PlaneElement{ID: o.Mesh.allocID(), NodeIDs: append([]int(nil), nodeIDs...), MaterialID: materialID, Thickness: thickness}
	o.Mesh.Planes = append(o.Mesh.Planes, p)
	o.bump()
	return p, nil
}

// RemovePlane removes a plane element. No-op for a non-existent id.
func (o *Model) RemovePlane(id int) {
	if o.Mesh.Plane(id) == nil {
		return
	}
	o.dropThermalLoads(id)
	var planes []*PlaneElement
	for _, p := range o.Mesh.Planes {
		if p.ID != id {
			planes = append(planes, p)
		}
	}
	o.Mesh.Planes = planes
	o.bump()
}

// material operations //////////////////////////////////////////////////////

// AddMaterial registers a material and returns it
func (o *Model) AddMaterial(name string, e, nu, rho, alpha float64) *Material {
	m := &Material{ID: o.Mesh.allocID(), Name: name, E: e, Nu: nu, Rho: rho, Alpha: alpha}
	o.Mesh.Materials = append(o.Mesh.Materials, m)
	o.bump()
	return m
}

// plate region operations //////////////////////////////////////////////////

// AddPlateRect creates a rectangular plate region and meshes it
func (o *Model) AddPlateRect(x, y, w, h float64, materialID int, thickness, meshSize float64) (*PlateRegion, error) {
	if w <= 0 || h <= 0 {
		return nil, Valerr("bad-region", "plate region must have positive dimensions (%g x %g)", w, h)
	}
	if o.Mesh.Material(materialID) == nil {
		return nil, Valerr("missing-material", "plate region references missing material %d", materialID)
	}
	r := &PlateRegion{ID: o.Mesh.allocID(), X: x, Y: y, W: w, H: h, MaterialID: materialID, Thickness: thickness, MeshSize: meshSize}
	r.generate(&o.Mesh)
	o.Mesh.Plates = append(o.Mesh.Plates, r)
	o.bump()
	return r, nil
}

// AddPlatePolygon creates a polygon plate region (with optional voids) and
// meshes it
func (o *Model) AddPlatePolygon(outline []Point, voids [][]Point, materialID int, thickness, meshSize float64) (*PlateRegion, error) {
	if len(outline) < 3 {
		return nil, Valerr("bad-region", "polygon plate region needs at least 3 vertices, got %d", len(outline))
	}
	if o.Mesh.Material(materialID) == nil {
		return nil, Valerr("missing-material", "plate region references missing material %d", materialID)
	}
	r := &PlateRegion{ID: o.Mesh.allocID(), Outline: append([]Point(nil), outline...), Voids: voids, MaterialID: materialID, Thickness: thickness, MeshSize: meshSize}
	r.generate(&o.Mesh)
	o.Mesh.Plates = append(o.Mesh.Plates, r)
	o.bump()
	return r, nil
}

// RemovePlate removes a plate region and cascades to its generated elements,
// nodes and any loads that targeted them. No-op for a non-existent id.
func (o *Model) RemovePlate(id int) {
	r := o.Mesh.Plate(id)
	if r == nil {
		return
	}
	gen := make(map[int]bool, len(r.GenNodes)+len(r.GenElems))
	for _, nid := range r.GenNodes {
		gen[nid] = true
	}
	for _, eid := range r.GenElems {
		gen[eid] = true
		o.dropThermalLoads(eid)
	}
	var planes []*PlaneElement
	for _, p := range o.Mesh.Planes {
		if !gen[p.ID] {
			planes = append(planes, p)
		}
	}
	o.Mesh.Planes = planes
	var nodes []*Node
	for _, n := range o.Mesh.Nodes {
		if !gen[n.ID] {
			nodes = append(nodes, n)
		} else {
			o.dropPointLoads(n.ID)
		}
	}
	o.Mesh.Nodes = nodes
	for _, lc := range o.Cases {
		var edges []*EdgeLoad
		for _, e := range lc.Edges {
			if e.RegionID != id {
				edges = append(edges, e)
			}
		}
		lc.Edges = edges
		var surfs []*SurfaceLoad
		for _, s := range lc.Surfaces {
			if s.RegionID != id {
				surfs = append(surfs, s)
			}
		}
		lc.Surfaces = surfs
	}
	var plates []*PlateRegion
	for _, p := range o.Mesh.Plates {
		if p.ID != id {
			plates = append(plates, p)
		}
	}
	o.Mesh.Plates = plates
	o.bump()
}

// sub-node operations //////////////////////////////////////////////////////

// AddSubNode inserts a load-attachment point at parametric position t along
// the given beam without splitting its topology. The created node is
// returned; it participates in the DOF scheme like any other node.
func (o *Model) AddSubNode(beamID int, t float64) (*SubNode, error) {
	b := o.Mesh.Beam(beamID)
	if b == nil {
		return nil, Valerr("missing-beam", "cannot add sub-node on missing beam %d", beamID)
	}
	if t <= 0 || t >= 1 {
		return nil, Valerr("bad-subnode", "sub-node position %g must be inside (0,1)", t)
	}
	n1 := o.Mesh.Node(b.NodeIDs[0])
	n2 := o.Mesh.Node(b.NodeIDs[1])
	n := o.AddNode(n1.X+t*(n2.X-n1.X), n1.Y+t*(n2.Y-n1.Y))
	s := &SubNode{ID: o.Mesh.allocID(), NodeID: n.ID, BeamStart: b.NodeIDs[0], BeamEnd: b.NodeIDs[1], T: t}
	o.Mesh.SubNodes = append(o.Mesh.SubNodes, s)
	o.bump()
	return s, nil
}

// RemoveSubNode removes a sub-node record and its mesh node. No-op for a
// non-existent id.
func (o *Model) RemoveSubNode(id int) {
	var found *SubNode
	var subs []*SubNode
	for _, s := range o.Mesh.SubNodes {
		if s.ID == id {
			found = s
			continue
		}
		subs = append(subs, s)
	}
	if found == nil {
		return
	}
	o.Mesh.SubNodes = subs
	o.RemoveNode(found.NodeID)
}

// load case and combination operations /////////////////////////////////////

// AddLoadCase creates a load case
func (o *Model) AddLoadCase(name string, typ CaseType) *LoadCase {
	lc := &LoadCase{ID: o.Mesh.allocID(), Name: name, Type: typ}
	o.Cases = append(o.Cases, lc)
	o.bump()
	return lc
}

// LoadCase returns the case with the given id or nil
func (o *Model) LoadCase(id int) *LoadCase {
	for _, lc := range o.Cases {
		if lc.ID == id {
			return lc
		}
	}
	return nil
}

// Combination returns the combination with the given id or nil
func (o *Model) Combination(id int) *LoadCombination {
	for _, cb := range o.Combinations {
		if cb.ID == id {
			return cb
		}
	}
	return nil
}

// RemoveLoadCase removes a case. Combinations referencing it drop the
// corresponding factor entry (a missing entry already means factor zero), so
// referential integrity is restored by cascade rather than by rejecting the
// deletion. No-op for a non-existent id.
func (o *Model) RemoveLoadCase(id int) {
	if o.LoadCase(id) == nil {
		return
	}
	var cases []*LoadCase
	for _, lc := range o.Cases {
		if lc.ID != id {
			cases = append(cases, lc)
		}
	}
	o.Cases = cases
	for _, cb := range o.Combinations {
		delete(cb.Factors, id)
	}
	o.bump()
}

// AddCombination creates a load combination from a factor map
func (o *Model) AddCombination(name string, typ CaseType, factors map[int]float64) (*LoadCombination, error) {
	for cid := range factors {
		if o.LoadCase(cid) == nil {
			return nil, Valerr("missing-case", "combination references missing load case %d", cid)
		}
	}
	f := make(map[int]float64, len(factors))
	for k, v := range factors {
		f[k] = v
	}
	cb := &LoadCombination{ID: o.Mesh.allocID(), Name: name, Type: typ, Factors: f}
	o.Combinations = append(o.Combinations, cb)
	o.bump()
	return cb, nil
}

// RemoveCombination removes a combination. No-op for a non-existent id.
func (o *Model) RemoveCombination(id int) {
	var combos []*LoadCombination
	removed := false
	for _, cb := range o.Combinations {
		if cb.ID == id {
			removed = true
			continue
		}
		combos = append(combos, cb)
	}
	if removed {
		o.Combinations = combos
		o.bump()
	}
}

// AddPointLoad appends a point load to a case
func (o *Model) AddPointLoad(caseID, nodeID int, fx, fy, mz float64) (*PointLoad, error) {
	lc := o.LoadCase(caseID)
	if lc == nil {
		return nil, Valerr("missing-case", "load case %d does not exist", caseID)
	}
	if o.Mesh.Node(nodeID) == nil {
		return nil, Valerr("missing-node", "point load targets missing node %d", nodeID)
	}
	p := &PointLoad{ID: o.Mesh.allocID(), NodeID: nodeID, Fx: fx, Fy: fy, Mz: mz}
	lc.Points = append(lc.Points, p)
	o.bump()
	return p, nil
}

// AddDistributedLoad appends a distributed load to a case
func (o *Model) AddDistributedLoad(caseID int, d DistributedLoad) (*DistributedLoad, error) {
	lc := o.LoadCase(caseID)
	if lc == nil {
		return nil, Valerr("missing-case", "load case %d does not exist", caseID)
	}
	if o.Mesh.Beam(d.BeamID) == nil {
		return nil, Valerr("missing-beam", "distributed load targets missing beam %d", d.BeamID)
	}
	if !(d.StartT >= 0 && d.StartT < d.EndT && d.EndT <= 1) {
		return nil, Valerr("bad-span", "invalid load span [%g,%g]", d.StartT, d.EndT)
	}
	if d.System == "" {
		d.System = SystemLocal
	}
	d.ID = o.Mesh.allocID()
	dd := d
	lc.Distributed = append(lc.Distributed, &dd)
	o.bump()
	return &dd, nil
}

// AddEdgeLoad appends an edge load to a case
func (o *Model) AddEdgeLoad(caseID int, e EdgeLoad) (*EdgeLoad, error) {
	lc := o.LoadCase(caseID)
	if lc == nil {
		return nil, Valerr("missing-case", "load case %d does not exist", caseID)
	}
	reg := o.Mesh.Plate(e.RegionID)
	if reg == nil {
		return nil, Valerr("missing-region", "edge load targets missing plate region %d", e.RegionID)
	}
	if _, _, err := reg.EdgeSegment(e.Edge); err != nil {
		return nil, err
	}
	e.ID = o.Mesh.allocID()
	ee := e
	lc.Edges = append(lc.Edges, &ee)
	o.bump()
	return &ee, nil
}

// AddSurfaceLoad appends a uniform plate pressure to a case
func (o *Model) AddSurfaceLoad(caseID, regionID int, qz float64) (*SurfaceLoad, error) {
	lc := o.LoadCase(caseID)
	if lc == nil {
		return nil, Valerr("missing-case", "load case %d does not exist", caseID)
	}
	if o.Mesh.Plate(regionID) == nil {
		return nil, Valerr("missing-region", "surface load targets missing plate region %d", regionID)
	}
	s := &SurfaceLoad{ID: o.Mesh.allocID(), RegionID: regionID, Qz: qz}
	lc.Surfaces = append(lc.Surfaces, s)
	o.bump()
	return s, nil
}

// AddThermalLoad appends a uniform temperature change to a case
func (o *Model) AddThermalLoad(caseID, elementID int, deltaT float64) (*ThermalLoad, error) {
	lc := o.LoadCase(caseID)
	if lc == nil {
		return nil, Valerr("missing-case", "load case %d does not exist", caseID)
	}
	if o.Mesh.Beam(elementID) == nil && o.Mesh.Plane(elementID) == nil {
		return nil, Valerr("missing-element", "thermal load targets missing element %d", elementID)
	}
	t := &ThermalLoad{ID: o.Mesh.allocID(), ElementID: elementID, DeltaT: deltaT}
	lc.Thermals = append(lc.Thermals, t)
	o.bump()
	return t, nil
}

// RemoveLoad removes a load by id from every case. No-op when absent.
func (o *Model) RemoveLoad(id int) {
	removed := false
	for _, lc := range o.Cases {
		var pts []*PointLoad
		for _, p := range lc.Points {
			if p.ID == id {
				removed = true
				continue
			}
			pts = append(pts, p)
		}
		lc.Points = pts
		var dls []*DistributedLoad
		for _, d := range lc.Distributed {
			if d.ID == id {
				removed = true
				continue
			}
			dls = append(dls, d)
		}
		lc.Distributed = dls
		var els []*EdgeLoad
		for _, e := range lc.Edges {
			if e.ID == id {
				removed = true
				continue
			}
			els = append(els, e)
		}
		lc.Edges = els
		var sfs []*SurfaceLoad
		for _, s := range lc.Surfaces {
			if s.ID == id {
				removed = true
				continue
			}
			sfs = append(sfs, s)
		}
		lc.Surfaces = sfs
		var ths []*ThermalLoad
		for _, t := range lc.Thermals {
			if t.ID == id {
				removed = true
				continue
			}
			ths = append(ths, t)
		}
		lc.Thermals = ths
	}
	if removed {
		o.bump()
	}
}

// cascade helpers //////////////////////////////////////////////////////////

func (o *Model) dropBeamLoads(b *BeamElement) {
	for _, lc := range o.Cases {
		var dls []*DistributedLoad
		for _, d := range lc.Distributed {
			if d.BeamID != b.ID {
				dls = append(dls, d)
			}
		}
		lc.Distributed = dls
	}
	o.dropThermalLoads(b.ID)
}

func (o *Model) dropThermalLoads(elemID int) {
	for _, lc := range o.Cases {
		var ths []*ThermalLoad
		for _, t := range lc.Thermals {
			if t.ElementID != elemID {
				ths = append(ths, t)
			}
		}
		lc.Thermals = ths
	}
}

func (o *Model) dropPointLoads(nodeID int) {
	for _, lc := range o.Cases {
		var pts []*PointLoad
		for _, p := range lc.Points {
			if p.NodeID != nodeID {
				pts = append(pts, p)
			}
		}
		lc.Points = pts
	}
}

func (o *Model) dropSubNodesOf(b *BeamElement) {
	var subs []*SubNode
	for _, s := range o.Mesh.SubNodes {
		if s.BeamStart == b.NodeIDs[0] && s.BeamEnd == b.NodeIDs[1] {
			continue
		}
		subs = append(subs, s)
	}
	o.Mesh.SubNodes = subs
}

// snapshot and files ///////////////////////////////////////////////////////

// Snapshot returns a deep copy of the model. The solver operates on
// snapshots so UI edits can never race a running solve.
func (o *Model) Snapshot() *Model {
	b, err := json.Marshal(o)
	if err != nil {
		chk.Panic("cannot snapshot model: %v", err)
	}
	var c Model
	err = json.Unmarshal(b, &c)
	if err != nil {
		chk.Panic("cannot restore model snapshot: %v", err)
	}
	c.Mesh.NextID = o.Mesh.NextID
	c.Version = o.Version
	return &c
}

// syncNextID lifts the id counter above every id present in the model.
// Hand-authored files may omit nextId or carry a value below ids they use;
// allocating from such a counter would mint colliding ids.
func (o *Model) syncNextID() {
	if o.Mesh.NextID < 1 {
		o.Mesh.NextID = 1
	}
	for _, n := range o.Mesh.Nodes {
		o.Mesh.raiseNextID(n.ID)
	}
	for _, b := range o.Mesh.Beams {
		o.Mesh.raiseNextID(b.ID)
	}
	for _, p := range o.Mesh.Planes {
		o.Mesh.raiseNextID(p.ID)
	}
	for _, p := range o.Mesh.Plates {
		o.Mesh.raiseNextID(p.ID)
	}
	for _, m := range o.Mesh.Materials {
		o.Mesh.raiseNextID(m.ID)
	}
	for _, s := range o.Mesh.SubNodes {
		o.Mesh.raiseNextID(s.ID)
	}
	for _, lc := range o.Cases {
		o.Mesh.raiseNextID(lc.ID)
		for _, l := range lc.Points {
			o.Mesh.raiseNextID(l.ID)
		}
		for _, l := range lc.Distributed {
			o.Mesh.raiseNextID(l.ID)
		}
		for _, l := range lc.Edges {
			o.Mesh.raiseNextID(l.ID)
		}
		for _, l := range lc.Surfaces {
			o.Mesh.raiseNextID(l.ID)
		}
		for _, l := range lc.Thermals {
			o.Mesh.raiseNextID(l.ID)
		}
	}
	for _, cb := range o.Combinations {
		o.Mesh.raiseNextID(cb.ID)
	}
}

// ReadModel reads a model from a JSON file
func ReadModel(path string) (*Model, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read model file %q: %v", path, err)
	}
	var m Model
	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, chk.Err("cannot unmarshal model file %q: %v", path, err)
	}
	m.syncNextID()
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveJSON writes the model to a JSON file
func (o *Model) SaveJSON(path string) error {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return chk.Err("cannot marshal model: %v", err)
	}
	io.WriteBytesToFile(path, b)
	return nil
}
