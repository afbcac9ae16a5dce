// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"sort"
)

// Constraints holds the support restraint flags of a node. For frame analyses
// the flags restrain [ux, uy, rz]. For plate bending, Y restrains the
// transverse deflection w and Rotation restrains both plate rotations; X has
// no meaning there and is ignored.
type Constraints struct {
	X        bool `json:"x"`
	Y        bool `json:"y"`
	Rotation bool `json:"rotation"`
}

// Any tells whether at least one restraint flag is set
func (o Constraints) Any() bool { return o.X || o.Y || o.Rotation }

// Springs holds Winkler-type elastic support stiffnesses [N/m, N/m, Nm/rad].
// A spring is added to the corresponding diagonal stiffness term instead of
// eliminating the DOF.
type Springs struct {
	Kx float64 `json:"kx"`
	Ky float64 `json:"ky"`
	Kr float64 `json:"kr"`
}

// Node is a mesh vertex with optional supports
type Node struct {
	ID          int         `json:"id"`
	X           float64     `json:"x"` // [m]
	Y           float64     `json:"y"` // [m]
	Constraints Constraints `json:"constraints"`
	Springs     *Springs    `json:"springs,omitempty"`
}

// Section holds beam cross-section properties
type Section struct {
	A float64 `json:"A"` // area [m²]
	I float64 `json:"I"` // second moment of area [m⁴]
	H float64 `json:"h"` // section depth [m]
}

// EndReleases flags moment hinges at beam ends. A released end carries no
// bending moment into the node.
type EndReleases struct {
	StartMoment bool `json:"startMoment"`
	EndMoment   bool `json:"endMoment"`
}

// BeamElement is a 2-node Euler-Bernoulli frame member
type BeamElement struct {
	ID         int          `json:"id"`
	NodeIDs    [2]int       `json:"nodeIds"`
	Section    Section      `json:"section"`
	Profile    string       `json:"profile,omitempty"` // e.g. "IPE200"
	MaterialID int          `json:"materialId"`
	Releases   *EndReleases `json:"endReleases,omitempty"`
}

// PlaneElement is a 3-node triangle or 4-node quadrilateral used for plane
// stress, plane strain and plate bending analyses. RegionID is nonzero when
// the element was generated by a plate region.
type PlaneElement struct {
	ID         int     `json:"id"`
	NodeIDs    []int   `json:"nodeIds"` // 3 or 4, counterclockwise
	MaterialID int     `json:"materialId"`
	Thickness  float64 `json:"thickness"` // [m]
	RegionID   int     `json:"regionId,omitempty"`
}

// Material holds linear-elastic material parameters. Alpha is the thermal
// expansion coefficient required by thermal loads; it defaults to zero which
// makes thermal loads no-ops for materials that never set it.
type Material struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	E     float64 `json:"E"`     // Young's modulus [Pa]
	Nu    float64 `json:"nu"`    // Poisson ratio [-]
	Rho   float64 `json:"rho"`   // density [kg/m³]
	Alpha float64 `json:"alpha"` // thermal expansion [1/K]
}

// SubNode records a non-destructive load-attachment point along a beam. The
// beam keeps its original endpoints; the solver splits the member at sub-node
// positions during assembly only. NodeID is the mesh node created for it.
type SubNode struct {
	ID        int     `json:"id"`
	NodeID    int     `json:"nodeId"`
	BeamStart int     `json:"originalBeamStartId"`
	BeamEnd   int     `json:"originalBeamEndId"`
	T         float64 `json:"t"` // parametric position in (0,1)
}

// Mesh is the structural model geometry: nodes, members, plane elements,
// plate regions, materials and sub-nodes. Entities are mutated exclusively
// through the Model mutation operations which maintain referential integrity
// and the version counter.
type Mesh struct {
	Nodes     []*Node         `json:"nodes"`
	Beams     []*BeamElement  `json:"beams"`
	Planes    []*PlaneElement `json:"planes,omitempty"`
	Plates    []*PlateRegion  `json:"plates,omitempty"`
	Materials []*Material     `json:"materials"`
	SubNodes  []*SubNode      `json:"subNodes,omitempty"`
	NextID    int             `json:"nextId"`
}

// lookup ///////////////////////////////////////////////////////////////////

// Node returns the node with the given id or nil
func (o *Mesh) Node(id int) *Node {
	for _, n := range o.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Beam returns the beam with the given id or nil
func (o *Mesh) Beam(id int) *BeamElement {
	for _, b := range o.Beams {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Plane returns the plane element with the given id or nil
func (o *Mesh) Plane(id int) *PlaneElement {
	for _, p := range o.Planes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Plate returns the plate region with the given id or nil
func (o *Mesh) Plate(id int) *PlateRegion {
	for _, p := range o.Plates {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Material returns the material with the given id or nil
func (o *Mesh) Material(id int) *Material {
	for _, m := range o.Materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// SubNodesOf returns the sub-nodes recorded along beam (start,end), sorted by
// parametric position
func (o *Mesh) SubNodesOf(startID, endID int) (res []*SubNode) {
	for _, s := range o.SubNodes {
		if s.BeamStart == startID && s.BeamEnd == endID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].T < res[j].T })
	return
}

// BeamLength returns the length of a beam member
func (o *Mesh) BeamLength(b *BeamElement) float64 {
	n1 := o.Node(b.NodeIDs[0])
	n2 := o.Node(b.NodeIDs[1])
	if n1 == nil || n2 == nil {
		return 0
	}
	return math.Hypot(n2.X-n1.X, n2.Y-n1.Y)
}

// SortedNodeIDs returns all node ids in ascending order. The order fixes the
// DOF numbering of a solve and the layout of flat result arrays.
func (o *Mesh) SortedNodeIDs() []int {
	ids := make([]int, len(o.Nodes))
	for i, n := range o.Nodes {
		ids[i] = n.ID
	}
	sort.Ints(ids)
	return ids
}

// raiseNextID lifts the counter above one existing id
func (o *Mesh) raiseNextID(id int) {
	if id >= o.NextID {
		o.NextID = id + 1
	}
}

// allocID returns the next free entity id. Every entity of a model, loads and
// cases included, draws from this one counter.
func (o *Mesh) allocID() int {
	if o.NextID < 1 {
		o.NextID = 1
		for _, n := range o.Nodes {
			o.raiseNextID(n.ID)
		}
		for _, b := range o.Beams {
			o.raiseNextID(b.ID)
		}
		for _, p := range o.Planes {
			o.raiseNextID(p.ID)
		}
		for _, p := range o.Plates {
			o.raiseNextID(p.ID)
		}
		for _, m := range o.Materials {
			o.raiseNextID(m.ID)
		}
		for _, s := range o.SubNodes {
			o.raiseNextID(s.ID)
		}
	}
	id := o.NextID
	o.NextID++
	return id
}

// Validate checks referential integrity of the mesh: every element and
// sub-node reference must resolve and plane elements must have 3 or 4 nodes.
// It returns the first problem found, before any assembly is attempted.
func (o *Mesh) Validate() error {
	seen := make(map[int]bool, len(o.Nodes))
	for _, n := range o.Nodes {
		if seen[n.ID] {
			return Valerr("duplicate-node", "node id %d is defined twice", n.ID)
		}
		seen[n.ID] = true
	}
	for _, b := range o.Beams {
		for _, nid := range b.NodeIDs {
			if !seen[nid] {
				return Valerr("missing-node", "beam %d references missing node %d", b.ID, nid)
			}
		}
		if o.Material(b.MaterialID) == nil {
			return Valerr("missing-material", "beam %d references missing material %d", b.ID, b.MaterialID)
		}
	}
	for _, p := range o.Planes {
		if len(p.NodeIDs) != 3 && len(p.NodeIDs) != 4 {
			return Valerr("bad-element", "plane element %d must have 3 or 4 nodes, has %d", p.ID, len(p.NodeIDs))
		}
		for _, nid := range p.NodeIDs {
			if !seen[nid] {
				return Valerr("missing-node", "plane element %d references missing node %d", p.ID, nid)
			}
		}
		if o.Material(p.MaterialID) == nil {
			return Valerr("missing-material", "plane element %d references missing material %d", p.ID, p.MaterialID)
		}
	}
	for _, s := range o.SubNodes {
		if !seen[s.NodeID] || !seen[s.BeamStart] || !seen[s.BeamEnd] {
			return Valerr("missing-node", "sub-node %d references a missing node", s.ID)
		}
		if s.T <= 0 || s.T >= 1 {
			return Valerr("bad-subnode", "sub-node %d has parametric position %g outside (0,1)", s.ID, s.T)
		}
	}
	return nil
}
