// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/ele"
	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/la"
)

// AnalysisType selects which elements are assembled and what each nodal DOF
// means
type AnalysisType string

// analysis types
const (
	Frame        AnalysisType = "frame"        // beams: [ux, uy, rz]
	PlaneStress  AnalysisType = "planeStress"  // plane elements: [ux, uy]
	PlaneStrain  AnalysisType = "planeStrain"  // plane elements: [ux, uy]
	PlateBending AnalysisType = "plateBending" // plate quads: [uz, rx, ry]
)

// Ndof returns the number of DOFs per node
func (a AnalysisType) Ndof() int {
	if a == PlaneStress || a == PlaneStrain {
		return 2
	}
	return 3
}

// Keys returns the DOF keys, used in diagnostics
func (a AnalysisType) Keys() []string {
	switch a {
	case PlaneStress, PlaneStrain:
		return []string{"ux", "uy"}
	case PlateBending:
		return []string{"uz", "rx", "ry"}
	}
	return []string{"ux", "uy", "rz"}
}

// Valid tells whether the analysis type is known
func (a AnalysisType) Valid() bool {
	switch a {
	case Frame, PlaneStress, PlaneStrain, PlateBending:
		return true
	}
	return false
}

// beamSpan is one assembled sub-member of a parent beam. Sub-nodes split the
// parent into spans at assembly time only; T0 and T1 locate the span in the
// parent's parametric coordinate.
type beamSpan struct {
	El     *ele.Beam
	T0, T1 float64
}

// Domain holds the discretized system of one solve: equation numbering,
// constructed elements, prescribed equations, spring stiffnesses and the
// accumulated load vector. A Domain is built per solve and never shared.
type Domain struct {
	Msh      *inp.Mesh
	Analysis AnalysisType

	// equation numbering
	NodeIDs []int       // ascending node ids; fixes DOF order and result layout
	eqOf    map[int]int // node id -> first equation
	Ny      int         // total number of equations

	// elements, keyed by the input entity that produced them
	Beams  map[int][]*beamSpan    // parent beam id -> spans in order
	Tris   map[int]*ele.Tri3      // plane element id -> triangle
	Quads  map[int]*ele.Qua4      // plane element id -> quadrilateral
	Plates map[int]*ele.PlateQuad // plane element id -> plate bending quad
	planes map[int]*inp.PlaneElement

	// boundary conditions
	Pres    []bool    // prescribed (eliminated) equations
	Springs []float64 // diagonal spring stiffness per equation

	// assembled system
	F     []float64   // global load vector
	Kfull [][]float64 // full stiffness matrix (before elimination)
	Kt    *la.Triplet // full stiffness in sparse triplet form, for reactions
}

// NewDomain numbers the equations, constructs the elements of the selected
// analysis type and records supports and springs. Loads are applied
// afterwards with ApplyCase.
func NewDomain(msh *inp.Mesh, analysis AnalysisType) (*Domain, error) {
	o := &Domain{
		Msh:      msh,
		Analysis: analysis,
		Beams:    make(map[int][]*beamSpan),
		Tris:     make(map[int]*ele.Tri3),
		Quads:    make(map[int]*ele.Qua4),
		Plates:   make(map[int]*ele.PlateQuad),
		planes:   make(map[int]*inp.PlaneElement),
	}

	// equations
	ndof := analysis.Ndof()
	o.NodeIDs = msh.SortedNodeIDs()
	o.eqOf = make(map[int]int, len(o.NodeIDs))
	for i, id := range o.NodeIDs {
		o.eqOf[id] = i * ndof
	}
	o.Ny = len(o.NodeIDs) * ndof
	o.Pres = make([]bool, o.Ny)
	o.Springs = make([]float64, o.Ny)
	o.F = make([]float64, o.Ny)

	// supports and springs
	for _, n := range msh.Nodes {
		eq := o.eqOf[n.ID]
		switch analysis {
		case Frame:
			o.Pres[eq] = o.Pres[eq] || n.Constraints.X
			o.Pres[eq+1] = o.Pres[eq+1] || n.Constraints.Y
			o.Pres[eq+2] = o.Pres[eq+2] || n.Constraints.Rotation
			if n.Springs != nil {
				o.Springs[eq] += n.Springs.Kx
				o.Springs[eq+1] += n.Springs.Ky
				o.Springs[eq+2] += n.Springs.Kr
			}
		case PlaneStress, PlaneStrain:
			o.Pres[eq] = o.Pres[eq] || n.Constraints.X
			o.Pres[eq+1] = o.Pres[eq+1] || n.Constraints.Y
			if n.Springs != nil {
				o.Springs[eq] += n.Springs.Kx
				o.Springs[eq+1] += n.Springs.Ky
			}
		case PlateBending:
			// vertical flag restrains w; the rotation flag restrains both
			// plate rotations. The in-plane x flag has no meaning here.
			o.Pres[eq] = o.Pres[eq] || n.Constraints.Y
			o.Pres[eq+1] = o.Pres[eq+1] || n.Constraints.Rotation
			o.Pres[eq+2] = o.Pres[eq+2] || n.Constraints.Rotation
			if n.Springs != nil {
				o.Springs[eq] += n.Springs.Ky
				o.Springs[eq+1] += n.Springs.Kr
				o.Springs[eq+2] += n.Springs.Kr
			}
		}
	}

	// elements
	var err error
	switch analysis {
	case Frame:
		err = o.buildBeams()
	case PlaneStress, PlaneStrain:
		err = o.buildPlanes()
	case PlateBending:
		err = o.buildPlateQuads()
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// buildBeams constructs one element per beam span. Sub-nodes split the parent
// member; moment releases stay at the parent's physical ends.
func (o *Domain) buildBeams() error {
	for _, b := range o.Msh.Beams {
		mat := o.Msh.Material(b.MaterialID)
		n1 := o.Msh.Node(b.NodeIDs[0])
		n2 := o.Msh.Node(b.NodeIDs[1])
		subs := o.Msh.SubNodesOf(b.NodeIDs[0], b.NodeIDs[1])

		// span breakpoints in parametric coordinates
		ts := []float64{0}
		ids := []int{n1.ID}
		for _, s := range subs {
			ts = append(ts, s.T)
			ids = append(ids, s.NodeID)
		}
		ts = append(ts, 1)
		ids = append(ids, n2.ID)

		relStart, relEnd := false, false
		if b.Releases != nil {
			relStart = b.Releases.StartMoment
			relEnd = b.Releases.EndMoment
		}
		for i := 0; i+1 < len(ts); i++ {
			a := o.Msh.Node(ids[i])
			c := o.Msh.Node(ids[i+1])
			el, err := ele.NewBeam(a.X, a.Y, c.X, c.Y, mat.E, b.Section.A, b.Section.I,
				relStart && i == 0, relEnd && i+2 == len(ts))
			if err != nil {
				return inp.Valerr("bad-beam", "beam %d: %v", b.ID, err)
			}
			el.Umap = o.umap3(a.ID, c.ID)
			o.Beams[b.ID] = append(o.Beams[b.ID], &beamSpan{El: el, T0: ts[i], T1: ts[i+1]})
		}
	}
	return nil
}

// buildPlanes constructs membrane elements for plane stress / plane strain
func (o *Domain) buildPlanes() error {
	for _, p := range o.Msh.Planes {
		mat := o.Msh.Material(p.MaterialID)
		var d [][]float64
		if o.Analysis == PlaneStrain {
			d = ele.PlaneStrainD(mat.E, mat.Nu)
		} else {
			d = ele.PlaneStressD(mat.E, mat.Nu)
		}
		o.planes[p.ID] = p
		if len(p.NodeIDs) == 3 {
			var x, y [3]float64
			for i, nid := range p.NodeIDs {
				n := o.Msh.Node(nid)
				x[i], y[i] = n.X, n.Y
			}
			el, err := ele.NewTri3(x, y, d, p.Thickness)
			if err != nil {
				return inp.Valerr("bad-element", "plane element %d: %v", p.ID, err)
			}
			el.Umap = o.umap2(p.NodeIDs)
			o.Tris[p.ID] = el
			continue
		}
		var x, y [4]float64
		for i, nid := range p.NodeIDs {
			n := o.Msh.Node(nid)
			x[i], y[i] = n.X, n.Y
		}
		el, err := ele.NewQua4(x, y, d, p.Thickness)
		if err != nil {
			return inp.Valerr("bad-element", "plane element %d: %v", p.ID, err)
		}
		el.Umap = o.umap2(p.NodeIDs)
		o.Quads[p.ID] = el
	}
	return nil
}

// buildPlateQuads constructs Kirchhoff plate elements. Triangles cannot carry
// the MZC formulation and are rejected.
func (o *Domain) buildPlateQuads() error {
	for _, p := range o.Msh.Planes {
		if len(p.NodeIDs) != 4 {
			return inp.Valerr("bad-element", "plate bending requires 4-node elements; element %d has %d nodes", p.ID, len(p.NodeIDs))
		}
		mat := o.Msh.Material(p.MaterialID)
		var x, y [4]float64
		for i, nid := range p.NodeIDs {
			n := o.Msh.Node(nid)
			x[i], y[i] = n.X, n.Y
		}
		el, err := ele.NewPlateQuad(x, y, ele.PlateD(mat.E, mat.Nu, p.Thickness))
		if err != nil {
			return inp.Valerr("bad-element", "plate element %d: %v", p.ID, err)
		}
		el.Umap = o.umap3(p.NodeIDs...)
		o.planes[p.ID] = p
		o.Plates[p.ID] = el
	}
	return nil
}

// umap3 builds the assembly map of 3-DOF nodes
func (o *Domain) umap3(ids ...int) []int {
	m := make([]int, 0, 3*len(ids))
	for _, id := range ids {
		eq := o.eqOf[id]
		m = append(m, eq, eq+1, eq+2)
	}
	return m
}

// umap2 builds the assembly map of 2-DOF nodes
func (o *Domain) umap2(ids []int) []int {
	m := make([]int, 0, 2*len(ids))
	for _, id := range ids {
		eq := o.eqOf[id]
		m = append(m, eq, eq+1)
	}
	return m
}

// loads ////////////////////////////////////////////////////////////////////

// ApplyCase adds one load case, scaled by factor, to the domain. Loads that
// target elements outside the active analysis type contribute nothing.
func (o *Domain) ApplyCase(lc *inp.LoadCase, factor float64) {
	if factor == 0 {
		return
	}
	for _, p := range lc.Points {
		eq := o.eqOf[p.NodeID]
		switch o.Analysis {
		case Frame:
			o.F[eq] += factor * p.Fx
			o.F[eq+1] += factor * p.Fy
			o.F[eq+2] += factor * p.Mz
		case PlaneStress, PlaneStrain:
			o.F[eq] += factor * p.Fx
			o.F[eq+1] += factor * p.Fy
		case PlateBending:
			o.F[eq] += factor * p.Fy // transverse
		}
	}
	for _, d := range lc.Distributed {
		o.applyDistributed(d, factor)
	}
	for _, e := range lc.Edges {
		o.applyEdge(e, factor)
	}
	for _, s := range lc.Surfaces {
		if o.Analysis == PlateBending {
			reg := o.Msh.Plate(s.RegionID)
			for _, eid := range reg.GenElems {
				if el, ok := o.Plates[eid]; ok {
					el.AddPressure(factor * s.Qz)
				}
			}
		}
	}
	for _, t := range lc.Thermals {
		o.applyThermal(t, factor)
	}
}

// applyDistributed maps a parent-beam line load onto the overlapping spans,
// interpolating the intensities at the overlap boundaries
func (o *Domain) applyDistributed(d *inp.DistributedLoad, factor float64) {
	spans, ok := o.Beams[d.BeamID]
	if !ok {
		return
	}
	global := d.System == inp.SystemGlobal
	lerp := func(q0, q1, t float64) float64 {
		return q0 + (q1-q0)*(t-d.StartT)/(d.EndT-d.StartT)
	}
	for _, sp := range spans {
		a := math.Max(d.StartT, sp.T0)
		b := math.Min(d.EndT, sp.T1)
		if b-a < 1e-12 {
			continue
		}
		qxa := factor * lerp(d.QxStart, d.QxEnd, a)
		qxb := factor * lerp(d.QxStart, d.QxEnd, b)
		qya := factor * lerp(d.QyStart, d.QyEnd, a)
		qyb := factor * lerp(d.QyStart, d.QyEnd, b)
		ta := (a - sp.T0) / (sp.T1 - sp.T0)
		tb := (b - sp.T0) / (sp.T1 - sp.T0)
		sp.El.AddSpanLoad(qxa, qxb, qya, qyb, ta, tb, global)
	}
}

// applyEdge distributes a region boundary load over the generated element
// edges lying on the segment
func (o *Domain) applyEdge(e *inp.EdgeLoad, factor float64) {
	reg := o.Msh.Plate(e.RegionID)
	if reg == nil {
		return
	}
	pa, pb, err := reg.EdgeSegment(e.Edge)
	if err != nil {
		return
	}
	segLen := math.Hypot(pb.X-pa.X, pb.Y-pa.Y)
	if segLen < 1e-12 {
		return
	}
	tol := 1e-6 * segLen

	// parametric position along the segment, or -1 when off it
	paramOf := func(n *inp.Node) float64 {
		dx, dy := pb.X-pa.X, pb.Y-pa.Y
		t := ((n.X-pa.X)*dx + (n.Y-pa.Y)*dy) / (segLen * segLen)
		if t < -1e-9 || t > 1+1e-9 {
			return -1
		}
		px, py := pa.X+t*dx, pa.Y+t*dy
		if math.Hypot(n.X-px, n.Y-py) > tol {
			return -1
		}
		return t
	}

	for _, eid := range reg.GenElems {
		p, ok := o.planes[eid]
		if !ok {
			continue
		}
		nn := len(p.NodeIDs)
		for i := 0; i < nn; i++ {
			na := o.Msh.Node(p.NodeIDs[i])
			nb := o.Msh.Node(p.NodeIDs[(i+1)%nn])
			ta := paramOf(na)
			tb := paramOf(nb)
			if ta < 0 || tb < 0 {
				continue
			}
			switch o.Analysis {
			case PlaneStress, PlaneStrain:
				qxa := factor * (e.QxStart + (e.QxEnd-e.QxStart)*ta)
				qxb := factor * (e.QxStart + (e.QxEnd-e.QxStart)*tb)
				qya := factor * (e.QyStart + (e.QyEnd-e.QyStart)*ta)
				qyb := factor * (e.QyStart + (e.QyEnd-e.QyStart)*tb)
				if el, ok := o.Quads[eid]; ok {
					el.AddEdgeLoad(i, qxa, qxb, qya, qyb)
				}
			case PlateBending:
				qza := factor * (e.QzStart + (e.QzEnd-e.QzStart)*ta)
				qzb := factor * (e.QzStart + (e.QzEnd-e.QzStart)*tb)
				if el, ok := o.Plates[eid]; ok {
					el.AddEdgeLoad(i, qza, qzb)
				}
			}
		}
	}
}

// applyThermal adds a uniform temperature change to one element
func (o *Domain) applyThermal(t *inp.ThermalLoad, factor float64) {
	if spans, ok := o.Beams[t.ElementID]; ok {
		b := o.Msh.Beam(t.ElementID)
		mat := o.Msh.Material(b.MaterialID)
		for _, sp := range spans {
			sp.El.AddThermal(factor * mat.Alpha * t.DeltaT)
		}
		return
	}
	p := o.Msh.Plane(t.ElementID)
	if p == nil || o.Analysis == PlateBending {
		return
	}
	mat := o.Msh.Material(p.MaterialID)
	eps0 := ele.ThermalStrain(mat.Alpha, factor*t.DeltaT, mat.Nu, o.Analysis == PlaneStrain)
	if el, ok := o.Tris[t.ElementID]; ok {
		el.AddThermal(eps0)
	}
	if el, ok := o.Quads[t.ElementID]; ok {
		el.AddThermal(eps0)
	}
}

// assembly /////////////////////////////////////////////////////////////////

// Assemble scatters the element matrices into the full stiffness (dense and
// triplet forms), adds spring stiffnesses to the diagonal and collects the
// element equivalent loads into F
func (o *Domain) Assemble() {
	o.Kfull = la.MatAlloc(o.Ny, o.Ny)
	nnzEst := 0
	scatter := func(k [][]float64, umap []int, f []float64) {
		for i, I := range umap {
			for j, J := range umap {
				o.Kfull[I][J] += k[i][j]
			}
			if f != nil {
				o.F[I] += f[i]
			}
		}
		nnzEst += len(umap) * len(umap)
	}
	for _, spans := range o.Beams {
		for _, sp := range spans {
			scatter(sp.El.K, sp.El.Umap, sp.El.F())
		}
	}
	for _, el := range o.Tris {
		scatter(el.K, el.Umap, el.F())
	}
	for _, el := range o.Quads {
		scatter(el.K, el.Umap, el.F())
	}
	for _, el := range o.Plates {
		scatter(el.K, el.Umap, el.F())
	}
	for eq, k := range o.Springs {
		if k != 0 {
			o.Kfull[eq][eq] += k
		}
	}

	// triplet form for reaction recovery
	o.Kt = new(la.Triplet)
	o.Kt.Init(o.Ny, o.Ny, nnzEst+o.Ny)
	for i := 0; i < o.Ny; i++ {
		for j := 0; j < o.Ny; j++ {
			if o.Kfull[i][j] != 0 {
				o.Kt.Put(i, j, o.Kfull[i][j])
			}
		}
	}
}

// NodeOfEq maps a global equation back to (node id, DOF key)
func (o *Domain) NodeOfEq(eq int) (nodeID int, key string) {
	ndof := o.Analysis.Ndof()
	nodeID = o.NodeIDs[eq/ndof]
	key = o.Analysis.Keys()[eq%ndof]
	return
}

// Eq returns the first global equation of a node
func (o *Domain) Eq(nodeID int) int { return o.eqOf[nodeID] }
