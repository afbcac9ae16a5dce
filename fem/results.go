// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/ele"
)

// BeamDiagram holds the post-processed results of one parent beam: end
// forces, station curves and signed extremes. Sign conventions: axial force
// is tension positive, bending moment is sagging positive (tension at the
// bottom fiber of a horizontal member).
type BeamDiagram struct {
	N1 float64 `json:"N1"`
	V1 float64 `json:"V1"`
	M1 float64 `json:"M1"`
	N2 float64 `json:"N2"`
	V2 float64 `json:"V2"`
	M2 float64 `json:"M2"`

	Stations      []float64 `json:"stations"` // positions along the member [m]
	NormalForce   []float64 `json:"normalForce"`
	ShearForce    []float64 `json:"shearForce"`
	BendingMoment []float64 `json:"bendingMoment"`
	DeflX         []float64 `json:"deflectionX"` // global components
	DeflY         []float64 `json:"deflectionY"`

	// signed values of largest magnitude along the member
	MaxN float64 `json:"maxN"`
	MaxV float64 `json:"maxV"`
	MaxM float64 `json:"maxM"`
}

// ElementStress holds recovered results of one plane or plate element at the
// element center. Membrane analyses fill Sx/Sy/Txy/VonMises; plate bending
// fills the moments and shears per unit width.
type ElementStress struct {
	Sx       float64 `json:"sx,omitempty"`
	Sy       float64 `json:"sy,omitempty"`
	Txy      float64 `json:"txy,omitempty"`
	VonMises float64 `json:"vonMises,omitempty"`

	Mx  float64 `json:"mx,omitempty"`
	My  float64 `json:"my,omitempty"`
	Mxy float64 `json:"mxy,omitempty"`
	Vx  float64 `json:"vx,omitempty"`
	Vy  float64 `json:"vy,omitempty"`
}

// Result is the complete output of one linear solve. Displacements are laid
// out flat, Ndof values per node, in NodeIDOrder; callers never rely on map
// iteration for the nodal layout.
type Result struct {
	Analysis    AnalysisType           `json:"analysisType"`
	Version     int64                  `json:"-"` // model version the solve saw
	NodeIDOrder []int                  `json:"nodeIdOrder"`
	Displace    []float64              `json:"displacements"`
	Reactions   map[int][]float64      `json:"reactions"` // node id -> components
	BeamForces  map[int]*BeamDiagram   `json:"beamForces,omitempty"`
	Stresses    map[int]*ElementStress `json:"elementStresses,omitempty"`
	StressRange map[string][2]float64  `json:"stressRanges,omitempty"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// NodeDisp returns the displacement components of one node
func (o *Result) NodeDisp(nodeID int) []float64 {
	ndof := o.Analysis.Ndof()
	for i, id := range o.NodeIDOrder {
		if id == nodeID {
			return o.Displace[i*ndof : (i+1)*ndof]
		}
	}
	return nil
}

// signedMax returns the entry of largest magnitude, keeping its sign
func signedMax(vals []float64) (m float64) {
	for _, v := range vals {
		if math.Abs(v) > math.Abs(m) {
			m = v
		}
	}
	return
}

// beamDiagram builds the station curves of one parent beam by walking its
// spans and concatenating their recovered states. nst is the total station
// count over the whole member; span boundaries appear exactly once.
func (o *Domain) beamDiagram(beamID int, u []float64, nst int) *BeamDiagram {
	spans := o.Beams[beamID]
	b := o.Msh.Beam(beamID)
	ltot := o.Msh.BeamLength(b)
	d := new(BeamDiagram)

	for si, sp := range spans {
		frac := sp.T1 - sp.T0
		nsp := int(math.Round(float64(nst-1)*frac)) + 1
		if nsp < 2 {
			nsp = 2
		}
		st := sp.El.Stations(u, nsp)
		start := 0
		if si > 0 {
			start = 1 // span boundary already emitted by the previous span
		}
		for i := start; i < nsp; i++ {
			d.Stations = append(d.Stations, sp.T0*ltot+st.X[i])
			d.NormalForce = append(d.NormalForce, st.N[i])
			d.ShearForce = append(d.ShearForce, st.V[i])
			d.BendingMoment = append(d.BendingMoment, st.M[i])
			d.DeflX = append(d.DeflX, st.DeflX[i])
			d.DeflY = append(d.DeflY, st.DeflY[i])
		}
	}

	// end forces from the first and last span
	fe := spans[0].El.EndForces(u)
	d.N1, d.V1, d.M1 = -fe[0], fe[1], -fe[2]
	fe = spans[len(spans)-1].El.EndForces(u)
	d.N2, d.V2, d.M2 = fe[3], -fe[4], fe[5]

	d.MaxN = signedMax(d.NormalForce)
	d.MaxV = signedMax(d.ShearForce)
	d.MaxM = signedMax(d.BendingMoment)
	return d
}

// postprocess recovers element results from the solved displacement vector
func (o *Domain) postprocess(res *Result, u []float64, nst int) {
	switch o.Analysis {
	case Frame:
		res.BeamForces = make(map[int]*BeamDiagram, len(o.Beams))
		for id := range o.Beams {
			res.BeamForces[id] = o.beamDiagram(id, u, nst)
		}

	case PlaneStress, PlaneStrain:
		res.Stresses = make(map[int]*ElementStress, len(o.Tris)+len(o.Quads))
		ps := o.Analysis == PlaneStrain
		record := func(id int, sig []float64, nu float64) {
			res.Stresses[id] = &ElementStress{
				Sx: sig[0], Sy: sig[1], Txy: sig[2],
				VonMises: ele.VonMises(sig, nu, ps),
			}
		}
		for id, el := range o.Tris {
			record(id, el.Stress(u), o.Msh.Material(o.planes[id].MaterialID).Nu)
		}
		for id, el := range o.Quads {
			record(id, el.Stress(u), o.Msh.Material(o.planes[id].MaterialID).Nu)
		}
		res.StressRange = stressRanges(res.Stresses, false)

	case PlateBending:
		res.Stresses = make(map[int]*ElementStress, len(o.Plates))
		for id, el := range o.Plates {
			m := el.Moments(u)
			v := el.Shears(u)
			res.Stresses[id] = &ElementStress{Mx: m[0], My: m[1], Mxy: m[2], Vx: v[0], Vy: v[1]}
		}
		res.StressRange = stressRanges(res.Stresses, true)
	}
}

// stressRanges computes field-wise min/max over all elements, used by result
// views to fix color scales
func stressRanges(st map[int]*ElementStress, plate bool) map[string][2]float64 {
	if len(st) == 0 {
		return nil
	}
	r := make(map[string][2]float64)
	upd := func(key string, v float64) {
		if cur, ok := r[key]; ok {
			r[key] = [2]float64{math.Min(cur[0], v), math.Max(cur[1], v)}
		} else {
			r[key] = [2]float64{v, v}
		}
	}
	for _, s := range st {
		if plate {
			upd("mx", s.Mx)
			upd("my", s.My)
			upd("mxy", s.Mxy)
			upd("vx", s.Vx)
			upd("vy", s.Vy)
		} else {
			upd("sx", s.Sx)
			upd("sy", s.Sy)
			upd("txy", s.Txy)
			upd("vonMises", s.VonMises)
		}
	}
	return r
}
