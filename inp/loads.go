// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

// LoadSystem selects the coordinate system of a distributed load
type LoadSystem string

// load coordinate systems
const (
	SystemLocal  LoadSystem = "local"  // qx along beam axis, qy perpendicular to it
	SystemGlobal LoadSystem = "global" // components aligned with world axes
)

// CaseType classifies a load case for combination typing
type CaseType string

// limit states
const (
	ULS CaseType = "ULS" // ultimate limit state
	SLS CaseType = "SLS" // serviceability limit state
)

// PointLoad acts directly on a node. In frame analyses the components are
// [Fx, Fy, Mz]; in plate bending Fy acts transverse (on w) and Fx, Mz are
// meaningless and ignored, mirroring the support-flag mapping.
type PointLoad struct {
	ID     int     `json:"id"`
	NodeID int     `json:"nodeId"`
	Fx     float64 `json:"fx"` // [N]
	Fy     float64 `json:"fy"` // [N]
	Mz     float64 `json:"mz"` // [Nm]
}

// DistributedLoad is a linearly varying line load on a beam over the
// parametric sub-span [StartT, EndT] (0 ≤ StartT < EndT ≤ 1). Local system:
// Qx acts along the beam axis and Qy perpendicular to it. Global system:
// components are world-aligned and are projected onto the beam axes before
// conversion to equivalent nodal forces.
type DistributedLoad struct {
	ID      int        `json:"id"`
	BeamID  int        `json:"beamId"`
	QxStart float64    `json:"qxStart"` // [N/m]
	QxEnd   float64    `json:"qxEnd"`
	QyStart float64    `json:"qyStart"`
	QyEnd   float64    `json:"qyEnd"`
	StartT  float64    `json:"startT"`
	EndT    float64    `json:"endT"`
	System  LoadSystem `json:"coordSystem"`
}

// EdgeLoad is a traction on one boundary edge of a plate region, linearly
// varying along the edge. Qx/Qy are in-plane components (plane stress/strain);
// Qz is the transverse component (plate bending). The load is converted to a
// statically consistent nodal vector using the edge shape functions.
type EdgeLoad struct {
	ID       int     `json:"id"`
	RegionID int     `json:"regionId"`
	Edge     int     `json:"edge"`
	QxStart  float64 `json:"qxStart"` // [N/m]
	QxEnd    float64 `json:"qxEnd"`
	QyStart  float64 `json:"qyStart"`
	QyEnd    float64 `json:"qyEnd"`
	QzStart  float64 `json:"qzStart"`
	QzEnd    float64 `json:"qzEnd"`
}

// SurfaceLoad is a uniform transverse pressure on a plate region, applied in
// plate-bending analyses through the element shape functions.
type SurfaceLoad struct {
	ID       int     `json:"id"`
	RegionID int     `json:"regionId"`
	Qz       float64 `json:"qz"` // [N/m²]
}

// ThermalLoad applies a uniform temperature change to one element (beam or
// plane). The convention is uniform axial elongation / membrane strain via
// the material's Alpha; a differential (gradient) term is not implemented
// and must be zero.
type ThermalLoad struct {
	ID        int     `json:"id"`
	ElementID int     `json:"elementId"`
	DeltaT    float64 `json:"deltaT"`   // [K]
	Gradient  float64 `json:"gradient"` // reserved; must be 0
}

// LoadCase groups declarative loads under one name and limit-state type
type LoadCase struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Type        CaseType           `json:"type"`
	Points      []*PointLoad       `json:"pointLoads,omitempty"`
	Distributed []*DistributedLoad `json:"distributedLoads,omitempty"`
	Edges       []*EdgeLoad        `json:"edgeLoads,omitempty"`
	Surfaces    []*SurfaceLoad     `json:"surfaceLoads,omitempty"`
	Thermals    []*ThermalLoad     `json:"thermalLoads,omitempty"`
}

// LoadCombination applies a scalar factor per load case. Unreferenced cases
// contribute zero; a factor of 1 reproduces the unscaled case.
type LoadCombination struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Type    CaseType        `json:"type"`
	Factors map[int]float64 `json:"factors"` // load-case id -> factor
}

// validateLoads checks load references against the mesh
func validateLoads(msh *Mesh, cases []*LoadCase, combos []*LoadCombination) error {
	caseIDs := make(map[int]bool, len(cases))
	for _, lc := range cases {
		if caseIDs[lc.ID] {
			return Valerr("duplicate-case", "load case id %d is defined twice", lc.ID)
		}
		caseIDs[lc.ID] = true
		for _, p := range lc.Points {
			if msh.Node(p.NodeID) == nil {
				return Valerr("missing-node", "point load %d targets missing node %d", p.ID, p.NodeID)
			}
		}
		for _, d := range lc.Distributed {
			if msh.Beam(d.BeamID) == nil {
				return Valerr("missing-beam", "distributed load %d targets missing beam %d", d.ID, d.BeamID)
			}
			if !(d.StartT >= 0 && d.StartT < d.EndT && d.EndT <= 1) {
				return Valerr("bad-span", "distributed load %d has invalid span [%g,%g]", d.ID, d.StartT, d.EndT)
			}
			if d.System != SystemLocal && d.System != SystemGlobal && d.System != "" {
				return Valerr("bad-system", "distributed load %d has unknown coordinate system %q", d.ID, d.System)
			}
		}
		for _, e := range lc.Edges {
			reg := msh.Plate(e.RegionID)
			if reg == nil {
				return Valerr("missing-region", "edge load %d targets missing plate region %d", e.ID, e.RegionID)
			}
			if _, _, err := reg.EdgeSegment(e.Edge); err != nil {
				return err
			}
		}
		for _, s := range lc.Surfaces {
			if msh.Plate(s.RegionID) == nil {
				return Valerr("missing-region", "surface load %d targets missing plate region %d", s.ID, s.RegionID)
			}
		}
		for _, t := range lc.Thermals {
			if msh.Beam(t.ElementID) == nil && msh.Plane(t.ElementID) == nil {
				return Valerr("missing-element", "thermal load %d targets missing element %d", t.ID, t.ElementID)
			}
			if t.Gradient != 0 {
				return Valerr("unsupported", "thermal load %d: differential gradient is not implemented", t.ID)
			}
		}
	}
	for _, cb := range combos {
		for cid := range cb.Factors {
			if !caseIDs[cid] {
				return Valerr("missing-case", "combination %d references missing load case %d", cb.ID, cid)
			}
		}
	}
	return nil
}
