// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"
	"sync"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/io"
)

// ComboFailure records one combination whose solve failed during an envelope
// run. The envelope is still produced from the combinations that succeeded.
type ComboFailure struct {
	ComboID int
	Name    string
	Err     error
}

// BeamEnvelope aggregates station-wise extreme values of one beam over all
// solved combinations
type BeamEnvelope struct {
	Stations []float64 `json:"stations"`
	MinN     []float64 `json:"minN"`
	MaxN     []float64 `json:"maxN"`
	MinV     []float64 `json:"minV"`
	MaxV     []float64 `json:"maxV"`
	MinM     []float64 `json:"minM"`
	MaxM     []float64 `json:"maxM"`
}

// ElemEnvelope aggregates componentwise extreme center values of one plane or
// plate element over all solved combinations. Membrane analyses fill the
// stress components of Min/Max; plate bending fills moments and shears.
type ElemEnvelope struct {
	Min ElementStress `json:"min"`
	Max ElementStress `json:"max"`
}

// widen grows the bounds to include another recovered state
func (o *ElemEnvelope) widen(s *ElementStress) {
	o.Min.Sx, o.Max.Sx = math.Min(o.Min.Sx, s.Sx), math.Max(o.Max.Sx, s.Sx)
	o.Min.Sy, o.Max.Sy = math.Min(o.Min.Sy, s.Sy), math.Max(o.Max.Sy, s.Sy)
	o.Min.Txy, o.Max.Txy = math.Min(o.Min.Txy, s.Txy), math.Max(o.Max.Txy, s.Txy)
	o.Min.VonMises, o.Max.VonMises = math.Min(o.Min.VonMises, s.VonMises), math.Max(o.Max.VonMises, s.VonMises)
	o.Min.Mx, o.Max.Mx = math.Min(o.Min.Mx, s.Mx), math.Max(o.Max.Mx, s.Mx)
	o.Min.My, o.Max.My = math.Min(o.Min.My, s.My), math.Max(o.Max.My, s.My)
	o.Min.Mxy, o.Max.Mxy = math.Min(o.Min.Mxy, s.Mxy), math.Max(o.Max.Mxy, s.Mxy)
	o.Min.Vx, o.Max.Vx = math.Min(o.Min.Vx, s.Vx), math.Max(o.Max.Vx, s.Vx)
	o.Min.Vy, o.Max.Vy = math.Min(o.Min.Vy, s.Vy), math.Max(o.Max.Vy, s.Vy)
}

// Envelope is the aggregated result of solving every load combination of a
// model: station-wise beam extremes for frame analyses, componentwise element
// extremes for plane and plate analyses. GoverningCombo maps a beam to the
// combination producing its largest absolute bending moment.
type Envelope struct {
	Beams          map[int]*BeamEnvelope `json:"beams,omitempty"`
	Elements       map[int]*ElemEnvelope `json:"elements,omitempty"`
	GoverningCombo map[int]int           `json:"governingCombo,omitempty"`
	Failures       []ComboFailure        `json:"-"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// Partial tells whether some combinations failed to solve
func (o *Envelope) Partial() bool { return len(o.Failures) > 0 }

// SolveEnvelope solves every combination of the model concurrently and
// aggregates station-wise min/max internal forces per beam and componentwise
// extremes per plane or plate element. Each solve gets its own snapshot and
// domain; only the aggregation is serialized. When all combinations fail the
// first error is returned; when only some fail the envelope is partial and
// carries per-combination failures.
func SolveEnvelope(m *inp.Model, opts Options) (*Envelope, error) {
	if len(m.Combinations) == 0 {
		return nil, inp.Valerr("no-combinations", "envelope requires at least one load combination")
	}

	env := &Envelope{
		Beams:          make(map[int]*BeamEnvelope),
		Elements:       make(map[int]*ElemEnvelope),
		GoverningCombo: make(map[int]int),
	}
	type outcome struct {
		comboID int
		name    string
		res     *Result
		err     error
	}
	outcomes := make([]outcome, len(m.Combinations))

	var wg sync.WaitGroup
	for i, cb := range m.Combinations {
		wg.Add(1)
		go func(i int, cb *inp.LoadCombination) {
			defer wg.Done()
			snap := m.Snapshot()
			o := opts
			o.ComboID = cb.ID
			o.CaseID = 0
			res, err := Solve(snap, o)
			outcomes[i] = outcome{comboID: cb.ID, name: cb.Name, res: res, err: err}
		}(i, cb)
	}
	wg.Wait()

	// deterministic aggregation order
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].comboID < outcomes[j].comboID })

	governingM := make(map[int]float64)
	nok := 0
	for _, oc := range outcomes {
		if oc.err != nil {
			env.Failures = append(env.Failures, ComboFailure{ComboID: oc.comboID, Name: oc.name, Err: oc.err})
			continue
		}
		nok++
		env.Warnings = append(env.Warnings, oc.res.Warnings...)
		for bid, d := range oc.res.BeamForces {
			be, ok := env.Beams[bid]
			if !ok {
				n := len(d.Stations)
				be = &BeamEnvelope{
					Stations: append([]float64(nil), d.Stations...),
					MinN:     make([]float64, n), MaxN: make([]float64, n),
					MinV:     make([]float64, n), MaxV: make([]float64, n),
					MinM:     make([]float64, n), MaxM: make([]float64, n),
				}
				copy(be.MinN, d.NormalForce)
				copy(be.MaxN, d.NormalForce)
				copy(be.MinV, d.ShearForce)
				copy(be.MaxV, d.ShearForce)
				copy(be.MinM, d.BendingMoment)
				copy(be.MaxM, d.BendingMoment)
				env.Beams[bid] = be
				governingM[bid] = 0 // force the first combo to register below
			}
			for k := range d.Stations {
				if d.NormalForce[k] < be.MinN[k] {
					be.MinN[k] = d.NormalForce[k]
				}
				if d.NormalForce[k] > be.MaxN[k] {
					be.MaxN[k] = d.NormalForce[k]
				}
				if d.ShearForce[k] < be.MinV[k] {
					be.MinV[k] = d.ShearForce[k]
				}
				if d.ShearForce[k] > be.MaxV[k] {
					be.MaxV[k] = d.ShearForce[k]
				}
				if d.BendingMoment[k] < be.MinM[k] {
					be.MinM[k] = d.BendingMoment[k]
				}
				if d.BendingMoment[k] > be.MaxM[k] {
					be.MaxM[k] = d.BendingMoment[k]
				}
			}
			if abs(d.MaxM) >= governingM[bid] {
				governingM[bid] = abs(d.MaxM)
				env.GoverningCombo[bid] = oc.comboID
			}
		}
		for eid, s := range oc.res.Stresses {
			if ee, ok := env.Elements[eid]; ok {
				ee.widen(s)
			} else {
				env.Elements[eid] = &ElemEnvelope{Min: *s, Max: *s}
			}
		}
	}
	if nok == 0 {
		return nil, env.Failures[0].Err
	}
	if env.Partial() {
		for _, f := range env.Failures {
			env.Warnings = append(env.Warnings,
				io.Sf("combination %d (%s) failed: %v", f.ComboID, f.Name, f.Err))
		}
	}
	return env, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
