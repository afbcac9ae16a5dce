// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package steel

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// CheckResult holds the unity checks of one cross-section verification.
// A unity check (UC) is the ratio of design load effect to design
// resistance; the section passes when the governing UC does not exceed one.
type CheckResult struct {
	Profile string  `json:"profile"`
	Grade   string  `json:"grade"`
	SigmaN  float64 `json:"sigmaN"`    // axial stress [Pa]
	SigmaM  float64 `json:"sigmaM"`    // bending stress [Pa]
	TauV    float64 `json:"tauV"`      // average web shear stress [Pa]
	UCM     float64 `json:"ucBending"` // combined axial + bending
	UCV     float64 `json:"ucShear"`
	UC      float64 `json:"uc"` // governing
	OK      bool    `json:"ok"`
}

// Check verifies a cross-section for a combination of axial force, shear
// force and bending moment (absolute design values). The elastic bending
// resistance is reduced by (1-rho), rho = (2·UCv-1)², when the shear
// utilization exceeds one half.
func Check(p Profile, g Grade, n, v, m float64) CheckResult {
	n, v, m = math.Abs(n), math.Abs(v), math.Abs(m)
	r := CheckResult{Profile: p.Name, Grade: g.Name}

	r.SigmaN = n / p.A
	r.SigmaM = m / p.Wel
	r.TauV = v / p.Avz

	vRd := p.Avz * g.Fy / math.Sqrt(3)
	r.UCV = v / vRd

	red := 1.0
	if r.UCV > 0.5 {
		rho := (2*r.UCV - 1) * (2*r.UCV - 1)
		red = 1 - rho
		if red < 1e-9 {
			red = 1e-9
		}
	}
	r.UCM = n/(p.A*g.Fy) + m/(p.Wel*g.Fy*red)

	r.UC = math.Max(r.UCM, r.UCV)
	r.OK = r.UC <= 1.0
	return r
}

// Optimize returns the lightest profile of a series whose governing unity
// check stays at or below maxUC for the given design forces. maxUC <= 0
// selects 1.0.
func Optimize(series string, g Grade, n, v, m, maxUC float64) (Profile, CheckResult, error) {
	if maxUC <= 0 {
		maxUC = 1.0
	}
	candidates := Series(series)
	if len(candidates) == 0 {
		return Profile{}, CheckResult{}, chk.Err("unknown profile series %q", series)
	}
	for _, p := range candidates {
		if r := Check(p, g, n, v, m); r.UC <= maxUC {
			return p, r, nil
		}
	}
	last := candidates[len(candidates)-1]
	return Profile{}, Check(last, g, n, v, m),
		chk.Err("no %s profile satisfies UC <= %g (heaviest %s fails)", series, maxUC, last.Name)
}
