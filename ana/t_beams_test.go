// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_ana01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana01. closed-form beam solutions")

	ss := &SimplySupportedUniform{E: 210e9, I: 1940e-8, L: 4, Q: 5000}
	chk.Scalar(tst, "R", 1e-12, ss.Reaction(), 10000)
	chk.Scalar(tst, "Mmax", 1e-12, ss.MaxMoment(), 10000)
	chk.Scalar(tst, "M(0)", 1e-12, ss.Moment(0), 0)
	chk.Scalar(tst, "M(L)", 1e-12, ss.Moment(4), 0)
	chk.Scalar(tst, "M(L/2)", 1e-12, ss.Moment(2), ss.MaxMoment())

	pc := &SimplySupportedCentral{E: 210e9, I: 1940e-8, L: 6, P: 10000}
	chk.Scalar(tst, "R central", 1e-12, pc.Reaction(), 5000)
	chk.Scalar(tst, "Mmax central", 1e-12, pc.MaxMoment(), 15000)

	cf := &CantileverEndForce{E: 210e9, I: 1940e-8, L: 3, P: 5000}
	chk.Scalar(tst, "M fixed", 1e-12, cf.FixedMoment(), 15000)

	cu := &CantileverUniform{E: 210e9, I: 1940e-8, L: 3, Q: 2000}
	chk.Scalar(tst, "M fixed uniform", 1e-12, cu.FixedMoment(), 9000)
	chk.Scalar(tst, "V fixed uniform", 1e-12, cu.FixedShear(), 6000)
}

func Test_ana02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana02. square plate rigidity and deflection")

	pl := &SquarePlateUniform{E: 210e9, Nu: 0.3, T: 0.02, A: 2, Q: 10000}
	d := pl.FlexuralRigidity()
	chk.Scalar(tst, "D", 1e-6, d, 210e9*8e-6/(12*0.91))
	chk.Scalar(tst, "w center", 1e-12, pl.CenterDeflection(), 0.00406*10000*16/d)
}
