// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"
	"time"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_sched01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sched01. reactive solve loop. edit and resolve")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	lc := m.AddLoadCase("live", inp.ULS)
	load, _ := m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)

	results := make(chan *Result, 4)
	errs := make(chan error, 4)
	s := NewScheduler(m, Options{Analysis: Frame})
	s.OnResult = func(r *Result) { results <- r }
	s.OnError = func(err error) { errs <- err }

	wait := func() *Result {
		select {
		case r := <-results:
			return r
		case err := <-errs:
			tst.Errorf("solve failed: %v", err)
		case <-time.After(10 * time.Second):
			tst.Errorf("timed out waiting for a result")
		}
		return nil
	}

	s.Request()
	r1 := wait()
	if r1 == nil {
		return
	}
	if r1.Version != m.Version {
		tst.Errorf("result version %d does not match model version %d", r1.Version, m.Version)
		return
	}
	chk.Scalar(tst, "R left", 1e-8, r1.Reactions[b.NodeIDs[0]][1], 5000)

	// edit the load and ask again: the fresh result reflects the edit
	v1 := m.Version
	m.RemoveLoad(load.ID)
	m.AddPointLoad(lc.ID, sn.NodeID, 0, -20000, 0)
	if m.Version == v1 {
		tst.Errorf("edits must bump the model version")
		return
	}
	s.Request()
	r2 := wait()
	if r2 == nil {
		return
	}
	if r2.Version != m.Version {
		tst.Errorf("stale result delivered: version %d, model %d", r2.Version, m.Version)
		return
	}
	chk.Scalar(tst, "R left after edit", 1e-8, r2.Reactions[b.NodeIDs[0]][1], 10000)
	io.Pforan("versions: %d -> %d\n", r1.Version, r2.Version)
}

func Test_sched02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sched02. burst of requests coalesces")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	lc := m.AddLoadCase("live", inp.ULS)
	m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)

	results := make(chan *Result, 16)
	s := NewScheduler(m, Options{Analysis: Frame})
	s.OnResult = func(r *Result) { results <- r }

	// many requests against an unchanged model: every delivered result is
	// fresh, and at least one arrives
	for i := 0; i < 8; i++ {
		s.Request()
	}
	select {
	case r := <-results:
		if r.Version != m.Version {
			tst.Errorf("stale result delivered")
		}
	case <-time.After(10 * time.Second):
		tst.Errorf("timed out waiting for a result")
		return
	}

	// drain: anything else delivered must be fresh too
	deadline := time.After(200 * time.Millisecond)
	n := 1
	for {
		select {
		case r := <-results:
			n++
			if r.Version != m.Version {
				tst.Errorf("stale result delivered")
				return
			}
		case <-deadline:
			if n > 8 {
				tst.Errorf("more results (%d) than requests", n)
			}
			io.Pforan("results delivered = %d\n", n)
			return
		}
	}
}

func Test_sched03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sched03. edits while a solve is in flight")

	m, b := inp.BuildSimplySupported(6)
	sn, _ := m.AddSubNode(b.ID, 0.5)
	lc := m.AddLoadCase("live", inp.ULS)
	load, _ := m.AddPointLoad(lc.ID, sn.NodeID, 0, -10000, 0)

	results := make(chan *Result, 8)
	errs := make(chan error, 8)
	s := NewScheduler(m, Options{Analysis: Frame})
	s.OnResult = func(r *Result) { results <- r }
	s.OnError = func(err error) { errs <- err }

	// edit immediately after requesting, while the first solve may still be
	// running: the solver only ever reads the snapshot taken inside Request,
	// so the mutation cannot race it
	s.Request()
	m.RemoveLoad(load.ID)
	m.AddPointLoad(lc.ID, sn.NodeID, 0, -30000, 0)
	s.Request()

	// the result matching the final model state must arrive; a result of the
	// first snapshot may or may not precede it
	deadline := time.After(10 * time.Second)
	for {
		select {
		case r := <-results:
			if r.Version != m.Version {
				continue
			}
			chk.Scalar(tst, "R left final", 1e-8, r.Reactions[b.NodeIDs[0]][1], 15000)
			return
		case err := <-errs:
			tst.Errorf("solve failed: %v", err)
			return
		case <-deadline:
			tst.Errorf("timed out waiting for the final result")
			return
		}
	}
}
