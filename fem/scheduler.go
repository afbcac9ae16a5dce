// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/inp"
)

// Scheduler serializes solves against a continuously edited model. At most
// one solve runs at a time; a request arriving while one is in flight is
// coalesced into a single pending follow-up on the latest model state.
// Request snapshots the model synchronously on the caller's goroutine, so
// later edits never touch the state the solver reads. A finished result is
// discarded as stale when a newer snapshot was queued while it was computed.
type Scheduler struct {
	mu      sync.Mutex
	model   *inp.Model
	opts    Options
	running bool
	next    *inp.Model // latest queued snapshot; nil when none pending

	// OnResult receives every fresh (non-stale) result. OnError receives
	// solve failures. Both are invoked from the solver goroutine.
	OnResult func(*Result)
	OnError  func(error)
}

// NewScheduler returns a scheduler bound to one model
func NewScheduler(m *inp.Model, opts Options) *Scheduler {
	return &Scheduler{model: m, opts: opts}
}

// Request asks for a (re)solve. Callers invoke it on the editing goroutine
// after every model edit; bursts of edits collapse into at most one queued
// solve of the latest snapshot.
func (o *Scheduler) Request() {
	snap := o.model.Snapshot()
	o.mu.Lock()
	o.next = snap
	if o.running {
		o.mu.Unlock()
		return
	}
	o.running = true
	o.mu.Unlock()
	go o.run()
}

func (o *Scheduler) run() {
	for {
		o.mu.Lock()
		snap := o.next
		o.next = nil
		o.mu.Unlock()

		res, err := Solve(snap, o.opts)

		o.mu.Lock()
		stale := o.next != nil
		if !stale {
			o.running = false
		}
		o.mu.Unlock()

		if stale {
			continue
		}
		if err != nil {
			if o.OnError != nil {
				o.OnError(err)
			}
		} else if o.OnResult != nil {
			o.OnResult(res)
		}
		return
	}
}
