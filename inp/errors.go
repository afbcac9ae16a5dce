// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/io"

// ValidationError indicates malformed model data detected before any assembly
// is attempted; e.g. an element pointing at a missing node or a bad load span.
// Kind is a stable machine-readable identifier so callers can render targeted
// messages; Context carries the human-readable details.
type ValidationError struct {
	Kind    string // e.g. "missing-node", "bad-span", "missing-material"
	Context string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return io.Sf("validation (%s): %s", e.Kind, e.Context)
}

// Valerr returns a new ValidationError with formatted context
func Valerr(kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Context: io.Sf(format, args...)}
}
