// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !gmp

package apnum

// BackendName reports the active big-integer backend. Builds without the
// "gmp" tag always run on math/big.
func BackendName() string { return "math/big" }

// Accelerated kernel hooks. A nil hook selects the pure-Go implementation.
var (
	fibBackend func(n uint64) *Int
	facBackend func(n uint64) *Int
)
