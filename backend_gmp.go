// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build gmp

package apnum

import (
	"math/big"
	"math/bits"
	"os"

	"github.com/ncw/gmp"
)

// useGMP is resolved exactly once, at process start. Setting APNUM_NOGMP
// forces the pure-Go fallback even in gmp-tagged builds.
var useGMP = os.Getenv("APNUM_NOGMP") == ""

// BackendName reports the active big-integer backend.
func BackendName() string {
	if useGMP {
		return "gmp"
	}
	return "math/big"
}

// Accelerated kernel hooks. A nil hook selects the pure-Go implementation.
var (
	fibBackend func(n uint64) *Int
	facBackend func(n uint64) *Int
)

func init() {
	if !useGMP {
		return
	}
	fibBackend = gmpFib
	facBackend = gmpFac
}

// fromGMP converts a gmp integer back to the Int exchange type. The values
// produced here are always nonnegative, so Bytes round-trips exactly.
func fromGMP(g *gmp.Int) *Int {
	return new(big.Int).SetBytes(g.Bytes())
}

// gmpFib computes F(n), n >= 0, by fast doubling on GMP integers.
func gmpFib(n uint64) *Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	a := gmp.NewInt(0) // F(k)
	b := gmp.NewInt(1) // F(k+1)
	t1 := gmp.NewInt(0)
	t2 := gmp.NewInt(0)
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k)·(2F(k+1) − F(k)), F(2k+1) = F(k)² + F(k+1)²
		t1.Add(b, b)
		t1.Sub(t1, a)
		t1.Mul(a, t1)
		t2.Mul(a, a)
		a.Mul(b, b)
		t2.Add(t2, a)
		a.Set(t1)
		b.Set(t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
	}
	return fromGMP(a)
}

// gmpFac computes n! on GMP integers.
func gmpFac(n uint64) *Int {
	r := gmp.NewInt(1)
	t := gmp.NewInt(0)
	for i := int64(2); i <= int64(n); i++ {
		t.SetInt64(i)
		r.Mul(r, t)
	}
	return fromGMP(r)
}
