// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// Size-bracket cutoffs for the square-root paths.
var (
	pow2_50  = new(big.Int).Lsh(One, 50)
	pow2_100 = new(big.Int).Lsh(One, 100)
	pow2_200 = new(big.Int).Lsh(One, 200)
	pow2_400 = new(big.Int).Lsh(One, 400)
	pow2_600 = new(big.Int).Lsh(One, 600)
	pow2_800 = new(big.Int).Lsh(One, 800)
)

// isqrtSmall computes the correctly rounded floor square root using
// division. Fast up to roughly 200 decimal digits; x must be below 2^800.
func isqrtSmall(x *Int) *Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	if x.Cmp(pow2_50) < 0 {
		// Exact with IEEE double precision arithmetic.
		return big.NewInt(int64(math.Sqrt(float64(x.Int64()))))
	}
	// The initial estimate can be any integer >= the true root; round up.
	f, _ := new(big.Float).SetInt(x).Float64()
	r, _ := new(big.Float).SetFloat64(math.Sqrt(f) * 1.00000000000001).Int(nil)
	r.Add(r, One)
	// The iteration now computes floor(sqrt(x)) precisely. See e.g.
	// Crandall & Pomerance, "Prime Numbers: A Computational Perspective".
	y := new(big.Int)
	for {
		y.Quo(x, r)
		y.Add(y, r)
		y.Rsh(y, 1)
		if y.Cmp(r) >= 0 {
			return r
		}
		r, y = y, r
	}
}

// newtonStep returns (y + x/y) >> 1, doubling the accurate bits of y.
func newtonStep(x, y *Int) *Int {
	z := new(big.Int).Quo(x, y)
	z.Add(z, y)
	return z.Rsh(z, 1)
}

// isqrtFast computes a fast approximate floor square root using a
// division-free reciprocal-square-root Newton iteration for large x. For
// random inputs the result is almost always exact but may be one unit too
// small with low probability; if x is very close to an exact square the
// answer is off by one with high probability. The 10 guard bits keep the
// maximum error at 1 unit. SqrtRem restores exactness on top of this.
func isqrtFast(x *Int) *Int {
	if x.Cmp(pow2_800) < 0 {
		// A float64 square root is good to 52 bits; each division-based
		// Newton step doubles that.
		f, _ := new(big.Float).SetInt(x).Float64()
		y, _ := new(big.Float).SetFloat64(math.Sqrt(f)).Int(nil)
		if x.Cmp(pow2_100) >= 0 {
			y = newtonStep(x, y)
			if x.Cmp(pow2_200) >= 0 {
				y = newtonStep(x, y)
				if x.Cmp(pow2_400) >= 0 {
					y = newtonStep(x, y)
				}
			}
		}
		return y
	}

	const guardBits = 10
	xs := new(big.Int).Lsh(x, 2*guardBits)
	bc := xs.BitLen()
	bc += bc & 1
	hbc := bc / 2
	startprec := 50
	if hbc < startprec {
		startprec = hbc
	}

	// Newton iteration for 1/sqrt(x), seeded from floating point.
	// r holds the reciprocal root scaled from real size 2^(-bc/2) to 2^pp.
	t := new(big.Int).Rsh(xs, uint(bc-2*startprec))
	tf, _ := new(big.Float).SetInt(t).Float64()
	r, _ := new(big.Float).SetFloat64(math.Exp2(float64(2*startprec)) / math.Sqrt(tf)).Int(nil)

	pp := startprec
	p := startprec
	for _, p = range GiantSteps(startprec, hbc, 2) {
		// r², scaled from real size 2^(-bc) to 2^p.
		r2 := new(big.Int).Mul(r, r)
		r2.Rsh(r2, uint(2*pp-p))
		// x·r², scaled from real size ~1.0 to 2^p.
		xr2 := new(big.Int).Rsh(xs, uint(bc-p))
		xr2.Mul(xr2, r2)
		xr2.Rsh(xr2, uint(p))
		// r ← r·(3 − x·r²)/2, scaled to 2^p.
		u := new(big.Int).Lsh(Three, uint(p))
		u.Sub(u, xr2)
		r.Mul(r, u)
		r.Rsh(r, uint(pp+1))
		pp = p
	}

	// (1/sqrt(x))·x = sqrt(x)
	z := new(big.Int).Rsh(xs, uint(hbc))
	z.Mul(r, z)
	return z.Rsh(z, uint(p+guardBits))
}

// SqrtRem returns y = floor(sqrt(x)) and the remainder r = x − y², so that
// y² + r = x and 0 <= r <= 2y. It panics if x is negative.
func SqrtRem(x *Int) (y, r *Int) {
	if x.Sign() < 0 {
		panic(errors.Wrap(ErrInvalidArgument, "SqrtRem: negative operand"))
	}
	if x.Cmp(pow2_600) < 0 {
		y = isqrtSmall(x)
		r = new(big.Int).Mul(y, y)
		r.Sub(x, r)
		return y, r
	}
	// The fast path may be one unit low; start one above it and walk the
	// remainder back into [0, 2y].
	y = isqrtFast(x)
	y.Add(y, One)
	r = new(big.Int).Mul(y, y)
	r.Sub(x, r)
	t := new(big.Int)
	for r.Sign() < 0 {
		y.Sub(y, One)
		t.Lsh(y, 1)
		t.Add(t, One)
		r.Add(r, t)
	}
	if r.Sign() != 0 {
		for {
			t.Add(y, One)
			t.Lsh(t, 1)
			if r.Cmp(t) <= 0 {
				break
			}
			y.Add(y, One)
			t.Lsh(y, 1)
			t.Add(t, One)
			r.Sub(r, t)
		}
	}
	return y, r
}

// Isqrt returns floor(sqrt(x)). It panics if x is negative.
func Isqrt(x *Int) *Int {
	y, _ := SqrtRem(x)
	return y
}

// SqrtFixed returns the fixed-point square root of x·2^prec, i.e. an
// approximation of sqrt(x)·2^(prec/2) suitable for fixed-point pipelines.
// Accuracy is that of the fast path; use SqrtRem when exactness matters.
func SqrtFixed(x *Int, prec uint) *Int {
	return isqrtFast(new(big.Int).Lsh(x, prec))
}
