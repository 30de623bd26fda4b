// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	stdmath "math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// mangoldtMax bounds the perfect-power root search: above 10^30 the
// float64 seeding of the k-th root is no longer trustworthy.
var mangoldtMax = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

// smallPowerBases are tried by exact division before any root extraction.
var smallPowerBases = [...]int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31}

// Mangoldt evaluates the von Mangoldt function Λ(n): ln p when n = p^k
// for a prime p, zero otherwise. The cumulative sums of Λ are the
// Chebyshev ψ function.
func Mangoldt(ctx context.Context, n *apnum.Int) (context.Value, error) {
	lnOf := func(v any) context.Value {
		restore := context.PrecScope(ctx, guard)
		w := ctx.Ln(ctx.Convert(v))
		restore()
		return ctx.Round(w)
	}
	if n.Cmp(apnum.Two) < 0 {
		return ctx.Zero(), nil
	}
	if n.Bit(0) == 0 {
		// Even n qualifies only as a power of two.
		m := new(big.Int).Sub(n, apnum.One)
		if new(big.Int).And(n, m).Sign() == 0 {
			return ctx.Ln2(), nil
		}
		return ctx.Zero(), nil
	}
	// A small prime factor settles it: either n is exactly a power of
	// that prime or Λ(n) = 0.
	for _, p := range smallPowerBases {
		pb := big.NewInt(p)
		if new(big.Int).Mod(n, pb).Sign() != 0 {
			continue
		}
		q := new(big.Int).Set(n)
		r := new(big.Int)
		for q.Cmp(apnum.One) > 0 {
			q.QuoRem(q, pb, r)
			if r.Sign() != 0 {
				return ctx.Zero(), nil
			}
		}
		return lnOf(p), nil
	}
	if apnum.IsPrime(n) {
		return lnOf(n), nil
	}
	if n.Cmp(mangoldtMax) > 0 {
		return nil, errors.Wrapf(apnum.ErrUnsupported,
			"mangoldt: prime-power test beyond 10^30 (n has %d bits)", n.BitLen())
	}
	// n is odd, composite, with no factor below 37: if it is a prime
	// power p^k then p^2 <= n, so k-th root extraction terminates.
	nf, _ := new(big.Float).SetInt(n).Float64()
	for k := 2; ; k++ {
		p := int64(stdmath.Pow(nf, 1/float64(k)) + 0.5)
		if p < 2 {
			return ctx.Zero(), nil
		}
		pb := big.NewInt(p)
		if new(big.Int).Exp(pb, big.NewInt(int64(k)), nil).Cmp(n) == 0 &&
			apnum.IsPrime(pb) {
			return lnOf(p), nil
		}
	}
}

// mangoldtImpl is the raw registry form: mangoldt(n). Bound contexts
// memoize it.
func mangoldtImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("mangoldt", args, 1); err != nil {
		return nil, err
	}
	n, err := bigArg("mangoldt", args[0])
	if err != nil {
		return nil, err
	}
	return Mangoldt(ctx, n)
}
