// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// Cyclotomic evaluates the nth cyclotomic polynomial Φ_n(z) through its
// Möbius divisor product Φ_n(z) = Π_{d|n} (z^d − 1)^μ(n/d).
//
// The product form has removable singularities when z is a root of unity:
// factors of the form z^d − 1 vanish in both the numerator and the
// denominator. Each exactly-zero factor is therefore taken out of the
// product and only its count and the limit contribution are kept, using
// (1−z^a)/(1−z^b) → a/b as z approaches a common root. More zeros than
// poles means a genuine zero of Φ_n.
func Cyclotomic(ctx context.Context, n int, z any) (context.Value, error) {
	if n < 0 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"cyclotomic: negative index %d", n)
	}
	v := ctx.Convert(z)
	one := ctx.One()
	switch n {
	case 0:
		return one, nil
	case 1:
		return ctx.Round(ctx.Sub(v, one)), nil
	case 2:
		return ctx.Round(ctx.Add(v, one)), nil
	}
	restore := context.PrecScope(ctx, guard)
	p := ctx.One()
	aProd, bProd := 1, 1
	numZeros, numPoles := 0, 0
	for d := 1; d <= n; d++ {
		if n%d != 0 {
			continue
		}
		w := apnum.Moebius(n / d)
		if w == 0 {
			continue
		}
		// powm1 rather than z^d − 1: an exact zero here must mean the
		// factor really vanishes, not that subtraction lost all bits.
		b := ctx.Neg(PowM1(ctx, v, d))
		switch {
		case !ctx.IsZero(b):
			if w == 1 {
				p = ctx.Mul(p, b)
			} else {
				p = ctx.Quo(p, b)
			}
		case w == 1:
			aProd *= d
			numZeros++
		default:
			bProd *= d
			numPoles++
		}
	}
	if numZeros > 0 {
		if numZeros > numPoles {
			p = ctx.Zero()
		} else {
			p = ctx.Quo(ctx.Mul(p, ctx.Convert(aProd)), ctx.Convert(bProd))
		}
	}
	restore()
	return ctx.Round(p), nil
}

// cyclotomicImpl is the raw registry form: cyclotomic(n, z).
func cyclotomicImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("cyclotomic", args, 2); err != nil {
		return nil, err
	}
	n, err := intArg("cyclotomic", args[0])
	if err != nil {
		return nil, err
	}
	return Cyclotomic(ctx, n, args[1])
}
