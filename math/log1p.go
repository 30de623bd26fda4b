// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import "github.com/apnum/apnum/context"

// log1pExtraPrec is the cancellation margin: the series result must sit at
// least this many bits below the input before the quadratic term is
// recomputed at higher working precision.
const log1pExtraPrec = 10

// Log1p returns ln(1+x) without the cancellation the naive formula suffers
// for small x. The result is rounded to ctx's precision.
func Log1p(ctx context.Context, x any) context.Value {
	v := ctx.Convert(x)
	restore := context.PrecScope(ctx, guard)
	w := log1pV(ctx, v)
	restore()
	return ctx.Round(w)
}

func log1pImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("log1p", args, 1); err != nil {
		return nil, err
	}
	return log1pV(ctx, args[0]), nil
}

func log1pV(ctx context.Context, c context.Value) context.Value {
	if ctx.IsZero(c) {
		return ctx.Zero()
	}
	// Every case could be handled by ln(1+c) provided the add is done
	// exactly; the game is to be much faster than that, especially when
	// |c| is small.
	cmag := ctx.Mag(c)
	a, b := ctx.Re(c), ctx.Im(c)
	wp := ctx.Prec()
	if cmag >= -int(wp) {
		// |c| isn't very small. Call ln(1+c), but size the precision of
		// the add so that it preserves the bits ln needs. The real part of
		// the result is ln|c+1|, determined by 1 + 2a + a² + b²; enough of
		// the dominant square term has to survive the addition for ln to
		// reverse-engineer the sum to wp good bits.
		if cmag < 4 {
			if ctx.Mag(a) > ctx.Mag(b) {
				// a contributes the most to |c|; after adding 1 it
				// dominates outright. Twice the precision keeps all of
				// a's wp significant bits through the add; b² is too
				// small to matter.
				wp *= 2
			} else {
				// b² dominates the square terms. The smallest b can be is
				// about 2^-wp, so b² reaches down to 2^(-2wp), and bits of
				// 2a matter down to 2^(-3wp): the add has to carry 3·wp
				// bits.
				wp *= 3
			}
		}
		// For cmag >= 4, |c+1| >= |c|−1 is large enough that the working
		// precision already suffices.
		return ctx.Ln(ctx.FAdd(ctx.One(), c, wp))
	}

	// c is very small: use the series c − c²/2. The real part is
	// a + (b² − a²)/2 and the imaginary part b − ab; with cmag < −wp the
	// ab term is numerically insignificant, and usually the a² term too.
	re := ctx.Add(a, ctx.Ldexp(ctx.Mul(b, b), -1))
	if ctx.Sign(a) < 0 && ctx.Mag(re) <= ctx.Mag(a)-log1pExtraPrec {
		// The guard bits were lost to cancellation: a ~= −b²/2, so the
		// true result may be as small as a²/2 ~ 2^(-4wp) with addends
		// starting at 2^(-2wp). Carrying 3·wp bits through the
		// subtraction (the first 2·wp of which may cancel to exactly 0)
		// recovers the leading wp bits.
		a2 := ctx.Mul(a, a)
		b2 := ctx.FMul(b, b, 2*wp)
		diff := ctx.FSub(b2, a2, 3*wp)
		re = ctx.Add(a, ctx.Ldexp(diff, -1))
	}
	if ctx.IsRealType(c) {
		return re
	}
	return ctx.MakeComplex(re, b)
}

// ExpM1 returns exp(x)−1 without cancellation for tiny x. The result is
// rounded to ctx's precision.
func ExpM1(ctx context.Context, x any) context.Value {
	v := ctx.Convert(x)
	restore := context.PrecScope(ctx, guard)
	w := expm1V(ctx, v)
	restore()
	return ctx.Round(w)
}

func expm1Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("expm1", args, 1); err != nil {
		return nil, err
	}
	return expm1V(ctx, args[0]), nil
}

func expm1V(ctx context.Context, x context.Value) context.Value {
	if ctx.IsZero(x) {
		return ctx.Zero()
	}
	// exp(x) − 1 ~ x
	if ctx.Mag(x) < -int(ctx.Prec()) {
		return ctx.Add(x, ctx.Ldexp(ctx.Mul(x, x), -1))
	}
	return ctx.SumAccurately(context.Terms(ctx.Exp(x), ctx.Neg(ctx.One())), 1)
}

// PowM1 returns x^y − 1 without cancellation when y·ln(x) is small. The
// result is rounded to ctx's precision.
func PowM1(ctx context.Context, x, y any) context.Value {
	vx, vy := ctx.Convert(x), ctx.Convert(y)
	restore := context.PrecScope(ctx, guard)
	w := powm1V(ctx, vx, vy)
	restore()
	return ctx.Round(w)
}

func powm1Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("powm1", args, 2); err != nil {
		return nil, err
	}
	return powm1V(ctx, args[0], args[1]), nil
}

func powm1V(ctx context.Context, x, y context.Value) context.Value {
	one := ctx.One()
	w := ctx.Sub(ctx.Pow(x, y), one)
	// Only moderate cancellation: trust the naive difference.
	if ctx.Mag(w) > -8 {
		return w
	}
	if ctx.IsZero(w) {
		// The only possible exact cases: y = 0, or x a fourth root of
		// unity raised to an integer power.
		if ctx.IsZero(y) || (isUnitRoot4(ctx, x) && ctx.IsInt(y)) {
			return w
		}
	}
	lnx := ctx.Ln(x)
	// Small y·ln(x): x^y − 1 ~ ln(x)·y + (ln(x)·y)²/2
	if ctx.Mag(y)+ctx.Mag(lnx) < -int(ctx.Prec()) {
		t := ctx.Mul(lnx, y)
		return ctx.Add(t, ctx.Ldexp(ctx.Mul(t, t), -1))
	}
	return ctx.SumAccurately(context.Terms(ctx.Pow(x, y), ctx.Neg(one)), 1)
}

// isUnitRoot4 reports whether x is exactly 1, −1, i or −i.
func isUnitRoot4(ctx context.Context, x context.Value) bool {
	one, j := ctx.One(), ctx.Imag()
	return ctx.IsZero(ctx.Sub(x, one)) ||
		ctx.IsZero(ctx.Add(x, one)) ||
		ctx.IsZero(ctx.Sub(x, j)) ||
		ctx.IsZero(ctx.Add(x, j))
}
