// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// Bell evaluates the Bell polynomial B_n(x) through Dobinski's formula
// B_n(x) = e^(−x)·Σ_{k≥0} k^n·x^k/k!. At x = 1 the values are the Bell
// numbers. The sum is evaluated with cancellation-checked accurate
// summation, so alternating behavior for negative x is handled.
func Bell(ctx context.Context, n int, x any) context.Value {
	v := ctx.Convert(x)
	if n == 0 {
		if ctx.IsNaN(v) {
			return v
		}
		return ctx.One()
	}
	if ctx.IsInf(v) || ctx.IsNaN(v) {
		return ctx.Pow(v, ctx.Convert(n))
	}
	restore := context.PrecScope(ctx, guard)
	var r context.Value
	switch {
	case n == 1:
		r = v
	case n == 2:
		r = ctx.Mul(v, ctx.Add(v, ctx.One()))
	case ctx.IsZero(v):
		r = sincpiV(ctx, ctx.Convert(n))
	default:
		r = ctx.Quo(polyexpSum(ctx, ctx.Convert(n), v, true), ctx.Exp(v))
	}
	restore()
	return ctx.Round(r)
}

// bellImpl is the raw registry form: bell(n) or bell(n, x).
func bellImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"bell: got %d arguments, want 1 or 2", len(args))
	}
	n, err := intArg("bell", args[0])
	if err != nil {
		return nil, err
	}
	var x any = 1
	if len(args) == 2 {
		x = args[1]
	}
	return Bell(ctx, n, x), nil
}

// polyexpSum evaluates Σ_{k≥1} k^s·z^k/k! term by term; with extra set it
// prepends sincpi(s), the analytic continuation term needed by Bell. Terms
// are consumed through accurate summation with a magnitude check every
// fourth term.
func polyexpSum(ctx context.Context, s, z context.Value, extra bool) context.Value {
	terms := func() func() (context.Value, bool) {
		first := extra
		t := z
		k := 1
		return func() (context.Value, bool) {
			if first {
				first = false
				return sincpiV(ctx, s), true
			}
			term := ctx.Mul(ctx.Pow(ctx.Convert(k), s), t)
			k++
			t = ctx.Quo(ctx.Mul(t, z), ctx.Convert(k))
			return term, true
		}
	}
	return ctx.SumAccurately(terms, 4)
}

// polyexpImpl computes the polyexponential E_s(z) = Σ_{k≥1} k^s·z^k/k!.
// For non-negative integer s this is the Bell polynomial scaled by e^z.
// Wrapped registration: arguments arrive converted and guarded.
func polyexpImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("polyexp", args, 2); err != nil {
		return nil, err
	}
	s, z := args[0], args[1]
	switch {
	case ctx.IsInf(z) || ctx.IsInf(s) || ctx.IsNaN(z) || ctx.IsNaN(s):
		return ctx.Pow(z, s), nil
	case ctx.IsZero(z):
		return ctx.Mul(z, s), nil
	case ctx.IsZero(s):
		return expm1V(ctx, z), nil
	}
	if ctx.IsInt(s) && ctx.IsRealType(s) {
		switch ctx.Float64(s) {
		case 1:
			return ctx.Mul(ctx.Exp(z), z), nil
		case 2:
			return ctx.Mul(ctx.Mul(ctx.Exp(z), z), ctx.Add(z, ctx.One())), nil
		}
	}
	return polyexpSum(ctx, s, z, false), nil
}

// PolyExp is the exported form of the polyexponential.
func PolyExp(ctx context.Context, s, z any) context.Value {
	sv, zv := ctx.Convert(s), ctx.Convert(z)
	restore := context.PrecScope(ctx, guard)
	v, _ := polyexpImpl(ctx, sv, zv)
	restore()
	return ctx.Round(v)
}
