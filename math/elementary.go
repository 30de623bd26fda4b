// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// signImpl returns x/|x|: the usual ±1 for nonzero reals, a point on the
// unit circle for complex x, and x itself for zero and NaN.
func signImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("sign", args, 1); err != nil {
		return nil, err
	}
	x := ctx.Convert(args[0])
	if ctx.IsZero(x) || ctx.IsNaN(x) {
		return x, nil
	}
	if ctx.IsRealType(x) {
		if ctx.Sign(x) > 0 {
			return ctx.One(), nil
		}
		return ctx.Neg(ctx.One()), nil
	}
	return ctx.Quo(x, ctx.Abs(x)), nil
}

// sincImpl computes sin(x)/x with the removable singularity filled in.
func sincImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("sinc", args, 1); err != nil {
		return nil, err
	}
	x := args[0]
	if ctx.IsInf(x) {
		return ctx.Quo(ctx.One(), x), nil
	}
	if ctx.IsZero(x) {
		return ctx.Add(x, ctx.One()), nil
	}
	return ctx.Quo(ctx.Sin(x), x), nil
}

// sincpiImpl computes the normalized form sin(πx)/(πx).
func sincpiImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("sincpi", args, 1); err != nil {
		return nil, err
	}
	return sincpiV(ctx, args[0]), nil
}

// sincpiV assumes a converted argument and a guarded precision. Nonzero
// integers are an exact zero of sin(πx), so they short-circuit before the
// transcendental path can leak rounding error into them.
func sincpiV(ctx context.Context, x context.Value) context.Value {
	if ctx.IsInf(x) {
		return ctx.Quo(ctx.One(), x)
	}
	if ctx.IsZero(x) {
		return ctx.Add(x, ctx.One())
	}
	if ctx.IsInt(x) && ctx.IsRealType(x) {
		return ctx.Zero()
	}
	pix := ctx.Mul(ctx.Pi(), x)
	return ctx.Quo(ctx.Sin(pix), pix)
}

func cotImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("cot", args, 1); err != nil {
		return nil, err
	}
	return ctx.Quo(ctx.One(), ctx.Tan(args[0])), nil
}

func secImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("sec", args, 1); err != nil {
		return nil, err
	}
	return ctx.Quo(ctx.One(), ctx.Cos(args[0])), nil
}

func cscImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("csc", args, 1); err != nil {
		return nil, err
	}
	return ctx.Quo(ctx.One(), ctx.Sin(args[0])), nil
}

// argImpl returns the phase atan2(im x, re x) in (−π, π].
func argImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("arg", args, 1); err != nil {
		return nil, err
	}
	x := ctx.Convert(args[0])
	return ctx.Atan2(ctx.Im(x), ctx.Re(x)), nil
}

func reImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("re", args, 1); err != nil {
		return nil, err
	}
	return ctx.Re(ctx.Convert(args[0])), nil
}

func imImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("im", args, 1); err != nil {
		return nil, err
	}
	return ctx.Im(ctx.Convert(args[0])), nil
}

func conjImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("conj", args, 1); err != nil {
		return nil, err
	}
	x := ctx.Convert(args[0])
	if ctx.IsRealType(x) {
		return x, nil
	}
	return ctx.MakeComplex(ctx.Re(x), ctx.Neg(ctx.Im(x))), nil
}

func fabsImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("fabs", args, 1); err != nil {
		return nil, err
	}
	return ctx.Abs(ctx.Convert(args[0])), nil
}

// logImpl computes ln(x), or log_b(x) when a base is supplied. The change
// of base runs with extra bits so the quotient of two nearly-equal
// logarithms does not shed accuracy.
func logImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	switch len(args) {
	case 1:
		return ctx.Ln(ctx.Convert(args[0])), nil
	case 2:
		x, b := ctx.Convert(args[0]), ctx.Convert(args[1])
		restore := context.PrecScope(ctx, 20)
		v := ctx.Quo(ctx.Ln(x), ctx.Ln(b))
		restore()
		return ctx.Round(v), nil
	}
	return nil, errors.Wrapf(apnum.ErrInvalidArgument,
		"log: got %d arguments, want 1 or 2", len(args))
}

func log2Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("log2", args, 1); err != nil {
		return nil, err
	}
	return logImpl(ctx, args[0], 2)
}

func log10Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("log10", args, 1); err != nil {
		return nil, err
	}
	return logImpl(ctx, args[0], 10)
}

func exp2Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("exp2", args, 1); err != nil {
		return nil, err
	}
	return ctx.Pow(ctx.Two(), ctx.Convert(args[0])), nil
}

// RootOf1 returns e^(2πik/n). The four roots lying on the axes are
// returned exactly.
func RootOf1(ctx context.Context, k, n int) context.Value {
	k %= n
	if k < 0 {
		k += n
	}
	switch {
	case k == 0:
		return ctx.One()
	case 2*k == n:
		return ctx.Neg(ctx.One())
	case 4*k == n:
		return ctx.Imag()
	case 4*k == 3*n:
		return ctx.Neg(ctx.Imag())
	}
	restore := context.PrecScope(ctx, guard)
	theta := ctx.Quo(ctx.Mul(ctx.Ldexp(ctx.Pi(), 1), ctx.Convert(k)), ctx.Convert(n))
	v := ctx.Exp(ctx.MakeComplex(ctx.Zero(), theta))
	restore()
	return ctx.Round(v)
}

func rootof1Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("rootof1", args, 2); err != nil {
		return nil, err
	}
	k, err := intArg("rootof1", args[0])
	if err != nil {
		return nil, err
	}
	n, err := intArg("rootof1", args[1])
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"rootof1: order %d not positive", n)
	}
	return RootOf1(ctx, k, n), nil
}

// UnitRoots lists the nth roots of unity in order of increasing phase;
// with primitive set, only those of exact order n.
func UnitRoots(ctx context.Context, n int, primitive bool) []context.Value {
	var roots []context.Value
	for k := 0; k < n; k++ {
		if primitive && gcdInt(k, n) != 1 {
			continue
		}
		roots = append(roots, RootOf1(ctx, k, n))
	}
	return roots
}

func unitrootsImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"unitroots: got %d arguments, want 1 or 2", len(args))
	}
	n, err := intArg("unitroots", args[0])
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"unitroots: order %d not positive", n)
	}
	primitive := false
	if len(args) == 2 {
		b, ok := args[1].(bool)
		if !ok {
			return nil, errors.Wrapf(apnum.ErrInvalidArgument,
				"unitroots: primitive flag must be bool, got %T", args[1])
		}
		primitive = b
	}
	return UnitRoots(ctx, n, primitive), nil
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func fibImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("fib", args, 1); err != nil {
		return nil, err
	}
	n, err := intArg("fib", args[0])
	if err != nil {
		return nil, err
	}
	return ctx.Convert(apnum.Fib(n)), nil
}

func facImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if err := arity("fac", args, 1); err != nil {
		return nil, err
	}
	n, err := intArg("fac", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"fac: negative argument %d", n)
	}
	return ctx.Convert(apnum.Ifac(n)), nil
}

// stirlingArgs parses (n, k) plus the optional exact flag shared by both
// Stirling registrations.
func stirlingArgs(name string, args []context.Value) (n, k int, exact bool, err error) {
	if len(args) != 2 && len(args) != 3 {
		return 0, 0, false, errors.Wrapf(apnum.ErrInvalidArgument,
			"%s: got %d arguments, want 2 or 3", name, len(args))
	}
	if n, err = intArg(name, args[0]); err != nil {
		return 0, 0, false, err
	}
	if k, err = intArg(name, args[1]); err != nil {
		return 0, 0, false, err
	}
	if len(args) == 3 {
		b, ok := args[2].(bool)
		if !ok {
			return 0, 0, false, errors.Wrapf(apnum.ErrInvalidArgument,
				"%s: exact flag must be bool, got %T", name, args[2])
		}
		exact = b
	}
	return n, k, exact, nil
}

func stirling1Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	n, k, exact, err := stirlingArgs("stirling1", args)
	if err != nil {
		return nil, err
	}
	v, err := apnum.Stirling1(n, k)
	if err != nil {
		return nil, err
	}
	if exact {
		return v, nil
	}
	return ctx.Convert(v), nil
}

func stirling2Impl(ctx context.Context, args ...context.Value) (context.Value, error) {
	n, k, exact, err := stirlingArgs("stirling2", args)
	if err != nil {
		return nil, err
	}
	v, err := apnum.Stirling2(n, k)
	if err != nil {
		return nil, err
	}
	if exact {
		return v, nil
	}
	return ctx.Convert(v), nil
}
