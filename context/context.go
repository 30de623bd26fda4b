// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context defines the capability protocol that a concrete numeric
// context (arbitrary-precision real, complex, interval, ...) must satisfy
// for the algorithms in the math package to run on it, together with the
// function registry that binds those algorithms onto context instances.
//
// Concrete contexts live elsewhere; this package never implements one. An
// algorithm receives its Context explicitly as a parameter, never through
// implicit or global state, and all of its working-precision changes go
// through the save/restore discipline provided by PrecScope.
package context

import "math"

// Value is a context-native numeric value. Its concrete type belongs to the
// context that produced it; algorithms treat it as opaque and manipulate it
// only through Context methods.
type Value interface{}

// MagZero is the magnitude Mag reports for an exact zero. It compares below
// any finite magnitude, standing in for -infinity.
const MagZero = math.MinInt32

// A Context provides the minimal capability set a generic special-function
// algorithm may assume. Exactness contract: the Fxxx primitives round their
// result to the explicitly given precision and nothing else; all other
// operations round to the context's current working precision.
//
// A Context is plain mutable state with no internal locking: one context
// per goroutine, or external synchronization.
type Context interface {
	// Convert coerces a native Go value (ints, floats, complex128, *big.Int,
	// strings, or an existing Value of this context) to a Value, rounding to
	// the current precision. Converting a Value of this context is the
	// identity: Convert(Convert(x)) == Convert(x).
	Convert(x any) Value

	// Float64 returns a float64 approximation of the real value x.
	// It is lossy by design; algorithms use it only to pick regions and
	// starting estimates.
	Float64(x Value) float64

	// Decomposition.
	Re(x Value) Value
	Im(x Value) Value
	MakeComplex(re, im Value) Value
	IsRealType(x Value) bool

	// Predicates.
	IsZero(x Value) bool
	IsInf(x Value) bool
	IsNaN(x Value) bool
	IsInt(x Value) bool

	// Sign returns the sign of the real value x: -1, 0 or +1.
	Sign(x Value) int

	// Mag returns an integer e such that 2^(e-1) <= |x| < 2^e, i.e. the
	// position of the most significant bit. Mag of zero is MagZero; Mag of
	// an infinity or NaN is the context's choice of a huge value.
	Mag(x Value) int

	// Constants, rounded to the current precision where relevant.
	Zero() Value
	One() Value
	Two() Value
	Imag() Value // the imaginary unit
	Pi() Value
	E() Value
	Ln2() Value
	Inf(sign int) Value
	NaN() Value

	// Precision state: the working-precision bit count. Rounding mode is
	// part of the same state but opaque to algorithms. Callers raising the
	// precision must restore it on every exit path; see PrecScope.
	Prec() uint
	SetPrec(p uint)

	// Arithmetic at working precision.
	Add(x, y Value) Value
	Sub(x, y Value) Value
	Mul(x, y Value) Value
	Quo(x, y Value) Value
	Neg(x Value) Value
	Abs(x Value) Value
	Pow(x, y Value) Value
	Ldexp(x Value, n int) Value

	// Round rounds x to the current working precision.
	Round(x Value) Value

	// Exact-rounding primitives with an explicit target precision,
	// independent of the working precision.
	FAdd(x, y Value, prec uint) Value
	FSub(x, y Value, prec uint) Value
	FMul(x, y Value, prec uint) Value

	// Elementary transcendentals at working precision.
	Exp(x Value) Value
	Ln(x Value) Value
	Sqrt(x Value) Value
	Sin(x Value) Value
	Cos(x Value) Value
	Tan(x Value) Value
	Sinh(x Value) Value
	Cosh(x Value) Value
	Tanh(x Value) Value
	Atan2(y, x Value) Value

	// SumAccurately sums the lazy sequence produced by terms, detecting
	// catastrophic cancellation and re-summing at escalated precision until
	// the result is reliable at the working precision. Zero terms are
	// skipped; term magnitudes are inspected every checkStep terms.
	SumAccurately(terms func() func() (Value, bool), checkStep int) Value

	// Warn reports a non-fatal condition (an iteration exhausting its step
	// budget) to wherever the context routes diagnostics.
	Warn(format string, args ...any)
}

// PrecScope raises ctx's working precision by extra bits (extra may be
// negative) and returns the restore function. The idiom
//
//	defer PrecScope(ctx, guard)()
//
// guarantees the pre-call precision is restored on every exit path,
// including error returns and panics.
func PrecScope(ctx Context, extra int) func() {
	prec := ctx.Prec()
	p := int(prec) + extra
	if p < 1 {
		p = 1
	}
	ctx.SetPrec(uint(p))
	return func() { ctx.SetPrec(prec) }
}

// Terms adapts a fixed list of values to the lazy-sequence form consumed by
// Context.SumAccurately.
func Terms(vals ...Value) func() func() (Value, bool) {
	return func() func() (Value, bool) {
		i := 0
		return func() (Value, bool) {
			if i >= len(vals) {
				return nil, false
			}
			v := vals[i]
			i++
			return v, true
		}
	}
}
