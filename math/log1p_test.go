// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	stdmath "math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog1pReal(t *testing.T) {
	ctx := newTestCtx()
	for _, x := range []float64{
		0, 1e-300, 1e-30, 1e-17, 1e-8, 0.001, 0.5, 1, 10, 1e8,
		-1e-300, -1e-17, -1e-8, -0.001, -0.5, -0.9,
	} {
		got := Log1p(ctx, x)
		want := stdmath.Log1p(x)
		require.IsType(t, 0.0, got, "log1p of a real must stay real")
		assert.InEpsilon(t, want+1, got.(float64)+1, 1e-12, "log1p(%g)", x)
		assert.Equal(t, uint(53), ctx.Prec(), "precision leaked")
	}
	// Below the working precision the series path takes over and the
	// result is x to full accuracy, not the naive ln(1+x) = ln(1) = 0.
	x := 1e-21
	got := Log1p(ctx, x).(float64)
	assert.InEpsilon(t, x, got, 1e-15)
}

func TestLog1pComplex(t *testing.T) {
	ctx := newTestCtx()
	for _, z := range []complex128{
		1 + 1i, -0.5 + 0.25i, 0.5i, 3 - 4i, -2 + 0.001i,
	} {
		got := Log1p(ctx, z)
		want := cmplx.Log(1 + z)
		g := got.(complex128)
		assert.InDelta(t, real(want), real(g), 1e-12*cmplx.Abs(want), "re log1p(%v)", z)
		assert.InDelta(t, imag(want), imag(g), 1e-12*cmplx.Abs(want), "im log1p(%v)", z)
	}
	// Tiny complex input: series path, imaginary part passes through.
	z := complex(1e-20, 1e-21)
	got := Log1p(ctx, z).(complex128)
	assert.Equal(t, 1e-21, imag(got))
	assert.InEpsilon(t, 1e-20, real(got), 1e-12)
}

func TestLog1pSeriesCancellation(t *testing.T) {
	ctx := newTestCtx()
	// a = -b²/2 makes the series real part a + b²/2 cancel completely,
	// forcing the widened recompute of the quadratic term. The true real
	// part is -a²/2, far below b²; the imaginary part passes through.
	b := 1e-21
	a := -(b * b) / 2
	got := Log1p(ctx, complex(a, b)).(complex128)
	assert.Equal(t, b, imag(got))
	assert.LessOrEqual(t, stdmath.Abs(real(got)), 1e-84)
	assert.Equal(t, uint(53), ctx.Prec())
}

func TestLog1pZero(t *testing.T) {
	ctx := newTestCtx()
	assert.Equal(t, 0.0, Log1p(ctx, 0.0))
}

func TestExpM1(t *testing.T) {
	ctx := newTestCtx()
	// Moderate arguments go through accurate summation of exp(x) − 1.
	for _, x := range []float64{0.01, 0.1, 1, 10, -0.1, -5} {
		got := ExpM1(ctx, x)
		want := stdmath.Expm1(x)
		assert.InEpsilon(t, want, got.(float64), 1e-10, "expm1(%g)", x)
	}
	assert.Equal(t, 0.0, ExpM1(ctx, 0.0))
	// Arguments below the working precision short-circuit to x + x²/2,
	// where the naive route would return exp(x) − 1 = 0.
	for _, x := range []float64{1e-30, 1e-300, -1e-30} {
		assert.InEpsilon(t, x, ExpM1(ctx, x).(float64), 1e-15, "expm1(%g)", x)
	}
	assert.Equal(t, uint(53), ctx.Prec())
}

func TestPowM1(t *testing.T) {
	ctx := newTestCtx()
	for _, test := range []struct {
		x, y float64
	}{
		{2, 3}, {2, -3}, {10, 0.5}, {0.5, 10}, {1.5, 2.5},
	} {
		got := PowM1(ctx, test.x, test.y)
		want := stdmath.Pow(test.x, test.y) - 1
		assert.InEpsilon(t, want, got.(float64), 1e-12, "powm1(%g, %g)", test.x, test.y)
	}
}

func TestPowM1ExactZeros(t *testing.T) {
	ctx := newTestCtx()
	// x^0 − 1 and (fourth root of unity)^integer − 1 are the only exact
	// zeros; they must come back as exact zeros, not tiny residues.
	assert.Equal(t, 0.0, PowM1(ctx, 7.25, 0))
	assert.Equal(t, 0.0, PowM1(ctx, 1.0, 12345.0))
	assert.Equal(t, 0.0, PowM1(ctx, -1.0, 4.0))
	assert.Equal(t, 0.0, PowM1(ctx, complex(0, 1), 8))
	assert.Equal(t, 0.0, PowM1(ctx, complex(0, -1), -4))
}

func TestPowM1SmallExponent(t *testing.T) {
	ctx := newTestCtx()
	// y·ln(x) far below the precision: the quadratic approximation path.
	x, y := 2.0, 1e-25
	got := PowM1(ctx, x, y).(float64)
	want := stdmath.Ln2 * y // first-order term dominates
	assert.InEpsilon(t, want, got, 1e-12)
	assert.Equal(t, uint(53), ctx.Prec())
}
