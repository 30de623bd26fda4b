// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBellNumbers(t *testing.T) {
	ctx := newTestCtx()
	want := []float64{1, 1, 2, 5, 15, 52, 203, 877, 4140}
	for n, w := range want {
		got := Bell(ctx, n, 1)
		assert.InDelta(t, w, ctx.Float64(got), 1e-8*w, "B(%d)", n)
		assert.Equal(t, uint(53), ctx.Prec())
	}
}

func TestBellPolynomial(t *testing.T) {
	ctx := newTestCtx()
	// B_1(x) = x and B_2(x) = x(x+1) are closed forms; B_3(x) =
	// x³ + 3x² + x checks the Dobinski summation path.
	for _, x := range []float64{0.5, 2, -1.5} {
		assert.Equal(t, x, Bell(ctx, 1, x))
		assert.InEpsilon(t, x*(x+1), ctx.Float64(Bell(ctx, 2, x)), 1e-12)
		want := x*x*x + 3*x*x + x
		assert.InDelta(t, want, ctx.Float64(Bell(ctx, 3, x)), 1e-8*stdmath.Abs(want))
	}
}

func TestBellEdgeCases(t *testing.T) {
	ctx := newTestCtx()
	assert.Equal(t, 1.0, Bell(ctx, 0, 7.5))
	assert.True(t, ctx.IsNaN(Bell(ctx, 0, stdmath.NaN())))
	// x = 0: B_n(0) = 0 for n >= 1 via the sincpi continuation term.
	for _, n := range []int{1, 3, 8} {
		assert.Equal(t, 0.0, Bell(ctx, n, 0.0), "B_%d(0)", n)
	}
	assert.True(t, ctx.IsInf(Bell(ctx, 2, stdmath.Inf(1))))
}

func TestPolyExp(t *testing.T) {
	ctx := newTestCtx()
	// E_1(z) = z·e^z, E_2(z) = z(z+1)·e^z.
	for _, z := range []float64{0.5, 1, -2} {
		assert.InEpsilon(t, z*stdmath.Exp(z), ctx.Float64(PolyExp(ctx, 1, z)), 1e-12)
		want := z * (z + 1) * stdmath.Exp(z)
		assert.InDelta(t, want, ctx.Float64(PolyExp(ctx, 2, z)), 1e-12*stdmath.Abs(want)+1e-15)
	}
	// E_0(z) = e^z − 1.
	assert.InEpsilon(t, stdmath.Expm1(0.25), ctx.Float64(PolyExp(ctx, 0, 0.25)), 1e-10)
	// s = 3 goes through the series.
	z := 0.5
	want := 0.0
	term := z
	for k := 1; k < 60; k++ {
		want += stdmath.Pow(float64(k), 3) * term
		term = term * z / float64(k+1)
	}
	assert.InDelta(t, want, ctx.Float64(PolyExp(ctx, 3, z)), 1e-10*want)
	// z = 0 returns an exact zero.
	assert.Equal(t, 0.0, PolyExp(ctx, 3, 0.0))
	assert.Equal(t, uint(53), ctx.Prec())
}
