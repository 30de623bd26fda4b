// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	stdmath "math"
	"math/bits"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// lambertwMaxSteps caps the Halley refinement. Exhausting it is reported
// through ctx.Warn and the last estimate is still returned.
const lambertwMaxSteps = 100

// branchPointRe is a float64 approximation of −1/e, where the k = 0 and
// k = ±1 branches of W meet.
const branchPointRe = -0.367879441171442

// LambertW solves w·e^w = z for branch k. The principal branch is k = 0.
//
// The estimate is seeded from a branch-point series near −1/e, from a
// closed-form hybrid approximation for branches 0 and −1 in a bounded
// region, or from the general asymptotic form, and then refined by Halley
// iteration until the relative magnitude of successive updates falls below
// the target tolerance.
func LambertW(ctx context.Context, z any, k int) context.Value {
	v := ctx.Convert(z)
	if ctx.IsZero(v) || ctx.IsInf(v) || ctx.IsNaN(v) {
		return lambertwSpecial(ctx, v, k)
	}

	kmag := k
	if kmag == 0 {
		kmag = 1
	}
	restore := context.PrecScope(ctx, 20+bits.Len(uint(abs(kmag))))
	wp := ctx.Prec()
	tol := int(wp) - 5

	w, done := lambertwSeries(ctx, v, k, tol)
	if !done {
		two := ctx.Two()
		converged := false
		for i := 0; i < lambertwMaxSteps; i++ {
			// Halley step for f(w) = w·e^w − z:
			// w' = w − f / (e^w·(w+1) − (w+2)·f / (2w+2))
			ew := ctx.Exp(w)
			wew := ctx.Mul(w, ew)
			wewz := ctx.Sub(wew, v)
			den := ctx.Sub(ctx.Add(wew, ew),
				ctx.Quo(ctx.Mul(ctx.Add(w, two), wewz), ctx.Add(ctx.Ldexp(w, 1), two)))
			wn := ctx.Sub(w, ctx.Quo(wewz, den))
			if ctx.Mag(ctx.Sub(wn, w)) <= ctx.Mag(wn)-tol {
				w = wn
				converged = true
				break
			}
			w = wn
		}
		if !converged {
			ctx.Warn("lambertw(%v, %d) failed to converge after %d steps",
				v, k, lambertwMaxSteps)
		}
	}
	restore()
	return ctx.Round(w)
}

// lambertwImpl is the raw registry form: lambertw(z) or lambertw(z, k).
func lambertwImpl(ctx context.Context, args ...context.Value) (context.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"lambertw: got %d arguments, want 1 or 2", len(args))
	}
	k := 0
	if len(args) == 2 {
		var err error
		if k, err = intArg("lambertw", args[1]); err != nil {
			return nil, err
		}
	}
	return LambertW(ctx, args[0], k), nil
}

func abs(k int) int {
	if k < 0 {
		return -k
	}
	return k
}

// lambertwSpecial handles 0, infinities and NaN.
func lambertwSpecial(ctx context.Context, z context.Value, k int) context.Value {
	if ctx.IsZero(z) {
		// W(0, 0) = 0; all other branches are singular at 0.
		if k == 0 {
			return z
		}
		return ctx.Add(ctx.Inf(-1), z)
	}
	if ctx.IsInf(z) && ctx.IsRealType(z) {
		if ctx.Sign(z) > 0 {
			if k == 0 {
				return z
			}
			return ctx.Add(z, turns(ctx, 2*k))
		}
		return ctx.Add(ctx.Neg(z), turns(ctx, 2*k+1))
	}
	// Complex infinity or some kind of NaN.
	return ctx.Ln(z)
}

// turns returns m·π·i.
func turns(ctx context.Context, m int) context.Value {
	return ctx.MakeComplex(ctx.Zero(), ctx.Mul(ctx.Convert(m), ctx.Pi()))
}

// lambertwSeries returns a rough approximation of W_k(z), good enough for
// the Halley iteration to converge to the correct branch, plus a flag
// reporting that the estimate is already accurate to tol bits.
func lambertwSeries(ctx context.Context, z context.Value, k, tol int) (context.Value, bool) {
	magz := ctx.Mag(z)
	if -10 < magz && magz < 900 && -1000 < k && k < 1000 {
		// Near the branch point at −1/e.
		if magz < 1 && nearBranchPoint(ctx, z) {
			if k == 0 || (k == -1 && ctx.Sign(ctx.Im(z)) >= 0) ||
				(k == 1 && ctx.Sign(ctx.Im(z)) < 0) {
				return branchPointSeries(ctx, z, k, tol)
			}
		}
		if k == 0 || k == -1 {
			w := lambertwApproxHybrid(complex(
				ctx.Float64(ctx.Re(z)), ctx.Float64(ctx.Im(z))), k)
			return ctx.Convert(w), false
		}
	}
	var l1, l2 context.Value
	switch {
	case k == 0:
		if magz < -1 {
			// W(z) ~ z(1−z) as z → 0
			return ctx.Mul(z, ctx.Sub(ctx.One(), z)), false
		}
		l1 = ctx.Ln(z)
		l2 = ctx.Ln(l1)
	case k == -1 && ctx.IsZero(ctx.Im(z)) && realInBranchCut(ctx, z):
		l1 = ctx.Ln(ctx.Neg(z))
		return ctx.Sub(l1, ctx.Ln(ctx.Neg(l1))), false
	default:
		// Holds both as z → 0 and z → ∞; relative error O(1/ln z).
		l1 = ctx.Add(ctx.Ln(z), turns(ctx, 2*k))
		l2 = ctx.Ln(l1)
	}
	// L1 − L2 + L2/L1 + L2(L2−2)/(2L1²)
	w := ctx.Sub(l1, l2)
	w = ctx.Add(w, ctx.Quo(l2, l1))
	num := ctx.Mul(l2, ctx.Sub(l2, ctx.Two()))
	den := ctx.Ldexp(ctx.Mul(l1, l1), 1)
	return ctx.Add(w, ctx.Quo(num, den)), false
}

func nearBranchPoint(ctx context.Context, z context.Value) bool {
	d := ctx.Abs(ctx.Sub(z, ctx.Convert(branchPointRe)))
	return ctx.Float64(d) < 0.05
}

func realInBranchCut(ctx context.Context, z context.Value) bool {
	re := ctx.Float64(ctx.Re(z))
	return branchPointRe < re && re < 0
}

// branchPointSeries evaluates the series of Corless et al. in
// p = sqrt(2(ez+1)) around the branch point. Unless z is extremely close
// to −1/e, only the first few terms are used: the goal is a seed for the
// iteration, not the final value.
func branchPointSeries(ctx context.Context, z context.Value, k, tol int) (context.Value, bool) {
	delta := ctx.SumAccurately(context.Terms(z, ctx.Exp(ctx.Neg(ctx.One()))), 2)
	cancellation := -ctx.Mag(delta)
	restore := context.PrecScope(ctx, cancellation)
	p := ctx.Sqrt(ctx.Ldexp(ctx.Add(ctx.Mul(ctx.E(), z), ctx.One()), 1))
	restore()
	if k != 0 {
		p = ctx.Neg(p)
	}

	u := map[int]context.Value{0: ctx.Convert(-1), 1: ctx.Convert(1)}
	a := map[int]context.Value{0: ctx.Convert(2), 1: ctx.Convert(-1)}
	s := ctx.Zero()
	n := max(cancellation, 2)
	for l := 0; l < n; l++ {
		if _, ok := u[l]; !ok {
			// a_l = Σ_{j=2}^{l-1} u_j·u_{l+1−j}
			sum := ctx.Zero()
			for j := 2; j < l; j++ {
				sum = ctx.Add(sum, ctx.Mul(u[j], u[l+1-j]))
			}
			a[l] = sum
			// u_l = (l−1)(u_{l−2}/2 + a_{l−2}/4)/(l+1) − a_l/2 − u_{l−1}/(l+1)
			t := ctx.Add(ctx.Ldexp(u[l-2], -1), ctx.Ldexp(a[l-2], -2))
			t = ctx.Quo(ctx.Mul(ctx.Convert(l-1), t), ctx.Convert(l+1))
			t = ctx.Sub(t, ctx.Ldexp(a[l], -1))
			u[l] = ctx.Sub(t, ctx.Quo(u[l-1], ctx.Convert(l+1)))
		}
		term := ctx.Mul(u[l], ctx.Pow(p, ctx.Convert(l)))
		s = ctx.Add(s, term)
		if ctx.Mag(term) < -tol {
			return s, true
		}
	}
	// The series alone did not reach the tolerance; hand the partial sum
	// to the iteration with half the cancellation as extra precision.
	ctx.SetPrec(ctx.Prec() + uint(max(cancellation/2, 0)))
	return s, false
}

// lambertwApproxHybrid seeds branches 0 and −1 from float64 closed forms:
// Taylor patches in the upper/lower half-plane and near −1, a singularity
// expansion near −1/e, and the asymptotic logarithm form elsewhere.
func lambertwApproxHybrid(z complex128, k int) complex128 {
	imagSign := 0
	x, y := real(z), imag(z)
	if y != 0 {
		if y < 0 {
			imagSign = -1
		} else {
			imagSign = 1
		}
	} else {
		y = 0.0 // normalize -0
	}
	z = complex(x, y)

	var l1, l2 complex128
	switch {
	case k == 0:
		if -4.0 < y && y < 4.0 && -1.0 < x && x < 2.5 {
			if imagSign != 0 {
				// Taylor patches in the upper/lower half-plane.
				if y > 1.00 {
					return complex(0.876, 0.645) + complex(0.118, -0.174)*(z-complex(0.75, 2.5))
				}
				if y > 0.25 {
					return complex(0.505, 0.204) + complex(0.375, -0.132)*(z-complex(0.75, 0.5))
				}
				if y < -1.00 {
					return complex(0.876, -0.645) + complex(0.118, 0.174)*(z-complex(0.75, -2.5))
				}
				if y < -0.25 {
					return complex(0.505, -0.204) + complex(0.375, 0.132)*(z-complex(0.75, -0.5))
				}
			}
			// Taylor patch near −1.
			if x < -0.5 {
				if imagSign >= 0 {
					return complex(-0.318, 1.34) + complex(-0.697, -0.593)*(z+1)
				}
				return complex(-0.318, -1.34) + complex(-0.697, 0.593)*(z+1)
			}
			if imagSign == 0 && x > branchPointRe {
				z = complex(x, 0)
			}
			// Singularity expansion near −1/e.
			if x < -0.2 {
				d := z - complex(branchPointRe, 0)
				return -1 + 2.33164398159712*cmplx.Sqrt(d) - 1.81218788563936*d
			}
			// Taylor series near 0.
			if x < 0.5 {
				return z
			}
			return 0.2 + 0.3*z
		}
		if imagSign == 0 && x > 0.0 {
			l1 = complex(stdmath.Log(x), 0)
			l2 = complex(stdmath.Log(real(l1)), 0)
		} else {
			l1 = cmplx.Log(z)
			l2 = cmplx.Log(l1)
		}
	case k == -1:
		if imagSign == 0 && branchPointRe < x && x < 0.0 {
			z = complex(x, 0)
		}
		if imagSign >= 0 && y < 0.1 && -0.6 < x && x < -0.2 {
			d := z - complex(branchPointRe, 0)
			return -1 - 2.33164398159712*cmplx.Sqrt(d) - 1.81218788563936*d
		}
		if imagSign == 0 && -0.2 <= x && x < 0.0 {
			l := stdmath.Log(-x)
			return complex(l-stdmath.Log(-l), 0)
		}
		if imagSign == -1 && y == 0 && x < 0.0 {
			l1 = cmplx.Log(z) - complex(0, 3.1415926535897932)
		} else {
			l1 = cmplx.Log(z) - complex(0, 6.2831853071795865)
		}
		l2 = cmplx.Log(l1)
	}
	return l1 - l2 + l2/l1 + l2*(l2-2)/(2*l1*l1)
}
