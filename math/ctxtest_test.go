// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import (
	"fmt"
	stdmath "math"
	"math/big"
	"math/cmplx"

	"github.com/apnum/apnum/context"
)

// testCtx is a complex128-backed context used to exercise the generic
// algorithms. Values are float64 for reals and complex128 otherwise; a
// complex value with zero imaginary part demotes to float64 so that
// IsRealType tracks mathematical realness the way an arbitrary-precision
// context would.
//
// The precision field is bookkeeping only (the significand is fixed at 53
// bits), which is exactly what makes it useful: it verifies that the
// algorithms' save/restore discipline is balanced without disturbing the
// numerics.
type testCtx struct {
	prec     uint
	warnings []string
}

func newTestCtx() *testCtx { return &testCtx{prec: 53} }

func demote(z complex128) context.Value {
	if imag(z) == 0 {
		return real(z)
	}
	return z
}

func (c *testCtx) c(x context.Value) complex128 {
	switch v := x.(type) {
	case float64:
		return complex(v, 0)
	case complex128:
		return v
	}
	panic(fmt.Sprintf("testCtx: not a value: %T", x))
}

func (c *testCtx) Convert(x any) context.Value {
	switch v := x.(type) {
	case float64:
		return v
	case complex128:
		return demote(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	}
	panic(fmt.Sprintf("testCtx: cannot convert %T", x))
}

func (c *testCtx) Float64(x context.Value) float64 { return real(c.c(x)) }

func (c *testCtx) Re(x context.Value) context.Value { return real(c.c(x)) }
func (c *testCtx) Im(x context.Value) context.Value { return imag(c.c(x)) }
func (c *testCtx) MakeComplex(re, im context.Value) context.Value {
	return demote(complex(real(c.c(re)), real(c.c(im))))
}
func (c *testCtx) IsRealType(x context.Value) bool {
	_, ok := x.(float64)
	return ok
}

func (c *testCtx) IsZero(x context.Value) bool { return c.c(x) == 0 }
func (c *testCtx) IsInf(x context.Value) bool  { return cmplx.IsInf(c.c(x)) }
func (c *testCtx) IsNaN(x context.Value) bool  { return cmplx.IsNaN(c.c(x)) }
func (c *testCtx) IsInt(x context.Value) bool {
	v, ok := x.(float64)
	return ok && v == stdmath.Trunc(v) && !stdmath.IsInf(v, 0)
}

func (c *testCtx) Sign(x context.Value) int {
	v := real(c.c(x))
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (c *testCtx) Mag(x context.Value) int {
	z := c.c(x)
	if z == 0 {
		return context.MagZero
	}
	if cmplx.IsInf(z) || cmplx.IsNaN(z) {
		return stdmath.MaxInt32
	}
	_, e := stdmath.Frexp(cmplx.Abs(z))
	return e
}

func (c *testCtx) Zero() context.Value        { return 0.0 }
func (c *testCtx) One() context.Value         { return 1.0 }
func (c *testCtx) Two() context.Value         { return 2.0 }
func (c *testCtx) Imag() context.Value        { return complex(0, 1) }
func (c *testCtx) Pi() context.Value          { return stdmath.Pi }
func (c *testCtx) E() context.Value           { return stdmath.E }
func (c *testCtx) Ln2() context.Value         { return stdmath.Ln2 }
func (c *testCtx) Inf(sign int) context.Value { return stdmath.Inf(sign) }
func (c *testCtx) NaN() context.Value         { return stdmath.NaN() }

func (c *testCtx) Prec() uint     { return c.prec }
func (c *testCtx) SetPrec(p uint) { c.prec = p }

func (c *testCtx) Add(x, y context.Value) context.Value { return demote(c.c(x) + c.c(y)) }
func (c *testCtx) Sub(x, y context.Value) context.Value { return demote(c.c(x) - c.c(y)) }
func (c *testCtx) Mul(x, y context.Value) context.Value { return demote(c.c(x) * c.c(y)) }
func (c *testCtx) Quo(x, y context.Value) context.Value { return demote(c.c(x) / c.c(y)) }
func (c *testCtx) Neg(x context.Value) context.Value    { return demote(-c.c(x)) }
func (c *testCtx) Abs(x context.Value) context.Value    { return cmplx.Abs(c.c(x)) }

// Pow takes a repeated-squaring path for integer exponents of moderate
// size, so that powers of exact roots of unity stay exact. This mirrors
// what real arbitrary-precision backends do.
func (c *testCtx) Pow(x, y context.Value) context.Value {
	if bz := c.c(x); !cmplx.IsInf(bz) && !cmplx.IsNaN(bz) &&
		c.IsInt(y) && stdmath.Abs(y.(float64)) <= 1<<30 {
		n := int64(y.(float64))
		neg := n < 0
		if neg {
			n = -n
		}
		p := complex(1, 0)
		b := c.c(x)
		for ; n > 0; n >>= 1 {
			if n&1 == 1 {
				p *= b
			}
			b *= b
		}
		if neg {
			p = 1 / p
		}
		return demote(p)
	}
	zx, zy := c.c(x), c.c(y)
	if imag(zx) == 0 && imag(zy) == 0 && (real(zx) > 0 || real(zx) == 0 && real(zy) > 0) {
		return stdmath.Pow(real(zx), real(zy))
	}
	return demote(cmplx.Pow(zx, zy))
}

func (c *testCtx) Ldexp(x context.Value, n int) context.Value {
	z := c.c(x)
	f := stdmath.Ldexp(1, n)
	return demote(complex(real(z)*f, imag(z)*f))
}

func (c *testCtx) Round(x context.Value) context.Value { return x }

func (c *testCtx) FAdd(x, y context.Value, prec uint) context.Value { return c.Add(x, y) }
func (c *testCtx) FSub(x, y context.Value, prec uint) context.Value { return c.Sub(x, y) }
func (c *testCtx) FMul(x, y context.Value, prec uint) context.Value { return c.Mul(x, y) }

func (c *testCtx) real1(x context.Value, rf func(float64) float64, cf func(complex128) complex128) context.Value {
	if v, ok := x.(float64); ok {
		return rf(v)
	}
	return demote(cf(x.(complex128)))
}

func (c *testCtx) Exp(x context.Value) context.Value {
	return c.real1(x, stdmath.Exp, cmplx.Exp)
}
func (c *testCtx) Ln(x context.Value) context.Value {
	if v, ok := x.(float64); ok && v > 0 {
		return stdmath.Log(v)
	}
	return demote(cmplx.Log(c.c(x)))
}
func (c *testCtx) Sqrt(x context.Value) context.Value {
	if v, ok := x.(float64); ok && v >= 0 {
		return stdmath.Sqrt(v)
	}
	return demote(cmplx.Sqrt(c.c(x)))
}
func (c *testCtx) Sin(x context.Value) context.Value {
	return c.real1(x, stdmath.Sin, cmplx.Sin)
}
func (c *testCtx) Cos(x context.Value) context.Value {
	return c.real1(x, stdmath.Cos, cmplx.Cos)
}
func (c *testCtx) Tan(x context.Value) context.Value {
	return c.real1(x, stdmath.Tan, cmplx.Tan)
}
func (c *testCtx) Sinh(x context.Value) context.Value {
	return c.real1(x, stdmath.Sinh, cmplx.Sinh)
}
func (c *testCtx) Cosh(x context.Value) context.Value {
	return c.real1(x, stdmath.Cosh, cmplx.Cosh)
}
func (c *testCtx) Tanh(x context.Value) context.Value {
	return c.real1(x, stdmath.Tanh, cmplx.Tanh)
}
func (c *testCtx) Atan2(y, x context.Value) context.Value {
	return stdmath.Atan2(real(c.c(y)), real(c.c(x)))
}

// SumAccurately follows the canonical escalation loop: sum until a term
// falls far enough below the running sum, measure the cancellation, and
// retry with more precision if everything cancelled. With a fixed 53-bit
// significand the retry cannot actually add bits, so attempts are capped.
func (c *testCtx) SumAccurately(terms func() func() (context.Value, bool), checkStep int) context.Value {
	prec := c.prec
	defer func() { c.prec = prec }()
	extraprec := 10
	for attempt := 0; ; attempt++ {
		c.prec = prec + uint(extraprec) + 5
		maxMag := context.MagZero
		sumMag := context.MagZero
		s := complex(0, 0)
		k := 0
		next := terms()
		for {
			term, ok := next()
			if !ok {
				break
			}
			t := c.c(term)
			s += t
			if k%checkStep == 0 && t != 0 {
				termMag := c.Mag(term)
				if termMag > maxMag {
					maxMag = termMag
				}
				sumMag = c.Mag(demote(s))
				if termMag < sumMag-int(prec)-8 {
					break
				}
			}
			k++
			if k > 100000 {
				break
			}
		}
		cancellation := maxMag - sumMag
		if cancellation < extraprec || attempt >= 2 {
			return demote(s)
		}
		extraprec += 2 * cancellation
	}
}

func (c *testCtx) Warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

var _ context.Context = (*testCtx)(nil)
