// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import (
	"math/big"
	"strings"
)

// smallTrailing[b] is the number of trailing zero bits in the byte b, for
// b > 0. Filled at init with the classic stride pattern: bit j set as the
// lowest bit exactly for bytes congruent to 2^j mod 2^(j+1).
var smallTrailing [256]uint8

func init() {
	for j := uint(1); j < 8; j++ {
		for i := 1 << j; i < 256; i += 1 << (j + 1) {
			smallTrailing[i] = uint8(j)
		}
	}
}

// Trailing counts the trailing zero bits of |n|. Trailing(0) is 0.
func Trailing(n *Int) uint {
	w := n.Bits()
	if len(w) == 0 {
		return 0
	}
	t := uint(0)
	i := 0
	for ; w[i] == 0; i++ {
		t += wordBits
	}
	v := w[i]
	for v&0xff == 0 {
		v >>= 8
		t += 8
	}
	return t + uint(smallTrailing[v&0xff])
}

const wordBits = 32 << (^big.Word(0) >> 63) // 32 or 64

// GiantSteps returns an ascending precision schedule from just above start
// to exactly target, with consecutive ratios slightly below n. With n = 2
// the schedule suits a quadratically convergent iteration such as Newton's
// method; n = 3 suits cubic (Halley) convergence.
//
//	GiantSteps(50, 1000, 2) = [66, 128, 253, 502, 1000]
//	GiantSteps(50, 1000, 4) = [65, 252, 1000]
//
// The result is strictly increasing, its last element is target, and its
// first element is greater than start.
func GiantSteps(start, target, n int) []int {
	steps := []int{target}
	for steps[len(steps)-1] > start*n {
		steps = append(steps, steps[len(steps)-1]/n+2)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

// Rshift returns x >> n with floor rounding. A negative n shifts left.
func Rshift(x *Int, n int) *Int {
	if n >= 0 {
		return new(big.Int).Rsh(x, uint(n))
	}
	return new(big.Int).Lsh(x, uint(-n))
}

// Lshift returns x << n. A negative n shifts right with floor rounding.
func Lshift(x *Int, n int) *Int {
	if n >= 0 {
		return new(big.Int).Lsh(x, uint(n))
	}
	return new(big.Int).Rsh(x, uint(-n))
}

// GCD returns the greatest common divisor of |x| and |y|.
func GCD(x, y *Int) *Int {
	a := new(big.Int).Abs(x)
	b := new(big.Int).Abs(y)
	return new(big.Int).GCD(nil, nil, a, b)
}

// BinToRadix changes the radix of a fixed-point number: it converts
// x·2^−xbits to floor(x·base^bdigits / 2^xbits).
func BinToRadix(x *Int, xbits uint, base, bdigits int) *Int {
	z := new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(bdigits)), nil)
	z.Mul(z, x)
	return z.Rsh(z, xbits)
}

// numeralDirect is the digit count below which conversion is done directly.
const numeralDirect = 250

// Numeral renders n as a string of digits in the given base using recursive
// division, which beats a single divide-and-accumulate pass for very large
// inputs. size is the approximate number of digits in n; it only picks the
// splitting points and need not be exact.
func Numeral(n *Int, base, size int) string {
	if n.Sign() < 0 {
		return "-" + Numeral(new(big.Int).Neg(n), base, size)
	}
	if size < numeralDirect {
		return n.Text(base)
	}
	// Divide in half.
	half := size/2 + size&1
	p := new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(half)), nil)
	a, b := new(big.Int).QuoRem(n, p, new(big.Int))
	ad := Numeral(a, base, half)
	bd := Numeral(b, base, half)
	if len(bd) < half {
		bd = strings.Repeat("0", half-len(bd)) + bd
	}
	return ad + bd
}
