// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import "math/big"

// The fixed small-prime set used for trial division and as the witness set
// for very large Miller-Rabin candidates.
var smallOddPrimes = [...]int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// Deterministic witness brackets. Below each bound, the associated witness
// set is proven to have no strong pseudoprimes; above the last bound the
// test is probabilistic (but never reports a prime as composite).
// See http://primes.utm.edu/prove/prove2_3.html.
var (
	mrBound1 = big.NewInt(1373653)
	mrBound2 = big.NewInt(341550071728321)

	mrWitnesses1 = []int64{2, 3}
	mrWitnesses2 = []int64{2, 3, 5, 7, 11, 13, 17}
)

// ListPrimes returns the primes up to n inclusive, by sieve of Eratosthenes.
func ListPrimes(n int) []int {
	if n < 2 {
		return nil
	}
	composite := make([]bool, n+1)
	for i := 2; i*i <= n; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	var primes []int
	for p := 2; p <= n; p++ {
		if !composite[p] {
			primes = append(primes, p)
		}
	}
	return primes
}

// IsPrime reports whether n is prime. The test is exact below the last
// deterministic witness bound (341,550,071,728,321) and probabilistic above
// it: a prime is never rejected, a composite may in theory be accepted.
func IsPrime(n *Int) bool {
	if n.Bit(0) == 0 {
		return n.Cmp(Two) == 0
	}
	if n.Cmp(One) <= 0 {
		return false
	}
	if n.Cmp(big.NewInt(50)) < 0 {
		for _, p := range smallOddPrimes {
			if n.Int64() == p {
				return true
			}
		}
		return false
	}
	t := new(big.Int)
	for _, p := range smallOddPrimes {
		if t.Mod(n, big.NewInt(p)).Sign() == 0 {
			return false
		}
	}

	m := new(big.Int).Sub(n, One)
	s := Trailing(m)
	d := new(big.Int).Rsh(m, s)

	witnesses := smallOddPrimes[:]
	if n.Cmp(mrBound1) < 0 {
		witnesses = mrWitnesses1
	} else if n.Cmp(mrBound2) < 0 {
		witnesses = mrWitnesses2
	}
	x := new(big.Int)
	for _, a := range witnesses {
		if !mrTest(big.NewInt(a), d, n, m, s, x) {
			return false
		}
	}
	return true
}

// mrTest runs one Miller-Rabin round for witness a, with n−1 = d·2^s and
// m = n−1. x is scratch storage.
func mrTest(a, d, n, m *Int, s uint, x *Int) bool {
	x.Exp(a, d, n)
	if x.Cmp(One) == 0 || x.Cmp(m) == 0 {
		return true
	}
	for r := uint(1); r < s; r++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(m) == 0 {
			return true
		}
	}
	return false
}

// Moebius evaluates the Möbius function: (−1)^k when |n| is a product of k
// distinct primes, 0 when a squared prime divides |n|. Factorization is
// naive trial division, which is fine for the small arguments the divisor
// products upstream feed it.
func Moebius(n int) int {
	if n < 0 {
		n = -n
	}
	if n < 2 {
		return n
	}
	k := 0
	for p := 2; p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		n /= p
		if n%p == 0 {
			return 0
		}
		k++
	}
	if n > 1 {
		k++
	}
	if k&1 == 1 {
		return -1
	}
	return 1
}
