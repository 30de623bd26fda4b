// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import (
	"math/big"
	"testing"
)

func TestListPrimes(t *testing.T) {
	primes := ListPrimes(100)
	want := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
		53, 59, 61, 67, 71, 73, 79, 83, 89, 97}
	if len(primes) != len(want) {
		t.Fatalf("ListPrimes(100): got %d primes; want %d", len(primes), len(want))
	}
	for i := range want {
		if primes[i] != want[i] {
			t.Errorf("ListPrimes(100)[%d] = %d; want %d", i, primes[i], want[i])
		}
	}
	if got := ListPrimes(1); got != nil {
		t.Errorf("ListPrimes(1) = %v; want nil", got)
	}

	// Sum of all primes below 100000; a classic checksum.
	var sum int64
	for _, p := range ListPrimes(99999) {
		sum += int64(p)
	}
	if sum != 454396537 {
		t.Errorf("sum of primes < 100000 = %d; want 454396537", sum)
	}
}

func TestIsPrimeAgainstSieve(t *testing.T) {
	const limit = 10000
	isPrime := make([]bool, limit+1)
	for _, p := range ListPrimes(limit) {
		isPrime[p] = true
	}
	for n := 0; n <= limit; n++ {
		if got := IsPrime(big.NewInt(int64(n))); got != isPrime[n] {
			t.Errorf("IsPrime(%d) = %v; want %v", n, got, isPrime[n])
		}
	}
}

func TestIsPrimeWitnessBrackets(t *testing.T) {
	for _, test := range []struct {
		n    string
		want bool
	}{
		// First bracket boundary: 1373653 = 829·1657 is the smallest
		// strong pseudoprime to bases 2 and 3.
		{"1373653", false},
		{"1373639", true},

		// Around the second bracket boundary.
		{"341550071728321", false}, // 10670053·32010157
		{"341550071728361", true},

		// Large primes and composites beyond the deterministic range.
		{"618970019642690137449562111", true},  // 2^89 − 1, Mersenne
		{"2305843009213693951", true},          // 2^61 − 1, Mersenne
		{"618970019642690137449562113", false}, // Mersenne neighbor
		{"170141183460469231731687303715884105727", true}, // 2^127 − 1
	} {
		if got := IsPrime(MakeInt(test.n)); got != test.want {
			t.Errorf("IsPrime(%s) = %v; want %v", test.n, got, test.want)
		}
	}
	if IsPrime(big.NewInt(-7)) {
		t.Error("IsPrime(-7) = true")
	}
}

func TestMoebius(t *testing.T) {
	for n, want := range map[int]int{
		0: 0, 1: 1, 2: -1, 3: -1, 4: 0, 5: -1, 6: 1, 7: -1, 8: 0,
		9: 0, 10: 1, 30: -1, 36: 0, 210: 1,
	} {
		if got := Moebius(n); got != want {
			t.Errorf("Moebius(%d) = %d; want %d", n, got, want)
		}
	}
	// Cross-check against a direct factorization oracle.
	mu := func(n int) int {
		r := 1
		for p := 2; p*p <= n; p++ {
			if n%p != 0 {
				continue
			}
			n /= p
			if n%p == 0 {
				return 0
			}
			r = -r
		}
		if n > 1 {
			r = -r
		}
		return r
	}
	m := 0
	for n := 1; n <= 1000; n++ {
		if got, want := Moebius(n), mu(n); got != want {
			t.Errorf("Moebius(%d) = %d; want %d", n, got, want)
		}
		m += Moebius(n)
	}
	// Mertens function M(1000) = sum of mu(1..1000).
	if m != 2 {
		t.Errorf("Mertens(1000) = %d; want 2", m)
	}
}
