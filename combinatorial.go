// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import (
	"math/big"
	"math/bits"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// Cache capacities. The growth-chain caches stop filling past
// MaxFactorialCache; the LRU caches bound the recently-used argument sets.
const (
	MaxFactorialCache = 1000

	fibCacheSize = 250
	facCacheSize = 1024
	eulCacheSize = 500
)

var (
	fibCache = mustLRU(fibCacheSize)
	facCache = mustLRU(facCacheSize)
	eulCache = mustLRU(eulCacheSize)
)

func mustLRU(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// cached returns a copy of the cache entry for k, so that callers mutating
// the result cannot corrupt the cache.
func cached(c *lru.Cache, k int) (*Int, bool) {
	if v, ok := c.Get(k); ok {
		return new(big.Int).Set(v.(*Int)), true
	}
	return nil, false
}

func store(c *lru.Cache, k int, v *Int) *Int {
	c.Add(k, new(big.Int).Set(v))
	return v
}

// Fib returns the nth Fibonacci number. Negative indices follow the
// identity fib(−n) = (−1)^(n+1)·fib(n).
func Fib(n int) *Int {
	if n < 0 {
		f := Fib(-n)
		if n&1 == 0 {
			f.Neg(f)
		}
		return f
	}
	if f, ok := cached(fibCache, n); ok {
		return f
	}
	var f *Int
	if fibBackend != nil {
		f = fibBackend(uint64(n))
	} else {
		f = fibDoubling(uint64(n))
	}
	return store(fibCache, n, f)
}

// fibDoubling computes F(n) by fast doubling: each bit of n doubles the
// index, odd bits advance it by one.
func fibDoubling(n uint64) *Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	a := big.NewInt(0) // F(k)
	b := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k)·(2F(k+1) − F(k)), F(2k+1) = F(k)² + F(k+1)²
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mul(a, t1)
		t2.Mul(a, a)
		a.Mul(b, b)
		t2.Add(t2, a)
		a.Set(t1)
		b.Set(t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
	}
	return a
}

// facChain[k] = k!, extended incrementally and never shrunk. Guarded by the
// package's single-writer assumption, like all caches here.
var facChain = []*Int{big.NewInt(1)}

// Ifac returns n!. Results for n <= MaxFactorialCache extend a growth chain
// from the highest value already computed; larger arguments go through a
// bounded LRU cache instead. Ifac panics if n is negative.
func Ifac(n int) *Int {
	if n < 0 {
		panic(errors.Wrap(ErrInvalidArgument, "Ifac: negative argument"))
	}
	if n < len(facChain) {
		return new(big.Int).Set(facChain[n])
	}
	if n > MaxFactorialCache {
		if f, ok := cached(facCache, n); ok {
			return f
		}
		var f *Int
		if facBackend != nil {
			f = facBackend(uint64(n))
		} else {
			f = extendFac(n)
		}
		return store(facCache, n, f)
	}
	return new(big.Int).Set(extendFac(n))
}

// extendFac grows the factorial chain up to min(n, MaxFactorialCache) and
// keeps multiplying past it without caching.
func extendFac(n int) *Int {
	k := len(facChain) - 1
	p := new(big.Int).Set(facChain[k])
	t := new(big.Int)
	for k < n {
		k++
		p.Mul(p, t.SetInt64(int64(k)))
		if k <= MaxFactorialCache {
			facChain = append(facChain, new(big.Int).Set(p))
		}
	}
	return p
}

// Double-factorial growth chains, one per parity, keyed by argument.
var (
	fac2Chain = [2]map[int]*Int{
		{0: big.NewInt(1)},
		{1: big.NewInt(1)},
	}
	fac2Top = [2]int{0, 1}
)

// Ifac2 returns n!! (the double factorial) for n >= 0. Each parity keeps
// its own chain, extended from the highest cached value.
func Ifac2(n int) *Int {
	if n < 0 {
		panic(errors.Wrap(ErrInvalidArgument, "Ifac2: negative argument"))
	}
	par := n & 1
	memo := fac2Chain[par]
	if f, ok := memo[n]; ok {
		return new(big.Int).Set(f)
	}
	k := fac2Top[par]
	p := new(big.Int).Set(memo[k])
	t := new(big.Int)
	for k < n {
		k += 2
		p.Mul(p, t.SetInt64(int64(k)))
		if k <= MaxFactorialCache {
			memo[k] = new(big.Int).Set(p)
			fac2Top[par] = k
		}
	}
	return p
}

// Stirling1 returns the signed Stirling number of the first kind s(n, k),
// by the triangular recurrence over exact integers.
func Stirling1(n, k int) (*Int, error) {
	if n < 0 || k < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "Stirling1(%d, %d)", n, k)
	}
	if k >= n {
		if k == n {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	}
	if k < 1 {
		return new(big.Int), nil
	}
	row := make([]*Int, k+1)
	for i := range row {
		row[i] = new(big.Int)
	}
	row[1].SetInt64(1)
	t := new(big.Int)
	for m := 2; m <= n; m++ {
		top := k
		if m < top {
			top = m
		}
		for j := top; j > 0; j-- {
			// s(m, j) = (m−1)·s(m−1, j) + s(m−1, j−1)
			row[j].Mul(row[j], t.SetInt64(int64(m-1)))
			row[j].Add(row[j], row[j-1])
		}
	}
	if (n+k)&1 == 1 {
		row[k].Neg(row[k])
	}
	return row[k], nil
}

// Stirling2 returns the Stirling number of the second kind S(n, k), by the
// alternating binomial sum divided by k! (exact at every step).
func Stirling2(n, k int) (*Int, error) {
	if n < 0 || k < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "Stirling2(%d, %d)", n, k)
	}
	if k >= n {
		if k == n {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	}
	if k <= 1 {
		if k == 1 {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	}
	s := new(big.Int)
	t := big.NewInt(1)
	u := new(big.Int)
	for j := 0; j <= k; j++ {
		u.Exp(big.NewInt(int64(j)), big.NewInt(int64(n)), nil)
		u.Mul(u, t)
		if (k+j)&1 == 1 {
			s.Sub(s, u)
		} else {
			s.Add(s, u)
		}
		// t = t·(k−j)/(j+1), exactly (binomial coefficient recurrence)
		t.Mul(t, u.SetInt64(int64(k-j)))
		t.Quo(t, u.SetInt64(int64(j+1)))
	}
	return s.Quo(s, Ifac(k)), nil
}

// EulerNum returns the Euler number E(m), the mth Taylor coefficient of
// 1/cosh(x) scaled by m!. Odd m give 0 by definition; even m run a
// one-dimensional tabulated recurrence (due to van de Lune; the a(n, j)
// array collapses to a single row because consecutive n touch alternating
// parities only).
func EulerNum(m int) *Int {
	if m&1 == 1 {
		return new(big.Int)
	}
	if e, ok := cached(eulCache, m); ok {
		return e
	}
	a := make([]*Int, 6, m+6)
	for i := range a {
		a[i] = new(big.Int)
	}
	a[2].SetInt64(1)
	suma := big.NewInt(1)
	t := new(big.Int)
	for n := 1; n <= m; n++ {
		for j := n + 1; j >= 0; j -= 2 {
			// a(n, j) = (j−1)·a(n−1, j) + (j+1)·a(n−1, j+2) for odd n+j
			t.Mul(a[j], big.NewInt(int64(j-1)))
			a[j+1].Mul(a[j+2], big.NewInt(int64(j+1)))
			a[j+1].Add(a[j+1], t)
		}
		a = append(a, new(big.Int))
		suma.SetInt64(0)
		for k := n + 1; k >= 0; k -= 2 {
			suma.Add(suma, a[k+1])
		}
	}
	suma.Rsh(suma, uint(m)) // exact: the sum carries the 2^m factor
	if (m/2)&1 == 1 {
		suma.Neg(suma)
	}
	return store(eulCache, m, suma)
}
