// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import (
	"log/slog"
	"math/big"
	"os"

	"github.com/pkg/errors"
)

// Int is the arbitrary-precision integer type used throughout the kernel.
// It is math/big.Int in every build; accelerated backends operate on their
// own representation internally and convert at the boundary.
type Int = big.Int

// Canonical small constants. They are shared and must not be mutated.
var (
	Zero  = big.NewInt(0)
	One   = big.NewInt(1)
	Two   = big.NewInt(2)
	Three = big.NewInt(3)
	Five  = big.NewInt(5)
)

// statsEnabled gates the operand bit-length histogram. Read once at init;
// when unset, MakeInt does no tallying at all.
var statsEnabled = os.Getenv("APNUM_STATS") != ""

// Histogram breakpoints for operand bit lengths. The buckets are fixed so
// that profiles taken from different runs line up.
var (
	statBounds = [...]int{10, 24, 53, 113, 237, 1000, 3000}
	statNames  = [...]string{"<=10", "<=24", "<=53", "<=113", "<=237", "<=1000", "<=3000", "other"}
	statCounts [len(statBounds) + 1]uint64
)

func tally(bits int) {
	for i, b := range statBounds {
		if bits <= b {
			statCounts[i]++
			return
		}
	}
	statCounts[len(statBounds)]++
}

// MakeInt converts an integer-like value to a new *Int. All Int creation in
// this module funnels through MakeInt so that swapping the backend needs no
// other code change. Accepted kinds: int, int64, uint, uint64, *Int (copied)
// and decimal strings. Any other input is a caller bug and panics.
func MakeInt(v any) *Int {
	var z *Int
	switch x := v.(type) {
	case int:
		z = big.NewInt(int64(x))
	case int64:
		z = big.NewInt(x)
	case uint:
		z = new(big.Int).SetUint64(uint64(x))
	case uint64:
		z = new(big.Int).SetUint64(x)
	case *Int:
		z = new(big.Int).Set(x)
	case string:
		var ok bool
		if z, ok = new(big.Int).SetString(x, 10); !ok {
			panic(errors.Wrapf(ErrInvalidArgument, "MakeInt: malformed integer literal %q", x))
		}
	default:
		panic(errors.Wrapf(ErrInvalidArgument, "MakeInt: cannot convert %T", v))
	}
	if statsEnabled {
		tally(z.BitLen())
	}
	return z
}

// StatsSnapshot returns the current operand bit-length histogram. All counts
// are zero unless APNUM_STATS was set when the process started.
func StatsSnapshot() map[string]uint64 {
	m := make(map[string]uint64, len(statNames))
	for i, name := range statNames {
		m[name] = statCounts[i]
	}
	return m
}

// LogStats emits the histogram through slog for offline profiling.
func LogStats() {
	attrs := make([]any, 0, 2*len(statNames)+2)
	attrs = append(attrs, "backend", BackendName())
	for i, name := range statNames {
		attrs = append(attrs, name, statCounts[i])
	}
	slog.Info("apnum operand size histogram", attrs...)
}
