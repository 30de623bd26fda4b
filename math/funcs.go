// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math implements special functions generically, against the
// capability protocol of the context package. Every function is written
// once and bound to any conforming context through the registry returned
// by Registry.
//
// The common pattern: special-case zeros, infinities, NaNs and domain
// errors up front; take the cheap default path otherwise; and escalate the
// working precision only when a magnitude analysis proves cancellation
// would otherwise eat significant bits. All precision changes follow the
// save/restore discipline of context.PrecScope.
package math

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/apnum/apnum"
	"github.com/apnum/apnum/context"
)

// guard is the precision extension used by functions that manage their own
// rounding, mirroring the adapter applied to wrapped registrations.
const guard = 10

// Registry returns the default function registry: every algorithm in this
// package registered exactly once under its canonical name, with its
// raw/wrapped tag, alias table and memoization marks. Callers pass it to
// their context constructors and bind with BindAll.
func Registry() *context.Registry {
	return defaultRegistry
}

var defaultRegistry = newRegistry()

func newRegistry() *context.Registry {
	r := context.NewRegistry()
	for _, e := range []struct {
		name    string
		impl    context.Impl
		wrapped bool
	}{
		// Wrapped: coercion, guard bits and final rounding are applied by
		// the binding adapter.
		{"log1p", log1pImpl, true},
		{"expm1", expm1Impl, true},
		{"powm1", powm1Impl, true},
		{"sinc", sincImpl, true},
		{"sincpi", sincpiImpl, true},
		{"cot", cotImpl, true},
		{"sec", secImpl, true},
		{"csc", cscImpl, true},
		{"polyexp", polyexpImpl, true},

		// Raw: the implementation owns conversion, precision and rounding.
		{"sign", signImpl, false},
		{"arg", argImpl, false},
		{"re", reImpl, false},
		{"im", imImpl, false},
		{"conj", conjImpl, false},
		{"fabs", fabsImpl, false},
		{"log", logImpl, false},
		{"log2", log2Impl, false},
		{"log10", log10Impl, false},
		{"exp2", exp2Impl, false},
		{"lambertw", lambertwImpl, false},
		{"cyclotomic", cyclotomicImpl, false},
		{"bell", bellImpl, false},
		{"mangoldt", mangoldtImpl, false},
		{"rootof1", rootof1Impl, false},
		{"unitroots", unitrootsImpl, false},
		{"fib", fibImpl, false},
		{"fac", facImpl, false},
		{"stirling1", stirling1Impl, false},
		{"stirling2", stirling2Impl, false},
	} {
		r.Register(e.name, e.impl, e.wrapped)
	}

	r.Alias("phase", "arg")
	r.Alias("conjugate", "conj")
	r.Alias("fibonacci", "fib")
	r.Alias("factorial", "fac")

	// Expensive, pure, and typically re-queried with identical arguments.
	r.MarkMemoized("mangoldt")

	return r
}

// arity validates the argument count of a registered call.
func arity(name string, args []context.Value, n int) error {
	if len(args) != n {
		return errors.Wrapf(apnum.ErrInvalidArgument,
			"%s: got %d arguments, want %d", name, len(args), n)
	}
	return nil
}

// intArg extracts a native integer argument from a raw registration call.
func intArg(name string, v context.Value) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, errors.Wrapf(apnum.ErrInvalidArgument,
			"%s: integer argument required, got %T", name, v)
	}
}

// bigArg extracts an integer argument of unbounded size.
func bigArg(name string, v context.Value) (*apnum.Int, error) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case *apnum.Int:
		return n, nil
	case string:
		z, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, errors.Wrapf(apnum.ErrInvalidArgument,
				"%s: malformed integer %q", name, n)
		}
		return z, nil
	default:
		return nil, errors.Wrapf(apnum.ErrInvalidArgument,
			"%s: integer argument required, got %T", name, v)
	}
}
