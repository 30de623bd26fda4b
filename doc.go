// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package apnum provides the big-integer substrate for arbitrary-precision
special functions: a backend selector for the underlying big-integer
implementation, and a library of exact number-theoretic primitives built on
top of it.

All big integers are created through MakeInt, the single constructor funnel.
The exchange type Int is math/big.Int in every build; when the package is
compiled with the "gmp" build tag and libgmp is installed, selected
multiplication-heavy kernels (Fibonacci numbers, factorials) run on GMP
integers internally and convert back to Int at the boundary. The accelerated
paths can be disabled at process start by setting the APNUM_NOGMP environment
variable; the toggle is read exactly once, at init.

Arithmetic in this package is always exact. Rounding and working-precision
management belong to the layers above (see the context and math
subpackages); nothing here depends on a precision state.

The primitives are pure functions over Int and native integers. The only
hidden state is a small set of documented memoization caches (Fibonacci,
factorials, Euler numbers), which fill monotonically and are not safe for
concurrent use without external synchronization.

Functions whose arguments have a restricted domain either return an error
wrapping ErrInvalidArgument (combinatorial routines) or panic when given a
value that indicates a bug in the caller rather than bad data (negative
operand to SqrtRem), following the convention of math/big.
*/
package apnum
