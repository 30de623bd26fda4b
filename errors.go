// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apnum

import "github.com/pkg/errors"

// Error classes. Callers match them with errors.Is; the concrete errors
// returned by this module wrap one of these with call-site detail.
var (
	// ErrInvalidArgument reports an out-of-domain input, such as a negative
	// n or k passed to a combinatorial routine. Never retried.
	ErrInvalidArgument = errors.New("apnum: invalid argument")

	// ErrUnsupported reports an input whose magnitude exceeds a documented
	// feasibility bound. The operation is refused rather than guessed at.
	ErrUnsupported = errors.New("apnum: unsupported")
)
