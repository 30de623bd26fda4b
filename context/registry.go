// Copyright 2024 The apnum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"fmt"
	"strings"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// wrapGuard is the fixed precision extension applied to wrapped functions:
// the algorithm runs with this many extra bits and the result is rounded
// back to the caller's precision.
const wrapGuard = 10

// An Impl is a generic special-function implementation. It receives the
// context explicitly and context-native argument values.
type Impl func(ctx Context, args ...Value) (Value, error)

// A Func is an Impl bound to one context instance.
type Func func(args ...any) (Value, error)

type entry struct {
	name    string
	impl    Impl
	wrapped bool
}

// A Registry is an ordered table of function registrations, built once at
// startup and then bound onto any number of context instances. It has no
// hidden global: callers construct one, fill it, and hand it to each
// context constructor.
type Registry struct {
	entries  []entry
	aliases  map[string]string
	memoized map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		aliases:  make(map[string]string),
		memoized: make(map[string]bool),
	}
}

// Register declares a function under name.
//
// A wrapped function gets the standard adapter at bind time: arguments are
// converted to context values, the working precision is extended by a fixed
// guard amount for the duration of the call, and the result is rounded back
// to the caller's precision. A raw (wrapped == false) function receives its
// arguments as passed and manages precision and rounding itself.
//
// Registering two functions under one name is last-write-wins. That is a
// documented hazard, not a validated error: it lets a later registration
// deliberately override an earlier one.
func (r *Registry) Register(name string, impl Impl, wrapped bool) {
	r.entries = append(r.entries, entry{name: name, impl: impl, wrapped: wrapped})
}

// Alias maps an alternate public name to a canonical implementation name.
// Resolution happens when a context is bound; aliasing a name that is never
// registered simply produces no binding.
func (r *Registry) Alias(public, canonical string) {
	r.aliases[public] = canonical
}

// MarkMemoized arranges for the named function to be wrapped in an
// argument-keyed memoizing cache at bind time. Meant for expensive pure
// functions that are frequently re-queried with identical input.
func (r *Registry) MarkMemoized(name string) {
	r.memoized[name] = true
}

// BindAll binds every registered entry onto ctx, producing the context's
// callable set. It is invoked once per context instantiation; extending the
// function set never requires changing the context type itself.
func (r *Registry) BindAll(ctx Context) *FuncSet {
	fs := &FuncSet{
		ctx:   ctx,
		funcs: make(map[string]Func, len(r.entries)+len(r.aliases)),
	}
	for _, e := range r.entries { // later entries overwrite earlier ones
		fs.funcs[e.name] = bind(ctx, e)
	}
	for name := range r.memoized {
		if f, ok := fs.funcs[name]; ok {
			fs.funcs[name] = Memoize(f)
		}
	}
	for public, canonical := range r.aliases {
		if f, ok := fs.funcs[canonical]; ok {
			fs.funcs[public] = f
		}
	}
	return fs
}

func bind(ctx Context, e entry) Func {
	if !e.wrapped {
		return func(args ...any) (Value, error) {
			vals := make([]Value, len(args))
			for i, a := range args {
				vals[i] = a
			}
			return e.impl(ctx, vals...)
		}
	}
	return func(args ...any) (v Value, err error) {
		vals := make([]Value, len(args))
		for i, a := range args {
			vals[i] = ctx.Convert(a)
		}
		restore := PrecScope(ctx, wrapGuard)
		defer func() {
			restore()
			if err == nil {
				v = ctx.Round(v)
			}
		}()
		v, err = e.impl(ctx, vals...)
		return v, err
	}
}

// A FuncSet is the result of binding a registry onto one context.
type FuncSet struct {
	ctx   Context
	funcs map[string]Func
}

// Get returns the bound function registered (or aliased) under name.
func (fs *FuncSet) Get(name string) (Func, bool) {
	f, ok := fs.funcs[name]
	return f, ok
}

// Call invokes the bound function registered under name.
func (fs *FuncSet) Call(name string, args ...any) (Value, error) {
	f, ok := fs.funcs[name]
	if !ok {
		return nil, errors.Errorf("context: no function %q bound", name)
	}
	return f(args...)
}

// Names returns the bound names, including aliases, in no particular order.
func (fs *FuncSet) Names() []string {
	names := make([]string, 0, len(fs.funcs))
	for n := range fs.funcs {
		names = append(names, n)
	}
	return names
}

// Memoize wraps fn in an unbounded argument-keyed cache. Arguments must
// have a stable string form (fmt.Stringer or plain values); errors are not
// cached, so a failed call is re-attempted next time.
func Memoize(fn Func) Func {
	memo := cache.New(cache.NoExpiration, 0)
	return func(args ...any) (Value, error) {
		key := memoKey(args)
		if v, ok := memo.Get(key); ok {
			return v, nil
		}
		v, err := fn(args...)
		if err != nil {
			return nil, err
		}
		memo.Set(key, v, cache.NoExpiration)
		return v, nil
	}
}

func memoKey(args []any) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteByte('|')
		}
		switch v := a.(type) {
		case fmt.Stringer:
			sb.WriteString(v.String())
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	return sb.String()
}
