// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package args converts command names, positional arguments and typed option
// sets into the flat argument vector consumed by the native RunCli entry
// point. Option names use snake_case and are translated to Terraform's
// hyphenated flag convention at emission time.
package args

import (
	"strings"
)

// Options is an ordered set of named option values. Emission order is
// insertion order; setting an existing name replaces its value in place,
// keeping the original position.
type Options struct {
	names []string
	vals  map[string]Value
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{vals: map[string]Value{}}
}

// Set stores v under name. Names use snake_case, e.g. "lock_timeout".
func (o *Options) Set(name string, v Value) *Options {
	if o.vals == nil {
		o.vals = map[string]Value{}
	}
	if _, ok := o.vals[name]; !ok {
		o.names = append(o.names, name)
	}
	o.vals[name] = v
	return o
}

// Get returns the value stored under name. Unset names read as absent.
func (o *Options) Get(name string) Value {
	if o == nil || o.vals == nil {
		return Value{}
	}
	return o.vals[name]
}

// Len returns the number of named entries, absent values included.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Merge copies every entry of other into o, in other's insertion order.
func (o *Options) Merge(other *Options) *Options {
	if other == nil {
		return o
	}
	for _, n := range other.names {
		o.Set(n, other.vals[n])
	}
	return o
}

// tokens renders every non-absent option in insertion order.
func (o *Options) tokens() []string {
	if o == nil {
		return nil
	}
	var ts []string
	for _, n := range o.names {
		flag := strings.ReplaceAll(n, "_", "-")
		ts = append(ts, o.vals[n].tokens(flag)...)
	}
	return ts
}

// Marshal builds the argument vector for one invocation: an optional
// -chdir override first, then the command tokens (one token, or a fixed
// subcommand path such as ["state", "list"]), then option tokens in
// insertion order, then positional arguments. The result is never mutated
// by the callee side; callers hand it to the gateway by value.
func Marshal(command []string, posArgs []string, opts *Options, chdir string) []string {
	argv := make([]string, 0, len(command)+len(posArgs)+opts.Len()+1)
	if chdir != "" {
		argv = append(argv, "-chdir="+chdir)
	}
	argv = append(argv, command...)
	argv = append(argv, opts.tokens()...)
	argv = append(argv, posArgs...)
	return argv
}
