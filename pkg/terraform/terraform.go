// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package terraform exposes the Terraform CLI command set on top of the
// in-process native gateway. Each subcommand gets a typed options struct
// whose zero value reproduces the command's conventional defaults, and
// every invocation yields a Result carrying the exit code, both streams
// and the decoded payload where the command speaks JSON.
package terraform

import (
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
	"github.com/crossplane-contrib/libtf/pkg/native"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

// Result is the outcome of a single CLI invocation.
type Result struct {
	// Code is the native exit code of the subcommand.
	Code int64
	// Value is the decoded stdout payload. For JSON commands it holds the
	// unmarshalled document (or slice of documents for log streams), for
	// everything else the raw stdout text.
	Value interface{}
	// Stdout and Stderr are the verbatim stream contents.
	Stdout string
	Stderr string
	// JSON reports whether Value went through a JSON decode.
	JSON bool
}

var (
	codesOK   = []int64{0}
	codesDiff = []int64{0, 2}
)

// Terraform drives the embedded CLI. Instances are cheap and safe for
// concurrent use as long as the working directories do not collide.
type Terraform struct {
	gw  *native.Gateway
	dir string
	log logging.Logger
}

// Option configures a Terraform instance.
type Option func(*Terraform)

// WithLogger configures how the instance logs invocations.
func WithLogger(l logging.Logger) Option {
	return func(t *Terraform) {
		t.log = l
	}
}

// WithDir sets the working directory passed to every invocation via the
// global -chdir argument.
func WithDir(dir string) Option {
	return func(t *Terraform) {
		t.dir = dir
	}
}

// New returns a Terraform facade backed by the supplied gateway.
func New(gw *native.Gateway, opts ...Option) *Terraform {
	t := &Terraform{
		gw:  gw,
		log: logging.NewNopLogger(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Run invokes an arbitrary subcommand with pre-assembled options. It is
// the escape hatch for commands without a dedicated method.
func (t *Terraform) Run(command []string, posArgs []string, opts *args.Options, mode json.Mode, check bool) (Result, error) {
	return t.run(command, posArgs, opts, mode, codesOK, check)
}

func (t *Terraform) run(command []string, posArgs []string, opts *args.Options, mode json.Mode, accepted []int64, check bool) (Result, error) {
	argv := args.Marshal(command, posArgs, opts, t.dir)
	out, err := t.gw.Invoke(argv)
	if err != nil {
		return Result{}, err
	}
	ok := acceptedCode(accepted, out.Code)
	if check && !ok {
		return Result{}, tferrors.NewCommandError(out.Code, argv, string(out.Stdout), string(out.Stderr))
	}
	r := Result{
		Code:   out.Code,
		Stdout: string(out.Stdout),
		Stderr: string(out.Stderr),
	}
	// A rejected exit code usually means stdout does not hold the promised
	// document, so decoding is attempted only on accepted outcomes.
	if mode.IsJSON() && ok {
		v, err := json.Decode(out.Stdout, mode)
		if err != nil {
			return r, tferrors.WrapDecodeFailed(err, out.Stdout)
		}
		r.Value = v
		r.JSON = true
		return r, nil
	}
	r.Value = r.Stdout
	return r, nil
}

func acceptedCode(accepted []int64, code int64) bool {
	for _, c := range accepted {
		if c == code {
			return true
		}
	}
	return false
}

// flagOn renders a flag that is emitted by default and suppressed only by
// an explicit false, matching how -no-color and -auto-approve behave here.
func flagOn(v *bool) args.Value {
	if v == nil || *v {
		return args.Flag()
	}
	return args.Value{}
}

// boolOr renders a boolean option, falling back to def when unset.
func boolOr(v *bool, def bool) args.Value {
	if v == nil {
		return args.Bool(def)
	}
	return args.Bool(*v)
}

// intOpt renders a positive integer option, 0 reads as unset.
func intOpt(i int) args.Value {
	if i == 0 {
		return args.Value{}
	}
	return args.Int(i)
}

// jsonEnabled reports whether a default-on -json toggle is in effect.
func jsonEnabled(v *bool) bool {
	return v == nil || *v
}
