// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	tfjson "github.com/hashicorp/terraform-json"

	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

// ShowOptions configures the show subcommand.
type ShowOptions struct {
	// Path is an optional saved plan or state file to inspect instead of
	// the latest state.
	Path string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// JSON renders machine-readable output, on unless explicitly disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

func (o *ShowOptions) options() (*args.Options, json.Mode) {
	opts := args.NewOptions().
		Set("no_color", flagOn(o.NoColor))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSON
	}
	opts.Merge(o.Extra)
	return opts, mode
}

func (o *ShowOptions) posArgs() []string {
	if o.Path == "" {
		return nil
	}
	return []string{o.Path}
}

// Show renders the latest state, or the plan or state file given in
// options, as a single JSON document.
func (t *Terraform) Show(o *ShowOptions) (Result, error) {
	if o == nil {
		o = &ShowOptions{}
	}
	opts, mode := o.options()
	return t.run([]string{"show"}, o.posArgs(), opts, mode, codesOK, o.Check)
}

// ShowState inspects the latest state and returns it fully typed. The
// invocation is always checked and always machine-readable.
func (t *Terraform) ShowState(o *ShowOptions) (*tfjson.State, error) {
	if o == nil {
		o = &ShowOptions{}
	}
	o.JSON = nil
	opts, _ := o.options()
	res, err := t.run([]string{"show"}, o.posArgs(), opts, json.ModeRaw, codesOK, true)
	if err != nil {
		return nil, err
	}
	s := &tfjson.State{}
	if err := json.JSParser.Unmarshal([]byte(res.Stdout), s); err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return s, nil
}

// ShowPlan inspects the saved plan file at path and returns it fully
// typed. The invocation is always checked and always machine-readable.
func (t *Terraform) ShowPlan(path string, o *ShowOptions) (*tfjson.Plan, error) {
	if o == nil {
		o = &ShowOptions{}
	}
	o.Path = path
	o.JSON = nil
	opts, _ := o.options()
	res, err := t.run([]string{"show"}, o.posArgs(), opts, json.ModeRaw, codesOK, true)
	if err != nil {
		return nil, err
	}
	p := &tfjson.Plan{}
	if err := json.JSParser.Unmarshal([]byte(res.Stdout), p); err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return p, nil
}

// OutputOptions configures the output subcommand.
type OutputOptions struct {
	// Name restricts the result to a single root module output value.
	Name string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// State is a legacy local state file path.
	State string
	// JSON renders machine-readable output, on unless explicitly disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Output reads root module output values from the latest state.
func (t *Terraform) Output(o *OutputOptions) (Result, error) {
	if o == nil {
		o = &OutputOptions{}
	}
	opts := args.NewOptions().
		Set("no_color", flagOn(o.NoColor)).
		Set("state", args.StringIf(o.State))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSON
	}
	opts.Merge(o.Extra)
	var pos []string
	if o.Name != "" {
		pos = []string{o.Name}
	}
	return t.run([]string{"output"}, pos, opts, mode, codesOK, o.Check)
}
