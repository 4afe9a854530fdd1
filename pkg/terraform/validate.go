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

// ValidateOptions configures the validate subcommand.
type ValidateOptions struct {
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// TestDirectory sets the directory holding test files.
	TestDirectory string
	// JSON renders machine-readable output, on unless explicitly disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

func (o *ValidateOptions) options() (*args.Options, json.Mode) {
	opts := args.NewOptions().
		Set("no_color", flagOn(o.NoColor)).
		Set("test_directory", args.StringIf(o.TestDirectory))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSON
	}
	opts.Merge(o.Extra)
	return opts, mode
}

// Validate checks whether the configuration in the working directory is
// internally consistent. It does not reach any remote system.
func (t *Terraform) Validate(o *ValidateOptions) (Result, error) {
	if o == nil {
		o = &ValidateOptions{}
	}
	opts, mode := o.options()
	return t.run([]string{"validate"}, nil, opts, mode, codesOK, o.Check)
}

// ValidateConfig returns the typed validation report. Diagnostics are
// carried in the report rather than surfaced as an error, so the
// invocation passes even when the configuration is invalid.
func (t *Terraform) ValidateConfig(o *ValidateOptions) (*tfjson.ValidateOutput, error) {
	if o == nil {
		o = &ValidateOptions{}
	}
	o.JSON = nil
	opts, _ := o.options()
	// validate exits 1 on an invalid configuration while still writing the
	// full JSON report, so the exit code is not checked here.
	res, err := t.run([]string{"validate"}, nil, opts, json.ModeRaw, codesOK, false)
	if err != nil {
		return nil, err
	}
	v := &tfjson.ValidateOutput{}
	if err := json.JSParser.Unmarshal([]byte(res.Stdout), v); err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return v, nil
}
