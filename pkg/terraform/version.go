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

// VersionOptions configures the version subcommand.
type VersionOptions struct {
	// JSON renders machine-readable output, on unless explicitly disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Version reports the version of the linked library and of every
// initialized provider.
func (t *Terraform) Version(o *VersionOptions) (Result, error) {
	if o == nil {
		o = &VersionOptions{}
	}
	opts := args.NewOptions()
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSON
	}
	opts.Merge(o.Extra)
	return t.run([]string{"version"}, nil, opts, mode, codesOK, o.Check)
}

// VersionInfo returns the typed version report. The invocation is always
// checked and always machine-readable.
func (t *Terraform) VersionInfo() (*tfjson.VersionOutput, error) {
	opts := args.NewOptions().Set("json", args.Flag())
	res, err := t.run([]string{"version"}, nil, opts, json.ModeRaw, codesOK, true)
	if err != nil {
		return nil, err
	}
	v := &tfjson.VersionOutput{}
	if err := json.JSParser.Unmarshal([]byte(res.Stdout), v); err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return v, nil
}
