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

// ProvidersOptions configures the providers subcommand.
type ProvidersOptions struct {
	// TestDirectory sets the directory holding test files.
	TestDirectory string

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Providers prints the provider requirement tree of the configuration.
func (t *Terraform) Providers(o *ProvidersOptions) (Result, error) {
	if o == nil {
		o = &ProvidersOptions{}
	}
	opts := args.NewOptions().
		Set("test_directory", args.StringIf(o.TestDirectory)).
		Merge(o.Extra)
	return t.run([]string{"providers"}, nil, opts, json.ModeRaw, codesOK, o.Check)
}

// ProvidersLockOptions configures the providers lock subcommand.
type ProvidersLockOptions struct {
	// Providers restricts locking to the given provider source addresses.
	Providers []string
	// FSMirror consults the given filesystem mirror directory instead of
	// the origin registry.
	FSMirror string
	// NetMirror consults the given network mirror base URL instead of the
	// origin registry.
	NetMirror string
	// Platforms lists the target platforms to record checksums for.
	Platforms []string
	// EnablePluginCache allows the global plugin cache to seed downloads.
	EnablePluginCache bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// ProvidersLock writes dependency lockfile entries for the configured
// providers.
func (t *Terraform) ProvidersLock(o *ProvidersLockOptions) (Result, error) {
	if o == nil {
		o = &ProvidersLockOptions{}
	}
	opts := args.NewOptions().
		Set("fs_mirror", args.StringIf(o.FSMirror)).
		Set("net_mirror", args.StringIf(o.NetMirror)).
		Set("platform", args.List(o.Platforms...)).
		Set("enable_plugin_cache", args.FlagIf(o.EnablePluginCache)).
		Merge(o.Extra)
	return t.run([]string{"providers", "lock"}, o.Providers, opts, json.ModeRaw, codesOK, o.Check)
}

// ProvidersMirrorOptions configures the providers mirror subcommand.
type ProvidersMirrorOptions struct {
	// Platforms lists the target platforms to mirror packages for.
	Platforms []string
	// LockFile toggles updating the dependency lockfile.
	LockFile *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// ProvidersMirror downloads the configured providers into targetDir in
// the filesystem mirror layout.
func (t *Terraform) ProvidersMirror(targetDir string, o *ProvidersMirrorOptions) (Result, error) {
	if o == nil {
		o = &ProvidersMirrorOptions{}
	}
	opts := args.NewOptions().
		Set("platform", args.List(o.Platforms...)).
		Set("lock_file", args.BoolPtr(o.LockFile)).
		Merge(o.Extra)
	return t.run([]string{"providers", "mirror"}, []string{targetDir}, opts, json.ModeRaw, codesOK, o.Check)
}

// ProvidersSchemaOptions configures the providers schema subcommand.
type ProvidersSchemaOptions struct {
	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// ProvidersSchema prints the schemas of the providers used by the
// configuration as a single JSON document. The -json flag is mandatory
// for this subcommand, so it is always emitted.
func (t *Terraform) ProvidersSchema(o *ProvidersSchemaOptions) (Result, error) {
	if o == nil {
		o = &ProvidersSchemaOptions{}
	}
	opts := args.NewOptions().
		Set("json", args.Flag()).
		Merge(o.Extra)
	return t.run([]string{"providers", "schema"}, nil, opts, json.ModeJSON, codesOK, o.Check)
}

// ProviderSchemas returns the typed provider schema document. The
// invocation is always checked.
func (t *Terraform) ProviderSchemas() (*tfjson.ProviderSchemas, error) {
	opts := args.NewOptions().Set("json", args.Flag())
	res, err := t.run([]string{"providers", "schema"}, nil, opts, json.ModeRaw, codesOK, true)
	if err != nil {
		return nil, err
	}
	s := &tfjson.ProviderSchemas{}
	if err := json.JSParser.Unmarshal([]byte(res.Stdout), s); err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return s, nil
}
