// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
)

// InitOptions configures the init subcommand. The zero value initializes
// non-interactively with color disabled.
type InitOptions struct {
	// Backend toggles backend or cloud configuration during init.
	Backend *bool
	// BackendConfig is a file path or key=value assignment overriding the
	// configured backend arguments.
	BackendConfig string
	// ForceCopy suppresses prompts about copying state data.
	ForceCopy bool
	// FromModule copies the given source module into the target directory
	// before initialization.
	FromModule string
	// Get toggles child module download.
	Get *bool
	// Input controls interactive prompts, off unless explicitly enabled.
	Input *bool
	// Lock toggles state locking during state migration.
	Lock *bool
	// LockTimeout bounds the wait for a state lock, e.g. "10s".
	LockTimeout string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// PluginDirs restricts provider plugin lookup to the given directories.
	PluginDirs []string
	// Reconfigure reconfigures the backend, ignoring saved configuration.
	Reconfigure bool
	// MigrateState attempts to migrate existing state to a changed backend.
	MigrateState bool
	// Upgrade toggles upgrading modules and plugins during install.
	Upgrade *bool
	// Lockfile sets the dependency lockfile mode, e.g. "readonly".
	Lockfile string
	// IgnoreRemoteVersion allows state operations against a differing
	// remote backend version.
	IgnoreRemoteVersion bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Init initializes the working directory holding configuration files.
func (t *Terraform) Init(o *InitOptions) (Result, error) {
	if o == nil {
		o = &InitOptions{}
	}
	opts := args.NewOptions().
		Set("backend", args.BoolPtr(o.Backend)).
		Set("backend_config", args.StringIf(o.BackendConfig)).
		Set("force_copy", args.FlagIf(o.ForceCopy)).
		Set("from_module", args.StringIf(o.FromModule)).
		Set("get", args.BoolPtr(o.Get)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("plugin_dir", args.List(o.PluginDirs...)).
		Set("reconfigure", args.FlagIf(o.Reconfigure)).
		Set("migrate_state", args.FlagIf(o.MigrateState)).
		Set("upgrade", args.BoolPtr(o.Upgrade)).
		Set("lockfile", args.StringIf(o.Lockfile)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
	return t.run([]string{"init"}, nil, opts, json.ModeRaw, codesOK, o.Check)
}
