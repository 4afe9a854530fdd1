// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
)

// ApplyOptions configures the apply subcommand. The zero value applies
// non-interactively with approval prompts suppressed and stdout decoded
// as a JSON log stream.
type ApplyOptions struct {
	// PlanFile applies a previously saved plan instead of the current
	// configuration. Passed as the trailing positional argument.
	PlanFile string
	// AutoApprove skips the interactive approval prompt, on unless
	// explicitly disabled.
	AutoApprove *bool
	// Backup writes a state backup to the given path, "-" disables it.
	Backup string
	// CompactWarnings shows warning summaries only.
	CompactWarnings bool
	// Destroy applies a destroy of all remote objects.
	Destroy bool
	// Input controls interactive prompts, off unless explicitly enabled.
	Input *bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// Parallelism limits concurrent operations, 0 keeps the CLI default.
	Parallelism int
	// Refresh toggles checking remote objects before applying.
	Refresh *bool
	// RefreshOnly applies only to match remote object changes.
	RefreshOnly bool
	// Replace forces replacement of the given resource addresses.
	Replace []string
	// State is a legacy local state file path.
	State string
	// StateOut writes the resulting state to the given path.
	StateOut string
	// Targets limits the operation to the given resource addresses.
	Targets []string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// JSON toggles the machine-readable log stream, on unless explicitly
	// disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Apply executes the actions proposed by a plan.
func (t *Terraform) Apply(o *ApplyOptions) (Result, error) {
	if o == nil {
		o = &ApplyOptions{}
	}
	opts := args.NewOptions().
		Set("auto_approve", flagOn(o.AutoApprove)).
		Set("backup", args.StringIf(o.Backup)).
		Set("compact_warnings", args.FlagIf(o.CompactWarnings)).
		Set("destroy", args.FlagIf(o.Destroy)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("parallelism", intOpt(o.Parallelism)).
		Set("refresh", args.BoolPtr(o.Refresh)).
		Set("refresh_only", args.FlagIf(o.RefreshOnly)).
		Set("replace", args.List(o.Replace...)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("target", args.List(o.Targets...)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSONStream
	}
	opts.Merge(o.Extra)
	var pos []string
	if o.PlanFile != "" {
		pos = []string{o.PlanFile}
	}
	return t.run([]string{"apply"}, pos, opts, mode, codesOK, o.Check)
}

// DestroyOptions configures the destroy subcommand. Defaults match
// ApplyOptions.
type DestroyOptions struct {
	// AutoApprove skips the interactive approval prompt, on unless
	// explicitly disabled.
	AutoApprove *bool
	// Backup writes a state backup to the given path, "-" disables it.
	Backup string
	// CompactWarnings shows warning summaries only.
	CompactWarnings bool
	// Input controls interactive prompts, off unless explicitly enabled.
	Input *bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// Parallelism limits concurrent operations, 0 keeps the CLI default.
	Parallelism int
	// Refresh toggles checking remote objects first.
	Refresh *bool
	// State is a legacy local state file path.
	State string
	// StateOut writes the resulting state to the given path.
	StateOut string
	// Targets limits the operation to the given resource addresses.
	Targets []string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// JSON toggles the machine-readable log stream, on unless explicitly
	// disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Destroy destroys all remote objects managed by the configuration.
func (t *Terraform) Destroy(o *DestroyOptions) (Result, error) {
	if o == nil {
		o = &DestroyOptions{}
	}
	opts := args.NewOptions().
		Set("auto_approve", flagOn(o.AutoApprove)).
		Set("backup", args.StringIf(o.Backup)).
		Set("compact_warnings", args.FlagIf(o.CompactWarnings)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("parallelism", intOpt(o.Parallelism)).
		Set("refresh", args.BoolPtr(o.Refresh)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("target", args.List(o.Targets...)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSONStream
	}
	opts.Merge(o.Extra)
	return t.run([]string{"destroy"}, nil, opts, mode, codesOK, o.Check)
}

// RefreshOptions configures the refresh subcommand.
type RefreshOptions struct {
	// CompactWarnings shows warning summaries only.
	CompactWarnings bool
	// Input controls interactive prompts, off unless explicitly enabled.
	Input *bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// Parallelism limits concurrent operations, 0 keeps the CLI default.
	Parallelism int
	// State is a legacy local state file path.
	State string
	// StateOut writes the resulting state to the given path.
	StateOut string
	// Targets limits the operation to the given resource addresses.
	Targets []string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// JSON toggles the machine-readable log stream, on unless explicitly
	// disabled.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Refresh updates the state to match remote objects without proposing
// changes.
func (t *Terraform) Refresh(o *RefreshOptions) (Result, error) {
	if o == nil {
		o = &RefreshOptions{}
	}
	opts := args.NewOptions().
		Set("compact_warnings", args.FlagIf(o.CompactWarnings)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("parallelism", intOpt(o.Parallelism)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("target", args.List(o.Targets...)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSONStream
	}
	opts.Merge(o.Extra)
	return t.run([]string{"refresh"}, nil, opts, mode, codesOK, o.Check)
}
