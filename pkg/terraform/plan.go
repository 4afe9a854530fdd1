// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
)

// PlanOptions configures the plan subcommand. The zero value plans
// non-interactively in machine-readable mode, where stdout becomes a
// stream of JSON log lines decoded into one value per line.
type PlanOptions struct {
	// Destroy plans the destruction of all remote objects.
	Destroy bool
	// CompactWarnings shows warning summaries only.
	CompactWarnings bool
	// DetailedExitcode makes a non-empty diff exit with code 2. Both 0 and
	// 2 are treated as accepted outcomes, so checked runs do not fail on a
	// pending diff.
	DetailedExitcode bool
	// GenerateConfigOut writes generated configuration for imported
	// resources to the given path.
	GenerateConfigOut string
	// Input controls interactive prompts, off unless explicitly enabled.
	Input *bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// Out saves the generated plan to the given file.
	Out string
	// Parallelism limits concurrent operations, 0 keeps the CLI default.
	Parallelism int
	// Refresh toggles checking remote objects before planning.
	Refresh *bool
	// RefreshOnly plans only to match remote object changes.
	RefreshOnly bool
	// Replace forces replacement of the given resource addresses.
	Replace []string
	// State is a legacy local state file path.
	State string
	// Targets limits planning to the given resource addresses.
	Targets []string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// JSON toggles the machine-readable log stream, on unless explicitly
	// disabled; disabled runs return raw human output.
	JSON *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Plan creates an execution plan for the configured working directory.
func (t *Terraform) Plan(o *PlanOptions) (Result, error) {
	if o == nil {
		o = &PlanOptions{}
	}
	opts := args.NewOptions().
		Set("destroy", args.FlagIf(o.Destroy)).
		Set("compact_warnings", args.FlagIf(o.CompactWarnings)).
		Set("detailed_exitcode", args.FlagIf(o.DetailedExitcode)).
		Set("generate_config_out", args.StringIf(o.GenerateConfigOut)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("out", args.StringIf(o.Out)).
		Set("parallelism", intOpt(o.Parallelism)).
		Set("refresh", args.BoolPtr(o.Refresh)).
		Set("refresh_only", args.FlagIf(o.RefreshOnly)).
		Set("replace", args.List(o.Replace...)).
		Set("state", args.StringIf(o.State)).
		Set("target", args.List(o.Targets...)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...))
	mode := json.ModeRaw
	if jsonEnabled(o.JSON) {
		opts.Set("json", args.Flag())
		mode = json.ModeJSONStream
	}
	opts.Merge(o.Extra)
	return t.run([]string{"plan"}, nil, opts, mode, codesDiff, o.Check)
}
