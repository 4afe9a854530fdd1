// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
)

// FmtOptions configures the fmt subcommand.
type FmtOptions struct {
	// Target is an optional directory or file to format, "-" reads stdin.
	Target string
	// List toggles printing the names of changed files.
	List *bool
	// Write toggles rewriting files in place.
	Write *bool
	// Diff prints the formatting differences.
	Diff *bool
	// CheckFormat exits with a non-zero code when input is not formatted.
	CheckFormat bool
	// Recursive also processes subdirectories.
	Recursive bool
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Fmt rewrites configuration files to the canonical format.
func (t *Terraform) Fmt(o *FmtOptions) (Result, error) {
	if o == nil {
		o = &FmtOptions{}
	}
	opts := args.NewOptions().
		Set("list", args.BoolPtr(o.List)).
		Set("write", args.BoolPtr(o.Write)).
		Set("diff", args.BoolPtr(o.Diff)).
		Set("check", args.FlagIf(o.CheckFormat)).
		Set("recursive", args.FlagIf(o.Recursive)).
		Set("no_color", flagOn(o.NoColor)).
		Merge(o.Extra)
	var pos []string
	if o.Target != "" {
		pos = []string{o.Target}
	}
	return t.run([]string{"fmt"}, pos, opts, json.ModeRaw, codesOK, o.Check)
}

// ForceUnlockOptions configures the force-unlock subcommand. The -force
// switch is always passed since there is no interactive prompt to answer.
type ForceUnlockOptions struct {
	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// ForceUnlock releases the state lock with the given ID.
func (t *Terraform) ForceUnlock(lockID string, o *ForceUnlockOptions) (Result, error) {
	if o == nil {
		o = &ForceUnlockOptions{}
	}
	opts := args.NewOptions().
		Set("force", args.Flag()).
		Merge(o.Extra)
	return t.run([]string{"force-unlock"}, []string{lockID}, opts, json.ModeRaw, codesOK, o.Check)
}

// GraphOptions configures the graph subcommand.
type GraphOptions struct {
	// Plan renders the graph of the saved plan file at the given path.
	Plan string
	// DrawCycles highlights cycles with colored edges.
	DrawCycles bool
	// Type overrides the graph type, e.g. "plan-destroy".
	Type string
	// ModuleDepth limits module expansion, 0 keeps the CLI default.
	ModuleDepth int

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Graph prints the dependency graph in DOT format.
func (t *Terraform) Graph(o *GraphOptions) (Result, error) {
	if o == nil {
		o = &GraphOptions{}
	}
	opts := args.NewOptions().
		Set("plan", args.StringIf(o.Plan)).
		Set("draw_cycles", args.FlagIf(o.DrawCycles)).
		Set("type", args.StringIf(o.Type)).
		Set("module_depth", intOpt(o.ModuleDepth)).
		Merge(o.Extra)
	return t.run([]string{"graph"}, nil, opts, json.ModeRaw, codesOK, o.Check)
}

// ImportOptions configures the import subcommand.
type ImportOptions struct {
	// Config sets the directory holding the importing configuration.
	Config string
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
	// Provider overrides the provider configuration used for the import.
	Provider string
	// AllowMissingConfig permits importing without a resource block.
	AllowMissingConfig bool
	// State is a legacy local state file path.
	State string
	// StateOut writes the resulting state to the given path.
	StateOut string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// IgnoreRemoteVersion allows state operations against a differing
	// remote backend version.
	IgnoreRemoteVersion bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Import brings the existing remote object id under the resource address
// into the state.
func (t *Terraform) Import(address, id string, o *ImportOptions) (Result, error) {
	if o == nil {
		o = &ImportOptions{}
	}
	opts := args.NewOptions().
		Set("config", args.StringIf(o.Config)).
		Set("input", boolOr(o.Input, false)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("no_color", flagOn(o.NoColor)).
		Set("parallelism", intOpt(o.Parallelism)).
		Set("provider", args.StringIf(o.Provider)).
		Set("allow_missing_config", args.FlagIf(o.AllowMissingConfig)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
	return t.run([]string{"import"}, []string{address, id}, opts, json.ModeRaw, codesOK, o.Check)
}

// TaintOptions configures the taint subcommand.
type TaintOptions struct {
	// AllowMissing succeeds even when the address is not tracked.
	AllowMissing bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// State is a legacy local state file path.
	State string
	// StateOut writes the resulting state to the given path.
	StateOut string
	// IgnoreRemoteVersion allows state operations against a differing
	// remote backend version.
	IgnoreRemoteVersion bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

func (o *TaintOptions) options() *args.Options {
	return args.NewOptions().
		Set("allow_missing", args.FlagIf(o.AllowMissing)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
}

// Taint marks the resource at address as degraded, forcing its
// replacement on the next apply.
func (t *Terraform) Taint(address string, o *TaintOptions) (Result, error) {
	if o == nil {
		o = &TaintOptions{}
	}
	return t.run([]string{"taint"}, []string{address}, o.options(), json.ModeRaw, codesOK, o.Check)
}

// Untaint removes the degraded mark from the resource at address.
func (t *Terraform) Untaint(address string, o *TaintOptions) (Result, error) {
	if o == nil {
		o = &TaintOptions{}
	}
	return t.run([]string{"untaint"}, []string{address}, o.options(), json.ModeRaw, codesOK, o.Check)
}

// TestOptions configures the test subcommand. Unlike plan or apply, the
// machine-readable stream is opt-in here and human output is the default.
type TestOptions struct {
	// CloudRun sources the test from the given private registry module.
	CloudRun string
	// Filters limits the run to the given test files.
	Filters []string
	// TestDirectory sets the directory holding test files.
	TestDirectory string
	// Vars sets input variables, one -var=key=value per entry.
	Vars []args.KV
	// VarFiles loads variable definitions from the given files.
	VarFiles []string
	// Verbose prints the plan or state of every run block.
	Verbose bool
	// NoColor strips color codes, on unless explicitly disabled.
	NoColor *bool
	// JSON switches stdout to a JSON log stream.
	JSON bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// Test runs the automated tests of the configuration.
func (t *Terraform) Test(o *TestOptions) (Result, error) {
	if o == nil {
		o = &TestOptions{}
	}
	opts := args.NewOptions().
		Set("cloud_run", args.StringIf(o.CloudRun)).
		Set("filter", args.List(o.Filters...)).
		Set("test_directory", args.StringIf(o.TestDirectory)).
		Set("var", args.Pairs(o.Vars...)).
		Set("var_file", args.List(o.VarFiles...)).
		Set("verbose", args.FlagIf(o.Verbose)).
		Set("no_color", flagOn(o.NoColor))
	mode := json.ModeRaw
	if o.JSON {
		opts.Set("json", args.Flag())
		mode = json.ModeJSONStream
	}
	opts.Merge(o.Extra)
	return t.run([]string{"test"}, nil, opts, mode, codesOK, o.Check)
}
