// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

// StateListOptions configures the state list subcommand.
type StateListOptions struct {
	// Addresses restricts the listing to the given resource addresses.
	Addresses []string
	// IDs restricts the listing to resources with the given IDs.
	IDs []string
	// State is a legacy local state file path.
	State string

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StateList lists resources tracked in the state, one address per line.
func (t *Terraform) StateList(o *StateListOptions) (Result, error) {
	if o == nil {
		o = &StateListOptions{}
	}
	opts := args.NewOptions().
		Set("state", args.StringIf(o.State)).
		Set("id", args.List(o.IDs...)).
		Merge(o.Extra)
	return t.run([]string{"state", "list"}, o.Addresses, opts, json.ModeRaw, codesOK, o.Check)
}

// StateMvOptions configures the state mv subcommand.
type StateMvOptions struct {
	// DryRun reports what would be moved without persisting anything.
	DryRun bool
	// Backup writes a backup of the source state to the given path.
	Backup string
	// BackupOut writes a backup of the destination state to the given path.
	BackupOut string
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

// StateMv moves the item at the source address to the destination
// address, retaining its remote object.
func (t *Terraform) StateMv(src, dst string, o *StateMvOptions) (Result, error) {
	if o == nil {
		o = &StateMvOptions{}
	}
	opts := args.NewOptions().
		Set("dry_run", args.FlagIf(o.DryRun)).
		Set("backup", args.StringIf(o.Backup)).
		Set("backup_out", args.StringIf(o.BackupOut)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("state", args.StringIf(o.State)).
		Set("state_out", args.StringIf(o.StateOut)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
	return t.run([]string{"state", "mv"}, []string{src, dst}, opts, json.ModeRaw, codesOK, o.Check)
}

// StatePullOptions configures the state pull subcommand.
type StatePullOptions struct {
	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StatePull downloads the state from its backend and returns it as a
// single JSON document.
func (t *Terraform) StatePull(o *StatePullOptions) (Result, error) {
	if o == nil {
		o = &StatePullOptions{}
	}
	opts := args.NewOptions().Merge(o.Extra)
	return t.run([]string{"state", "pull"}, nil, opts, json.ModeJSON, codesOK, o.Check)
}

// PullState downloads the state and returns it in its typed version 4
// wire form. The invocation is always checked.
func (t *Terraform) PullState() (*json.StateV4, error) {
	res, err := t.run([]string{"state", "pull"}, nil, args.NewOptions(), json.ModeRaw, codesOK, true)
	if err != nil {
		return nil, err
	}
	s, err := json.ParseStateV4([]byte(res.Stdout))
	if err != nil {
		return nil, tferrors.WrapDecodeFailed(err, []byte(res.Stdout))
	}
	return s, nil
}

// StatePushOptions configures the state push subcommand.
type StatePushOptions struct {
	// Force overwrites the remote state despite lineage or serial
	// mismatches.
	Force bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StatePush uploads the local state file at path to the backend. Pass
// "-" to read the state from stdin.
func (t *Terraform) StatePush(path string, o *StatePushOptions) (Result, error) {
	if o == nil {
		o = &StatePushOptions{}
	}
	opts := args.NewOptions().
		Set("force", args.FlagIf(o.Force)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Merge(o.Extra)
	return t.run([]string{"state", "push"}, []string{path}, opts, json.ModeRaw, codesOK, o.Check)
}

// StateReplaceProviderOptions configures the state replace-provider
// subcommand. The zero value replaces without prompting.
type StateReplaceProviderOptions struct {
	// AutoApprove skips the interactive approval prompt, on unless
	// explicitly disabled.
	AutoApprove *bool
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// State is a legacy local state file path.
	State string
	// IgnoreRemoteVersion allows state operations against a differing
	// remote backend version.
	IgnoreRemoteVersion bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StateReplaceProvider replaces provider from with provider to for every
// affected resource in the state.
func (t *Terraform) StateReplaceProvider(from, to string, o *StateReplaceProviderOptions) (Result, error) {
	if o == nil {
		o = &StateReplaceProviderOptions{}
	}
	opts := args.NewOptions().
		Set("auto_approve", flagOn(o.AutoApprove)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("state", args.StringIf(o.State)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
	return t.run([]string{"state", "replace-provider"}, []string{from, to}, opts, json.ModeRaw, codesOK, o.Check)
}

// StateRmOptions configures the state rm subcommand.
type StateRmOptions struct {
	// DryRun reports what would be removed without persisting anything.
	DryRun bool
	// Backup writes a state backup to the given path.
	Backup string
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// State is a legacy local state file path.
	State string
	// IgnoreRemoteVersion allows state operations against a differing
	// remote backend version.
	IgnoreRemoteVersion bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StateRm forgets the items at the given addresses without destroying
// their remote objects.
func (t *Terraform) StateRm(addresses []string, o *StateRmOptions) (Result, error) {
	if o == nil {
		o = &StateRmOptions{}
	}
	opts := args.NewOptions().
		Set("dry_run", args.FlagIf(o.DryRun)).
		Set("backup", args.StringIf(o.Backup)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("state", args.StringIf(o.State)).
		Set("ignore_remote_version", args.FlagIf(o.IgnoreRemoteVersion)).
		Merge(o.Extra)
	return t.run([]string{"state", "rm"}, addresses, opts, json.ModeRaw, codesOK, o.Check)
}

// StateShowOptions configures the state show subcommand.
type StateShowOptions struct {
	// State is a legacy local state file path.
	State string

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// StateShow shows the attributes of the single resource at address.
func (t *Terraform) StateShow(address string, o *StateShowOptions) (Result, error) {
	if o == nil {
		o = &StateShowOptions{}
	}
	opts := args.NewOptions().
		Set("state", args.StringIf(o.State)).
		Merge(o.Extra)
	return t.run([]string{"state", "show"}, []string{address}, opts, json.ModeRaw, codesOK, o.Check)
}
