// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
)

// WorkspaceNewOptions configures the workspace new subcommand.
type WorkspaceNewOptions struct {
	// Lock toggles state locking.
	Lock *bool
	// LockTimeout bounds the wait for a state lock.
	LockTimeout string
	// State copies an existing state file into the new workspace.
	State string

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// WorkspaceNew creates the named workspace and switches to it.
func (t *Terraform) WorkspaceNew(name string, o *WorkspaceNewOptions) (Result, error) {
	if o == nil {
		o = &WorkspaceNewOptions{}
	}
	opts := args.NewOptions().
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Set("state", args.StringIf(o.State)).
		Merge(o.Extra)
	return t.run([]string{"workspace", "new"}, []string{name}, opts, json.ModeRaw, codesOK, o.Check)
}

// WorkspaceListOptions configures the workspace list subcommand.
type WorkspaceListOptions struct {
	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// WorkspaceList lists workspaces, marking the selected one with "*".
func (t *Terraform) WorkspaceList(o *WorkspaceListOptions) (Result, error) {
	if o == nil {
		o = &WorkspaceListOptions{}
	}
	opts := args.NewOptions().Merge(o.Extra)
	return t.run([]string{"workspace", "list"}, nil, opts, json.ModeRaw, codesOK, o.Check)
}

// WorkspaceShowOptions configures the workspace show subcommand.
type WorkspaceShowOptions struct {
	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// WorkspaceShow prints the name of the selected workspace.
func (t *Terraform) WorkspaceShow(o *WorkspaceShowOptions) (Result, error) {
	if o == nil {
		o = &WorkspaceShowOptions{}
	}
	opts := args.NewOptions().Merge(o.Extra)
	return t.run([]string{"workspace", "show"}, nil, opts, json.ModeRaw, codesOK, o.Check)
}

// WorkspaceSelectOptions configures the workspace select subcommand.
type WorkspaceSelectOptions struct {
	// OrCreate creates the workspace when it does not exist yet.
	OrCreate bool

	// Check makes a rejected exit code surface as a CommandError.
	Check bool
	// Extra carries additional options merged after the named ones.
	Extra *args.Options
}

// WorkspaceSelect switches to the named workspace.
func (t *Terraform) WorkspaceSelect(name string, o *WorkspaceSelectOptions) (Result, error) {
	if o == nil {
		o = &WorkspaceSelectOptions{}
	}
	opts := args.NewOptions().
		Set("or_create", args.FlagIf(o.OrCreate)).
		Merge(o.Extra)
	return t.run([]string{"workspace", "select"}, []string{name}, opts, json.ModeRaw, codesOK, o.Check)
}

// WorkspaceDeleteOptions configures the workspace delete subcommand.
type WorkspaceDeleteOptions struct {
	// Force deletes the workspace even when it still tracks resources.
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

// WorkspaceDelete deletes the named workspace. The selected workspace
// cannot be deleted.
func (t *Terraform) WorkspaceDelete(name string, o *WorkspaceDeleteOptions) (Result, error) {
	if o == nil {
		o = &WorkspaceDeleteOptions{}
	}
	opts := args.NewOptions().
		Set("force", args.FlagIf(o.Force)).
		Set("lock", args.BoolPtr(o.Lock)).
		Set("lock_timeout", args.StringIf(o.LockTimeout)).
		Merge(o.Extra)
	return t.run([]string{"workspace", "delete"}, []string{name}, opts, json.ModeRaw, codesOK, o.Check)
}
