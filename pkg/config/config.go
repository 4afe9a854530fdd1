// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads Terraform configuration directories through the
// native parser instead of shelling out. The native side hands back three
// separately allocated buffers (module JSON, diagnostics JSON, error
// text); each is copied into Go-owned memory and released exactly once
// before any branch is taken on its content.
package config

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/crossplane-contrib/libtf/pkg/json"
	"github.com/crossplane-contrib/libtf/pkg/native"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

const (
	errUnmarshalModule = "cannot unmarshal module document"
	errUnmarshalDiags  = "cannot unmarshal diagnostics document"
)

// Severity of a configuration diagnostic, following HCL's numbering.
type Severity int

const (
	// SeverityError marks a problem that prevents further processing.
	SeverityError Severity = 1
	// SeverityWarning marks a problem that does not block processing.
	SeverityWarning Severity = 2
)

// Diagnostic is one problem found while loading a configuration
// directory. Field names match the native parser's JSON rendering.
type Diagnostic struct {
	Severity Severity
	Summary  string
	Detail   string
}

// Module is the serializable subset of a parsed configuration module.
// Nested construct bodies stay raw; callers interested in, say, a
// variable's type unmarshal the entry they need.
type Module struct {
	SourceDir string

	CoreVersionConstraints []json.RawMessage
	ActiveExperiments      json.RawMessage

	Backend              json.RawMessage
	CloudConfig          json.RawMessage
	ProviderConfigs      map[string]json.RawMessage
	ProviderRequirements json.RawMessage

	Variables map[string]json.RawMessage
	Locals    map[string]json.RawMessage
	Outputs   map[string]json.RawMessage

	ModuleCalls map[string]json.RawMessage

	ManagedResources map[string]json.RawMessage
	DataResources    map[string]json.RawMessage

	Moved []json.RawMessage
}

// Load parses the configuration directory at path. An explicit native
// error surfaces as a ConfigError; a directory the parser could not open
// at all surfaces as a ConfigDirError. Diagnostics about an otherwise
// loadable directory are returned alongside the module.
func Load(loader native.ConfigDirLoader, path string) (*Module, []Diagnostic, error) {
	modBuf, diagsBuf, errBuf := loader.LoadConfigDir(path)
	modRaw := takeOwned(modBuf)
	diagsRaw := takeOwned(diagsBuf)
	errRaw := takeOwned(errBuf)

	if len(errRaw) > 0 {
		return nil, nil, tferrors.NewConfigError(string(errRaw))
	}
	// The parser renders an unreadable directory as a JSON null module, a
	// null native pointer means the same thing.
	if isNull(modRaw) {
		return nil, nil, tferrors.NewConfigDirError(path)
	}
	mod := &Module{}
	if err := json.JSParser.Unmarshal(modRaw, mod); err != nil {
		return nil, nil, errors.Wrap(err, errUnmarshalModule)
	}
	var diags []Diagnostic
	if !isNull(diagsRaw) {
		if err := json.JSParser.Unmarshal(diagsRaw, &diags); err != nil {
			return nil, nil, errors.Wrap(err, errUnmarshalDiags)
		}
	}
	return mod, diags, nil
}

// takeOwned copies the native buffer's content into Go-owned memory and
// releases the buffer. The copy must complete before the release; the
// buffer must never be released twice.
func takeOwned(b native.Buffer) []byte {
	data := b.Bytes()
	b.Free()
	return data
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
