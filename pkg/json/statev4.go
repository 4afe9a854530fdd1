// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"github.com/pkg/errors"
)

const (
	errCannotParseState       = "cannot parse state"
	fmtErrIncompatibleVersion = "state version not supported, expecting 4 found %d"
)

// StateV4 is the version 4 Terraform state document, as produced by
// `terraform state pull`. Only the envelope is typed; resource instance
// attributes stay as raw documents for the caller to interpret.
type StateV4 struct {
	Version          uint64                   `json:"version"`
	TerraformVersion string                   `json:"terraform_version"`
	Serial           uint64                   `json:"serial"`
	Lineage          string                   `json:"lineage"`
	RootOutputs      map[string]OutputStateV4 `json:"outputs"`
	Resources        []ResourceStateV4        `json:"resources"`
}

// OutputStateV4 is a root module output recorded in state.
type OutputStateV4 struct {
	ValueRaw     RawMessage `json:"value"`
	ValueTypeRaw RawMessage `json:"type"`
	Sensitive    bool       `json:"sensitive,omitempty"`
}

// ResourceStateV4 is one resource block recorded in state.
type ResourceStateV4 struct {
	Module         string                  `json:"module,omitempty"`
	Mode           string                  `json:"mode"`
	Type           string                  `json:"type"`
	Name           string                  `json:"name"`
	ProviderConfig string                  `json:"provider"`
	Instances      []InstanceObjectStateV4 `json:"instances"`
}

// InstanceObjectStateV4 is one instance of a resource recorded in state.
type InstanceObjectStateV4 struct {
	IndexKey            interface{} `json:"index_key,omitempty"`
	Status              string      `json:"status,omitempty"`
	SchemaVersion       uint64      `json:"schema_version"`
	AttributesRaw       RawMessage  `json:"attributes,omitempty"`
	PrivateRaw          []byte      `json:"private,omitempty"`
	Dependencies        []string    `json:"dependencies,omitempty"`
	CreateBeforeDestroy bool        `json:"create_before_destroy,omitempty"`
}

// RawMessage is a verbatim JSON fragment.
type RawMessage []byte

// MarshalJSON returns m as-is.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON stores a copy of data.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	*m = append((*m)[0:0], data...)
	return nil
}

// ParseStateV4 decodes a pulled state document and rejects unsupported
// state format versions.
func ParseStateV4(data []byte) (*StateV4, error) {
	s := &StateV4{}
	if err := JSParser.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, errCannotParseState)
	}
	if s.Version != 4 {
		return nil, errors.Errorf(fmtErrIncompatibleVersion, s.Version)
	}
	return s, nil
}
