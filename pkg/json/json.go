// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package json decodes captured command output into structured values.
// Terraform commands produce either plain text, one JSON document per
// invocation, or newline-delimited JSON (one document per logical step of a
// plan/apply), selected here by a Mode.
package json

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// JSParser is the JSON engine used across the module.
var JSParser = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	errParseDocument = "cannot parse output as a JSON document"

	fmtErrParseLine = "cannot parse output line %d as a JSON document"
)

// Mode selects how captured text becomes a structured value.
type Mode int

const (
	// ModeRaw returns the captured text unchanged.
	ModeRaw Mode = iota
	// ModeJSON parses the entire text as one JSON document.
	ModeJSON
	// ModeJSONStream parses each non-empty line as an independent JSON
	// document and returns the ordered sequence.
	ModeJSONStream
)

func (m Mode) String() string {
	return []string{"raw", "json", "json-stream"}[m]
}

// IsJSON reports whether the mode produces structured values.
func (m Mode) IsJSON() bool {
	return m != ModeRaw
}

// Decode turns captured output into a value according to mode. ModeRaw
// yields a string. ModeJSON yields whatever the single document decodes to.
// ModeJSONStream yields a []interface{} with one element per non-empty line.
// Parse failures are hard errors; the caller attaches the raw text.
func Decode(data []byte, mode Mode) (interface{}, error) {
	switch mode {
	case ModeJSON:
		var v interface{}
		if err := JSParser.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, errParseDocument)
		}
		return v, nil
	case ModeJSONStream:
		return decodeStream(data)
	default:
		return string(data), nil
	}
}

func decodeStream(data []byte) ([]interface{}, error) {
	lines := bytes.Split(data, []byte("\n"))
	vals := make([]interface{}, 0, len(lines))
	for i, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var v interface{}
		if err := JSParser.Unmarshal(line, &v); err != nil {
			return nil, errors.Wrapf(err, fmtErrParseLine, i+1)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
