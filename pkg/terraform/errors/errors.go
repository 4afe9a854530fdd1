// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package errors holds the typed failure conditions surfaced by the binding
// layer. Every failure kind is a distinct type so that callers can tell a
// non-zero result code from an undrained stream from an undecodable payload
// without string matching.
package errors

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	levelError = "error"

	fmtErrCommand   = "command %q returned code %d"
	fmtErrStream    = "no output captured from %s: stream was never drained"
	fmtErrDecode    = "cannot decode command output"
	fmtErrConfigDir = "the given directory %q does not exist at all or could not be opened for some reason"
)

// TerraformLog represents the relevant fields of one Terraform CLI
// JSON-formatted log line.
type TerraformLog struct {
	Level      string        `json:"@level"`
	Message    string        `json:"@message"`
	Diagnostic LogDiagnostic `json:"diagnostic"`
}

// LogDiagnostic represents the relevant fields of a Terraform CLI
// JSON-formatted log line diagnostic info.
type LogDiagnostic struct {
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

// ExtractDiagnostics collects the error-level messages of a JSON-formatted
// log stream into one readable string. Inputs that are not a JSON log stream
// yield "" and the caller falls back to the raw text.
func ExtractDiagnostics(logs []byte) string {
	var messages []string
	for _, l := range strings.Split(string(logs), "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		log := &TerraformLog{}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(l, log); err != nil {
			return ""
		}
		if log.Level != levelError {
			continue
		}
		m := log.Message
		if log.Diagnostic.Severity == levelError && log.Diagnostic.Summary != "" {
			m = fmt.Sprintf("%s: %s", log.Diagnostic.Summary, log.Diagnostic.Detail)
		}
		messages = append(messages, m)
	}
	return strings.Join(messages, "\n")
}

// CommandError indicates that a checked invocation returned a result code
// outside the operation's accepted set. It carries the full argument vector
// and both captured streams so the failure can be diagnosed without
// re-running the command.
type CommandError struct {
	Code   int64
	Args   []string
	Stdout string
	Stderr string
}

// NewCommandError returns a new CommandError for the given invocation.
func NewCommandError(code int64, argv []string, stdout, stderr string) error {
	return &CommandError{Code: code, Args: argv, Stdout: stdout, Stderr: stderr}
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf(fmtErrCommand, strings.Join(e.Args, " "), e.Code)
	if diag := ExtractDiagnostics([]byte(e.Stderr)); diag != "" {
		return msg + ": " + diag
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return msg + ": " + s
	}
	return msg
}

// Is supports errors.Is checks against the bare type.
func (e *CommandError) Is(target error) bool {
	_, ok := target.(*CommandError)
	return ok
}

// IsCommandError returns whether error is due to a result code outside the
// accepted set of a checked command.
func IsCommandError(err error) bool {
	ce := &CommandError{}
	return errors.As(err, &ce)
}

// StreamReadError indicates that a drain task finished without publishing a
// buffer for its stream. This is distinct from the stream legitimately
// producing no output.
type StreamReadError struct {
	Stream string
}

// NewStreamReadError returns a new StreamReadError for the named stream
// ("stdout" or "stderr").
func NewStreamReadError(stream string) error {
	return &StreamReadError{Stream: stream}
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf(fmtErrStream, e.Stream)
}

// Is supports errors.Is checks against the bare type.
func (e *StreamReadError) Is(target error) bool {
	_, ok := target.(*StreamReadError)
	return ok
}

// IsStreamRead returns whether error is due to a drain task failing to
// deliver its stream's contents.
func IsStreamRead(err error) bool {
	se := &StreamReadError{}
	return errors.As(err, &se)
}

// DecodeError indicates that captured text could not be decoded in the
// requested mode. Raw holds what was actually produced.
type DecodeError struct {
	Raw []byte

	cause error
}

// WrapDecodeFailed wraps a parse failure together with the undecodable text.
func WrapDecodeFailed(err error, raw []byte) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Raw: raw, cause: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", fmtErrDecode, e.cause)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// Is supports errors.Is checks against the bare type.
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// IsDecodeFailed returns whether error is due to undecodable command output.
func IsDecodeFailed(err error) bool {
	de := &DecodeError{}
	return errors.As(err, &de)
}

// ConfigError indicates that the native config loader reported an explicit
// error string.
type ConfigError struct {
	Message string
}

// NewConfigError returns a new ConfigError carrying the native error text.
func NewConfigError(message string) error {
	return &ConfigError{Message: message}
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Is supports errors.Is checks against the bare type.
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// IsConfig returns whether error is an explicit native config-loader error.
func IsConfig(err error) bool {
	ce := &ConfigError{}
	return errors.As(err, &ce)
}

// ConfigDirError indicates that the native config loader returned no module
// and no error text: the directory does not exist or could not be opened.
// It is deliberately distinct from ConfigError.
type ConfigDirError struct {
	Path string
}

// NewConfigDirError returns a new ConfigDirError for the given path.
func NewConfigDirError(path string) error {
	return &ConfigDirError{Path: path}
}

func (e *ConfigDirError) Error() string {
	return fmt.Sprintf(fmtErrConfigDir, e.Path)
}

// Is supports errors.Is checks against the bare type.
func (e *ConfigDirError) Is(target error) bool {
	_, ok := target.(*ConfigDirError)
	return ok
}

// IsConfigDir returns whether error is due to an unusable config directory.
func IsConfigDir(err error) bool {
	ce := &ConfigDirError{}
	return errors.As(err, &ce)
}
