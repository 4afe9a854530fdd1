// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

//go:build !libterraform

package native

import (
	"os"

	"github.com/pkg/errors"
)

const errNotLinked = "binary was built without the libterraform shared library; rebuild with -tags libterraform"

// ErrNotLinked is returned by NewLibrary when the binary was built without
// the libterraform build tag and therefore carries no native bindings.
var ErrNotLinked = errors.New(errNotLinked)

// Library is a placeholder for the cgo-backed bindings in builds without
// the libterraform tag.
type Library struct{}

// NewLibrary fails: no native library is linked into this build.
func NewLibrary() (*Library, error) {
	return nil, ErrNotLinked
}

// RunCli reports the missing library on the stderr stream and returns a
// non-zero code, mirroring a failed CLI invocation.
func (Library) RunCli(_ []string, _, stderr *os.File) int64 {
	_, _ = stderr.WriteString(errNotLinked + "\n")
	return 1
}

// LoadConfigDir reports the missing library through the error buffer.
func (Library) LoadConfigDir(_ string) (mod, diags, errText Buffer) {
	return NewBytesBuffer(nil), NewBytesBuffer(nil), NewBytesBuffer([]byte(errNotLinked))
}
