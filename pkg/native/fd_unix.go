// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package native

import "os"

// writerFD returns the representation of a pipe write end that the native
// boundary expects. On POSIX platforms that is the raw descriptor number.
func writerFD(f *os.File) int64 {
	return int64(f.Fd())
}
