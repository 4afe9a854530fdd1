// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package native

import "os"

// writerFD returns the representation of a pipe write end that the native
// boundary expects. Windows I/O is handle based; os.File.Fd returns the OS
// handle there, which is what the shared library reopens on its side.
func writerFD(f *os.File) int64 {
	return int64(f.Fd())
}
