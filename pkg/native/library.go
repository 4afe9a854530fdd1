// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

//go:build libterraform

package native

/*
#cgo LDFLAGS: -lterraform

#include <stdlib.h>
#include <stdint.h>

// Exported by the libterraform shared object, a c-shared build of Terraform.
// RunCli writes all output into the two supplied pipe write ends and leaves
// closing them to the caller. ConfigLoadConfigDir returns three
// independently allocated buffers (module JSON, diagnostics JSON, error
// text) that must each be released exactly once via Free.
typedef struct {
	char *r0;
	char *r1;
	char *r2;
} configLoadResult;

extern int64_t RunCli(int64_t argc, char **argv, int64_t stdoutFd, int64_t stderrFd);
extern configLoadResult ConfigLoadConfigDir(char *path);
extern void Free(void *ptr);
*/
import "C"

import (
	"os"
	"unsafe"
)

// Library is the cgo-backed implementation of Runner and ConfigDirLoader,
// linked against the libterraform shared object.
type Library struct{}

// NewLibrary returns the process-wide native library binding.
func NewLibrary() (*Library, error) {
	return &Library{}, nil
}

// RunCli invokes the exported RunCli entry point. Blocks until the
// Terraform operation completes.
func (Library) RunCli(argv []string, stdout, stderr *os.File) int64 {
	cArgv := make([]*C.char, len(argv))
	for i, a := range argv {
		cArgv[i] = C.CString(a)
	}
	defer func() {
		for _, p := range cArgv {
			C.free(unsafe.Pointer(p))
		}
	}()
	var argvPtr **C.char
	if len(cArgv) > 0 {
		argvPtr = (**C.char)(unsafe.Pointer(&cArgv[0]))
	}
	code := C.RunCli(C.int64_t(len(argv)), argvPtr,
		C.int64_t(writerFD(stdout)), C.int64_t(writerFD(stderr)))
	return int64(code)
}

// LoadConfigDir invokes the exported ConfigLoadConfigDir entry point.
func (Library) LoadConfigDir(path string) (mod, diags, errText Buffer) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	ret := C.ConfigLoadConfigDir(cPath)
	return &cBuffer{p: ret.r0}, &cBuffer{p: ret.r1}, &cBuffer{p: ret.r2}
}

// cBuffer wraps one natively allocated string buffer.
type cBuffer struct {
	p *C.char
}

// Bytes copies the buffer contents into Go-managed memory. A null native
// pointer yields nil.
func (b *cBuffer) Bytes() []byte {
	if b.p == nil {
		return nil
	}
	return []byte(C.GoString(b.p))
}

// Free releases the native allocation. Safe to call once per buffer only;
// the nil-guard makes repeated calls through the same cBuffer no-ops.
func (b *cBuffer) Free() {
	if b.p == nil {
		return
	}
	C.Free(unsafe.Pointer(b.p))
	b.p = nil
}
