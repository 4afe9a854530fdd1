// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package native

// Buffer is one externally allocated result buffer of the native config
// loader. Bytes returns nil for a null native pointer, which is distinct
// from an empty buffer. Free must be called exactly once per buffer, on
// every code path, after its contents have been copied; Free on an already
// freed or null buffer is a no-op so that defer-based release stays safe.
type Buffer interface {
	Bytes() []byte
	Free()
}

// ConfigDirLoader invokes the native ConfigLoadConfigDir entry point. The
// three returned buffers hold the module JSON, the diagnostics JSON and an
// error string; ownership of all three transfers to the caller.
type ConfigDirLoader interface {
	LoadConfigDir(path string) (mod, diags, errText Buffer)
}

// BytesBuffer adapts an in-memory byte slice to the Buffer interface. The
// stub library and tests use it in place of native allocations.
type BytesBuffer struct {
	data []byte
}

// NewBytesBuffer returns a Buffer backed by data. A nil data models a null
// native pointer.
func NewBytesBuffer(data []byte) *BytesBuffer {
	return &BytesBuffer{data: data}
}

// Bytes returns the backing slice.
func (b *BytesBuffer) Bytes() []byte {
	return b.data
}

// Free is a no-op; the backing memory is Go-managed.
func (b *BytesBuffer) Free() {}
