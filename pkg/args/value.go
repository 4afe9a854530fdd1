// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package args

import (
	"fmt"
	"strconv"
)

// Kind discriminates the possible shapes of a command option value.
type Kind int

const (
	// KindAbsent is the zero value. Absent options are skipped entirely
	// during marshalling; this is how optional parameters are "not passed".
	KindAbsent Kind = iota
	// KindFlag renders as a bare switch, e.g. -json.
	KindFlag
	// KindString renders as -name=value.
	KindString
	// KindBool renders as -name=true or -name=false, always lowercase.
	KindBool
	// KindList renders one -name=value token per element, in order.
	KindList
	// KindPairs renders one -name=key=value token per entry, in order.
	KindPairs
)

func (k Kind) String() string {
	return []string{"absent", "flag", "string", "bool", "list", "pairs"}[k]
}

// KV is a single key=value entry of a mapping-valued option.
type KV struct {
	Key   string
	Value string
}

// Value is a tagged union over the shapes a Terraform CLI option can take.
// The zero Value is absent.
type Value struct {
	kind  Kind
	str   string
	b     bool
	list  []string
	pairs []KV
}

// Flag returns a bare-switch value, e.g. {"json": Flag()} -> -json.
func Flag() Value {
	return Value{kind: KindFlag}
}

// FlagIf returns a bare-switch value when on is true and an absent value
// otherwise. It mirrors the common "enabled by default, opt out by dropping
// the switch" shape of Terraform flags.
func FlagIf(on bool) Value {
	if !on {
		return Value{}
	}
	return Flag()
}

// String returns a scalar string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// StringIf returns a scalar string value, or absent when s is empty.
func StringIf(s string) Value {
	if s == "" {
		return Value{}
	}
	return String(s)
}

// Bool returns a boolean value, rendered as a lowercase literal.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// BoolPtr returns a boolean value, or absent when b is nil. It is the
// marshalling counterpart of tri-state option fields.
func BoolPtr(b *bool) Value {
	if b == nil {
		return Value{}
	}
	return Bool(*b)
}

// Int returns a scalar value holding the decimal rendering of i.
func Int(i int) Value {
	return String(strconv.Itoa(i))
}

// List returns a list value emitting one token per element.
func List(vs ...string) Value {
	if len(vs) == 0 {
		return Value{}
	}
	return Value{kind: KindList, list: vs}
}

// Pairs returns a mapping value emitting one key=value token per entry.
// Entry order is preserved.
func Pairs(kvs ...KV) Value {
	if len(kvs) == 0 {
		return Value{}
	}
	return Value{kind: KindPairs, pairs: kvs}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value marshals to nothing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// tokens renders the value under the already-hyphenated flag name.
func (v Value) tokens(flag string) []string {
	switch v.kind {
	case KindAbsent:
		return nil
	case KindFlag:
		return []string{"-" + flag}
	case KindString:
		return []string{fmt.Sprintf("-%s=%s", flag, v.str)}
	case KindBool:
		return []string{fmt.Sprintf("-%s=%s", flag, strconv.FormatBool(v.b))}
	case KindList:
		ts := make([]string, 0, len(v.list))
		for _, e := range v.list {
			ts = append(ts, fmt.Sprintf("-%s=%s", flag, e))
		}
		return ts
	case KindPairs:
		ts := make([]string, 0, len(v.pairs))
		for _, kv := range v.pairs {
			ts = append(ts, fmt.Sprintf("-%s=%s=%s", flag, kv.Key, kv.Value))
		}
		return ts
	}
	return nil
}
