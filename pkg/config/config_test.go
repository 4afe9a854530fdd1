// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crossplane-contrib/libtf/pkg/native"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

type countingBuffer struct {
	data  []byte
	frees int
}

func (b *countingBuffer) Bytes() []byte {
	return b.data
}

func (b *countingBuffer) Free() {
	b.frees++
}

type fakeLoader struct {
	mod   *countingBuffer
	diags *countingBuffer
	err   *countingBuffer
	path  string
}

func (l *fakeLoader) LoadConfigDir(path string) (native.Buffer, native.Buffer, native.Buffer) {
	l.path = path
	return l.mod, l.diags, l.err
}

const moduleDoc = `{
	"SourceDir": "testdata/main",
	"Variables": {"region": {"Name": "region", "Type": null}},
	"ManagedResources": {"null_resource.a": {"Mode": 0}},
	"Moved": null
}`

func TestLoad(t *testing.T) {
	type want struct {
		sourceDir string
		diags     []Diagnostic
		errCheck  func(error) bool
	}
	cases := map[string]struct {
		reason string
		mod    string
		diags  string
		errTxt string
		want   want
	}{
		"Success": {
			reason: "A loadable directory yields the module and its diagnostics.",
			mod:    moduleDoc,
			diags:  `[{"Severity": 2, "Summary": "deprecated syntax", "Detail": "use moved blocks"}]`,
			want: want{
				sourceDir: "testdata/main",
				diags: []Diagnostic{
					{Severity: SeverityWarning, Summary: "deprecated syntax", Detail: "use moved blocks"},
				},
			},
		},
		"NoDiagnostics": {
			reason: "A null diagnostics document reads as no diagnostics.",
			mod:    moduleDoc,
			diags:  "null",
			want:   want{sourceDir: "testdata/main"},
		},
		"ExplicitError": {
			reason: "A native error string wins over both other buffers, which must not be parsed.",
			mod:    "garbage not json",
			diags:  "also garbage",
			errTxt: "json: unsupported value",
			want:   want{errCheck: tferrors.IsConfig},
		},
		"NullModule": {
			reason: "A null module with no error text means the directory was unusable.",
			mod:    "null",
			diags:  "[]",
			want:   want{errCheck: tferrors.IsConfigDir},
		},
		"EmptyModule": {
			reason: "A null native pointer for the module means the same as JSON null.",
			mod:    "",
			diags:  "[]",
			want:   want{errCheck: tferrors.IsConfigDir},
		},
		"MalformedModule": {
			reason: "A module document that does not parse is a hard failure.",
			mod:    `{"SourceDir": 42`,
			diags:  "[]",
			want: want{errCheck: func(err error) bool {
				return err != nil && !tferrors.IsConfig(err) && !tferrors.IsConfigDir(err)
			}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			l := &fakeLoader{
				mod:   &countingBuffer{data: bufData(tc.mod)},
				diags: &countingBuffer{data: bufData(tc.diags)},
				err:   &countingBuffer{data: bufData(tc.errTxt)},
			}
			mod, diags, err := Load(l, "testdata/main")
			if tc.want.errCheck != nil {
				if !tc.want.errCheck(err) {
					t.Fatalf("\n%s\nunexpected error: %v", tc.reason, err)
				}
			} else {
				if err != nil {
					t.Fatalf("\n%s\nunexpected error: %v", tc.reason, err)
				}
				if diff := cmp.Diff(tc.want.sourceDir, mod.SourceDir); diff != "" {
					t.Errorf("\n%s\nSourceDir: -want, +got:\n%s", tc.reason, diff)
				}
				if diff := cmp.Diff(tc.want.diags, diags); diff != "" {
					t.Errorf("\n%s\ndiagnostics: -want, +got:\n%s", tc.reason, diff)
				}
			}
			for bufName, b := range map[string]*countingBuffer{"module": l.mod, "diagnostics": l.diags, "error": l.err} {
				if b.frees != 1 {
					t.Errorf("\n%s\n%s buffer freed %d times, want exactly once", tc.reason, bufName, b.frees)
				}
			}
		})
	}
}

func TestLoadExplicitErrorText(t *testing.T) {
	l := &fakeLoader{
		mod:   &countingBuffer{},
		diags: &countingBuffer{},
		err:   &countingBuffer{data: []byte("cannot marshal module")},
	}
	_, _, err := Load(l, "testdata/broken")
	if !tferrors.IsConfig(err) {
		t.Fatalf("expected a config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot marshal module") {
		t.Errorf("expected the native error text to be carried, got %q", err.Error())
	}
}

// bufData models the null native pointer as a nil slice.
func bufData(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
