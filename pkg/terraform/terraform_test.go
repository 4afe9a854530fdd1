// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package terraform

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/json"
	"github.com/crossplane-contrib/libtf/pkg/native"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

type runnerFn func(argv []string, stdout, stderr *os.File) int64

func (f runnerFn) RunCli(argv []string, stdout, stderr *os.File) int64 {
	return f(argv, stdout, stderr)
}

type script struct {
	stdout string
	stderr string
	code   int64
}

// scripted returns a facade whose native side replays the given streams
// and exit code, recording the received argument vector into argv.
func scripted(s script, argv *[]string, opts ...Option) *Terraform {
	gw := native.NewGateway(runnerFn(func(a []string, stdout, stderr *os.File) int64 {
		*argv = a
		_, _ = io.WriteString(stdout, s.stdout)
		_, _ = io.WriteString(stderr, s.stderr)
		return s.code
	}))
	return New(gw, opts...)
}

func TestCommandArgv(t *testing.T) {
	type want struct {
		argv []string
	}
	cases := map[string]struct {
		reason string
		dir    string
		invoke func(tf *Terraform) error
		want   want
	}{
		"InitDefaults": {
			reason: "A zero-value init must disable prompts and color only.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Init(nil)
				return err
			},
			want: want{argv: []string{"init", "-input=false", "-no-color"}},
		},
		"InitChdirFirst": {
			reason: "The working directory override must precede the subcommand.",
			dir:    "/tmp/ws",
			invoke: func(tf *Terraform) error {
				_, err := tf.Init(&InitOptions{Upgrade: ptr(true), PluginDirs: []string{"/p1", "/p2"}})
				return err
			},
			want: want{argv: []string{
				"-chdir=/tmp/ws", "init", "-input=false", "-no-color",
				"-plugin-dir=/p1", "-plugin-dir=/p2", "-upgrade=true",
			}},
		},
		"PlanDefaults": {
			reason: "A zero-value plan must request the JSON log stream.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Plan(nil)
				return err
			},
			want: want{argv: []string{"plan", "-input=false", "-no-color", "-json"}},
		},
		"PlanVarsAndTargets": {
			reason: "Mappings and lists must emit one token per entry in order.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Plan(&PlanOptions{
					JSON:    ptr(false),
					Targets: []string{"null_resource.a", "null_resource.b"},
					Vars:    []args.KV{{Key: "region", Value: "us-east-1"}, {Key: "count", Value: "3"}},
				})
				return err
			},
			want: want{argv: []string{
				"plan", "-input=false", "-no-color",
				"-target=null_resource.a", "-target=null_resource.b",
				"-var=region=us-east-1", "-var=count=3",
			}},
		},
		"ApplyDefaults": {
			reason: "A zero-value apply must suppress the approval prompt.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Apply(nil)
				return err
			},
			want: want{argv: []string{"apply", "-auto-approve", "-input=false", "-no-color", "-json"}},
		},
		"ApplyPlanFileTrailing": {
			reason: "A saved plan file must land after every option token.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Apply(&ApplyOptions{PlanFile: "out.tfplan", AutoApprove: ptr(false)})
				return err
			},
			want: want{argv: []string{"apply", "-input=false", "-no-color", "-json", "out.tfplan"}},
		},
		"DestroyDefaults": {
			reason: "A zero-value destroy matches apply's defaults.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Destroy(nil)
				return err
			},
			want: want{argv: []string{"destroy", "-auto-approve", "-input=false", "-no-color", "-json"}},
		},
		"VersionDefaults": {
			reason: "version asks for machine-readable output by default.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Version(nil)
				return err
			},
			want: want{argv: []string{"version", "-json"}},
		},
		"ForceUnlockAlwaysForced": {
			reason: "force-unlock cannot answer a prompt, so -force is fixed.",
			invoke: func(tf *Terraform) error {
				_, err := tf.ForceUnlock("LOCK-1234", nil)
				return err
			},
			want: want{argv: []string{"force-unlock", "-force", "LOCK-1234"}},
		},
		"StateMvPositionalPair": {
			reason: "state mv takes a fixed subcommand path and two positionals.",
			invoke: func(tf *Terraform) error {
				_, err := tf.StateMv("null_resource.a", "null_resource.b", nil)
				return err
			},
			want: want{argv: []string{"state", "mv", "null_resource.a", "null_resource.b"}},
		},
		"WorkspaceSelectOrCreate": {
			reason: "Options sit between the subcommand path and the name.",
			invoke: func(tf *Terraform) error {
				_, err := tf.WorkspaceSelect("prod", &WorkspaceSelectOptions{OrCreate: true})
				return err
			},
			want: want{argv: []string{"workspace", "select", "-or-create", "prod"}},
		},
		"ImportUnderscoreTranslation": {
			reason: "snake_case option names must come out hyphenated.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Import("aws_instance.web", "i-123", &ImportOptions{AllowMissingConfig: true})
				return err
			},
			want: want{argv: []string{
				"import", "-input=false", "-no-color", "-allow-missing-config",
				"aws_instance.web", "i-123",
			}},
		},
		"ProvidersSchemaAlwaysJSON": {
			reason: "providers schema refuses to run without -json.",
			invoke: func(tf *Terraform) error {
				_, err := tf.ProvidersSchema(nil)
				return err
			},
			want: want{argv: []string{"providers", "schema", "-json"}},
		},
		"FmtBooleansLowercase": {
			reason: "Boolean options always render lowercase literals.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Fmt(&FmtOptions{List: ptr(false), Write: ptr(false), Diff: ptr(true), Recursive: true})
				return err
			},
			want: want{argv: []string{
				"fmt", "-list=false", "-write=false", "-diff=true", "-recursive", "-no-color",
			}},
		},
		"ExtraMergedLast": {
			reason: "The escape hatch appends unknown options after the named set.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Init(&InitOptions{
					Extra: args.NewOptions().Set("backend_config", args.String("cfg.hcl")),
				})
				return err
			},
			want: want{argv: []string{"init", "-backend-config=cfg.hcl", "-input=false", "-no-color"}},
		},
		"RunEscapeHatch": {
			reason: "Run must pass arbitrary commands through unchanged.",
			invoke: func(tf *Terraform) error {
				_, err := tf.Run([]string{"get"}, nil, args.NewOptions().Set("update", args.Flag()), json.ModeRaw, false)
				return err
			},
			want: want{argv: []string{"get", "-update"}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got []string
			var opts []Option
			if tc.dir != "" {
				opts = append(opts, WithDir(tc.dir))
			}
			tf := scripted(script{stdout: "{}"}, &got, opts...)
			if err := tc.invoke(tf); err != nil {
				t.Errorf("\n%s\nunexpected error: %v", tc.reason, err)
			}
			if diff := cmp.Diff(tc.want.argv, got); diff != "" {
				t.Errorf("\n%s\nargv: -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestResultDecoding(t *testing.T) {
	t.Run("SingleDocument", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: `{"terraform_version":"1.8.0"}`}, &argv)
		res, err := tf.Version(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.JSON {
			t.Error("expected a decoded JSON result")
		}
		m, ok := res.Value.(map[string]interface{})
		if !ok {
			t.Fatalf("expected a map value, got %T", res.Value)
		}
		if diff := cmp.Diff("1.8.0", m["terraform_version"]); diff != "" {
			t.Errorf("value: -want, +got:\n%s", diff)
		}
	})
	t.Run("LogStream", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: "{\"type\":\"version\"}\n\n{\"type\":\"apply_complete\"}\n"}, &argv)
		res, err := tf.Apply(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines, ok := res.Value.([]interface{})
		if !ok {
			t.Fatalf("expected a slice of documents, got %T", res.Value)
		}
		if len(lines) != 2 {
			t.Errorf("expected 2 decoded lines, got %d", len(lines))
		}
	})
	t.Run("RawCommandKeepsText", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: "Terraform has been successfully initialized!\n"}, &argv)
		res, err := tf.Init(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.JSON {
			t.Error("init output must not be decoded")
		}
		if res.Value != res.Stdout {
			t.Errorf("expected raw value %q, got %v", res.Stdout, res.Value)
		}
	})
	t.Run("DecodeFailureIsHard", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: "not json"}, &argv)
		_, err := tf.Version(nil)
		if !tferrors.IsDecodeFailed(err) {
			t.Fatalf("expected a decode error, got %v", err)
		}
	})
	t.Run("RejectedCodeSkipsDecode", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: "partial", code: 1}, &argv)
		res, err := tf.Version(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.JSON {
			t.Error("a rejected exit code must not be decoded")
		}
		if res.Code != 1 {
			t.Errorf("expected code 1, got %d", res.Code)
		}
	})
}

func TestResultChecking(t *testing.T) {
	t.Run("CheckedFailure", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stderr: "Error: no configuration files\n", code: 1}, &argv)
		_, err := tf.Init(&InitOptions{Check: true})
		if !tferrors.IsCommandError(err) {
			t.Fatalf("expected a command error, got %v", err)
		}
		var cmdErr *tferrors.CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatal("command error not unwrappable")
		}
		if diff := cmp.Diff([]string{"init", "-input=false", "-no-color"}, cmdErr.Args); diff != "" {
			t.Errorf("carried argv: -want, +got:\n%s", diff)
		}
		if cmdErr.Code != 1 {
			t.Errorf("expected carried code 1, got %d", cmdErr.Code)
		}
	})
	t.Run("UncheckedFailure", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stderr: "Error: boom\n", code: 1}, &argv)
		res, err := tf.Init(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Code != 1 || res.Stderr == "" {
			t.Errorf("expected failure streams to be surfaced, got %+v", res)
		}
	})
	t.Run("DetailedExitcodeAccepted", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: "{\"type\":\"planned_change\"}\n", code: 2}, &argv)
		res, err := tf.Plan(&PlanOptions{DetailedExitcode: true, Check: true})
		if err != nil {
			t.Fatalf("expected exit code 2 to pass a checked plan, got %v", err)
		}
		if res.Code != 2 {
			t.Errorf("expected code 2, got %d", res.Code)
		}
	})
}

func TestTypedHelpers(t *testing.T) {
	t.Run("ShowState", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: `{"format_version":"1.0","terraform_version":"1.8.0"}`}, &argv)
		s, err := tf.ShowState(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.TerraformVersion != "1.8.0" {
			t.Errorf("expected version 1.8.0, got %q", s.TerraformVersion)
		}
		if diff := cmp.Diff([]string{"show", "-no-color", "-json"}, argv); diff != "" {
			t.Errorf("argv: -want, +got:\n%s", diff)
		}
	})
	t.Run("ShowStateCheckedFailure", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stderr: "Error: state snapshot\n", code: 1}, &argv)
		if _, err := tf.ShowState(nil); !tferrors.IsCommandError(err) {
			t.Fatalf("expected a command error, got %v", err)
		}
	})
	t.Run("PullState", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: `{"version":4,"serial":7,"lineage":"a-b-c","resources":[]}`}, &argv)
		s, err := tf.PullState()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Serial != 7 || s.Lineage != "a-b-c" {
			t.Errorf("unexpected state header: %+v", s)
		}
		if diff := cmp.Diff([]string{"state", "pull"}, argv); diff != "" {
			t.Errorf("argv: -want, +got:\n%s", diff)
		}
	})
	t.Run("ValidateConfigCarriesDiagnostics", func(t *testing.T) {
		var argv []string
		tf := scripted(script{stdout: `{"valid":false,"error_count":1,"diagnostics":[{"severity":"error","summary":"bad ref"}]}`, code: 1}, &argv)
		v, err := tf.ValidateConfig(nil)
		if err != nil {
			t.Fatalf("an invalid configuration must not be an error: %v", err)
		}
		if v.Valid {
			t.Error("expected an invalid report")
		}
		if len(v.Diagnostics) != 1 || v.Diagnostics[0].Summary != "bad ref" {
			t.Errorf("unexpected diagnostics: %+v", v.Diagnostics)
		}
	})
}

func ptr(b bool) *bool {
	return &b
}
