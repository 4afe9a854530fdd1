// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

type runnerFn func(argv []string, stdout, stderr *os.File) int64

func (f runnerFn) RunCli(argv []string, stdout, stderr *os.File) int64 {
	return f(argv, stdout, stderr)
}

func TestInvoke(t *testing.T) {
	type args struct {
		runner Runner
		argv   []string
	}
	type want struct {
		out Output
		err error
	}
	tests := map[string]struct {
		args args
		want want
	}{
		"CapturesBothStreams": {
			args: args{
				runner: runnerFn(func(_ []string, stdout, stderr *os.File) int64 {
					_, _ = stdout.WriteString("standard output\n")
					_, _ = stderr.WriteString("diagnostic output\n")
					return 0
				}),
				argv: []string{"version", "-json"},
			},
			want: want{
				out: Output{
					Code:   0,
					Stdout: []byte("standard output\n"),
					Stderr: []byte("diagnostic output\n"),
				},
			},
		},
		"EmptyStreamsAreNotAnError": {
			args: args{
				runner: runnerFn(func(_ []string, _, _ *os.File) int64 {
					return 2
				}),
				argv: []string{"plan", "-detailed-exitcode"},
			},
			want: want{
				out: Output{Code: 2, Stdout: []byte{}, Stderr: []byte{}},
			},
		},
		"NativeSideCloseIsIdempotent": {
			args: args{
				runner: runnerFn(func(_ []string, stdout, stderr *os.File) int64 {
					_, _ = stdout.WriteString("done")
					_ = stdout.Close()
					_ = stderr.Close()
					return 0
				}),
				argv: []string{"init"},
			},
			want: want{
				out: Output{Code: 0, Stdout: []byte("done"), Stderr: []byte{}},
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NewGateway(tt.args.runner).Invoke(tt.args.argv)
			if err != nil {
				if tt.want.err == nil {
					t.Fatalf("Invoke(...): unexpected error: %v", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want.out, got); diff != "" {
				t.Errorf("Invoke(...): -want, +got:\n%s", diff)
			}
		})
	}
}

// A writer filling both pipes beyond their kernel buffer capacity must not
// deadlock: the drain goroutines are started before the native call and
// keep the pipes flowing while the call blocks.
func TestInvokeLargeOutputDoesNotDeadlock(t *testing.T) {
	big := bytes.Repeat([]byte("0123456789abcdef"), 8192) // 128 KiB
	r := runnerFn(func(_ []string, stdout, stderr *os.File) int64 {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = stdout.Write(big)
		}()
		go func() {
			defer wg.Done()
			_, _ = stderr.Write(big)
		}()
		wg.Wait()
		return 0
	})
	got, err := NewGateway(r).Invoke([]string{"apply", "-json"})
	if err != nil {
		t.Fatalf("Invoke(...): unexpected error: %v", err)
	}
	if !bytes.Equal(got.Stdout, big) {
		t.Errorf("stdout corrupted: got %d bytes, want %d", len(got.Stdout), len(big))
	}
	if !bytes.Equal(got.Stderr, big) {
		t.Errorf("stderr corrupted: got %d bytes, want %d", len(got.Stderr), len(big))
	}
}

// Writes interleaved with the blocking call must all be delivered: the
// buffers are only read once both drain goroutines report end-of-stream.
func TestInvokeDelayedWrites(t *testing.T) {
	r := runnerFn(func(_ []string, stdout, stderr *os.File) int64 {
		for i := 0; i < 100; i++ {
			_, _ = stdout.WriteString("{\"type\":\"apply_progress\"}\n")
			_, _ = stderr.WriteString(".")
		}
		return 0
	})
	got, err := NewGateway(r).Invoke([]string{"apply"})
	if err != nil {
		t.Fatalf("Invoke(...): unexpected error: %v", err)
	}
	if n := bytes.Count(got.Stdout, []byte("\n")); n != 100 {
		t.Errorf("stdout lines = %d, want 100", n)
	}
	if len(got.Stderr) != 100 {
		t.Errorf("stderr bytes = %d, want 100", len(got.Stderr))
	}
}

func TestDrainUnpublishedSlot(t *testing.T) {
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe(): %v", err)
	}
	// Closing the read end before draining makes ReadAll fail, so the
	// slot must stay unpublished rather than publish an empty buffer.
	_ = pr.Close()
	_ = pw.Close()

	var s slot
	wg := &sync.WaitGroup{}
	drain(wg, pr, &s)
	wg.Wait()
	if s.published {
		t.Errorf("slot published after read failure, want unpublished")
	}
}

func TestStreamReadErrorKind(t *testing.T) {
	err := tferrors.NewStreamReadError("stdout")
	if !tferrors.IsStreamRead(err) {
		t.Errorf("IsStreamRead() = false, want true")
	}
}

func TestSubcommand(t *testing.T) {
	tests := map[string]struct {
		argv []string
		want string
	}{
		"Plain":      {argv: []string{"plan", "-json"}, want: "plan"},
		"WithChdir":  {argv: []string{"-chdir=ws", "init"}, want: "init"},
		"OnlyFlags":  {argv: []string{"-help"}, want: "unknown"},
		"Subcommand": {argv: []string{"state", "list"}, want: "state"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := subcommand(tt.argv); got != tt.want {
				t.Errorf("subcommand(%v) = %q, want %q", tt.argv, got, tt.want)
			}
		})
	}
}
