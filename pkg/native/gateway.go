// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package native owns the boundary to the libterraform shared library: the
// pipe pair handed to the RunCli entry point, the concurrent draining of
// both read ends, and the copy-then-free protocol for buffers returned by
// ConfigLoadConfigDir.
package native

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/crossplane-contrib/libtf/pkg/metrics"
	tferrors "github.com/crossplane-contrib/libtf/pkg/terraform/errors"
)

const (
	errStdoutPipe = "cannot allocate stdout pipe"
	errStderrPipe = "cannot allocate stderr pipe"
)

// Runner invokes the native RunCli entry point. The call blocks until the
// underlying Terraform operation completes, which can take minutes. All
// output is written into the two supplied pipe write ends; the caller closes
// them after the call returns.
type Runner interface {
	RunCli(argv []string, stdout, stderr *os.File) int64
}

// Output is the fully drained result of one RunCli invocation. It is
// delivered all-or-nothing: both streams have been read to end-of-stream
// before an Output is returned.
type Output struct {
	Code   int64
	Stdout []byte
	Stderr []byte
}

// GatewayOption configures a Gateway.
type GatewayOption func(g *Gateway)

// WithLogger configures the logger of a Gateway.
func WithLogger(l logging.Logger) GatewayOption {
	return func(g *Gateway) {
		g.log = l
	}
}

// NewGateway returns a Gateway driving the given Runner. A process normally
// constructs one Gateway at startup and threads it through every component
// that calls into the native library.
func NewGateway(r Runner, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		runner: r,
		log:    logging.NewNopLogger(),
	}
	for _, f := range opts {
		f(g)
	}
	return g
}

// Gateway funnels argument vectors into the native library and captures
// both output streams. Invocations share no state; a single Gateway is safe
// for concurrent use.
type Gateway struct {
	runner Runner
	log    logging.Logger
}

// slot is the single-assignment delivery cell of one drain goroutine.
// published stays false if the goroutine exits without a complete buffer,
// which is a distinct condition from an empty stream.
type slot struct {
	buf       []byte
	published bool
}

// Invoke runs the native entry point with argv and returns the result code
// together with both fully captured streams.
//
// Both drain goroutines are started strictly before the native call: RunCli
// writes into pipes, and an unread pipe fills up and blocks the writer
// forever. Symmetrically, the captured buffers are only read after both
// goroutines have observed end-of-stream.
func (g *Gateway) Invoke(argv []string) (Output, error) {
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return Output{}, errors.Wrap(err, errStdoutPipe)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		_ = stdoutR.Close()
		_ = stdoutW.Close()
		return Output{}, errors.Wrap(err, errStderrPipe)
	}

	var stdout, stderr slot
	wg := &sync.WaitGroup{}
	drain(wg, stdoutR, &stdout)
	drain(wg, stderrR, &stderr)

	sub := subcommand(argv)
	metrics.CLIExecutions.WithLabelValues(sub).Inc()
	start := time.Now()
	code := g.runner.RunCli(argv, stdoutW, stderrW)
	metrics.CLITime.WithLabelValues(sub).Observe(time.Since(start).Seconds())
	metrics.CLIExecutions.WithLabelValues(sub).Dec()

	// Closing the write ends signals end-of-stream to the drain
	// goroutines. The native side may have closed its copies already, so
	// an already-closed error is not a failure.
	if err := multierr.Combine(closeFile(stdoutW), closeFile(stderrW)); err != nil {
		g.log.Debug("Cannot close pipe write ends", "error", err)
	}
	wg.Wait()
	if err := multierr.Combine(stdoutR.Close(), stderrR.Close()); err != nil {
		g.log.Debug("Cannot close pipe read ends", "error", err)
	}

	if !stdout.published {
		return Output{}, tferrors.NewStreamReadError("stdout")
	}
	if !stderr.published {
		return Output{}, tferrors.NewStreamReadError("stderr")
	}
	g.log.Debug("Native CLI invocation ended", "args", argv, "code", code,
		"stdout-bytes", len(stdout.buf), "stderr-bytes", len(stderr.buf))
	return Output{Code: code, Stdout: stdout.buf, Stderr: stderr.buf}, nil
}

// drain consumes r until end-of-stream on its own goroutine and publishes
// the completed buffer exactly once.
func drain(wg *sync.WaitGroup, r io.Reader, s *slot) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf, err := io.ReadAll(r)
		if err != nil {
			return
		}
		s.buf = buf
		s.published = true
	}()
}

func closeFile(f *os.File) error {
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// subcommand returns the command token of argv for metric labels, skipping
// the -chdir override.
func subcommand(argv []string) string {
	for _, a := range argv {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return "unknown"
}
