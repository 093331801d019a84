package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"linecalc/internal/trace"
)

// Streams are the text endpoints of a run. Nil fields default to empty
// input and discarded output.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (s Streams) withDefaults() Streams {
	if s.In == nil {
		s.In = strings.NewReader("")
	}
	if s.Out == nil {
		s.Out = io.Discard
	}
	if s.Err == nil {
		s.Err = io.Discard
	}
	return s
}

type CLIResult struct {
	ExitCode int
	// TraceHash is the sha256 of the written trace; empty when tracing is off.
	TraceHash string
}

// Execute runs a canonical invocation.
//
// Responsibilities:
//   - Build the logger and the session.
//   - Reserve the trace file before the session starts and finalize it after,
//     even on panic or failure.
//   - Translate outcomes to semantic exit codes.
func Execute(ctx context.Context, inv Invocation, streams Streams) (res CLIResult, execErr error) {
	res.ExitCode = ExitInternalError
	streams = streams.withDefaults()
	logger := newLogger(streams.Err, inv.LogLevel)

	rec := trace.NewRecorder()
	var sink trace.Sink = trace.NopSink{}
	if inv.Trace.Enabled {
		sink = rec
	}

	traceWriter, err := newTraceWriter(inv)
	if err != nil {
		res.ExitCode = ExitTraceError
		return res, err
	}
	defer func() {
		// Always finalize trace output, keeping an earlier error if there is one.
		hash, ferr := traceWriter.Finalize(rec.Trace())
		if ferr != nil {
			logger.Warn("trace not written", slog.String("path", inv.Trace.Path), slog.String("error", ferr.Error()))
			if execErr == nil {
				res.ExitCode = ExitTraceError
				execErr = ferr
			}
			return
		}
		res.TraceHash = hash
	}()

	defer func() {
		if r := recover(); r != nil {
			res.ExitCode = ExitInternalError
			execErr = fmt.Errorf("panic: %v", r)
		}
	}()

	sess := NewSession(logger, sink)
	logger.Info("session started", slog.String("mode", string(inv.Mode)))

	switch inv.Mode {
	case ModeOneShot:
		out, err := sess.Calculate(inv.Args)
		if err != nil {
			if IsCalculationError(err) {
				res.ExitCode = ExitCalculationFailure
			}
			return res, err
		}
		if _, err := fmt.Fprintln(streams.Out, out); err != nil {
			return res, err
		}
	default:
		repl := &REPL{
			Session: sess,
			In:      streams.In,
			Out:     streams.Out,
			Prompt:  inv.Prompt,
			Quiet:   inv.Quiet,
		}
		if err := repl.Run(ctx); err != nil {
			return res, err
		}
	}

	logger.Info("session ended", slog.Int("history", sess.History.Len()))
	res.ExitCode = ExitSuccess
	return res, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type traceFileWriter struct {
	enabled bool
	path    string
}

func newTraceWriter(inv Invocation) (*traceFileWriter, error) {
	if !inv.Trace.Enabled {
		return &traceFileWriter{enabled: false}, nil
	}
	if inv.Trace.Path == "" {
		return nil, fmt.Errorf("trace enabled but path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(inv.Trace.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	// Write an empty trace eagerly so an unwritable destination fails before
	// the session starts.
	w := &traceFileWriter{enabled: true, path: inv.Trace.Path}
	if _, err := w.write(trace.SessionTrace{}); err != nil {
		return nil, fmt.Errorf("write trace: %w", err)
	}
	return w, nil
}

// Finalize writes t and returns its hash. It is a no-op when tracing is off.
func (w *traceFileWriter) Finalize(t trace.SessionTrace) (string, error) {
	if w == nil || !w.enabled {
		return "", nil
	}
	return w.write(t)
}

func (w *traceFileWriter) write(t trace.SessionTrace) (string, error) {
	b, err := t.CanonicalJSON()
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(w.path, b, 0o644); err != nil {
		return "", err
	}
	return trace.ComputeTraceHash(b), nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
