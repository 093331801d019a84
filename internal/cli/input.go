package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess            = 0
	ExitCalculationFailure = 1
	ExitInvalidInvocation  = 2
	ExitTraceError         = 3
	ExitInternalError      = 4
)

const DefaultPrompt = "calc> "

type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeOneShot     Mode = "one-shot"
)

type TraceConfig struct {
	Enabled bool
	Path    string
}

// Invocation is the canonical description of one linecalc run.
//
// In ModeOneShot, Args holds the operation token followed by its operand
// words exactly as they appeared on the command line.
type Invocation struct {
	Mode     Mode
	Args     []string
	Trace    TraceConfig
	LogLevel slog.Level
	Quiet    bool
	Prompt   string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses command-line arguments into an Invocation.
// Environment variables are never consulted.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("linecalc", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var tracePath string
	var logLevel string
	var quiet bool
	var prompt string

	fs.StringVar(&tracePath, "trace", "", "Write a session trace (JSON) to this path when the session ends.")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	fs.BoolVar(&quiet, "quiet", false, "Suppress the welcome banner and the prompt.")
	fs.StringVar(&prompt, "prompt", DefaultPrompt, "Interactive prompt text.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Invocation{}, invalidInvocationf("%s", usage(fs))
		}
		return Invocation{}, invalidInvocationf("%v\n%s", err, usage(fs))
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{
		Mode:     ModeInteractive,
		LogLevel: level,
		Quiet:    quiet,
		Prompt:   prompt,
	}

	if fs.NArg() > 0 {
		inv.Mode = ModeOneShot
		inv.Args = append([]string(nil), fs.Args()...)
	}

	if tracePath != "" {
		if strings.TrimSpace(tracePath) == "" {
			return Invocation{}, invalidInvocationf("--trace path must not be blank")
		}
		clean := filepath.Clean(tracePath)
		if clean == "." {
			return Invocation{}, invalidInvocationf("--trace path must not be '.'")
		}
		inv.Trace = TraceConfig{Enabled: true, Path: clean}
	}

	return inv, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(raw) == "" {
		return level, invalidInvocationf("--log-level is required")
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return level, invalidInvocationf("invalid --log-level %q (expected debug|info|warn|error)", raw)
	}
	return level, nil
}

func usage(fs *flag.FlagSet) string {
	var buf bytes.Buffer
	buf.WriteString("usage: linecalc [flags] [<operation> <n1> [n2 ...]]\n")
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	return strings.TrimRight(buf.String(), "\n")
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
