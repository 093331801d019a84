package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"linecalc/internal/calculation"
	"linecalc/internal/metrics"
	"linecalc/internal/operation"
	"linecalc/internal/trace"
)

// Session is the state one calculator run carries between lines.
type Session struct {
	History *calculation.History
	Metrics *metrics.Session
	Trace   trace.Sink
	Logger  *slog.Logger
}

// NewSession returns an empty session. A nil logger discards records and a
// nil sink drops trace events.
func NewSession(logger *slog.Logger, sink trace.Sink) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if sink == nil {
		sink = trace.NopSink{}
	}
	return &Session{
		History: calculation.NewHistory(),
		Metrics: metrics.NewSession(),
		Trace:   sink,
		Logger:  logger.With(slog.String("component", "session")),
	}
}

// Calculate resolves words[0] as an operation token, computes it over the
// remaining words, and returns the formatted result. Only successful
// calculations are added to the history.
func (s *Session) Calculate(words []string) (string, error) {
	if len(words) == 0 {
		return "", &operation.Error{Kind: operation.ErrInvalidInput, Msg: "empty input"}
	}
	token, rest := words[0], words[1:]
	operands := make([]any, len(rest))
	for i, w := range rest {
		operands[i] = w
	}

	calc, err := calculation.New(token, operands...)
	if err != nil {
		s.failed(token, rest, err)
		return "", err
	}
	result, err := calc.Compute()
	if err != nil {
		s.failed(token, rest, err)
		return "", err
	}

	s.History.Add(calc)
	s.Metrics.Computed(strings.ToLower(token))
	s.Metrics.SetHistorySize(s.History.Len())
	trace.SafeRecord(s.Trace, trace.Event{
		Kind:      trace.EventCalculationComputed,
		Operation: token,
		Operands:  rest,
		Result:    &result,
	})
	s.Logger.Debug("calculation computed",
		slog.String("operation", token),
		slog.Int("operands", len(rest)),
		slog.Float64("result", result),
	)
	return FormatCalculation(calc.Name(), calc.Operands(), result), nil
}

func (s *Session) failed(token string, words []string, err error) {
	kind := operation.KindOf(err)
	s.Metrics.Failed(kind)
	trace.SafeRecord(s.Trace, trace.Event{
		Kind:      trace.EventCalculationFailed,
		Operation: token,
		Operands:  words,
		Reason:    kind,
	})
	s.Logger.Debug("calculation failed",
		slog.String("operation", token),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// HistoryLines renders every recorded calculation, oldest first.
func (s *Session) HistoryLines() []string {
	all := s.History.All()
	lines := make([]string, 0, len(all))
	for _, c := range all {
		result, err := c.Compute()
		if err != nil {
			lines = append(lines, c.Name()+": "+err.Error())
			continue
		}
		lines = append(lines, FormatCalculation(c.Name(), c.Operands(), result))
	}
	return lines
}

// Clear empties the history.
func (s *Session) Clear() {
	n := s.History.Len()
	s.History.Clear()
	s.Metrics.SetHistorySize(0)
	trace.SafeRecord(s.Trace, trace.Event{Kind: trace.EventHistoryCleared})
	s.Logger.Info("history cleared", slog.Int("removed", n))
}

// IsCalculationError reports whether err belongs to the calculation error
// taxonomy rather than an I/O or internal failure.
func IsCalculationError(err error) bool {
	return errors.Is(err, operation.ErrUnknownOperation) ||
		errors.Is(err, operation.ErrInvalidInput) ||
		errors.Is(err, operation.ErrDivisionByZero)
}
