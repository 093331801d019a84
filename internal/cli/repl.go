package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"linecalc/internal/calculation"
)

const welcome = `CLI Calculator
Type 'help' for instructions or 'exit' to quit.`

const emptyHistory = "(no calculations yet)"

// HelpText lists the commands and every registered operation.
func HelpText() string {
	var b strings.Builder
	b.WriteString("Usage:\n  <operation> <n1> [n2 ...]\nOperations:\n")
	for _, op := range calculation.Operations() {
		name := op.Name
		if len(op.Aliases) > 0 {
			name += " (" + strings.Join(op.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-16s %s\n", name, op.Summary)
	}
	b.WriteString("Tokens (case-insensitive):\n  " + strings.Join(calculation.Tokens(), " ") + "\n")
	b.WriteString(`Special:
  help      Show this message
  history   Show previous calculations this session
  clear     Forget the session history
  stats     Show session metrics
  exit      Quit the program
Examples:
  add 1 2 3
  * 2 8
  div 10 2`)
	return b.String()
}

// REPL reads calculator lines from In and writes responses to Out.
type REPL struct {
	Session *Session
	In      io.Reader
	Out     io.Writer
	Prompt  string
	Quiet   bool
}

type lineResult struct {
	text string
	err  error
}

// Run serves lines until exit, end of input, or ctx is done. A failed
// calculation is reported and the loop continues. Run only returns an error
// when reading input or writing output fails.
func (r *REPL) Run(ctx context.Context) error {
	lines := readLines(ctx, r.In)
	w := &errWriter{w: r.Out}

	if !r.Quiet {
		w.println(welcome)
	}
	for {
		if !r.Quiet {
			w.print("\n" + r.Prompt)
		}
		if w.err != nil {
			return w.err
		}
		select {
		case <-ctx.Done():
			w.println("(CTRL+C) Bye!")
			return w.err
		case lr, ok := <-lines:
			// An interrupt wins over a line or end of input that arrived at
			// the same time.
			if ctx.Err() != nil {
				w.println("(CTRL+C) Bye!")
				return w.err
			}
			if !ok {
				w.println("(EOF) Bye!")
				return w.err
			}
			if lr.err != nil {
				return fmt.Errorf("read input: %w", lr.err)
			}
			if r.handle(w, lr.text) {
				return w.err
			}
		}
	}
}

// handle processes one line and reports whether the session should end.
func (r *REPL) handle(w *errWriter, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch strings.ToLower(line) {
	case "exit", "quit":
		w.println("Bye!")
		return true
	case "help":
		w.println(HelpText())
		return false
	case "history":
		hist := r.Session.HistoryLines()
		if len(hist) == 0 {
			w.println(emptyHistory)
		}
		for _, l := range hist {
			w.println(l)
		}
		return false
	case "clear":
		r.Session.Clear()
		w.println("History cleared.")
		return false
	case "stats":
		if err := r.Session.Metrics.WriteText(w); err != nil {
			w.println("Error: " + err.Error())
		}
		return false
	}

	words, err := shlex.Split(line)
	if err != nil {
		w.println("Error: " + err.Error())
		return false
	}
	if len(words) == 0 {
		return false
	}
	out, err := r.Session.Calculate(words)
	if err != nil {
		w.println("Error: " + err.Error())
		return false
	}
	w.println(out)
	return false
}

// readLines reads in on its own goroutine so that Run can stop on ctx while
// a read is blocked. Lines have no length limit. The goroutine exits at end
// of input or once ctx is done and it next tries to deliver a line.
func readLines(ctx context.Context, in io.Reader) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		br := bufio.NewReader(in)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				select {
				case ch <- lineResult{text: strings.TrimRight(line, "\r\n")}:
				case <-ctx.Done():
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				select {
				case ch <- lineResult{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return ch
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) print(s string) {
	_, _ = io.WriteString(e, s)
}

func (e *errWriter) println(s string) {
	_, _ = io.WriteString(e, s+"\n")
}
