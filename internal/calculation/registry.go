package calculation

import (
	"fmt"
	"sort"
	"strings"

	"linecalc/internal/operation"
)

// Operation describes one registered arithmetic operation.
type Operation struct {
	Name    string
	Aliases []string
	Summary string
	Func    operation.Func
}

var operations = []Operation{
	{Name: "add", Aliases: []string{"+"}, Summary: "sum of all operands", Func: operation.Add},
	{Name: "sub", Aliases: []string{"-"}, Summary: "first operand minus the rest", Func: operation.Subtract},
	{Name: "mul", Aliases: []string{"*", "times"}, Summary: "product of all operands", Func: operation.Multiply},
	{Name: "div", Aliases: []string{"/"}, Summary: "first operand divided by each of the rest", Func: operation.Divide},
}

var registry = buildRegistry(operations)

func buildRegistry(ops []Operation) map[string]Operation {
	m := make(map[string]Operation)
	for _, op := range ops {
		for _, tok := range append([]string{op.Name}, op.Aliases...) {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				panic(fmt.Sprintf("calculation registry: empty token for %q", op.Name))
			}
			if _, ok := m[tok]; ok {
				panic(fmt.Sprintf("calculation registry: duplicate token %q", tok))
			}
			m[tok] = op
		}
	}
	return m
}

// Lookup resolves token, ignoring case.
func Lookup(token string) (Operation, bool) {
	op, ok := registry[strings.ToLower(token)]
	return op, ok
}

// Tokens returns every accepted token, sorted.
func Tokens() []string {
	out := make([]string, 0, len(registry))
	for tok := range registry {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Operations returns the registered operations in declaration order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	for i, op := range operations {
		op.Aliases = append([]string(nil), op.Aliases...)
		out[i] = op
	}
	return out
}

// New resolves token and coerces operands into a Calculation. It does not
// compute the result.
func New(token string, operands ...any) (Calculation, error) {
	op, ok := Lookup(token)
	if !ok {
		return Calculation{}, operation.UnknownOperation(token)
	}
	nums, err := operation.Numbers(operands)
	if err != nil {
		return Calculation{}, err
	}
	return Calculation{name: token, fn: op.Func, operands: nums}, nil
}
