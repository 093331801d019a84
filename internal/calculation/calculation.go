package calculation

import "linecalc/internal/operation"

// Calculation is one resolved operation together with its operands.
//
// The zero value is not usable; build calculations with New.
type Calculation struct {
	name     string
	fn       operation.Func
	operands []float64
}

// Name returns the token the calculation was created with, such as "times"
// or "*", rather than the canonical operation name.
func (c Calculation) Name() string { return c.name }

// Operands returns a copy of the coerced operands.
func (c Calculation) Operands() []float64 {
	out := make([]float64, len(c.operands))
	copy(out, c.operands)
	return out
}

// Compute runs the operation. Repeated calls return the same result.
func (c Calculation) Compute() (float64, error) {
	if c.fn == nil {
		return 0, operation.UnknownOperation(c.name)
	}
	return c.fn(operation.Values(c.operands)...)
}
