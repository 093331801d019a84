// Package operation defines the arithmetic functions a calculation can run.
//
// Every function is variadic over untyped values. Inputs are coerced to
// float64 before any arithmetic happens, so a bad operand never produces a
// partial result:
//   - Add accepts zero operands and returns 0.
//   - Subtract, Multiply and Divide require at least one operand.
//   - Divide fails at the first zero divisor it reaches.
//
// Failures are returned as *Error values that unwrap to one of the kind
// sentinels (ErrInvalidInput, ErrDivisionByZero, ErrUnknownOperation).
package operation
