package operation

// Func is a variadic arithmetic operation over untyped operands.
type Func func(values ...any) (float64, error)

// Add returns the sum of all operands. With no operands it returns 0.
func Add(values ...any) (float64, error) {
	nums, err := Numbers(values)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum, nil
}

// Subtract returns the first operand minus the sum of the rest.
func Subtract(values ...any) (float64, error) {
	nums, err := Numbers(values)
	if err != nil {
		return 0, err
	}
	if err := requireOperands("subtract", nums); err != nil {
		return 0, err
	}
	var rest float64
	for _, n := range nums[1:] {
		rest += n
	}
	return nums[0] - rest, nil
}

// Multiply returns the left-to-right product of all operands.
func Multiply(values ...any) (float64, error) {
	nums, err := Numbers(values)
	if err != nil {
		return 0, err
	}
	if err := requireOperands("multiply", nums); err != nil {
		return 0, err
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return product, nil
}

// Divide divides the first operand by each remaining operand in turn.
func Divide(values ...any) (float64, error) {
	nums, err := Numbers(values)
	if err != nil {
		return 0, err
	}
	if err := requireOperands("divide", nums); err != nil {
		return 0, err
	}
	quotient := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return 0, &Error{Kind: ErrDivisionByZero}
		}
		quotient /= n
	}
	return quotient, nil
}
