package drill

import (
	"fmt"
	"strings"
)

// Operator is one of the four arithmetic operators a drill can use.
type Operator string

const (
	Add Operator = "+"
	Sub Operator = "-"
	Mul Operator = "*"
	Div Operator = "/"
)

// AllOperators lists every supported operator in display order.
var AllOperators = []Operator{Add, Sub, Mul, Div}

// Valid reports whether op is a supported operator.
func (op Operator) Valid() bool {
	switch op {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}

// Name returns the URL-safe name of the operator ("add", "sub", "mul", "div").
func (op Operator) Name() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return ""
	}
}

// Glyph returns the full-width glyph used in question sentences.
func (op Operator) Glyph() string {
	switch op {
	case Add:
		return "＋"
	case Sub:
		return "−"
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return string(op)
	}
}

// ParseOperator accepts the ASCII symbol, the name, or the glyph of an operator.
func ParseOperator(raw string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "+", "add", "＋":
		return Add, nil
	case "-", "sub", "−":
		return Sub, nil
	case "*", "mul", "×":
		return Mul, nil
	case "/", "div", "÷":
		return Div, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, raw)
	}
}

// MarshalText encodes op by name so it survives query strings and JSON unchanged.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
	}
	return []byte(op.Name()), nil
}

// UnmarshalText accepts anything ParseOperator does.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// ParseOperators parses a comma separated operator list such as "add,sub".
// Duplicates are dropped; an empty list is an error.
func ParseOperators(raw string) ([]Operator, error) {
	seen := make(map[Operator]bool, len(AllOperators))
	var ops []Operator
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		op, err := ParseOperator(part)
		if err != nil {
			return nil, err
		}
		if !seen[op] {
			seen[op] = true
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no operators", ErrInvalidMode)
	}
	return ops, nil
}

// Apply computes a op b. ok is false when the result is not an integer
// (division by zero or a non-zero remainder) or op is unknown.
func Apply(a int, op Operator, b int) (result int, ok bool) {
	switch op {
	case Add:
		return a + b, true
	case Sub:
		return a - b, true
	case Mul:
		return a * b, true
	case Div:
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}

// Evaluate folds values strictly left to right: (((v0 op0 v1) op1 v2) ...).
// Operator precedence is deliberately ignored.
func Evaluate(values []int, ops []Operator) (int, error) {
	if len(values) == 0 || len(ops) != len(values)-1 {
		return 0, fmt.Errorf("%w: %d values with %d operators", ErrInvalidMode, len(values), len(ops))
	}
	acc := values[0]
	for i, op := range ops {
		if !op.Valid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
		}
		next, ok := Apply(acc, op, values[i+1])
		if !ok {
			return 0, fmt.Errorf("%w: %d %s %d", ErrNonIntegerResult, acc, op, values[i+1])
		}
		acc = next
	}
	return acc, nil
}

func containsOperator(ops []Operator, op Operator) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
