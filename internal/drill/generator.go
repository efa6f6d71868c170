package drill

import (
	"fmt"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// DefaultMaxAttempts bounds how many full reselections a question may take.
const DefaultMaxAttempts = 10

// Generator picks players and operators for drill questions.
// A Generator is not safe for concurrent use when its RandomSource is not.
type Generator struct {
	rng         RandomSource
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts overrides the retry budget; values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator builds a Generator. A nil rng uses DefaultSource.
func NewGenerator(rng RandomSource, opts ...Option) *Generator {
	if rng == nil {
		rng = DefaultSource()
	}
	g := &Generator{rng: rng, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts reports the retry budget.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

// Selection is the raw outcome of a generation: operands in order and the operators between them.
type Selection struct {
	Players   []players.Player
	Operators []Operator
	// Attempts is the number of reselections performed, 1..MaxAttempts.
	Attempts int
	// Fallback is set when the returned sequence contains an operator the mode did not enable.
	Fallback bool
}

// GenerateDrillQuestion selects mode.PlayerNum eligible players in random order and derives an
// operator sequence whose left-to-right evaluation stays a non-negative integer.
//
// Selection is retried up to MaxAttempts times until every operator belongs to mode.Operators.
// When the budget runs out the last attempt is returned as is, possibly carrying a + fallback.
func (g *Generator) GenerateDrillQuestion(all []players.Player, mode Mode) (Selection, error) {
	if err := mode.Validate(); err != nil {
		return Selection{}, err
	}
	eligible := players.Filter(all, mode.Role)
	if len(eligible) < mode.PlayerNum {
		return Selection{}, &InsufficientPlayersError{Need: mode.PlayerNum, Have: len(eligible)}
	}

	var last Selection
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		shuffle(g.rng, eligible)
		picked := append([]players.Player(nil), eligible[:mode.PlayerNum]...)
		ops := g.deriveOperators(picked, mode.Operators)
		last = Selection{
			Players:   picked,
			Operators: ops,
			Attempts:  attempt,
			Fallback:  !conforms(ops, mode.Operators),
		}
		if !last.Fallback {
			return last, nil
		}
	}
	return last, nil
}

// deriveOperators walks adjacent operand pairs and picks, for each, the first enabled operator
// (in random trial order) that keeps the running result a non-negative integer. A step with no
// such operator uses Add.
func (g *Generator) deriveOperators(picked []players.Player, enabled []Operator) []Operator {
	if len(picked) < 2 {
		return nil
	}
	ops := make([]Operator, 0, len(picked)-1)
	acc := picked[0].NumberCalc
	for _, p := range picked[1:] {
		op, next := g.pickOperator(acc, p.NumberCalc, enabled)
		ops = append(ops, op)
		acc = next
	}
	return ops
}

func (g *Generator) pickOperator(acc, operand int, enabled []Operator) (Operator, int) {
	trial := append([]Operator(nil), enabled...)
	shuffle(g.rng, trial)
	for _, op := range trial {
		if v, ok := Apply(acc, op, operand); ok && v >= 0 {
			return op, v
		}
	}
	return Add, acc + operand
}

func conforms(ops, enabled []Operator) bool {
	for _, op := range ops {
		if !containsOperator(enabled, op) {
			return false
		}
	}
	return true
}

// Question is a fully formatted drill question.
type Question struct {
	Players             []players.Player `json:"players"`
	Operators           []Operator       `json:"operators"`
	QuestionSentence    string           `json:"questionSentence"`
	ExplanationSentence string           `json:"explanationSentence"`
	CorrectNumber       int              `json:"correctNumber"`
}

// GenerateQuestionWithOperators formats a question for the given operands.
//
// When fixed has exactly len(ps)-1 entries it is used verbatim without validity checks, which is
// how a stored question is rebuilt. Otherwise a sequence is derived from enabled as in
// GenerateDrillQuestion (single pass, no reselection). ErrNonIntegerResult is returned when the
// final sequence cannot be evaluated in integers.
func (g *Generator) GenerateQuestionWithOperators(ps []players.Player, enabled []Operator, display players.NameDisplay, fixed []Operator) (Question, error) {
	if len(ps) < 1 {
		return Question{}, fmt.Errorf("%w: no players", ErrInvalidMode)
	}

	var ops []Operator
	if fixed != nil && len(fixed) == len(ps)-1 {
		for _, op := range fixed {
			if !op.Valid() {
				return Question{}, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
			}
		}
		ops = append([]Operator(nil), fixed...)
	} else {
		if len(enabled) == 0 && len(ps) > 1 {
			return Question{}, fmt.Errorf("%w: no operators enabled", ErrInvalidMode)
		}
		for _, op := range enabled {
			if !op.Valid() {
				return Question{}, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
			}
		}
		ops = g.deriveOperators(ps, enabled)
	}

	values := make([]int, len(ps))
	for i, p := range ps {
		values[i] = p.NumberCalc
	}
	correct, err := Evaluate(values, ops)
	if err != nil {
		return Question{}, err
	}

	return Question{
		Players:             append([]players.Player(nil), ps...),
		Operators:           ops,
		QuestionSentence:    questionSentence(ps, ops, display),
		ExplanationSentence: explanationSentence(ps, ops, display),
		CorrectNumber:       correct,
	}, nil
}

// Generate runs GenerateDrillQuestion and formats the result.
func (g *Generator) Generate(all []players.Player, mode Mode) (Question, Selection, error) {
	sel, err := g.GenerateDrillQuestion(all, mode)
	if err != nil {
		return Question{}, Selection{}, err
	}
	q, err := g.GenerateQuestionWithOperators(sel.Players, mode.Operators, mode.NameDisplay, sel.Operators)
	if err != nil {
		return Question{}, sel, err
	}
	return q, sel, nil
}
