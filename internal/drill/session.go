package drill

import "fmt"

// Phase is the drill UI lifecycle state.
type Phase string

const (
	PhaseInit      Phase = "init"
	PhaseAnswering Phase = "answering"
	PhaseAnswered  Phase = "answered"
)

// Result is the verdict revealed once a session is answered.
type Result struct {
	Correct       bool `json:"correct"`
	Answer        int  `json:"answer"`
	CorrectNumber int  `json:"correctNumber"`
}

// Session tracks one question through init/retry → answering → answered.
// Input is recorded without judging; judging happens only on Submit.
type Session struct {
	phase    Phase
	question Question
	answer   *int
	result   Result
}

// NewSession returns a session in PhaseInit.
func NewSession() *Session {
	return &Session{phase: PhaseInit}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Question returns the active question.
func (s *Session) Question() Question { return s.question }

// Result returns the verdict; only meaningful in PhaseAnswered.
func (s *Session) Result() Result { return s.result }

// Begin starts answering q. Allowed from PhaseInit and, as a retry, from PhaseAnswered.
func (s *Session) Begin(q Question) error {
	if s.phase == PhaseAnswering {
		return fmt.Errorf("%w: begin while %s", ErrInvalidTransition, s.phase)
	}
	s.phase = PhaseAnswering
	s.question = q
	s.answer = nil
	s.result = Result{}
	return nil
}

// Answer records (or replaces) the user's numeric input.
func (s *Session) Answer(n int) error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("%w: answer while %s", ErrInvalidTransition, s.phase)
	}
	s.answer = &n
	return nil
}

// Submit freezes the question and judges the recorded answer by exact equality.
func (s *Session) Submit() (Result, error) {
	if s.phase != PhaseAnswering {
		return Result{}, fmt.Errorf("%w: submit while %s", ErrInvalidTransition, s.phase)
	}
	if s.answer == nil {
		return Result{}, fmt.Errorf("%w: submit without an answer", ErrInvalidTransition)
	}
	s.result = Result{
		Correct:       *s.answer == s.question.CorrectNumber,
		Answer:        *s.answer,
		CorrectNumber: s.question.CorrectNumber,
	}
	s.phase = PhaseAnswered
	return s.result, nil
}
