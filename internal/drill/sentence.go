package drill

import (
	"strings"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

func questionSentence(ps []players.Player, ops []Operator, display players.NameDisplay) string {
	terms := make([]string, len(ps))
	for i, p := range ps {
		terms[i] = players.FormatName(p, display)
	}
	return joinTerms(terms, ops)
}

// explanationSentence shows each operand as NumberDisp(name), e.g. "00(岡林勇希) ＋ 18(髙橋宏斗)".
func explanationSentence(ps []players.Player, ops []Operator, display players.NameDisplay) string {
	terms := make([]string, len(ps))
	for i, p := range ps {
		terms[i] = p.NumberDisp + "(" + players.FormatName(p, display) + ")"
	}
	return joinTerms(terms, ops)
}

func joinTerms(terms []string, ops []Operator) string {
	var b strings.Builder
	for i, term := range terms {
		if i > 0 && i-1 < len(ops) {
			b.WriteString(" ")
			b.WriteString(ops[i-1].Glyph())
			b.WriteString(" ")
		}
		b.WriteString(term)
	}
	return b.String()
}
