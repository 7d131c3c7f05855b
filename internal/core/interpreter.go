package core

import (
	"fmt"

	"github.com/comalice/turingx"
	"github.com/comalice/turingx/internal/primitives"
)

// rule is a RuleConfig with its symbols resolved to tape runes.
type rule struct {
	write    rune
	hasWrite bool
	move     primitives.Move
	next     string
}

// ruleTable maps state -> read symbol -> rule.
type ruleTable map[string]map[rune]rule

// compileProgram resolves every rule of a validated program once, so a step
// is two map lookups.
func compileProgram(p *primitives.ProgramConfig) (ruleTable, error) {
	table := make(ruleTable, len(p.States))
	for sid, state := range p.States {
		rules := make(map[rune]rule, len(state.On))
		for read, rc := range state.On {
			sym, err := p.Symbol(read)
			if err != nil {
				return nil, fmt.Errorf("state %q: %w", sid, err)
			}
			if _, dup := rules[sym]; dup {
				// "_" and " " both resolve to the blank when "_" is the alias.
				return nil, fmt.Errorf("state %q: symbol %q defined twice", sid, sym)
			}
			mv, err := primitives.ParseMove(string(rc.Move))
			if err != nil {
				return nil, fmt.Errorf("state %q symbol %q: %w", sid, read, err)
			}
			r := rule{move: mv, next: rc.Next}
			if rc.Write != "" {
				w, err := p.Symbol(rc.Write)
				if err != nil {
					return nil, fmt.Errorf("state %q symbol %q: %w", sid, read, err)
				}
				r.write, r.hasWrite = w, true
			}
			rules[sym] = r
		}
		table[sid] = rules
	}
	return table, nil
}

// lookup returns the rule for state and sym, if any.
func (t ruleTable) lookup(state string, sym rune) (rule, bool) {
	rules, ok := t[state]
	if !ok {
		return rule{}, false
	}
	r, ok := rules[sym]
	return r, ok
}

// applyMove moves the head according to mv.
func applyMove(tape *turingx.Tape, mv primitives.Move) {
	switch mv {
	case primitives.MoveLeft:
		tape.MoveLeft()
	case primitives.MoveRight:
		tape.MoveRight()
	}
}

// verdictFor returns the verdict of a machine sitting in state.
func verdictFor(p *primitives.ProgramConfig, state string) Verdict {
	switch {
	case p.IsAccept(state):
		return Accepted
	case p.IsReject(state):
		return Rejected
	}
	return Running
}
