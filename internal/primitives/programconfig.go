// Package primitives defines the foundational data structures for the Turing machine driver.
// All implementations use only the Go standard library (stdlib-only).
//
// ProgramConfig represents a complete Turing machine program: the initial
// state, the halting states, an optional blank alias and the rule tables of
// every control state.
// Validation ensures ID/Initial presence, rule validity, target existence, and no orphans.
package primitives

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// TapeBlank is the tape's blank symbol. Program.Blank aliases it.
const TapeBlank = ' '

// ProgramConfig defines a Turing machine program.
type ProgramConfig struct {
	Version string                  `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string                  `json:"id" yaml:"id"`
	Initial string                  `json:"initial" yaml:"initial"`
	Blank   string                  `json:"blank,omitempty" yaml:"blank,omitempty"`
	Accept  []string                `json:"accept,omitempty" yaml:"accept,omitempty"`
	Reject  []string                `json:"reject,omitempty" yaml:"reject,omitempty"`
	States  map[string]*StateConfig `json:"states" yaml:"states"`
}

// Normalize fills empty state IDs from their map keys. Decoders call it
// before Validate so program files may omit the redundant id field.
func (p *ProgramConfig) Normalize() {
	for key, s := range p.States {
		if s == nil {
			s = NewStateConfig(key)
			p.States[key] = s
		}
		if s.ID == "" {
			s.ID = key
		}
	}
}

// Validate validates the entire program:
// - Non-empty ID and Initial
// - Initial names a known state
// - Blank, when set, is a single character
// - All individual states validate
// - All rule targets name a known state
// - No state is both accepting and rejecting
// - No orphaned states (all reachable from Initial via rules)
func (p *ProgramConfig) Validate() error {
	if p.ID == "" {
		return errors.New("program ID is required")
	}
	if p.Initial == "" {
		return errors.New("initial state ID is required")
	}
	if len(p.States) == 0 {
		return errors.New("states map is required and cannot be empty")
	}
	if p.Blank != "" && utf8.RuneCountInString(p.Blank) != 1 {
		return fmt.Errorf("blank symbol %q must be a single character", p.Blank)
	}
	if !p.Known(p.Initial) {
		return fmt.Errorf("initial state %q not found in states", p.Initial)
	}

	accept := make(map[string]bool, len(p.Accept))
	for _, id := range p.Accept {
		if strings.TrimSpace(id) == "" {
			return errors.New("empty accept state ID")
		}
		accept[id] = true
	}
	for _, id := range p.Reject {
		if strings.TrimSpace(id) == "" {
			return errors.New("empty reject state ID")
		}
		if accept[id] {
			return fmt.Errorf("state %q is both accepting and rejecting", id)
		}
	}

	for key, state := range p.States {
		if state == nil {
			return fmt.Errorf("state %q is nil", key)
		}
		if state.ID != key {
			return fmt.Errorf("state key %q does not match state ID %q", key, state.ID)
		}
		if err := state.Validate(); err != nil {
			return fmt.Errorf("state %q validation failed: %w", key, err)
		}
	}

	for sid, state := range p.States {
		for read, rule := range state.On {
			if !p.Known(rule.Next) {
				return fmt.Errorf("invalid rule target %q (state %q, symbol %q)", rule.Next, sid, read)
			}
		}
	}

	visited := make(map[string]bool)
	p.markReachable(p.Initial, visited)
	for _, sid := range p.StateIDs() {
		if !visited[sid] {
			return fmt.Errorf("orphaned state %q (not reachable from initial %q)", sid, p.Initial)
		}
	}

	return nil
}

// markReachable marks every state reachable from id through rule targets.
func (p *ProgramConfig) markReachable(id string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	state, ok := p.States[id]
	if !ok {
		return
	}
	for _, next := range state.Targets() {
		p.markReachable(next, visited)
	}
}

// Known reports whether id names a state with rules or a halting state.
func (p *ProgramConfig) Known(id string) bool {
	if _, ok := p.States[id]; ok {
		return true
	}
	return p.IsAccept(id) || p.IsReject(id)
}

// IsAccept reports whether id is an accepting state.
func (p *ProgramConfig) IsAccept(id string) bool {
	for _, a := range p.Accept {
		if a == id {
			return true
		}
	}
	return false
}

// IsReject reports whether id is a rejecting state.
func (p *ProgramConfig) IsReject(id string) bool {
	for _, r := range p.Reject {
		if r == id {
			return true
		}
	}
	return false
}

// StateIDs returns the IDs of states with rule tables, sorted.
func (p *ProgramConfig) StateIDs() []string {
	ids := make([]string, 0, len(p.States))
	for id := range p.States {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Symbol resolves a rule or input symbol to the rune written on the tape.
// The Blank alias maps to TapeBlank.
func (p *ProgramConfig) Symbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol %q must be a single character", s)
	}
	if p.Blank != "" && s == p.Blank {
		return TapeBlank, nil
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Translate maps every Blank alias in input to TapeBlank.
func (p *ProgramConfig) Translate(input string) string {
	if p.Blank == "" {
		return input
	}
	return strings.ReplaceAll(input, p.Blank, string(TapeBlank))
}

// Display maps tape blanks back to the Blank alias, for output.
func (p *ProgramConfig) Display(tape string) string {
	if p.Blank == "" {
		return tape
	}
	return strings.ReplaceAll(tape, string(TapeBlank), p.Blank)
}
