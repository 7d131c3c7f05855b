// Package primitives defines the foundational data structures for the Turing machine driver.
//
// StateConfig represents one control state and its rule table, keyed by the
// symbol read under the head.
package primitives

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// StateConfig defines a control state.
type StateConfig struct {
	ID string                `json:"id" yaml:"id"`
	On map[string]RuleConfig `json:"on,omitempty" yaml:"on,omitempty"`
}

// NewStateConfig creates a new StateConfig with no rules.
func NewStateConfig(id string) *StateConfig {
	return &StateConfig{ID: id}
}

// WithOn sets the symbol-to-rule map.
func (s *StateConfig) WithOn(on map[string]RuleConfig) *StateConfig {
	s.On = make(map[string]RuleConfig, len(on))
	for k, v := range on {
		s.On[k] = v
	}
	return s
}

// AddRule sets the rule for a read symbol, replacing any previous one.
func (s *StateConfig) AddRule(read string, rule RuleConfig) *StateConfig {
	if s.On == nil {
		s.On = make(map[string]RuleConfig)
	}
	s.On[read] = rule
	return s
}

// Rule adds a rule in its short form.
// Usage: .Rule("1", "0", MoveLeft, "carry").
func (s *StateConfig) Rule(read, write string, move Move, next string) *StateConfig {
	return s.AddRule(read, RuleConfig{Write: write, Move: move, Next: next})
}

// Targets returns the distinct next states named by the rules, sorted.
func (s *StateConfig) Targets() []string {
	seen := make(map[string]bool, len(s.On))
	var out []string
	for _, r := range s.On {
		if !seen[r.Next] {
			seen[r.Next] = true
			out = append(out, r.Next)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks the state ID and every rule.
func (s *StateConfig) Validate() error {
	if s.ID == "" {
		return errors.New("state ID is required")
	}
	for read, rule := range s.On {
		if utf8.RuneCountInString(read) != 1 {
			return fmt.Errorf("read symbol %q in state %s must be a single character", read, s.ID)
		}
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule %q of %s: %w", read, s.ID, err)
		}
	}
	return nil
}
