// Package primitives defines the foundational data structures for the Turing machine driver.
// RuleConfig defines what the machine does after reading a symbol in a state:
// the symbol to write, the head move, and the next state.
//
// Moves accept the canonical letters L, R and N plus the long forms
// left, right, stay and none (case-insensitive).
package primitives

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Move is a head movement.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveNone  Move = "N"
)

// ParseMove normalizes s to one of MoveLeft, MoveRight or MoveNone.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left", "<":
		return MoveLeft, nil
	case "r", "right", ">":
		return MoveRight, nil
	case "n", "none", "stay", "s", "-":
		return MoveNone, nil
	}
	return "", fmt.Errorf("invalid move %q", s)
}

// RuleConfig is the action for one (state, read symbol) pair.
type RuleConfig struct {
	Write string `json:"write,omitempty" yaml:"write,omitempty"` // empty keeps the symbol under the head
	Move  Move   `json:"move" yaml:"move"`
	Next  string `json:"next" yaml:"next"`
}

// Validate checks the rule's symbol, move and target syntax.
func (r *RuleConfig) Validate() error {
	if r.Next == "" {
		return errors.New("next state is required")
	}
	if strings.TrimSpace(r.Next) != r.Next {
		return fmt.Errorf("next state %q has surrounding whitespace", r.Next)
	}
	if r.Write != "" && utf8.RuneCountInString(r.Write) != 1 {
		return fmt.Errorf("write symbol %q must be a single character", r.Write)
	}
	if _, err := ParseMove(string(r.Move)); err != nil {
		return err
	}
	return nil
}
