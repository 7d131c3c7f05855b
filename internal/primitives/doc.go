// Package primitives provides the value types that describe a Turing machine
// program: states, rules, moves and step events.
//
// This package uses ONLY the Go standard library. Struct tags carry both the
// json and yaml names so any serializer in internal/production can decode a
// program without adapters.
//
// Core invariants:
//   - Every symbol is exactly one rune
//   - Program.Blank, when set, aliases the tape blank (' ')
//   - StepEvent is immutable once built
package primitives
