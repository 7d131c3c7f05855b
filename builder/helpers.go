// Package builder provides ready-made Turing machine programs built with the
// fluent program builder. The programs use "_" as the blank alias.
package builder

import (
	"fmt"
	"sort"

	"github.com/comalice/turingx/internal/primitives"
)

// Program is a compiled-in program definition.
type Program = primitives.ProgramConfig

// Builtin names a constructor for one of the ready-made programs.
type Builtin func() (Program, error)

var builtins = map[string]Builtin{
	"binary-increment": BinaryIncrement,
	"unary-add":        UnaryAdd,
	"palindrome":       Palindrome,
}

// Names lists the built-in programs, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the named built-in program.
func ByName(name string) (Program, error) {
	b, ok := builtins[name]
	if !ok {
		return Program{}, fmt.Errorf("unknown built-in program %q (have %v)", name, Names())
	}
	return b()
}

// BinaryIncrement adds one to a binary number. The head starts on the most
// significant digit.
func BinaryIncrement() (Program, error) {
	return primitives.NewProgramBuilder("binary-increment", "right").
		Blank("_").
		State("right").
		On("0", "", primitives.MoveRight, "right").
		On("1", "", primitives.MoveRight, "right").
		On("_", "", primitives.MoveLeft, "carry").
		State("carry").
		On("1", "0", primitives.MoveLeft, "carry").
		On("0", "1", primitives.MoveNone, "done").
		On("_", "1", primitives.MoveNone, "done").
		Done().
		Accept("done").
		Build()
}

// UnaryAdd joins two unary numbers separated by "+", so "111+11" becomes
// "11111".
func UnaryAdd() (Program, error) {
	return primitives.NewProgramBuilder("unary-add", "scan").
		Blank("_").
		State("scan").
		On("1", "", primitives.MoveRight, "scan").
		On("+", "1", primitives.MoveRight, "seek").
		State("seek").
		On("1", "", primitives.MoveRight, "seek").
		On("_", "", primitives.MoveLeft, "erase").
		State("erase").
		On("1", "_", primitives.MoveNone, "done").
		Done().
		Accept("done").
		Build()
}

// Palindrome accepts words over {a, b} that read the same in both
// directions. It erases matching outer symbols until the tape is blank.
func Palindrome() (Program, error) {
	b := primitives.NewProgramBuilder("palindrome", "start").
		Blank("_").
		Accept("accept").
		Reject("reject")

	b.State("start").
		On("a", "_", primitives.MoveRight, "have-a").
		On("b", "_", primitives.MoveRight, "have-b").
		On("_", "", primitives.MoveNone, "accept")

	for _, sym := range []string{"a", "b"} {
		other := "b"
		if sym == "b" {
			other = "a"
		}
		b.State("have-"+sym).
			On("a", "", primitives.MoveRight, "have-"+sym).
			On("b", "", primitives.MoveRight, "have-"+sym).
			On("_", "", primitives.MoveLeft, "check-"+sym)
		b.State("check-"+sym).
			On(sym, "_", primitives.MoveLeft, "back").
			On(other, "", primitives.MoveNone, "reject").
			On("_", "", primitives.MoveNone, "accept")
	}

	b.State("back").
		On("a", "", primitives.MoveLeft, "back").
		On("b", "", primitives.MoveLeft, "back").
		On("_", "", primitives.MoveRight, "start")

	return b.Build()
}
