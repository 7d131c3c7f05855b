// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

// GenShuttleProgram creates a program that sweeps the head back and forth
// over width cells forever. Width below 2 is raised to 2.
func GenShuttleProgram(width int) primitives.ProgramConfig {
	if width < 2 {
		width = 2
	}
	b := primitives.NewProgramBuilder(fmt.Sprintf("shuttle_%d", width), "r0").Blank("_")
	for i := 0; i < width-1; i++ {
		b.State(fmt.Sprintf("r%d", i)).On("_", "", primitives.MoveRight, fmt.Sprintf("r%d", i+1))
	}
	b.State(fmt.Sprintf("r%d", width-1)).On("_", "", primitives.MoveLeft, fmt.Sprintf("l%d", width-2))
	for i := width - 2; i > 0; i-- {
		b.State(fmt.Sprintf("l%d", i)).On("_", "", primitives.MoveLeft, fmt.Sprintf("l%d", i-1))
	}
	b.State("l0").On("_", "", primitives.MoveRight, "r1")
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// GenGrowProgram creates a program that writes 1 and moves in dir forever,
// growing the tape by one cell per step.
func GenGrowProgram(dir primitives.Move) primitives.ProgramConfig {
	p, err := primitives.NewProgramBuilder("grow", "grow").
		Blank("_").
		State("grow").
		On("_", "1", dir, "grow").
		Done().
		Build()
	if err != nil {
		panic(err)
	}
	return p
}

// StartedMachine creates and starts a machine with no step limit.
func StartedMachine(program primitives.ProgramConfig, input string) *core.Machine {
	m := core.NewMachine(program)
	if err := m.Start(input); err != nil {
		panic(err)
	}
	return m
}

// GenSnapshotYAML generates YAML bytes for a snapshot after steps steps of a
// growing program, so the tape holds steps+1 cells.
func GenSnapshotYAML(steps int) []byte {
	m := StartedMachine(GenGrowProgram(primitives.MoveRight), "")
	ctx := context.Background()
	for i := 0; i < steps; i++ {
		if _, err := m.Step(ctx); err != nil {
			panic(err)
		}
	}
	data, err := yaml.Marshal(m.Snapshot())
	if err != nil {
		panic(err)
	}
	return data
}
