// Package core provides the runtime core tier of the Turing machine driver.
// This includes the Machine runtime, the step loop and the step history.
// Dependencies: internal/primitives, the root turingx tape.
// Pluggable components are declared here and implemented in internal/production.
//go:generate go test ./...

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/turingx"
	"github.com/comalice/turingx/internal/primitives"
)

// Pluggable component interfaces.

type Persister interface {
	Save(ctx context.Context, snapshot MachineSnapshot) error
	Load(ctx context.Context, machineID string) (MachineSnapshot, error)
}

type StepPublisher interface {
	Publish(ctx context.Context, event primitives.StepEvent, metadata MachineMetadata) error
	Close() error
}

type Visualizer interface {
	ExportDOT(program primitives.ProgramConfig, current string) string
	RenderTape(tape *turingx.Tape, radius int) string
}

// Verdict is the run status of a machine.
type Verdict string

const (
	Running  Verdict = "running"
	Accepted Verdict = "accepted"
	Rejected Verdict = "rejected"
	Halted   Verdict = "halted" // no rule for the symbol under the head
)

// MachineSnapshot is the serializable snapshot of machine runtime state.
type MachineSnapshot struct {
	MachineID string                   `json:"machineID" yaml:"machineID"`
	Program   primitives.ProgramConfig `json:"program" yaml:"program"`
	State     string                   `json:"state" yaml:"state"`
	Verdict   Verdict                  `json:"verdict" yaml:"verdict"`
	Steps     int                      `json:"steps" yaml:"steps"`
	Tape      string                   `json:"tape" yaml:"tape"` // every materialized cell, untrimmed
	Head      int                      `json:"head" yaml:"head"` // offset from the leftmost cell
	Timestamp time.Time                `json:"timestamp" yaml:"timestamp"`
}

type MachineMetadata struct {
	MachineID  string    `json:"machineID" yaml:"machineID"`
	Transition string    `json:"transition" yaml:"transition"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// Result summarizes a finished (or interrupted) run.
type Result struct {
	State   string
	Verdict Verdict
	Steps   int
	Output  string // tape snapshot
}

// Option applies configuration to Machine via functional options pattern.
type Option func(*Machine)

// Machine runs a Turing machine program over a turingx.Tape.
// A Machine is driven by one goroutine; it is not safe for concurrent use.
type Machine struct {
	id       string
	program  primitives.ProgramConfig
	rules    ruleTable
	tape     *turingx.Tape
	state    string
	steps    int
	verdict  Verdict
	started  bool
	maxSteps int
	every    int // checkpoint interval in steps; 0 = only on halt
	history  *StepHistory
	logger   *zap.Logger
	// Pluggable components (nil = disabled)
	persister  Persister
	publisher  StepPublisher
	visualizer Visualizer
}

// NewMachine creates a Machine for program. Call Start before stepping.
func NewMachine(program primitives.ProgramConfig, opts ...Option) *Machine {
	m := &Machine{
		id:      program.ID,
		program: program,
		tape:    turingx.New(),
		state:   program.Initial,
		verdict: Running,
		history: NewStepHistory(DefaultHistorySize),
		logger:  Logger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start validates the program, loads input onto a fresh tape with the head
// on its first symbol, and enters the initial state. Calling Start again
// resets the run.
func (m *Machine) Start(input string) error {
	if err := m.program.Validate(); err != nil {
		return fmt.Errorf("invalid program %q: %w", m.program.ID, err)
	}
	rules, err := compileProgram(&m.program)
	if err != nil {
		return fmt.Errorf("compile program %q: %w", m.program.ID, err)
	}

	m.rules = rules
	m.tape = turingx.Load(m.program.Translate(input))
	m.state = m.program.Initial
	m.steps = 0
	m.verdict = verdictFor(&m.program, m.state)
	m.history.Clear()
	m.started = true

	m.logger.Info("machine started",
		zap.String("machine", m.id),
		zap.String("version", primitives.ComputeVersion(&m.program)),
		zap.String("state", m.state),
		zap.Int("input_len", len([]rune(input))))
	return nil
}

// Step executes one transition. It returns ErrHalted once the machine has
// stopped, including the step on which no rule matched.
func (m *Machine) Step(ctx context.Context) (primitives.StepEvent, error) {
	if !m.started {
		return primitives.StepEvent{}, ErrNotStarted
	}
	if m.verdict != Running {
		return primitives.StepEvent{}, ErrHalted
	}
	if err := ctx.Err(); err != nil {
		return primitives.StepEvent{}, err
	}

	sym := m.tape.Read()
	r, ok := m.rules.lookup(m.state, sym)
	if !ok {
		m.verdict = Halted
		m.logger.Debug("no rule, halting",
			zap.String("machine", m.id),
			zap.String("state", m.state),
			zap.String("symbol", string(sym)))
		m.checkpoint(ctx)
		return primitives.StepEvent{}, ErrHalted
	}

	written := sym
	if r.hasWrite {
		written = r.write
		m.tape.Write(written)
	}
	applyMove(m.tape, r.move)

	from := m.state
	m.steps++
	m.state = r.next
	m.verdict = verdictFor(&m.program, m.state)

	ev := primitives.NewStepEvent(m.steps, from, sym, written, r.move, r.next)
	m.history.Record(ev)
	m.afterStep(ctx, ev)
	return ev, nil
}

// Run steps the machine until it halts, ctx is cancelled or the step limit
// is reached. Halting is not an error.
func (m *Machine) Run(ctx context.Context) (Result, error) {
	if !m.started {
		return Result{}, ErrNotStarted
	}
	for m.verdict == Running {
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			m.logger.Warn("step limit reached",
				zap.String("machine", m.id),
				zap.Int("steps", m.steps))
			return m.Result(), fmt.Errorf("after %d steps: %w", m.steps, ErrStepLimit)
		}
		if _, err := m.Step(ctx); err != nil {
			if errors.Is(err, ErrHalted) {
				break
			}
			return m.Result(), err
		}
	}

	m.logger.Info("machine halted",
		zap.String("machine", m.id),
		zap.String("state", m.state),
		zap.String("verdict", string(m.verdict)),
		zap.Int("steps", m.steps))
	return m.Result(), nil
}

// Result reports the current run status.
func (m *Machine) Result() Result {
	return Result{
		State:   m.state,
		Verdict: m.verdict,
		Steps:   m.steps,
		Output:  m.tape.Snapshot(),
	}
}

// ID returns the machine ID used for persistence.
func (m *Machine) ID() string { return m.id }

// Program returns the machine's program.
func (m *Machine) Program() primitives.ProgramConfig { return m.program }

// State returns the current control state.
func (m *Machine) State() string { return m.state }

// Steps returns the number of executed steps.
func (m *Machine) Steps() int { return m.steps }

// Verdict returns the current verdict.
func (m *Machine) Verdict() Verdict { return m.verdict }

// Tape returns the machine's tape. Callers must not mutate it while stepping.
func (m *Machine) Tape() *turingx.Tape { return m.tape }

// History returns the step history.
func (m *Machine) History() *StepHistory { return m.history }

// Snapshot captures the runtime state for persistence.
func (m *Machine) Snapshot() MachineSnapshot {
	return MachineSnapshot{
		MachineID: m.id,
		Program:   m.program,
		State:     m.state,
		Verdict:   m.verdict,
		Steps:     m.steps,
		Tape:      string(m.tape.Cells()),
		Head:      m.tape.HeadOffset(),
		Timestamp: time.Now(),
	}
}

// Restore replaces the runtime state from a snapshot of the same program.
// The machine counts as started afterwards.
func (m *Machine) Restore(snapshot MachineSnapshot) error {
	if m.id != snapshot.MachineID {
		return fmt.Errorf("machine ID mismatch: have %q, snapshot %q: %w", m.id, snapshot.MachineID, ErrProgramMismatch)
	}
	if primitives.Fingerprint(&m.program) != primitives.Fingerprint(&snapshot.Program) {
		return fmt.Errorf("program %q changed since snapshot: %w", m.program.ID, ErrProgramMismatch)
	}
	if err := m.program.Validate(); err != nil {
		return fmt.Errorf("invalid program %q: %w", m.program.ID, err)
	}
	rules, err := compileProgram(&m.program)
	if err != nil {
		return fmt.Errorf("compile program %q: %w", m.program.ID, err)
	}
	tape, err := turingx.Restore([]rune(snapshot.Tape), snapshot.Head)
	if err != nil {
		return fmt.Errorf("restore tape: %w", err)
	}
	if !m.program.Known(snapshot.State) {
		return fmt.Errorf("snapshot state %q not in program %q: %w", snapshot.State, m.program.ID, ErrProgramMismatch)
	}

	verdict, err := restoredVerdict(&m.program, rules, snapshot.State, tape.Read(), snapshot.Verdict)
	if err != nil {
		return err
	}

	m.rules = rules
	m.tape = tape
	m.state = snapshot.State
	m.steps = snapshot.Steps
	m.verdict = verdict
	m.history.Clear()
	m.started = true
	return nil
}

// Visualize returns the Graphviz DOT diagram of the program with the current state highlighted.
func (m *Machine) Visualize() string {
	if m.visualizer == nil {
		return "ERROR: No visualizer configured. Use WithVisualizer(&production.DefaultVisualizer{})"
	}
	return m.visualizer.ExportDOT(m.program, m.state)
}

// RenderTape returns a text window of radius cells around the head.
func (m *Machine) RenderTape(radius int) string {
	if m.visualizer == nil {
		return m.tape.Snapshot()
	}
	return m.visualizer.RenderTape(m.tape, radius)
}

//
// Helper Functions (internal API)
//

// restoredVerdict checks a stored verdict against the state and head symbol
// it was saved with. An empty verdict is derived from the state. Halted is
// only valid in a non-halting state with no rule for the head symbol.
func restoredVerdict(p *primitives.ProgramConfig, rules ruleTable, state string, sym rune, stored Verdict) (Verdict, error) {
	want := verdictFor(p, state)
	switch {
	case stored == "":
		return want, nil
	case stored == Halted && want == Running:
		if _, ok := rules.lookup(state, sym); ok {
			return "", fmt.Errorf("snapshot halted in state %q with a rule for %q: %w", state, sym, ErrProgramMismatch)
		}
		return Halted, nil
	case stored != want:
		return "", fmt.Errorf("snapshot verdict %q does not match state %q (%s): %w", stored, state, want, ErrProgramMismatch)
	}
	return want, nil
}

// afterStep publishes the step and checkpoints when due.
// Hook failures are logged; they never stop the run.
func (m *Machine) afterStep(ctx context.Context, ev primitives.StepEvent) {
	if m.publisher != nil {
		md := MachineMetadata{
			MachineID:  m.id,
			Transition: fmt.Sprintf("%s -> %s", ev.State, ev.Next),
			Timestamp:  time.Now(),
		}
		if err := m.publisher.Publish(ctx, ev, md); err != nil {
			m.logger.Warn("publish step failed",
				zap.String("machine", m.id),
				zap.Int("step", ev.Step),
				zap.Error(err))
		}
	}
	if m.verdict != Running || (m.every > 0 && m.steps%m.every == 0) {
		m.checkpoint(ctx)
	}
}

// checkpoint saves a snapshot through the persister, if any.
func (m *Machine) checkpoint(ctx context.Context) {
	if m.persister == nil {
		return
	}
	if err := m.persister.Save(ctx, m.Snapshot()); err != nil {
		m.logger.Warn("checkpoint failed",
			zap.String("machine", m.id),
			zap.Int("steps", m.steps),
			zap.Error(err))
	}
}
