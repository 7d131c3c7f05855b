// Package primitives includes builder helpers for ProgramConfig.
package primitives

// ProgramBuilder builds a ProgramConfig fluently.
type ProgramBuilder struct {
	config *ProgramConfig
}

// NewProgramBuilder creates a new ProgramBuilder.
func NewProgramBuilder(id, initial string) *ProgramBuilder {
	return &ProgramBuilder{
		config: &ProgramConfig{
			ID:      id,
			Initial: initial,
			States:  make(map[string]*StateConfig),
		},
	}
}

// State starts or resumes a state.
func (b *ProgramBuilder) State(id string) *StateBuilder {
	s, ok := b.config.States[id]
	if !ok {
		s = NewStateConfig(id)
		b.config.States[id] = s
	}
	return &StateBuilder{state: s, pb: b}
}

// Accept marks accepting halt states.
func (b *ProgramBuilder) Accept(ids ...string) *ProgramBuilder {
	b.config.Accept = append(b.config.Accept, ids...)
	return b
}

// Reject marks rejecting halt states.
func (b *ProgramBuilder) Reject(ids ...string) *ProgramBuilder {
	b.config.Reject = append(b.config.Reject, ids...)
	return b
}

// Blank sets the blank alias.
func (b *ProgramBuilder) Blank(sym string) *ProgramBuilder {
	b.config.Blank = sym
	return b
}

// Version pins the program version.
func (b *ProgramBuilder) Version(v string) *ProgramBuilder {
	b.config.Version = v
	return b
}

// Build validates and returns the program.
func (b *ProgramBuilder) Build() (ProgramConfig, error) {
	if err := b.config.Validate(); err != nil {
		return ProgramConfig{}, err
	}
	return *b.config, nil
}

// StateBuilder for fluent rules.
type StateBuilder struct {
	state *StateConfig
	pb    *ProgramBuilder
}

// On adds a rule: on read, write, move, go to next.
func (sb *StateBuilder) On(read, write string, move Move, next string) *StateBuilder {
	sb.state.Rule(read, write, move, next)
	return sb
}

// State switches to another state of the same program.
func (sb *StateBuilder) State(id string) *StateBuilder {
	return sb.pb.State(id)
}

// Done returns to the program builder.
func (sb *StateBuilder) Done() *ProgramBuilder {
	return sb.pb
}
