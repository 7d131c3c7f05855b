// Package core provides the runtime core tier of the Turing machine driver.
// Options for configuring Machine instances.
package core

import "go.uber.org/zap"

// WithID overrides the machine ID used for persistence (default: program ID).
func WithID(id string) Option {
	return func(m *Machine) {
		m.id = id
	}
}

// WithMaxSteps bounds Run. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// WithPersister configures the Machine with a custom Persister.
func WithPersister(p Persister) Option {
	return func(m *Machine) {
		m.persister = p
	}
}

// WithCheckpointEvery saves a snapshot every n steps in addition to the
// snapshot taken on halt. Requires a Persister.
func WithCheckpointEvery(n int) Option {
	return func(m *Machine) {
		m.every = n
	}
}

// WithPublisher configures the Machine with a custom StepPublisher.
func WithPublisher(pb StepPublisher) Option {
	return func(m *Machine) {
		m.publisher = pb
	}
}

// WithVisualizer configures the Machine with a custom Visualizer.
func WithVisualizer(v Visualizer) Option {
	return func(m *Machine) {
		m.visualizer = v
	}
}

// WithHistorySize sets how many steps the StepHistory keeps.
func WithHistorySize(size int) Option {
	return func(m *Machine) {
		m.history = NewStepHistory(size)
	}
}

// WithLogger overrides the package logger for one machine.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}
