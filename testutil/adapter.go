// Package testutil runs table-driven conformance cases against a program.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

// Case is one input and the expected outcome of running it to halt.
type Case struct {
	Name    string
	Input   string
	Output  string       // expected Snapshot, with blanks shown as the program's alias
	Verdict core.Verdict // empty means core.Accepted
	Steps   int          // zero skips the step count check
}

// DefaultMaxSteps bounds each case so a looping program fails instead of hanging.
const DefaultMaxSteps = 100_000

// RunCases runs every case on a fresh machine in its own subtest.
func RunCases(t *testing.T, program primitives.ProgramConfig, cases []Case, opts ...core.Option) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			res := Run(t, program, tc.Input, opts...)

			want := tc.Verdict
			if want == "" {
				want = core.Accepted
			}
			assert.Equal(t, want, res.Verdict, "verdict")
			assert.Equal(t, tc.Output, program.Display(res.Output), "tape")
			if tc.Steps > 0 {
				assert.Equal(t, tc.Steps, res.Steps, "steps")
			}
		})
	}
}

// Run starts a machine on input and runs it to halt.
func Run(tb testing.TB, program primitives.ProgramConfig, input string, opts ...core.Option) core.Result {
	tb.Helper()
	opts = append([]core.Option{core.WithMaxSteps(DefaultMaxSteps)}, opts...)
	m := core.NewMachine(program, opts...)
	require.NoError(tb, m.Start(input))
	res, err := m.Run(context.Background())
	require.NoError(tb, err)
	return res
}
