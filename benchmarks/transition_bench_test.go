// Package benchmarks provides performance benchmarks for single machine steps.
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

func BenchmarkStepShuttle(b *testing.B) {
	for _, width := range []int{2, 16, 256} {
		b.Run(fmt.Sprintf("width=%d", width), func(b *testing.B) {
			m := StartedMachine(GenShuttleProgram(width), "")
			ctx := context.Background()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := m.Step(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStepGrow(b *testing.B) {
	for _, dir := range []primitives.Move{primitives.MoveLeft, primitives.MoveRight} {
		b.Run(string(dir), func(b *testing.B) {
			m := StartedMachine(GenGrowProgram(dir), "")
			ctx := context.Background()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := m.Step(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStepWithPublisher(b *testing.B) {
	pub := &countingPublisher{}
	m := core.NewMachine(GenShuttleProgram(16), core.WithPublisher(pub))
	if err := m.Start(""); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := m.Step(ctx); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	if pub.n != b.N {
		b.Fatalf("published %d steps, want %d", pub.n, b.N)
	}
}

type countingPublisher struct{ n int }

func (p *countingPublisher) Publish(context.Context, primitives.StepEvent, core.MachineMetadata) error {
	p.n++
	return nil
}

func (p *countingPublisher) Close() error { return nil }
