// Tests for file persisters round-trip and integration with Machine.
package production

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

func testProgram(t *testing.T) primitives.ProgramConfig {
	t.Helper()
	p, err := primitives.NewProgramBuilder("test-machine", "right").
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
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func persisters(t *testing.T) map[string]core.Persister {
	t.Helper()
	j, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONPersister failed: %v", err)
	}
	y, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewYAMLPersister failed: %v", err)
	}
	return map[string]core.Persister{"json": j, "yaml": y}
}

func TestPersister_RoundTrip(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			snapshot := core.MachineSnapshot{
				MachineID: "test-machine",
				Program:   testProgram(t),
				State:     "carry",
				Verdict:   core.Running,
				Steps:     5,
				Tape:      " 1011 ",
				Head:      4,
				Timestamp: time.Now().UTC().Truncate(time.Second),
			}

			if err := p.Save(context.Background(), snapshot); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := p.Load(context.Background(), "test-machine")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if loaded.State != snapshot.State || loaded.Steps != snapshot.Steps || loaded.Verdict != snapshot.Verdict {
				t.Errorf("runtime fields mismatch: got %+v", loaded)
			}
			if loaded.Tape != snapshot.Tape || loaded.Head != snapshot.Head {
				t.Errorf("tape mismatch: got %q@%d, want %q@%d", loaded.Tape, loaded.Head, snapshot.Tape, snapshot.Head)
			}
			if !loaded.Timestamp.Equal(snapshot.Timestamp) {
				t.Errorf("timestamp mismatch: got %v, want %v", loaded.Timestamp, snapshot.Timestamp)
			}
			if primitives.Fingerprint(&loaded.Program) != primitives.Fingerprint(&snapshot.Program) {
				t.Errorf("program changed across round trip")
			}
		})
	}
}

func TestPersister_LoadNonExistent(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			_, err := p.Load(context.Background(), "nonexistent")
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Expected os.ErrNotExist wrapped error, got %v", err)
			}
		})
	}
}

func TestPersister_InvalidMachineID(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "..", "../escape", `a\b`} {
				err := p.Save(context.Background(), core.MachineSnapshot{MachineID: id})
				if !errors.Is(err, ErrInvalidMachineID) {
					t.Errorf("Save(%q) error = %v, want ErrInvalidMachineID", id, err)
				}
			}
		})
	}
}

func TestYAMLPersister_RejectsInvalidProgram(t *testing.T) {
	dir := t.TempDir()
	p, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	bad := "machineID: broken\nprogram:\n  id: broken\n  initial: missing\n  states:\n    a: {}\nstate: a\n"
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(context.Background(), "broken"); err == nil {
		t.Error("expected validation error")
	}
}

func TestNewPersister(t *testing.T) {
	dir := t.TempDir()
	if p, err := NewPersister(dir, "json"); err != nil {
		t.Fatal(err)
	} else if _, ok := p.(*JSONPersister); !ok {
		t.Errorf("json format gave %T", p)
	}
	if p, err := NewPersister(dir, ""); err != nil {
		t.Fatal(err)
	} else if _, ok := p.(*YAMLPersister); !ok {
		t.Errorf("default format gave %T", p)
	}
	if _, err := NewPersister(dir, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPersister_Integration_RestoreMachine(t *testing.T) {
	dir := t.TempDir()
	p, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}
	program := testProgram(t)
	ctx := context.Background()

	m := core.NewMachine(program, core.WithPersister(p), core.WithCheckpointEvery(3), core.WithMaxSteps(6))
	if err := m.Start("1011"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Run(ctx); !errors.Is(err, core.ErrStepLimit) {
		t.Fatalf("expected step limit, got %v", err)
	}

	loaded, err := p.Load(ctx, "test-machine")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Steps != 6 {
		t.Fatalf("last checkpoint at step %d, want 6", loaded.Steps)
	}

	m2 := core.NewMachine(program)
	if err := m2.Restore(loaded); err != nil {
		t.Fatal(err)
	}
	res, err := m2.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != "1100" || res.Verdict != core.Accepted || res.Steps != 8 {
		t.Errorf("resumed result = %+v", res)
	}
}
