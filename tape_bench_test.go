package turingx

import "testing"

// BenchmarkMoveRightGrowing measures head movement that materializes a new
// cell on every call.
func BenchmarkMoveRightGrowing(b *testing.B) {
	t := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.MoveRight()
	}
}

// BenchmarkMoveShuttle measures movement over already materialized cells.
// Target: zero allocations
func BenchmarkMoveShuttle(b *testing.B) {
	t := New()
	t.MoveRight()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.MoveLeft()
		t.MoveRight()
	}
}

func BenchmarkReadWrite(b *testing.B) {
	t := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Write('1')
		_ = t.Read()
	}
}

// BenchmarkSnapshot measures linearization of a 1024-cell tape.
func BenchmarkSnapshot(b *testing.B) {
	t := New()
	for i := 0; i < 1024; i++ {
		t.Write(rune('0' + i%2))
		t.MoveRight()
	}
	for i := 0; i < 512; i++ {
		t.MoveLeft()
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = t.Snapshot()
	}
}
