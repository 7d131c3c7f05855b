package turingx_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/turingx"
)

func TestNewTapeIsSingleBlankCell(t *testing.T) {
	tp := New()

	assert.Equal(t, Blank, tp.Read())
	assert.Equal(t, " ", tp.Snapshot())
	assert.Equal(t, 1, tp.Len())

	c, ok := tp.Cell(tp.Current())
	require.True(t, ok)
	assert.Equal(t, NoCell, c.Left)
	assert.Equal(t, NoCell, c.Right)
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    rune
	}{
		{"digit", '1'},
		{"letter", 'x'},
		{"blank", Blank},
		{"underscore", '_'},
		{"multibyte", 'λ'},
		{"zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := New()
			tp.Write(tt.c)
			assert.Equal(t, tt.c, tp.Read())
		})
	}
}

func TestMoveCreatesAtMostOneCell(t *testing.T) {
	tp := New()
	rng := rand.New(rand.NewSource(7))

	prev := tp.Len()
	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			tp.MoveLeft()
		} else {
			tp.MoveRight()
		}
		n := tp.Len()
		if n < prev || n > prev+1 {
			t.Fatalf("move %d: cell count went from %d to %d", i, prev, n)
		}
		prev = n
	}
}

func TestMoveReusesExistingNeighbour(t *testing.T) {
	tp := New()
	tp.MoveRight()
	tp.MoveLeft()
	tp.MoveRight()
	tp.MoveLeft()
	assert.Equal(t, 2, tp.Len())
}

func TestMoveLeftThenRightRestoresHead(t *testing.T) {
	tp := New()
	tp.Write('q')
	start := tp.Current()

	tp.MoveLeft()
	assert.NotEqual(t, start, tp.Current())
	tp.MoveRight()

	assert.Equal(t, start, tp.Current())
	assert.Equal(t, 'q', tp.Read())
}

func TestMoveRightThenLeftRestoresHead(t *testing.T) {
	tp := New()
	tp.MoveLeft()
	tp.MoveLeft()
	start := tp.Current()

	tp.MoveRight()
	tp.MoveLeft()
	assert.Equal(t, start, tp.Current())
}

func TestSnapshotTrimsBlankExtremities(t *testing.T) {
	tp := New()
	tp.Write('1')
	tp.MoveRight()
	tp.Write('0')
	tp.MoveRight()
	tp.Write('1')
	tp.MoveLeft()
	tp.MoveLeft()

	assert.Equal(t, "101", tp.Snapshot())
}

func TestSnapshotKeepsInteriorBlanks(t *testing.T) {
	tp := New()
	tp.MoveLeft()
	tp.MoveLeft()
	tp.Write('a')
	tp.MoveRight()
	tp.MoveRight()
	tp.MoveRight()
	tp.Write('b')
	tp.MoveRight()

	assert.Equal(t, "a  b", tp.Snapshot())
}

func TestSnapshotSingleCellShortcut(t *testing.T) {
	tp := New()
	assert.Equal(t, " ", tp.Snapshot())
	assert.NotEqual(t, "", tp.Snapshot())

	// The shortcut applies to any lone cell, written or not.
	tp.Write('X')
	assert.Equal(t, " ", tp.Snapshot())

	tp.MoveRight()
	assert.Equal(t, "X", tp.Snapshot())
}

func TestSnapshotDoesNotMoveHead(t *testing.T) {
	tp := New()
	tp.MoveRight()
	tp.Write('A')
	tp.MoveLeft()
	tp.MoveLeft()
	head := tp.Current()
	n := tp.Len()

	_ = tp.Snapshot()
	_ = tp.Cells()
	_ = tp.HeadOffset()

	assert.Equal(t, head, tp.Current())
	assert.Equal(t, n, tp.Len())
	assert.Equal(t, Blank, tp.Read())
}

func TestSnapshotAllBlankMultiCell(t *testing.T) {
	tp := New()
	tp.MoveRight()
	tp.MoveRight()
	assert.Equal(t, "", tp.Snapshot())
}

func TestSnapshotTrimSet(t *testing.T) {
	tests := []struct {
		name  string
		cells []rune
		want  string
	}{
		{"control characters trimmed", []rune{'\x00', 'A', '\x01'}, "A"},
		{"tab and newline trimmed", []rune{'\t', 'A', '\n'}, "A"},
		{"unicode spaces kept", []rune{'\u00a0', 'B', '\u2003'}, "\u00a0B\u2003"},
		{"interior control kept", []rune{' ', 'a', '\x00', 'b', ' '}, "a\x00b"},
		{"only controls", []rune{'\x00', '\x1f', ' '}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := Restore(tt.cells, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tp.Snapshot())
		})
	}
}

func TestChainSymmetry(t *testing.T) {
	tp := New()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		switch rng.Intn(3) {
		case 0:
			tp.MoveLeft()
		case 1:
			tp.MoveRight()
		default:
			tp.Write(rune('a' + rng.Intn(26)))
		}
	}

	for id := CellID(0); int(id) < tp.Len(); id++ {
		c, ok := tp.Cell(id)
		require.True(t, ok)
		if c.Right != NoCell {
			r, ok := tp.Cell(c.Right)
			require.True(t, ok)
			assert.Equal(t, id, r.Left, "cell %d right neighbour %d does not link back", id, c.Right)
		}
		if c.Left != NoCell {
			l, ok := tp.Cell(c.Left)
			require.True(t, ok)
			assert.Equal(t, id, l.Right, "cell %d left neighbour %d does not link back", id, c.Left)
		}
	}

	// Walking right from the leftmost cell visits every cell exactly once.
	seen := map[CellID]bool{}
	for c := tp.Leftmost(); c != NoCell; {
		require.False(t, seen[c], "cycle at cell %d", c)
		seen[c] = true
		cell, _ := tp.Cell(c)
		c = cell.Right
	}
	assert.Len(t, seen, tp.Len())
	assert.Len(t, tp.Cells(), tp.Len())
}

func TestCellOutOfRange(t *testing.T) {
	tp := New()
	_, ok := tp.Cell(NoCell)
	assert.False(t, ok)
	_, ok = tp.Cell(1)
	assert.False(t, ok)
}

func TestEndToEndScenario(t *testing.T) {
	tp := New()
	tp.MoveRight()
	tp.Write('A')
	tp.MoveRight()
	tp.Write('B')
	tp.MoveLeft()
	tp.MoveLeft()
	tp.MoveLeft()

	assert.Equal(t, Blank, tp.Read())
	assert.Equal(t, "AB", tp.Snapshot())
	assert.Equal(t, 4, tp.Len())
	assert.Equal(t, tp.Leftmost(), tp.Current())
	assert.Equal(t, 0, tp.HeadOffset())
	assert.Equal(t, []rune{' ', ' ', 'A', 'B'}, tp.Cells())
}

func TestLoad(t *testing.T) {
	tp := Load("1011")
	assert.Equal(t, '1', tp.Read())
	assert.Equal(t, 0, tp.HeadOffset())
	assert.Equal(t, 4, tp.Len())
	assert.Equal(t, "1011", tp.Snapshot())

	empty := Load("")
	assert.Equal(t, 1, empty.Len())
	assert.Equal(t, Blank, empty.Read())
}

func TestRestore(t *testing.T) {
	src := New()
	src.MoveRight()
	src.Write('A')
	src.MoveRight()
	src.Write('B')
	src.MoveLeft()

	tp, err := Restore(src.Cells(), src.HeadOffset())
	require.NoError(t, err)
	assert.Equal(t, src.Cells(), tp.Cells())
	assert.Equal(t, src.HeadOffset(), tp.HeadOffset())
	assert.Equal(t, 'A', tp.Read())
	assert.Equal(t, "AB", tp.Snapshot())
}

func TestRestoreErrors(t *testing.T) {
	_, err := Restore(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyTape)

	_, err = Restore([]rune("ab"), 2)
	assert.ErrorIs(t, err, ErrHeadOutOfRange)

	_, err = Restore([]rune("ab"), -1)
	assert.ErrorIs(t, err, ErrHeadOutOfRange)
}
