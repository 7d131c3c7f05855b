package turingx

import (
	"errors"
	"strings"
)

// Blank is the symbol held by every newly materialized cell.
const Blank = ' '

type CellID int

// NoCell marks an absent neighbour link.
const NoCell CellID = -1

var (
	ErrEmptyTape      = errors.New("tape must hold at least one cell")
	ErrHeadOutOfRange = errors.New("head offset out of range")
)

// Cell is one tape position. Left and Right are arena indices, NoCell at the
// materialized extremities.
type Cell struct {
	Content rune
	Left    CellID
	Right   CellID
}

// Tape is an unbounded tape that grows one blank cell at a time whenever the
// head moves past a materialized boundary. Cells live in an append-only arena
// owned by the Tape and are never freed. Not safe for concurrent use.
type Tape struct {
	cells []Cell
	head  CellID
}

//
// Public API
//

// New returns a tape holding a single blank cell under the head.
func New() *Tape {
	t := &Tape{}
	t.head = t.materialize(NoCell, NoCell)
	return t
}

// Load returns a fresh tape with input written from the head rightwards.
// The head is left on the first symbol.
func Load(input string) *Tape {
	t := New()
	n := 0
	for _, r := range input {
		if n > 0 {
			t.MoveRight()
		}
		t.Write(r)
		n++
	}
	for ; n > 1; n-- {
		t.MoveLeft()
	}
	return t
}

// Restore rebuilds a tape from the output of Cells and HeadOffset.
func Restore(cells []rune, head int) (*Tape, error) {
	if len(cells) == 0 {
		return nil, ErrEmptyTape
	}
	if head < 0 || head >= len(cells) {
		return nil, ErrHeadOutOfRange
	}
	t := New()
	t.Write(cells[0])
	for _, r := range cells[1:] {
		t.MoveRight()
		t.Write(r)
	}
	for i := len(cells) - 1; i > head; i-- {
		t.MoveLeft()
	}
	return t, nil
}

// Current returns the cell under the head. It is always valid.
func (t *Tape) Current() CellID {
	return t.head
}

// Read returns the symbol under the head.
func (t *Tape) Read() rune {
	return t.cells[t.head].Content
}

// Write replaces the symbol under the head. Any rune is accepted.
func (t *Tape) Write(c rune) {
	t.cells[t.head].Content = c
}

// MoveLeft moves the head one cell left, materializing a blank cell first if
// the head sits on the leftmost one.
func (t *Tape) MoveLeft() {
	h := t.head
	if t.cells[h].Left == NoCell {
		t.cells[h].Left = t.materialize(NoCell, h)
	}
	t.head = t.cells[h].Left
}

// MoveRight moves the head one cell right, materializing a blank cell first if
// the head sits on the rightmost one.
func (t *Tape) MoveRight() {
	h := t.head
	if t.cells[h].Right == NoCell {
		t.cells[h].Right = t.materialize(h, NoCell)
	}
	t.head = t.cells[h].Right
}

// Snapshot returns the materialized tape read left to right with leading and
// trailing runes at or below U+0020 trimmed. Control characters at the ends
// are trimmed; Unicode spaces above U+0020 are kept. The head is not moved.
//
// A tape whose head cell has no neighbours yields a single blank, whatever
// that cell holds.
func (t *Tape) Snapshot() string {
	h := t.cells[t.head]
	if h.Left == NoCell && h.Right == NoCell {
		return string(Blank)
	}

	var sb strings.Builder
	for c := t.Leftmost(); c != NoCell; c = t.cells[c].Right {
		sb.WriteRune(t.cells[c].Content)
	}
	return strings.TrimFunc(sb.String(), isTrimmed)
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cell returns a copy of the cell with the given id.
func (t *Tape) Cell(id CellID) (Cell, bool) {
	if id < 0 || int(id) >= len(t.cells) {
		return Cell{}, false
	}
	return t.cells[id], true
}

// Leftmost returns the leftmost materialized cell.
func (t *Tape) Leftmost() CellID {
	c := t.head
	for t.cells[c].Left != NoCell {
		c = t.cells[c].Left
	}
	return c
}

// Rightmost returns the rightmost materialized cell.
func (t *Tape) Rightmost() CellID {
	c := t.head
	for t.cells[c].Right != NoCell {
		c = t.cells[c].Right
	}
	return c
}

// Cells returns every materialized symbol left to right, untrimmed.
func (t *Tape) Cells() []rune {
	out := make([]rune, 0, len(t.cells))
	for c := t.Leftmost(); c != NoCell; c = t.cells[c].Right {
		out = append(out, t.cells[c].Content)
	}
	return out
}

// HeadOffset returns the head's distance from the leftmost cell.
func (t *Tape) HeadOffset() int {
	n := 0
	for c := t.cells[t.head].Left; c != NoCell; c = t.cells[c].Left {
		n++
	}
	return n
}

//
// Helper Functions (internal API)
//

// isTrimmed reports whether Snapshot strips r from the tape ends.
func isTrimmed(r rune) bool {
	return r <= ' '
}

// materialize appends a blank cell to the arena and returns its id.
func (t *Tape) materialize(left, right CellID) CellID {
	t.cells = append(t.cells, Cell{Content: Blank, Left: left, Right: right})
	return CellID(len(t.cells) - 1)
}
