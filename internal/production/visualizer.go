// Package production provides production integrations: persistence, program
// files, step publishing and visualization.
package production

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/comalice/turingx"
	"github.com/comalice/turingx/internal/primitives"
)

// BlankGlyph is how RenderTape shows a blank cell.
const BlankGlyph = '_'

// DefaultVisualizer is the default implementation of core.Visualizer.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the program's state diagram.
// Rules sharing a source and target are merged into one edge.
func (v *DefaultVisualizer) ExportDOT(program primitives.ProgramConfig, current string) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph TuringMachine {
  rankdir=LR;
  node [shape=circle, fontsize=10];
  edge [fontsize=9];
  "__start" [shape=point];
`)
	fmt.Fprintf(&buf, "  \"__start\" -> %s;\n", dotID(program.Initial))

	for _, id := range nodeIDs(program) {
		attrs := []string{fmt.Sprintf("label=%s", dotID(id))}
		switch {
		case program.IsAccept(id):
			attrs = append(attrs, "shape=doublecircle")
		case program.IsReject(id):
			attrs = append(attrs, "shape=octagon")
		}
		if id == current {
			attrs = append(attrs, "style=filled", "fillcolor=lightgreen")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", dotID(id), strings.Join(attrs, " "))
	}

	for _, e := range collectEdges(program) {
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", dotID(e.From), dotID(e.To), dotID(strings.Join(e.Labels, `\n`)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderTape renders up to radius materialized cells on each side of the head
// on one line, with a caret under the head on the next. Unmaterialized
// positions are not shown; "…" marks materialized cells beyond the window.
func (v *DefaultVisualizer) RenderTape(tape *turingx.Tape, radius int) string {
	left, moreLeft := walk(tape, radius, func(c turingx.Cell) turingx.CellID { return c.Left })
	right, moreRight := walk(tape, radius, func(c turingx.Cell) turingx.CellID { return c.Right })

	var cells, caret strings.Builder
	if moreLeft {
		cells.WriteString("…")
		caret.WriteString(" ")
	}
	for i := len(left) - 1; i >= 0; i-- {
		writeCell(&cells, &caret, left[i], false)
	}
	writeCell(&cells, &caret, tape.Read(), true)
	for _, r := range right {
		writeCell(&cells, &caret, r, false)
	}
	if moreRight {
		cells.WriteString(" …")
	}
	return cells.String() + "\n" + strings.TrimRight(caret.String(), " ")
}

// walk collects up to radius cell contents from the head outwards along next.
// more reports whether a materialized cell lies beyond the last one collected.
func walk(tape *turingx.Tape, radius int, next func(turingx.Cell) turingx.CellID) (out []rune, more bool) {
	edge, _ := tape.Cell(tape.Current())
	for i := 0; i < radius; i++ {
		id := next(edge)
		if id == turingx.NoCell {
			return out, false
		}
		edge, _ = tape.Cell(id)
		out = append(out, edge.Content)
	}
	return out, next(edge) != turingx.NoCell
}

// writeCell appends one cell and the matching caret-line padding.
func writeCell(cells, caret *strings.Builder, r rune, head bool) {
	if r == turingx.Blank {
		r = BlankGlyph
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	cells.WriteByte(' ')
	cells.WriteRune(r)
	caret.WriteByte(' ')
	mark := " "
	if head {
		mark = "^"
	}
	caret.WriteString(strings.Repeat(mark, w))
}

// Edge represents all rules from one state to another.
type Edge struct {
	From   string
	To     string
	Labels []string
}

// collectEdges merges rules by (from, to), sorted for stable output.
func collectEdges(program primitives.ProgramConfig) []Edge {
	byPair := map[[2]string]*Edge{}
	for _, sid := range program.StateIDs() {
		state := program.States[sid]
		for read, rule := range state.On {
			key := [2]string{sid, rule.Next}
			e, ok := byPair[key]
			if !ok {
				e = &Edge{From: sid, To: rule.Next}
				byPair[key] = e
			}
			write := rule.Write
			if write == "" {
				write = read
			}
			e.Labels = append(e.Labels, fmt.Sprintf("%s/%s,%s", read, write, rule.Move))
		}
	}

	edges := make([]Edge, 0, len(byPair))
	for _, e := range byPair {
		sort.Strings(e.Labels)
		edges = append(edges, *e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// nodeIDs returns every state with rules plus the halting states, sorted.
func nodeIDs(program primitives.ProgramConfig) []string {
	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range program.States {
		add(id)
	}
	for _, id := range program.Accept {
		add(id)
	}
	for _, id := range program.Reject {
		add(id)
	}
	sort.Strings(ids)
	return ids
}

// dotID quotes s as a DOT string. Backslash sequences are kept so `\n`
// renders as a line break.
func dotID(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
