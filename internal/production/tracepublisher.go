package production

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

// TraceRow is one CSV line of a step trace.
type TraceRow struct {
	Machine   string    `csv:"machine"`
	Step      int       `csv:"step"`
	State     string    `csv:"state"`
	Read      string    `csv:"read"`
	Write     string    `csv:"write"`
	Move      string    `csv:"move"`
	Next      string    `csv:"next"`
	Timestamp time.Time `csv:"timestamp"`
}

// CSVTracePublisher writes every step as a CSV row. The header is written
// with the first row. Rows are flushed on each Publish.
type CSVTracePublisher struct {
	w   *csv.Writer
	enc *csvutil.Encoder
	c   io.Closer // nil when the writer is not owned
}

// NewCSVTracePublisher writes the trace to w. If w is an io.Closer it is
// closed by Close.
func NewCSVTracePublisher(w io.Writer) *CSVTracePublisher {
	cw := csv.NewWriter(w)
	p := &CSVTracePublisher{w: cw, enc: csvutil.NewEncoder(cw)}
	if c, ok := w.(io.Closer); ok {
		p.c = c
	}
	return p
}

func (p *CSVTracePublisher) Publish(ctx context.Context, event primitives.StepEvent, metadata core.MachineMetadata) error {
	row := TraceRow{
		Machine:   metadata.MachineID,
		Step:      event.Step,
		State:     event.State,
		Read:      string(event.Read),
		Write:     string(event.Write),
		Move:      string(event.Move),
		Next:      event.Next,
		Timestamp: metadata.Timestamp,
	}
	if err := p.enc.Encode(row); err != nil {
		return fmt.Errorf("encode trace row: %w", err)
	}
	p.w.Flush()
	return p.w.Error()
}

func (p *CSVTracePublisher) Close() error {
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		return err
	}
	if p.c != nil {
		return p.c.Close()
	}
	return nil
}

// ReadTrace decodes a trace written by CSVTracePublisher.
func ReadTrace(r io.Reader) ([]TraceRow, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read trace header: %w", err)
	}
	var rows []TraceRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return rows, nil
}
