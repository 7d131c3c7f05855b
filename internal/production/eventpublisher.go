package production

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
)

// PublishedStep is one executed step as delivered to a subscriber.
type PublishedStep struct {
	Event    primitives.StepEvent
	Metadata core.MachineMetadata
}

// ChannelPublisher hands steps to a channel without ever blocking the
// machine. Steps that find the channel full are counted and dropped.
type ChannelPublisher struct {
	ch      chan<- PublishedStep
	sent    atomic.Int64
	dropped atomic.Int64
	once    sync.Once
}

// NewChannelPublisher publishes to ch. Close closes ch.
func NewChannelPublisher(ch chan<- PublishedStep) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, event primitives.StepEvent, metadata core.MachineMetadata) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.ch <- PublishedStep{Event: event, Metadata: metadata}:
		p.sent.Add(1)
	default:
		p.dropped.Add(1)
	}
	return nil
}

// Sent returns how many steps reached the channel.
func (p *ChannelPublisher) Sent() int64 { return p.sent.Load() }

// Dropped returns how many steps were discarded on a full channel.
func (p *ChannelPublisher) Dropped() int64 { return p.dropped.Load() }

// Close closes the channel. Later calls are no-ops; Publish after Close panics.
func (p *ChannelPublisher) Close() error {
	p.once.Do(func() { close(p.ch) })
	return nil
}
