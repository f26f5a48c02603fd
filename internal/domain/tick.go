package domain

import "sync/atomic"

// TickEvent pairs a payload with the logical tick at which it occurred.
// Tick ids are globally unique and strictly increasing across the whole
// simulation, so they totally order events even across markets.
type TickEvent[T any] struct {
	Event T
	Tick  int64
}

// Sequencer issues the simulation's logical timestamps. One sequencer is
// created at startup and shared by every component that stamps events; its
// counter is never reset.
type Sequencer struct {
	last atomic.Int64
}

// NewSequencer creates a sequencer whose first tick is 1.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next returns the next tick id. Safe for concurrent use: ids remain unique
// and strictly increasing regardless of how many markets stamp at once.
func (s *Sequencer) Next() int64 {
	return s.last.Add(1)
}

// Stamp wraps event in a TickEvent carrying the sequencer's next tick.
func Stamp[T any](s *Sequencer, event T) TickEvent[T] {
	return TickEvent[T]{Event: event, Tick: s.Next()}
}
