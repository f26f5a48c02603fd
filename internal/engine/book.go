package engine

import (
	"github.com/google/btree"

	"github.com/efreitasn/marketsim/internal/domain"
)

// Entry is a tick-stamped order resting on one side of a book.
type Entry = domain.TickEvent[*domain.Order]

// PriceLevel aggregates the resting quantity at one price.
type PriceLevel struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// OrderBook holds the outstanding orders for one side of one stock's market
// in matching priority, backed by a B-tree so that insert, peek and targeted
// removal are O(log n).
//
// Priority is price-time: side-specific price rank first (higher prices rank
// better for buys, lower for sells), then tick ascending, so equal-priced
// orders match strictly first-in first-out. The tick id totally orders ties;
// no two entries ever share a rank.
type OrderBook struct {
	side domain.Side
	seq  *domain.Sequencer
	tree *btree.BTreeG[Entry]
}

// NewOrderBook creates an empty book for the given side, stamping entries
// with ticks from seq.
func NewOrderBook(side domain.Side, seq *domain.Sequencer) *OrderBook {
	const degree = 32
	less := func(a, b Entry) bool {
		if a.Event.Price != b.Event.Price {
			return side.Ranks(a.Event.Price, b.Event.Price)
		}
		return a.Tick < b.Tick
	}
	return &OrderBook{
		side: side,
		seq:  seq,
		tree: btree.NewG(degree, less),
	}
}

// Record stamps the order with the next global tick and inserts it.
// Duplicate orders are not rejected; their ticks keep them distinct.
func (b *OrderBook) Record(order *domain.Order) Entry {
	e := domain.Stamp(b.seq, order)
	b.tree.ReplaceOrInsert(e)
	return e
}

// Cancel removes the best-ranked entry whose order structurally equals the
// argument (same symbol, price and remaining quantity). Cancelling an order
// that is not on the book is a benign no-op; the return value reports
// whether an entry was removed.
//
// The pivoted descent visits only the run of entries at the order's price:
// ticks start at 1, so a pivot at tick 0 ranks ahead of every real entry at
// that price.
func (b *OrderBook) Cancel(order *domain.Order) bool {
	pivot := Entry{
		Event: &domain.Order{Side: b.side, Symbol: order.Symbol, Price: order.Price},
		Tick:  0,
	}
	var found Entry
	var ok bool
	b.tree.AscendGreaterOrEqual(pivot, func(e Entry) bool {
		if e.Event.Price != order.Price {
			return false
		}
		if e.Event.Equal(order) {
			found, ok = e, true
			return false
		}
		return true
	})
	if !ok {
		return false
	}
	b.tree.Delete(found)
	return true
}

// Best returns the highest-priority order without removing it. The boolean
// is false when the book is empty — an empty book is a normal state, not an
// error.
func (b *OrderBook) Best() (*domain.Order, bool) {
	e, ok := b.tree.Min()
	if !ok {
		return nil, false
	}
	return e.Event, true
}

// bestEntry returns the highest-priority entry, tick included, for the
// clearing loop's targeted removals.
func (b *OrderBook) bestEntry() (Entry, bool) {
	return b.tree.Min()
}

// remove deletes an exact entry, identified by its price and tick.
func (b *OrderBook) remove(e Entry) {
	b.tree.Delete(e)
}

// Snapshot returns every outstanding entry in matching priority order.
func (b *OrderBook) Snapshot() []Entry {
	out := make([]Entry, 0, b.tree.Len())
	b.tree.Ascend(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Depth returns up to n aggregated price levels in priority order.
func (b *OrderBook) Depth(n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	levels := make([]PriceLevel, 0, n)
	b.tree.Ascend(func(e Entry) bool {
		if len(levels) > 0 && levels[len(levels)-1].Price == e.Event.Price {
			levels[len(levels)-1].TotalQuantity += e.Event.Remaining
			levels[len(levels)-1].OrderCount++
			return true
		}
		if len(levels) >= n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:         e.Event.Price,
			TotalQuantity: e.Event.Remaining,
			OrderCount:    1,
		})
		return true
	})
	return levels
}

// Len returns the number of orders resting on the book.
func (b *OrderBook) Len() int {
	return b.tree.Len()
}
