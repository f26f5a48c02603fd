package engine

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/efreitasn/marketsim/internal/domain"
)

// For all sequences of placements, Best always returns the order with the
// most favorable price for the side, with ties resolved by earliest tick.
func TestProperty_BestIsMostFavorable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		side := rapid.SampledFrom([]domain.Side{domain.SideBuy, domain.SideSell}).Draw(t, "side")
		n := rapid.IntRange(1, 50).Draw(t, "n")

		seq := domain.NewSequencer()
		b := NewOrderBook(side, seq)
		tr := domain.NewTrader("t", "T", 0)

		type placed struct {
			order *domain.Order
			tick  int64
		}
		var orders []placed
		for i := 0; i < n; i++ {
			price := rapid.Int64Range(1, 20).Draw(t, fmt.Sprintf("price%d", i))
			var o *domain.Order
			if side == domain.SideBuy {
				o = domain.NewBuyOrder(tr, "S", 1, price)
			} else {
				o = domain.NewSellOrder(tr, "S", 1, price)
			}
			e := b.Record(o)
			orders = append(orders, placed{order: o, tick: e.Tick})
		}

		// Reference: scan for the most favorable price, earliest tick.
		want := orders[0]
		for _, p := range orders[1:] {
			if side.Ranks(p.order.Price, want.order.Price) {
				want = p
			}
		}

		got, ok := b.Best()
		if !ok {
			t.Fatal("expected best order on non-empty book")
		}
		if got != want.order {
			t.Fatalf("expected best price %d tick %d, got price %d",
				want.order.Price, want.tick, got.Price)
		}
	})
}

// Snapshot is always sorted by (side price rank, tick).
func TestProperty_SnapshotIsPriorityOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		side := rapid.SampledFrom([]domain.Side{domain.SideBuy, domain.SideSell}).Draw(t, "side")
		n := rapid.IntRange(0, 50).Draw(t, "n")

		seq := domain.NewSequencer()
		b := NewOrderBook(side, seq)
		tr := domain.NewTrader("t", "T", 0)

		for i := 0; i < n; i++ {
			price := rapid.Int64Range(1, 10).Draw(t, fmt.Sprintf("price%d", i))
			o := &domain.Order{Side: side, Trader: tr, Symbol: "S", Price: price, Quantity: 1, Remaining: 1}
			b.Record(o)
		}

		snap := b.Snapshot()
		if len(snap) != n {
			t.Fatalf("expected %d entries, got %d", n, len(snap))
		}
		for i := 1; i < len(snap); i++ {
			prev, cur := snap[i-1], snap[i]
			if prev.Event.Price == cur.Event.Price {
				if prev.Tick >= cur.Tick {
					t.Fatalf("equal price not tick ordered at %d", i)
				}
			} else if !side.Ranks(prev.Event.Price, cur.Event.Price) {
				t.Fatalf("snapshot not price ordered at %d: %d then %d", i, prev.Event.Price, cur.Event.Price)
			}
		}
	})
}
