package strategy

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/store"
)

func newTestExchange() *engine.Exchange {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.NewExchange(domain.NewSequencer(), domain.NewStockRegistry(), store.NewTradeHistory(), logger)
}

func TestRandomTrader_NoStocksNoOrders(t *testing.T) {
	ex := newTestExchange()
	tr := domain.NewTrader("t1", "T1", 10_000)
	s := NewRandomTrader(tr, 10, 500, 5000, rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		s.Speak(ex)
	}
	if got := ex.ListedStocks(); len(got) != 0 {
		t.Errorf("expected no markets created, got %v", got)
	}
}

func TestRandomTrader_PlacesOrdersNearSeedPrice(t *testing.T) {
	ex := newTestExchange()
	tr := domain.NewTrader("t1", "T1", 1_000_000)
	if err := tr.Endow("ACME", 100); err != nil {
		t.Fatal(err)
	}
	const (
		maxQty     = 10
		priceRange = 500
		seedPrice  = 5000
	)
	s := NewRandomTrader(tr, maxQty, priceRange, seedPrice, rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		s.Speak(ex)
	}

	levels := append(ex.BuyDepth("ACME", 1000), ex.SellDepth("ACME", 1000)...)
	if len(levels) == 0 {
		t.Fatal("expected some resting orders after 50 rounds")
	}
	// Each draw is anchored within ±priceRange/2 of a quote derived from the
	// seed price, so after 50 rounds no price can sit outside this band.
	lo := int64(seedPrice - 50*priceRange/2)
	hi := int64(seedPrice + 50*priceRange/2)
	for _, lv := range levels {
		if lv.Price < lo || lv.Price > hi {
			t.Errorf("price level %d drifted outside [%d, %d]", lv.Price, lo, hi)
		}
		if lv.TotalQuantity < int64(lv.OrderCount) || lv.TotalQuantity >= int64(lv.OrderCount)*maxQty {
			t.Errorf("level quantity %d implausible for %d orders with max %d", lv.TotalQuantity, lv.OrderCount, maxQty)
		}
	}
}

func TestRandomTrader_DeterministicUnderSeed(t *testing.T) {
	run := func() (int64, bool) {
		ex := newTestExchange()
		tr := domain.NewTrader("t1", "T1", 1_000_000)
		if err := tr.Endow("ACME", 100); err != nil {
			panic(err)
		}
		s := NewRandomTrader(tr, 10, 500, 5000, rand.New(rand.NewSource(7)))
		for i := 0; i < 30; i++ {
			s.Speak(ex)
		}
		return quoteFingerprint(ex, "ACME")
	}

	f1, ok1 := run()
	f2, ok2 := run()
	if ok1 != ok2 || f1 != f2 {
		t.Errorf("expected identical books under the same seed, got %d/%v vs %d/%v", f1, ok1, f2, ok2)
	}
}

func quoteFingerprint(ex *engine.Exchange, symbol string) (int64, bool) {
	var fp int64
	any := false
	if bid, ok := ex.BestBid(symbol); ok {
		fp = fp*1_000_003 + bid
		any = true
	}
	if offer, ok := ex.BestOffer(symbol); ok {
		fp = fp*1_000_003 + offer
		any = true
	}
	for _, lv := range ex.BuyDepth(symbol, 100) {
		fp = fp*31 + lv.Price*7 + lv.TotalQuantity
	}
	for _, lv := range ex.SellDepth(symbol, 100) {
		fp = fp*31 + lv.Price*7 + lv.TotalQuantity
	}
	return fp, any
}

func TestNewRandomTrader_PanicsOnBadParams(t *testing.T) {
	tr := domain.NewTrader("t1", "T1", 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for maxQuantity below 2")
		}
	}()
	NewRandomTrader(tr, 1, 500, 5000, rand.New(rand.NewSource(1)))
}
