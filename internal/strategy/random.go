package strategy

import (
	"math/rand"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
)

// Strategy is a trading behavior driven once per simulation round. Strategies
// are external collaborators of the exchange: they read quotes and push
// orders through the ordinary placement contract, nothing more.
type Strategy interface {
	Speak(ex *engine.Exchange)
}

// RandomTrader places one random limit order per round: a buy or sell for a
// random stock from the trader's inventory, with a random quantity in
// [1, maxQuantity) and a price drawn within ±priceRange/2 of the current
// best bid (for buys) or best offer (for sells). When the relevant side of
// the book is empty, seedPrice anchors the draw instead.
//
// The generator is injected so simulations are reproducible under a fixed
// seed.
type RandomTrader struct {
	trader      *domain.Trader
	maxQuantity int64
	priceRange  int64 // cents
	seedPrice   int64 // cents
	rng         *rand.Rand
}

// NewRandomTrader creates a random strategy speaking for trader.
// maxQuantity must be at least 2 and priceRange and seedPrice positive.
func NewRandomTrader(trader *domain.Trader, maxQuantity, priceRange, seedPrice int64, rng *rand.Rand) *RandomTrader {
	if maxQuantity < 2 || priceRange <= 0 || seedPrice <= 0 {
		panic("strategy: invalid random trader parameters")
	}
	return &RandomTrader{
		trader:      trader,
		maxQuantity: maxQuantity,
		priceRange:  priceRange,
		seedPrice:   seedPrice,
		rng:         rng,
	}
}

// Trader returns the ledger this strategy speaks for.
func (r *RandomTrader) Trader() *domain.Trader {
	return r.trader
}

// Speak draws one random order and places it. Rounds where the drawn price
// is non-positive, or where the trader holds no stocks at all, place
// nothing.
func (r *RandomTrader) Speak(ex *engine.Exchange) {
	stocks := r.trader.TradedStocks()
	if len(stocks) == 0 {
		return
	}
	symbol := stocks[r.rng.Intn(len(stocks))]
	quantity := r.rng.Int63n(r.maxQuantity-1) + 1
	offset := int64((r.rng.Float64() - 0.5) * float64(r.priceRange))

	if r.rng.Intn(2) == 0 {
		base, ok := ex.BestBid(symbol)
		if !ok {
			base = r.seedPrice
		}
		price := base + offset
		if price <= 0 {
			return
		}
		_ = ex.PlaceBuyOrder(domain.NewBuyOrder(r.trader, symbol, quantity, price))
	} else {
		base, ok := ex.BestOffer(symbol)
		if !ok {
			base = r.seedPrice
		}
		price := base + offset
		if price <= 0 {
			return
		}
		_ = ex.PlaceSellOrder(domain.NewSellOrder(r.trader, symbol, quantity, price))
	}
}
