package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/joho/godotenv"

	"github.com/efreitasn/marketsim/internal/config"
	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/store"
	"github.com/efreitasn/marketsim/internal/strategy"
)

func main() {
	// Optional .env in the working directory; real env vars win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// One process-wide sequencer; every market stamps through it.
	seq := domain.NewSequencer()
	stocks := domain.NewStockRegistry()
	history := store.NewTradeHistory()
	traders := store.NewTraderStore()
	ex := engine.NewExchange(seq, stocks, history, logger)

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Register traders, each endowed with cash and a starting position in
	// every simulated symbol.
	strategies := make([]strategy.Strategy, 0, cfg.Traders)
	for i := 1; i <= cfg.Traders; i++ {
		id := fmt.Sprintf("trader-%03d", i)
		t := domain.NewTrader(id, fmt.Sprintf("Trader %d", i), cfg.InitialCash)
		for _, sym := range cfg.Symbols {
			if err := t.Endow(sym, cfg.InitialQuantity); err != nil {
				logger.Error("failed to endow trader", slog.String("trader_id", id), slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		if err := traders.Create(t); err != nil {
			logger.Error("failed to register trader", slog.String("trader_id", id), slog.String("error", err.Error()))
			os.Exit(1)
		}
		strategies = append(strategies, strategy.NewRandomTrader(t, cfg.MaxOrderQuantity, cfg.PriceRange, cfg.SeedPrice, rng))
	}

	logger.Info("simulation starting",
		slog.Int("rounds", cfg.Rounds),
		slog.Int("traders", cfg.Traders),
		slog.Any("symbols", cfg.Symbols),
		slog.Int64("seed", cfg.Seed))

	for round := 1; round <= cfg.Rounds; round++ {
		for _, s := range strategies {
			s.Speak(ex)
		}
		trades := ex.DoClearing()
		logger.Debug("round cleared",
			slog.Int("round", round),
			slog.Int("trades", len(trades)),
			slog.Int("total_trades", history.Len()))
	}

	report(ex, traders, history, cfg, logger)
}

// report logs the post-simulation state: per-symbol quotes and volume, and
// every trader's final ledger.
func report(ex *engine.Exchange, traders *store.TraderStore, history *store.TradeHistory, cfg *config.Config, logger *slog.Logger) {
	for _, sym := range ex.ListedStocks() {
		attrs := []any{
			slog.String("symbol", sym),
			slog.Int("trades", len(ex.TradeHistory(sym))),
			slog.Any("buy_depth", ex.BuyDepth(sym, cfg.DepthLevels)),
			slog.Any("sell_depth", ex.SellDepth(sym, cfg.DepthLevels)),
		}
		if bid, ok := ex.BestBid(sym); ok {
			attrs = append(attrs, slog.String("best_bid", domain.FormatCents(bid)))
		}
		if offer, ok := ex.BestOffer(sym); ok {
			attrs = append(attrs, slog.String("best_offer", domain.FormatCents(offer)))
		}
		logger.Info("market summary", attrs...)
	}

	var totalCash int64
	totalShares := make(map[string]int64)
	for _, t := range traders.All() {
		holdings := make(map[string]int64)
		for _, sym := range t.TradedStocks() {
			holdings[sym] = t.Holding(sym)
			totalShares[sym] += t.Holding(sym)
		}
		totalCash += t.Cash()
		logger.Info("trader summary",
			slog.String("trader_id", t.TraderID),
			slog.String("cash", domain.FormatCents(t.Cash())),
			slog.Any("holdings", holdings))
	}

	// Settlement is bilateral, so cash and shares are conserved across the
	// whole run; log the totals so a broken invariant is visible.
	logger.Info("simulation finished",
		slog.Int("total_trades", history.Len()),
		slog.String("total_cash", domain.FormatCents(totalCash)),
		slog.Any("total_shares", totalShares))
}
