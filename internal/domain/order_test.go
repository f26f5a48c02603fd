package domain

import "testing"

func TestSide_Ranks(t *testing.T) {
	if !SideBuy.Ranks(200, 100) {
		t.Error("expected higher price to rank better on buy side")
	}
	if SideBuy.Ranks(100, 200) {
		t.Error("expected lower price to not rank better on buy side")
	}
	if !SideSell.Ranks(100, 200) {
		t.Error("expected lower price to rank better on sell side")
	}
	if SideSell.Ranks(200, 100) {
		t.Error("expected higher price to not rank better on sell side")
	}
	if SideBuy.Ranks(100, 100) || SideSell.Ranks(100, 100) {
		t.Error("expected equal prices to rank equal on both sides")
	}
}

func TestNewOrder_Fields(t *testing.T) {
	tr := NewTrader("t1", "T1", 1000)
	o := NewBuyOrder(tr, "ACME", 10, 500)

	if o.Side != SideBuy {
		t.Errorf("expected side buy, got %s", o.Side)
	}
	if o.Trader != tr {
		t.Error("expected shared trader reference")
	}
	if o.Quantity != 10 || o.Remaining != 10 {
		t.Errorf("expected quantity and remaining 10, got %d/%d", o.Quantity, o.Remaining)
	}
	if o.OrderID == "" {
		t.Error("expected non-empty order id")
	}

	s := NewSellOrder(tr, "ACME", 5, 450)
	if s.Side != SideSell {
		t.Errorf("expected side sell, got %s", s.Side)
	}
}

func TestOrder_Equal_Structural(t *testing.T) {
	tr1 := NewTrader("t1", "T1", 1000)
	tr2 := NewTrader("t2", "T2", 1000)

	a := NewBuyOrder(tr1, "ACME", 10, 500)
	b := NewBuyOrder(tr2, "ACME", 10, 500)
	if !a.Equal(b) {
		t.Error("expected orders with same symbol, price and remaining to be equal regardless of trader or id")
	}

	c := NewBuyOrder(tr1, "ACME", 10, 400)
	if a.Equal(c) {
		t.Error("expected different price to break equality")
	}

	d := NewBuyOrder(tr1, "GLOBEX", 10, 500)
	if a.Equal(d) {
		t.Error("expected different symbol to break equality")
	}

	b.Fill(1)
	if a.Equal(b) {
		t.Error("expected different remaining quantity to break equality")
	}

	if a.Equal(nil) {
		t.Error("expected nil to never be equal")
	}
}

func TestOrder_FillAndUnfill(t *testing.T) {
	tr := NewTrader("t1", "T1", 1000)
	o := NewBuyOrder(tr, "ACME", 10, 500)

	o.Fill(4)
	if o.Remaining != 6 {
		t.Errorf("expected remaining 6, got %d", o.Remaining)
	}
	if o.Filled() {
		t.Error("expected order not fully filled")
	}

	o.Fill(6)
	if !o.Filled() {
		t.Error("expected order fully filled")
	}

	o.Unfill(6)
	if o.Remaining != 6 {
		t.Errorf("expected remaining restored to 6, got %d", o.Remaining)
	}
	if o.Quantity != 10 {
		t.Errorf("expected original quantity untouched, got %d", o.Quantity)
	}
}

func TestOrder_Fill_PanicsOnOverfill(t *testing.T) {
	tr := NewTrader("t1", "T1", 1000)
	o := NewBuyOrder(tr, "ACME", 10, 500)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overfill")
		}
	}()
	o.Fill(11)
}
