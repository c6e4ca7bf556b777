package engine

import (
	"sync"
	"testing"
)

func TestMatchCrossingScenario(t *testing.T) {
	e := New(1024, 1000)
	e.Submit(Buy, 42, 5, 105)
	e.Submit(Sell, 42, 3, 100)
	e.Submit(Sell, 42, 2, 104)

	trades, ok := e.Match(42)
	if !ok {
		t.Fatal("match on in-range ticker should succeed")
	}

	want := []Trade{
		{Ticker: 42, BuyPrice: 105, SellPrice: 100, Quantity: 3},
		{Ticker: 42, BuyPrice: 105, SellPrice: 104, Quantity: 2},
	}
	if len(trades) != len(want) {
		t.Fatalf("got %d trades; want %d", len(trades), len(want))
	}
	for i, tr := range trades {
		if tr != want[i] {
			t.Errorf("trade[%d] = %+v; want %+v", i, tr, want[i])
		}
	}

	buys, sells := e.Snapshot(42)
	if buys[0].Quantity != 0 {
		t.Errorf("buy remainder = %d; want 0", buys[0].Quantity)
	}
	for i, s := range sells {
		if s.Quantity != 0 {
			t.Errorf("sell[%d] remainder = %d; want 0", i, s.Quantity)
		}
	}

	// Filled orders stay in the book.
	if len(buys) != 1 || len(sells) != 2 {
		t.Errorf("book shrank after matching: %d buys, %d sells", len(buys), len(sells))
	}
}

func TestMatchNoCross(t *testing.T) {
	e := New(64, 100)
	e.Submit(Buy, 5, 10, 90)
	e.Submit(Sell, 5, 10, 95)

	trades, ok := e.Match(5)
	if !ok {
		t.Fatal("match on in-range ticker should succeed")
	}
	if len(trades) != 0 {
		t.Fatalf("non-crossing book produced %d trades", len(trades))
	}

	buys, sells := e.Snapshot(5)
	if buys[0].Quantity != 10 || sells[0].Quantity != 10 {
		t.Error("non-crossing match must not mutate quantities")
	}
}

func TestMatchOutOfRange(t *testing.T) {
	e := New(8, 100)
	e.Submit(Buy, 0, 5, 105)
	e.Submit(Sell, 0, 5, 100)

	for _, ticker := range []int{-1, 8, 99} {
		trades, ok := e.Match(ticker)
		if ok || trades != nil {
			t.Errorf("Match(%d) = %v, %v; want nil, false", ticker, trades, ok)
		}
	}

	// Nothing was consumed by the failed matches.
	buys, _ := e.Snapshot(0)
	if buys[0].Quantity != 5 {
		t.Error("out-of-range match must not touch other books")
	}
	if e.log.Len() != 0 {
		t.Error("out-of-range match must not append to the trade log")
	}
}

func TestMatchRepeatIsEmpty(t *testing.T) {
	e := New(64, 100)
	e.Submit(Buy, 9, 5, 105)
	e.Submit(Sell, 9, 3, 100)
	e.Submit(Sell, 9, 2, 104)

	first, _ := e.Match(9)
	if len(first) != 2 {
		t.Fatalf("first pass produced %d trades; want 2", len(first))
	}

	second, _ := e.Match(9)
	if len(second) != 0 {
		t.Fatalf("second pass with no new orders produced %d trades", len(second))
	}

	buys, sells := e.Snapshot(9)
	for _, o := range append(buys, sells...) {
		if o.Quantity < 0 {
			t.Fatalf("negative quantity after repeat match: %+v", o)
		}
	}
	if got := e.log.Len(); got != 2 {
		t.Errorf("trade log has %d entries; want 2", got)
	}
}

func TestMatchPartialSellRemainder(t *testing.T) {
	e := New(64, 100)
	e.Submit(Buy, 1, 3, 100)
	e.Submit(Sell, 1, 10, 95)

	trades, _ := e.Match(1)
	if len(trades) != 1 || trades[0].Quantity != 3 {
		t.Fatalf("trades = %+v; want one trade of qty 3", trades)
	}

	// The partially filled sell keeps resting and fills a later buy.
	e.Submit(Buy, 1, 4, 96)
	trades, _ = e.Match(1)
	if len(trades) != 1 {
		t.Fatalf("second pass = %+v; want one trade", trades)
	}
	if got := trades[0]; got.Quantity != 4 || got.BuyPrice != 96 || got.SellPrice != 95 {
		t.Errorf("trade = %+v; want qty 4 at 96/95", got)
	}

	_, sells := e.Snapshot(1)
	if sells[0].Quantity != 3 {
		t.Errorf("sell remainder = %d; want 3", sells[0].Quantity)
	}
}

func TestMatchConservesQuantity(t *testing.T) {
	e := New(64, 100)
	e.Submit(Buy, 2, 7, 110)
	e.Submit(Buy, 2, 4, 102)
	e.Submit(Sell, 2, 5, 100)
	e.Submit(Sell, 2, 3, 101)

	sumBuy, sumSell := 7+4, 5+3

	trades, _ := e.Match(2)
	traded := 0
	for _, tr := range trades {
		if tr.Quantity <= 0 {
			t.Fatalf("non-positive trade quantity: %+v", tr)
		}
		traded += tr.Quantity
	}

	if limit := min(sumBuy, sumSell); traded > limit {
		t.Errorf("traded %d exceeds min(sum buys, sum sells) = %d", traded, limit)
	}
}

func TestMatchSerializedPerTicker(t *testing.T) {
	e := New(16, 2000)
	for i := 0; i < 500; i++ {
		e.Submit(Buy, 3, 1, 105)
		e.Submit(Sell, 3, 1, 100)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trades, _ := e.Match(3)
			n := 0
			for _, tr := range trades {
				n += tr.Quantity
			}
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Concurrent matchers must not double-fill the same resting quantity.
	if total != 500 {
		t.Fatalf("total filled = %d; want 500", total)
	}
}

func TestEngineOnTradeCallback(t *testing.T) {
	e := New(64, 100)

	var got []Trade
	e.OnTrade = func(tr Trade) { got = append(got, tr) }

	e.Submit(Buy, 4, 5, 105)
	e.Submit(Sell, 4, 5, 100)
	trades, _ := e.Match(4)

	if len(got) != len(trades) {
		t.Fatalf("callback fired %d times; want %d", len(got), len(trades))
	}
	if got[0] != trades[0] {
		t.Errorf("callback trade = %+v; want %+v", got[0], trades[0])
	}
}

func TestLoadSampleOrders(t *testing.T) {
	e := New(1024, 1000)

	// Pre-existing state gets wiped, but the trade log survives.
	e.Submit(Buy, 42, 1, 999)
	e.Submit(Sell, 42, 1, 1)
	e.Match(42)
	logBefore := e.log.Len()

	e.LoadSampleOrders()

	if got := e.log.Len(); got != logBefore {
		t.Errorf("trade log length changed across reset: %d -> %d", logBefore, got)
	}

	trades42, _ := e.Match(42)
	want42 := []Trade{
		{Ticker: 42, BuyPrice: 105, SellPrice: 100, Quantity: 3},
		{Ticker: 42, BuyPrice: 105, SellPrice: 104, Quantity: 2},
	}
	if len(trades42) != len(want42) {
		t.Fatalf("ticker 42: got %d trades; want %d", len(trades42), len(want42))
	}
	for i, tr := range trades42 {
		if tr != want42[i] {
			t.Errorf("ticker 42 trade[%d] = %+v; want %+v", i, tr, want42[i])
		}
	}

	trades7, _ := e.Match(7)
	if len(trades7) != 1 {
		t.Fatalf("ticker 7: got %d trades; want 1", len(trades7))
	}
	if want := (Trade{Ticker: 7, BuyPrice: 90, SellPrice: 85, Quantity: 5}); trades7[0] != want {
		t.Errorf("ticker 7 trade = %+v; want %+v", trades7[0], want)
	}
}

func TestTradeLogAppendOrder(t *testing.T) {
	l := NewTradeLog()
	for i := 0; i < 5; i++ {
		l.append(Trade{Ticker: i, Quantity: 1})
	}

	got := l.Trades()
	if len(got) != 5 {
		t.Fatalf("log has %d trades; want 5", len(got))
	}
	for i, tr := range got {
		if tr.Ticker != i {
			t.Errorf("trade[%d].Ticker = %d; want %d", i, tr.Ticker, i)
		}
	}

	// Trades returns a copy, not the backing slice.
	got[0].Ticker = 99
	if l.Trades()[0].Ticker != 0 {
		t.Error("mutating the returned slice must not affect the log")
	}
}
