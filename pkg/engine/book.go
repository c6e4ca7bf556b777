package engine

import (
	"sort"
	"sync"
)

// tickerBook holds one ticker's resting orders. The mutex covers both
// sides: admission appends and the matcher's full scan run under it, so a
// snapshot can never observe a half-written order and two matchers can
// never fill the same quantity twice.
type tickerBook struct {
	mu    sync.Mutex
	buys  []Order
	sells []Order
}

// Store owns every ticker's book. Ticker ids are bounded to [0, maxTickers);
// each side holds at most maxOrders orders and silently drops admissions
// past that cap - the caller sees the drop only through the returned bool.
type Store struct {
	maxTickers int
	maxOrders  int

	mu    sync.RWMutex
	books map[int]*tickerBook
}

func NewStore(maxTickers, maxOrders int) *Store {
	return &Store{
		maxTickers: maxTickers,
		maxOrders:  maxOrders,
		books:      make(map[int]*tickerBook),
	}
}

// MaxTickers returns the exclusive upper bound of the ticker id space.
func (s *Store) MaxTickers() int { return s.maxTickers }

func (s *Store) inRange(ticker int) bool {
	return ticker >= 0 && ticker < s.maxTickers
}

// book returns the ticker's book, creating it on first use. Callers must
// have range-checked the ticker.
func (s *Store) book(ticker int) *tickerBook {
	s.mu.RLock()
	b, ok := s.books[ticker]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.books[ticker]; ok {
		return b
	}
	b = &tickerBook{
		buys:  make([]Order, 0, 8),
		sells: make([]Order, 0, 8),
	}
	s.books[ticker] = b
	return b
}

// Submit admits one order to the given ticker's side. It reports whether
// the order became visible: false means the ticker was out of range or the
// side was at capacity. Neither case is an error on the wire.
func (s *Store) Submit(side Side, ticker, quantity, price int) bool {
	if !s.inRange(ticker) {
		return false
	}

	b := s.book(ticker)
	b.mu.Lock()
	defer b.mu.Unlock()

	o := Order{Price: price, Quantity: quantity}
	if side == Buy {
		if len(b.buys) >= s.maxOrders {
			return false
		}
		b.buys = append(b.buys, o)
	} else {
		if len(b.sells) >= s.maxOrders {
			return false
		}
		b.sells = append(b.sells, o)
	}
	return true
}

// Snapshot returns copies of the ticker's buy and sell collections in
// admission order, including fully filled (zero-quantity) orders. An
// out-of-range ticker yields empty slices.
func (s *Store) Snapshot(ticker int) (buys, sells []Order) {
	if !s.inRange(ticker) {
		return nil, nil
	}

	s.mu.RLock()
	b, ok := s.books[ticker]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	buys = append([]Order(nil), b.buys...)
	sells = append([]Order(nil), b.sells...)
	return buys, sells
}

// TickerOrders is one ticker's snapshot inside a full-book report.
type TickerOrders struct {
	Ticker int
	Buys   []Order
	Sells  []Order
}

// SnapshotAll enumerates every populated ticker in ascending ticker order.
// Tickers whose books are empty on both sides are skipped.
func (s *Store) SnapshotAll() []TickerOrders {
	s.mu.RLock()
	tickers := make([]int, 0, len(s.books))
	for t := range s.books {
		tickers = append(tickers, t)
	}
	s.mu.RUnlock()
	sort.Ints(tickers)

	out := make([]TickerOrders, 0, len(tickers))
	for _, t := range tickers {
		buys, sells := s.Snapshot(t)
		if len(buys) == 0 && len(sells) == 0 {
			continue
		}
		out = append(out, TickerOrders{Ticker: t, Buys: buys, Sells: sells})
	}
	return out
}

// Reset clears every ticker's book. Each ticker is cleared atomically with
// respect to its own submissions, but the sweep is not atomic across
// tickers: a submit racing a reset may land before or after the wipe.
func (s *Store) Reset() {
	s.mu.RLock()
	books := make([]*tickerBook, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, b)
	}
	s.mu.RUnlock()

	for _, b := range books {
		b.mu.Lock()
		b.buys = b.buys[:0]
		b.sells = b.sells[:0]
		b.mu.Unlock()
	}
}
