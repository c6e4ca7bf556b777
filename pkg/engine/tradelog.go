package engine

import "sync"

// TradeLog is the global append-only record of executed trades across all
// tickers, in the order matches occurred. It only grows: resets of the
// order books do not touch it.
type TradeLog struct {
	mu     sync.Mutex
	trades []Trade
}

func NewTradeLog() *TradeLog {
	return &TradeLog{}
}

func (l *TradeLog) append(t Trade) {
	l.mu.Lock()
	l.trades = append(l.trades, t)
	l.mu.Unlock()
}

// Trades returns a copy of the full log in append order.
func (l *TradeLog) Trades() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Trade(nil), l.trades...)
}

func (l *TradeLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.trades)
}
