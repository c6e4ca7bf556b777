package engine

// Engine ties the order store to the global trade log. The HTTP layer and
// the sim driver only ever talk to this type.
type Engine struct {
	store *Store
	log   *TradeLog

	// OnTrade, when set, is invoked once per executed trade, after the
	// trade is in the log. Set before any matching starts; it is read
	// without synchronization.
	OnTrade func(Trade)
}

func New(maxTickers, maxOrdersPerSide int) *Engine {
	return &Engine{
		store: NewStore(maxTickers, maxOrdersPerSide),
		log:   NewTradeLog(),
	}
}

// Submit admits one order. See Store.Submit for the drop semantics.
func (e *Engine) Submit(side Side, ticker, quantity, price int) bool {
	return e.store.Submit(side, ticker, quantity, price)
}

// Match runs one matching pass for the ticker, appends the resulting
// trades to the global log, and returns them. ok is false when the ticker
// is out of range.
func (e *Engine) Match(ticker int) (trades []Trade, ok bool) {
	trades, ok = e.store.match(ticker)
	if !ok {
		return nil, false
	}
	for _, t := range trades {
		e.log.append(t)
		if e.OnTrade != nil {
			e.OnTrade(t)
		}
	}
	return trades, true
}

// Snapshot returns one ticker's resting orders, filled ones included.
func (e *Engine) Snapshot(ticker int) (buys, sells []Order) {
	return e.store.Snapshot(ticker)
}

// SnapshotAll returns every populated ticker's resting orders.
func (e *Engine) SnapshotAll() []TickerOrders {
	return e.store.SnapshotAll()
}

// Trades returns the full historical trade log.
func (e *Engine) Trades() []Trade {
	return e.log.Trades()
}

// MaxTickers returns the exclusive upper bound of the ticker id space.
func (e *Engine) MaxTickers() int {
	return e.store.MaxTickers()
}

// LoadSampleOrders wipes every book and admits a small canned set of
// orders on two tickers. The trade log is left alone: it is the audit
// trail of executed trades, and reseeding the resting book does not
// unhappen them.
func (e *Engine) LoadSampleOrders() {
	e.store.Reset()

	e.store.Submit(Buy, 42, 5, 105)
	e.store.Submit(Sell, 42, 3, 100)
	e.store.Submit(Sell, 42, 2, 104)

	e.store.Submit(Buy, 7, 10, 90)
	e.store.Submit(Sell, 7, 5, 85)
}
