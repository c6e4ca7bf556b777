package engine

// match runs one matching pass over the ticker's book and returns the
// trades it produced, in execution order. The whole scan holds the book
// mutex, so concurrent matches on the same ticker are serialized and a
// racing submit cannot be half-observed. ok is false when the ticker is
// out of range; no state is touched in that case.
//
// The algorithm is a full cross-product scan in admission order: every
// buy with remaining quantity is walked against every sell with remaining
// quantity, trading min(remainders) whenever the buy price crosses the
// sell price. Filled orders stay in the book at quantity zero and are
// skipped, so a repeat call with no new orders produces no trades.
func (s *Store) match(ticker int) (trades []Trade, ok bool) {
	if !s.inRange(ticker) {
		return nil, false
	}

	b := s.book(ticker)
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.buys {
		buy := &b.buys[i]
		if buy.Quantity == 0 {
			continue
		}

		for j := range b.sells {
			sell := &b.sells[j]
			if sell.Quantity == 0 {
				continue
			}

			if buy.Price >= sell.Price {
				qty := min(buy.Quantity, sell.Quantity)
				buy.Quantity -= qty
				sell.Quantity -= qty

				trades = append(trades, Trade{
					Ticker:    ticker,
					BuyPrice:  buy.Price,
					SellPrice: sell.Price,
					Quantity:  qty,
				})

				if buy.Quantity == 0 {
					break
				}
			}
		}
	}

	return trades, true
}
