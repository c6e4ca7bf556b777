package engine

// Side is one half of a ticker's book.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// SideFromString maps the wire representation ("Buy"/"Sell") to a Side.
// Anything that is not exactly "Buy" is a sell, matching the wire contract.
func SideFromString(s string) Side {
	if s == "Buy" {
		return Buy
	}
	return Sell
}

// Order is resting interest on one side of one ticker's book. Price is
// fixed at admission; Quantity is decremented in place as the order fills.
// A zero-quantity order is fully filled: it stays in the book and is
// skipped by matching.
type Order struct {
	Price    int
	Quantity int
}

// Trade records one matching event between a buy and a sell order.
type Trade struct {
	Ticker    int
	BuyPrice  int
	SellPrice int
	Quantity  int
}
