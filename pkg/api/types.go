package api

// Wire types for the REST endpoints and the WebSocket feed.

// ==============================
// Requests
// ==============================

type AddOrderRequest struct {
	Ticker   int    `json:"ticker"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"` // "Buy" or "Sell"
}

type MatchOrderRequest struct {
	Ticker int `json:"ticker"`
}

// ==============================
// Responses
// ==============================

type AddOrderResponse struct {
	Status   string `json:"status"`
	Ticker   int    `json:"ticker"`
	Type     string `json:"type"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// MatchEntry is one executed trade as it appears on the wire.
type MatchEntry struct {
	BuyPrice  int `json:"buyPrice"`
	SellPrice int `json:"sellPrice"`
	Quantity  int `json:"quantity"`
	Ticker    int `json:"ticker"`
}

type MatchOrderResponse struct {
	Status  string       `json:"status"`
	Matches []MatchEntry `json:"matches"`
}

// OrderEntry is one resting order in a full-book report. Filled orders
// appear with quantity 0.
type OrderEntry struct {
	Ticker   int    `json:"ticker"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Type     string `json:"type"`
}

type GetOrdersResponse struct {
	BuyOrders  []OrderEntry `json:"buyOrders"`
	SellOrders []OrderEntry `json:"sellOrders"`
	Status     string       `json:"status"`
}

type ToggleAutoSimResponse struct {
	AutoSimulating bool   `json:"autoSimulating"`
	Status         string `json:"status"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type GetMatchesResponse struct {
	Matches []MatchEntry `json:"matches"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ==============================
// WebSocket
// ==============================

// WSSubscribeRequest is a client subscribe/unsubscribe command.
type WSSubscribeRequest struct {
	Op       string   `json:"op"` // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"`
}

// TradeUpdate is pushed to subscribers of "trades" and "trades:<ticker>".
type TradeUpdate struct {
	Type      string `json:"type"` // always "trade"
	Ticker    int    `json:"ticker"`
	BuyPrice  int    `json:"buyPrice"`
	SellPrice int    `json:"sellPrice"`
	Quantity  int    `json:"quantity"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}
