package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tickdrift/matchbox/pkg/engine"
	"github.com/tickdrift/matchbox/pkg/sim"
)

const banner = "Real-time matching engine running!"

// Server exposes the matching engine over REST plus a WebSocket trade feed.
type Server struct {
	engine *engine.Engine
	driver *sim.Driver
	router *mux.Router
	hub    *Hub
	logger *zap.SugaredLogger
}

func NewServer(e *engine.Engine, d *sim.Driver, logger *zap.SugaredLogger) *Server {
	s := &Server{
		engine: e,
		driver: d,
		router: mux.NewRouter(),
		hub:    NewHub(logger),
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
	s.router.HandleFunc("/addOrder", s.handleAddOrder).Methods("POST")
	s.router.HandleFunc("/matchOrder", s.handleMatchOrder).Methods("POST")
	s.router.HandleFunc("/addRandomOrders", s.handleAddRandomOrders).Methods("POST")
	s.router.HandleFunc("/getOrders", s.handleGetOrders).Methods("GET")
	s.router.HandleFunc("/toggleAutoSim", s.handleToggleAutoSim).Methods("POST")
	s.router.HandleFunc("/loadSampleOrders", s.handleLoadSampleOrders).Methods("POST")
	s.router.HandleFunc("/getMatches", s.handleGetMatches).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// Handler returns the full middleware-wrapped handler. The CORS policy is
// wide open: every response carries Access-Control-Allow-Origin: * and the
// preflight answers 204 with no body.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// Start runs the WebSocket hub and serves until the listener fails.
func (s *Server) Start(addr string) error {
	go s.hub.Run()
	s.logger.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(banner))
}

func (s *Server) handleAddOrder(w http.ResponseWriter, r *http.Request) {
	var req AddOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON", err.Error())
		return
	}

	side := engine.SideFromString(req.Type)
	admitted := s.engine.Submit(side, req.Ticker, req.Quantity, req.Price)
	if !admitted {
		// Out-of-range ticker or side at capacity. The wire contract is a
		// success-shaped response either way; the drop is only logged.
		s.logger.Debugw("order_dropped", "ticker", req.Ticker, "side", side.String())
	}

	respondJSON(w, AddOrderResponse{
		Status:   "Order added",
		Ticker:   req.Ticker,
		Type:     side.String(),
		Price:    req.Price,
		Quantity: req.Quantity,
	})
}

func (s *Server) handleMatchOrder(w http.ResponseWriter, r *http.Request) {
	var req MatchOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON", err.Error())
		return
	}

	trades, ok := s.engine.Match(req.Ticker)
	if !ok {
		s.logger.Debugw("match_skipped", "ticker", req.Ticker)
	}

	respondJSON(w, MatchOrderResponse{
		Status:  "Matching complete",
		Matches: toMatchEntries(trades),
	})
}

func (s *Server) handleAddRandomOrders(w http.ResponseWriter, r *http.Request) {
	s.driver.Burst(10)
	respondJSON(w, StatusResponse{Status: "10 random orders added"})
}

func (s *Server) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	resp := GetOrdersResponse{
		BuyOrders:  []OrderEntry{},
		SellOrders: []OrderEntry{},
		Status:     "Orders fetched successfully",
	}

	for _, to := range s.engine.SnapshotAll() {
		for _, o := range to.Buys {
			resp.BuyOrders = append(resp.BuyOrders, OrderEntry{
				Ticker:   to.Ticker,
				Price:    o.Price,
				Quantity: o.Quantity,
				Type:     engine.Buy.String(),
			})
		}
		for _, o := range to.Sells {
			resp.SellOrders = append(resp.SellOrders, OrderEntry{
				Ticker:   to.Ticker,
				Price:    o.Price,
				Quantity: o.Quantity,
				Type:     engine.Sell.String(),
			})
		}
	}

	respondJSON(w, resp)
}

func (s *Server) handleToggleAutoSim(w http.ResponseWriter, r *http.Request) {
	enabled := s.driver.Toggle()
	status := "Simulation paused"
	if enabled {
		status = "Simulation started"
	}
	respondJSON(w, ToggleAutoSimResponse{AutoSimulating: enabled, Status: status})
}

func (s *Server) handleLoadSampleOrders(w http.ResponseWriter, r *http.Request) {
	s.engine.LoadSampleOrders()
	s.logger.Infow("sample_orders_loaded")
	respondJSON(w, StatusResponse{Status: "Sample orders loaded"})
}

func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, GetMatchesResponse{Matches: toMatchEntries(s.engine.Trades())})
}

// ==============================
// Broadcast
// ==============================

// BroadcastTrade pushes one executed trade to WebSocket subscribers of the
// global "trades" channel and the per-ticker "trades:<id>" channel. Wired
// to Engine.OnTrade at bootstrap.
func (s *Server) BroadcastTrade(t engine.Trade) {
	update := TradeUpdate{
		Type:      "trade",
		Ticker:    t.Ticker,
		BuyPrice:  t.BuyPrice,
		SellPrice: t.SellPrice,
		Quantity:  t.Quantity,
		Timestamp: time.Now().UnixMilli(),
	}
	s.hub.BroadcastToChannel("trades", update)
	s.hub.BroadcastToChannel("trades:"+strconv.Itoa(t.Ticker), update)
}

// ==============================
// Helpers
// ==============================

func toMatchEntries(trades []engine.Trade) []MatchEntry {
	entries := make([]MatchEntry, len(trades))
	for i, t := range trades {
		entries[i] = MatchEntry{
			BuyPrice:  t.BuyPrice,
			SellPrice: t.SellPrice,
			Quantity:  t.Quantity,
			Ticker:    t.Ticker,
		}
	}
	return entries
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, error string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}
