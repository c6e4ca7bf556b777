// Package sim generates synthetic order flow against the matching engine.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tickdrift/matchbox/params"
	"github.com/tickdrift/matchbox/pkg/engine"
	"github.com/tickdrift/matchbox/pkg/util"
)

// Generator produces uniformly random orders within the configured bands.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	maxTickers int
	cfg        params.Sim
}

func NewGenerator(maxTickers int, cfg params.Sim) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		maxTickers: maxTickers,
		cfg:        cfg,
	}
}

// Next returns one random order: uniform ticker, price and quantity within
// the configured bands, coin-flip side.
func (g *Generator) Next() (side engine.Side, ticker, quantity, price int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side = engine.Sell
	if g.rng.Intn(2) == 1 {
		side = engine.Buy
	}
	ticker = g.rng.Intn(g.maxTickers)
	price = g.cfg.PriceMin + g.rng.Intn(g.cfg.PriceMax-g.cfg.PriceMin+1)
	quantity = g.cfg.QtyMin + g.rng.Intn(g.cfg.QtyMax-g.cfg.QtyMin+1)
	return side, ticker, quantity, price
}

// Driver is the auto-simulation loop: while enabled it submits one random
// order per tick and immediately matches the affected ticker. The loop
// itself runs for the life of the process; disabling only stops it from
// acting.
type Driver struct {
	engine   *engine.Engine
	gen      *Generator
	interval time.Duration
	clock    util.Clock
	logger   *zap.SugaredLogger

	enabled atomic.Bool
}

func NewDriver(e *engine.Engine, cfg params.Sim, clock util.Clock, logger *zap.SugaredLogger) *Driver {
	return &Driver{
		engine:   e,
		gen:      NewGenerator(e.MaxTickers(), cfg),
		interval: cfg.Interval,
		clock:    clock,
		logger:   logger,
	}
}

// Toggle flips the enabled flag and returns the new state. Two calls in a
// row restore the prior state.
func (d *Driver) Toggle() bool {
	for {
		old := d.enabled.Load()
		if d.enabled.CompareAndSwap(old, !old) {
			d.logger.Infow("auto_sim_toggled", "enabled", !old)
			return !old
		}
	}
}

func (d *Driver) Enabled() bool {
	return d.enabled.Load()
}

// Burst submits n random orders without triggering matching.
func (d *Driver) Burst(n int) {
	for i := 0; i < n; i++ {
		side, ticker, qty, price := d.gen.Next()
		d.engine.Submit(side, ticker, qty, price)
	}
}

// Run blocks until ctx is cancelled, acting on every tick while enabled.
func (d *Driver) Run(ctx context.Context) {
	ticks := d.clock.Tick(d.interval)
	d.logger.Infow("sim_driver_started", "interval", d.interval)

	submitted := 0
	for {
		select {
		case <-ctx.Done():
			d.logger.Infow("sim_driver_stopped", "orders_submitted", submitted)
			return
		case <-ticks:
			if !d.enabled.Load() {
				continue
			}
			side, ticker, qty, price := d.gen.Next()
			d.engine.Submit(side, ticker, qty, price)
			d.engine.Match(ticker)
			submitted++
			if submitted%100 == 0 {
				d.logger.Infow("sim_progress", "orders_submitted", submitted)
			}
		}
	}
}
