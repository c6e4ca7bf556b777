package sim

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tickdrift/matchbox/params"
	"github.com/tickdrift/matchbox/pkg/engine"
)

func testSimConfig() params.Sim {
	return params.Sim{
		Interval: time.Millisecond,
		PriceMin: 90,
		PriceMax: 110,
		QtyMin:   1,
		QtyMax:   10,
	}
}

// fakeClock feeds ticks on demand.
type fakeClock struct {
	ticks chan time.Time
}

func (c *fakeClock) Now() time.Time                      { return time.Time{} }
func (c *fakeClock) Tick(time.Duration) <-chan time.Time { return c.ticks }

func TestGeneratorBands(t *testing.T) {
	g := NewGenerator(16, testSimConfig())

	for i := 0; i < 1000; i++ {
		side, ticker, qty, price := g.Next()
		if side != engine.Buy && side != engine.Sell {
			t.Fatalf("unexpected side %v", side)
		}
		if ticker < 0 || ticker >= 16 {
			t.Fatalf("ticker %d outside [0,16)", ticker)
		}
		if price < 90 || price > 110 {
			t.Fatalf("price %d outside [90,110]", price)
		}
		if qty < 1 || qty > 10 {
			t.Fatalf("quantity %d outside [1,10]", qty)
		}
	}
}

func TestToggleIsInvolution(t *testing.T) {
	e := engine.New(16, 100)
	d := NewDriver(e, testSimConfig(), &fakeClock{}, zap.NewNop().Sugar())

	if d.Enabled() {
		t.Fatal("driver should start disabled")
	}
	if !d.Toggle() {
		t.Error("first toggle should enable")
	}
	if d.Toggle() {
		t.Error("second toggle should disable")
	}
	if d.Enabled() {
		t.Error("two toggles should restore the original state")
	}
}

func TestBurstSubmitsWithoutMatching(t *testing.T) {
	e := engine.New(4, 1000)
	d := NewDriver(e, testSimConfig(), &fakeClock{}, zap.NewNop().Sugar())

	d.Burst(10)

	total := 0
	for _, to := range e.SnapshotAll() {
		total += len(to.Buys) + len(to.Sells)
	}
	if total != 10 {
		t.Errorf("admitted %d orders; want 10", total)
	}
	if len(e.Trades()) != 0 {
		t.Error("burst must not trigger matching")
	}
}

func TestDriverActsOnlyWhileEnabled(t *testing.T) {
	e := engine.New(4, 10000)
	clock := &fakeClock{ticks: make(chan time.Time)}
	d := NewDriver(e, testSimConfig(), clock, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	orderCount := func() int {
		n := 0
		for _, to := range e.SnapshotAll() {
			n += len(to.Buys) + len(to.Sells)
		}
		return n
	}

	// Disabled: ticks do nothing.
	for i := 0; i < 5; i++ {
		clock.ticks <- time.Time{}
	}
	if got := orderCount(); got != 0 {
		t.Fatalf("disabled driver submitted %d orders", got)
	}

	d.Toggle()
	for i := 0; i < 5; i++ {
		clock.ticks <- time.Time{}
	}

	cancel()
	<-done

	if got := orderCount(); got < 4 {
		t.Errorf("enabled driver submitted %d orders; want at least 4", got)
	}
}
