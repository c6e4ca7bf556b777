package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tickdrift/matchbox/params"
	"github.com/tickdrift/matchbox/pkg/api"
	"github.com/tickdrift/matchbox/pkg/engine"
	"github.com/tickdrift/matchbox/pkg/sim"
	"github.com/tickdrift/matchbox/pkg/util"
)

func main() {
	// Load config from .env file and environment variables
	cfg := params.LoadFromEnv("") // "" means load from .env in current directory

	// Setup logging (write to both console and file)
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "data/matchbox.log"
	}

	logger, err := util.NewLoggerWithFile(logFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	sugar.Infow("logger_initialized", "log_file", logFile)

	// ---- Matching engine ----
	eng := engine.New(cfg.Book.MaxTickers, cfg.Book.MaxOrdersPerSide)
	sugar.Infow("engine_initialized",
		"max_tickers", cfg.Book.MaxTickers,
		"max_orders_per_side", cfg.Book.MaxOrdersPerSide)

	// ---- Simulation driver (runs for the process lifetime, off until toggled) ----
	driver := sim.NewDriver(eng, cfg.Sim, util.RealClock{}, sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go driver.Run(ctx)

	// ---- API server ----
	server := api.NewServer(eng, driver, sugar)

	// Push executed trades to WebSocket subscribers as they happen.
	eng.OnTrade = server.BroadcastTrade

	go func() {
		if err := server.Start(cfg.Server.Addr); err != nil {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")
}
