package params

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Server struct {
	Addr string
}

type Book struct {
	// MaxTickers bounds the ticker id space: valid ids are [0, MaxTickers).
	MaxTickers int
	// MaxOrdersPerSide caps each ticker's buy and sell collections.
	// Submissions past the cap are dropped without error.
	MaxOrdersPerSide int
}

type Sim struct {
	Interval time.Duration
	PriceMin int
	PriceMax int
	QtyMin   int
	QtyMax   int
}

type Config struct {
	Server Server
	Book   Book
	Sim    Sim
}

func Default() Config {
	return Config{
		Server: Server{
			Addr: ":18080",
		},
		Book: Book{
			MaxTickers:       1024,
			MaxOrdersPerSide: 1000,
		},
		Sim: Sim{
			Interval: 300 * time.Millisecond,
			PriceMin: 90,
			PriceMax: 110,
			QtyMin:   1,
			QtyMax:   10,
		},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Try to load .env file (optional - won't fail if not exists)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load() // loads .env from current directory
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	if v := os.Getenv("MAX_TICKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Book.MaxTickers = n
		}
	}
	if v := os.Getenv("MAX_ORDERS_PER_SIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Book.MaxOrdersPerSide = n
		}
	}

	if v := os.Getenv("SIM_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Sim.Interval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("SIM_PRICE_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sim.PriceMin = n
		}
	}
	if v := os.Getenv("SIM_PRICE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sim.PriceMax = n
		}
	}
	if v := os.Getenv("SIM_QTY_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sim.QtyMin = n
		}
	}
	if v := os.Getenv("SIM_QTY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sim.QtyMax = n
		}
	}

	return cfg
}
