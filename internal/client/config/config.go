package config

import "time"

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type Config struct {
	ServerEndpointAddr string
	// FavoritesBackend selects the store: BackendLocal or BackendRemote.
	FavoritesBackend   string
	DatabasePath       string
	PokeAPIBaseURL     string
	RequestTimeout     time.Duration
	RateLimit          float64
	// RedisAddr enables the shared response cache when set.
	RedisAddr          string
	CacheTTL           time.Duration
	PageSize           int
	LogLevel           string
	LogBackend         string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.FavoritesBackend = BackendRemote
	c.DatabasePath = "pokodex.db"
	c.PokeAPIBaseURL = "https://pokeapi.co/api/v2"
	c.RequestTimeout = 10 * time.Second
	c.RateLimit = 10
	c.RedisAddr = ""
	c.CacheTTL = time.Hour
	c.PageSize = 20
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// LoadConfig applies defaults, then the optional config file, then flags.
// Later sources win. It panics on an unreadable file or bad flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
