package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string   address:port of the backend gRPC endpoint
//	-f string   favorites backend (local|remote)
//	-p string   device database path
//	-u string   Pokémon API base URL
//	-t int      Pokémon API request timeout, seconds
//	-q float    Pokémon API requests per second
//	-r string   Redis address for the shared response cache
//	-e int      response cache TTL, minutes
//	-n int      page size
//	-l string   log level
//	-b string   log backend (slog|zap)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-f", "-p", "-u", "-t", "-q", "-r", "-e", "-n", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.FavoritesBackend, "f", cfg.FavoritesBackend, "favorites backend (local|remote)")
	fs.StringVar(&cfg.DatabasePath, "p", cfg.DatabasePath, "device database path")
	fs.StringVar(&cfg.PokeAPIBaseURL, "u", cfg.PokeAPIBaseURL, "Pokémon API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "q", cfg.RateLimit, "Pokémon API requests per second")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the response cache")
	ttl := fs.Int("e", int(cfg.CacheTTL.Minutes()), "response cache TTL (in minutes)")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.CacheTTL = time.Duration(*ttl) * time.Minute
}
