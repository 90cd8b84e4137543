package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/client"
	"github.com/dmitrijs2005/pokodex/internal/client/config"
	"github.com/dmitrijs2005/pokodex/internal/client/favorites"
	"github.com/dmitrijs2005/pokodex/internal/client/identity"
	"github.com/dmitrijs2005/pokodex/internal/client/pokeapi"
	"github.com/dmitrijs2005/pokodex/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/pokodex/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pokodex/internal/client/services"
	"github.com/dmitrijs2005/pokodex/internal/filex"
	"github.com/dmitrijs2005/pokodex/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeLocal   Mode = "local"
)

const onlineCheckInterval = 5 * time.Second

type authAPI interface {
	Restore(ctx context.Context) (*services.Session, error)
	SignUp(ctx context.Context, email, password string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	SignOut(ctx context.Context) error
	Session() *services.Session
	Ping(ctx context.Context) error
}

type identityAPI interface {
	CurrentActorID(ctx context.Context) (string, error)
	HasConsentForCookies(ctx context.Context) (bool, error)
	SetConsent(ctx context.Context, consent bool) error
}

type pokedex interface {
	ListSpecies(ctx context.Context, limit, offset int) (*pokeapi.SpeciesList, error)
	Pokemon(ctx context.Context, name string) (*pokeapi.Pokemon, error)
	Detail(ctx context.Context, name string) (*pokeapi.Detail, error)
	Type(ctx context.Context, name string) (*pokeapi.Type, error)
}

// App is the composition root of the client. It owns the favorites facade
// for the whole session.
type App struct {
	auth      authAPI
	identity  identityAPI
	favorites *favorites.Facade
	pokedex   pokedex
	logger    logging.Logger

	apiBase  string
	pageSize int
	remote   bool

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode

	closers []func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a := &App{
		logger:   logger,
		apiBase:  strings.TrimRight(cfg.PokeAPIBaseURL, "/"),
		pageSize: cfg.PageSize,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []func() error{db.Close},
	}

	jar := cookies.NewSQLiteRepository(db)
	if n, err := jar.Purge(ctx); err != nil {
		logger.Warn(ctx, "purge expired cookies failed", "error", err)
	} else if n > 0 {
		logger.Debug(ctx, "purged expired cookies", "count", n)
	}
	sessions := services.NewSessionStore(db)
	resolver := identity.NewResolver(jar, sessions)

	backend, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, backend.Close)

	var (
		store    favorites.Store
		migrator favorites.Migrator
	)
	switch cfg.FavoritesBackend {
	case config.BackendRemote:
		store = favorites.NewRemoteStore(backend, resolver)
		migrator = favorites.NewRemoteMigrator(backend)
		a.remote = true
		a.mode = ModeOffline
	case config.BackendLocal:
		store = favorites.NewLocalStore(metadata.NewSQLiteRepository(db))
		migrator = favorites.NopMigrator{}
		a.mode = ModeLocal
	default:
		a.close()
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.FavoritesBackend)
	}

	auth := services.NewAuthService(backend, sessions, resolver, migrator, logger)
	backend.OnTokensRefreshed(auth.TokensRefreshed)

	var cache pokeapi.Cache
	if cfg.RedisAddr != "" {
		rc, err := pokeapi.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn(ctx, "redis cache unavailable, using memory cache", "error", err)
		} else {
			cache = pokeapi.NewRedisCache(rc)
			a.closers = append(a.closers, rc.Close)
		}
	}

	a.auth = auth
	a.identity = resolver
	a.pokedex = pokeapi.NewClient(pokeapi.Config{
		BaseURL:   cfg.PokeAPIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Burst:     int(cfg.RateLimit) + 1,
		CacheTTL:  cfg.CacheTTL,
	}, cache, logger)
	a.favorites = favorites.NewFacade(store, logger)
	a.favorites.Subscribe(func(s favorites.State) {
		logger.Debug(context.Background(), "favorites state",
			"total", s.TotalCount, "loaded", len(s.Favorites), "loading", s.Loading, "error", s.Err)
	})
	return a, nil
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to Pokodex CLI (type 'help' for commands)")

	if s, err := a.auth.Restore(ctx); err != nil {
		a.logger.Error(ctx, "restore session failed", "error", err)
	} else if s != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
	}

	if a.remote {
		a.checkOnline(ctx)
		go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session() != nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.auth.Ping(pctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	who := "anonymous"
	if s := a.auth.Session(); s != nil {
		who = s.Email
	}
	return fmt.Sprintf("(%s %s)", who, a.Mode())
}
