// Package pokeapi reads the public Pokémon data API through a rate limiter
// and a read-through cache.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	maxBodySize = 8 << 20
)

var ErrNotFound = errors.New("pokeapi: not found")

// StatusError is returned for any non-2xx answer other than 404.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: GET %s: status %d", e.Path, e.Code)
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, <= 0 disables
	Burst     int
	CacheTTL  time.Duration
}

type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	cache    Cache
	cacheTTL time.Duration
	group    singleflight.Group
	logger   logging.Logger
}

// NewClient builds a client. A nil cache gets an in-memory one.
func NewClient(cfg Config, cache Cache, logger logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, cfg.Burst),
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logger.With("module", "pokeapi"),
	}
}

// ListSpecies returns one page of the species index.
func (c *Client) ListSpecies(ctx context.Context, limit, offset int) (*SpeciesList, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var out SpeciesList
	if err := c.get(ctx, "/pokemon-species?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Pokemon(ctx context.Context, name string) (*Pokemon, error) {
	var out Pokemon
	if err := c.get(ctx, "/pokemon/"+escape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Species(ctx context.Context, name string) (*Species, error) {
	var out Species
	if err := c.get(ctx, "/pokemon-species/"+escape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EvolutionChain(ctx context.Context, id int) (*EvolutionChain, error) {
	var out EvolutionChain
	if err := c.get(ctx, "/evolution-chain/"+strconv.Itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Type(ctx context.Context, name string) (*Type, error) {
	var out Type
	if err := c.get(ctx, "/type/"+escape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail fetches the Pokémon and its species in parallel, then the
// evolution chain the species points to.
func (c *Client) Detail(ctx context.Context, name string) (*Detail, error) {
	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Pokemon, err = c.Pokemon(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		d.Species, err = c.Species(gctx, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if id := IDFromURL(d.Species.EvolutionChain.URL); id > 0 {
		chain, err := c.EvolutionChain(ctx, id)
		if err != nil {
			return nil, err
		}
		d.Evolution = chain
	}
	return &d, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	body, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("pokeapi: decode %s: %w", path, err)
	}
	return nil
}

// fetch serves path from the cache, collapsing concurrent misses for the
// same path into one request. The shared request runs detached from any one
// caller, bounded by the client timeout; a caller whose ctx ends stops
// waiting without failing the others.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	b, err := c.cache.Get(ctx, path)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn(ctx, "cache read failed", "path", path, "error", err)
	}

	ch := c.group.DoChan(path, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.http.Timeout)
		defer cancel()

		b, err := c.do(sctx, path)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(sctx, path, b, c.cacheTTL); err != nil {
			c.logger.Warn(sctx, "cache write failed", "path", path, "error", err)
		}
		return b, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("pokeapi: GET %s: %w", path, ctx.Err())
	}
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pokeapi: rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "pokeapi request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Path: path, Code: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("pokeapi: read %s: %w", path, err)
	}
	return b, nil
}

func escape(name string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(name)))
}
