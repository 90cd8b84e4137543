package config

import (
	"github.com/dmitrijs2005/pokodex/internal/flagx"
	"github.com/dmitrijs2005/pokodex/internal/timex"
)

type FileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	FavoritesBackend   string         `json:"favorites_backend" yaml:"favorites_backend"`
	DatabasePath       string         `json:"database_path" yaml:"database_path"`
	PokeAPIBaseURL     string         `json:"pokeapi_base_url" yaml:"pokeapi_base_url"`
	RequestTimeout     timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RateLimit          float64        `json:"rate_limit" yaml:"rate_limit"`
	RedisAddr          string         `json:"redis_addr" yaml:"redis_addr"`
	CacheTTL           timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	PageSize           int            `json:"page_size" yaml:"page_size"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	LogBackend         string         `json:"log_backend" yaml:"log_backend"`
}

func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeFile(path, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.ServerEndpointAddr, c.ServerEndpointAddr)
	setString(&config.FavoritesBackend, c.FavoritesBackend)
	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.PokeAPIBaseURL, c.PokeAPIBaseURL)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogBackend, c.LogBackend)
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.CacheTTL.Duration > 0 {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.RateLimit > 0 {
		config.RateLimit = c.RateLimit
	}
	if c.PageSize > 0 {
		config.PageSize = c.PageSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
