// Package config loads runtime configuration for the Pokodex CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Durations in files use timex.Duration, so "10s" and integer nanoseconds
// both work:
//
//	server_endpoint_addr: 127.0.0.1:50051
//	favorites_backend: local
//	request_timeout: 5s
//	redis_addr: 127.0.0.1:6379
//	cache_ttl: 30m
package config
