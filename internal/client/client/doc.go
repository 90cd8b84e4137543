// Package client talks to the Pokodex backend and bootstraps the on-device
// database.
//
// GRPCClient implements Backend over gRPC with the JSON codec. It attaches
// the access token to every call, refreshes it once when the server reports
// it expired, and maps status codes to the sentinel errors in errors.go.
//
// InitDatabase opens the SQLite device database and applies the embedded
// goose migrations.
package client
