// Package common contains shared constants and sentinel errors used across
// Pokodex components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultPageSize is the favorites page size used when a caller passes none.
const DefaultPageSize = 20
