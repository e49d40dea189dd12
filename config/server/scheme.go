package server

import "time"

// Scheme web-server params
type Scheme struct {
	// Host to listen on such address, accept both ip4 and ip6 addresses
	Host string

	// Port to listen on, negative values will cause UB
	Port int

	// Auth bearer token params
	Auth AuthScheme
}

// AuthScheme bearer token issuance params
type AuthScheme struct {
	// TokenName expected authorization scheme, defaults to "Bearer"
	TokenName string

	// TokenTTL lifetime of issued bearer tokens
	TokenTTL time.Duration
}
