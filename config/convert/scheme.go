package convert

import "time"

// Scheme rate source params
type Scheme struct {
	// Type of main rate source, "coingecko" or "cryptocompare"
	Type string

	// FallbackType optional secondary source used when the main one is unreachable
	FallbackType string

	// FallbackTimeout per-attempt timeout applied by the fallback wrapper, required when
	// FallbackType is set
	FallbackTimeout time.Duration

	// QuoteTimeout deadline applied to a single quote call when the request context carries none
	QuoteTimeout time.Duration
}
