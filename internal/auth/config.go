package auth

import (
	"os"
	"time"
)

// Config holds auth configuration
type Config struct {
	Issuer   string
	Secret   string
	TokenTTL time.Duration
}

const (
	// DefaultIssuer identifies tokens minted by this service.
	DefaultIssuer = "healthnet/clinic-service"

	// DefaultTokenTTL bounds the lifetime of a session token. Logout is a
	// client-side discard, so the TTL is the hard upper bound on a session.
	DefaultTokenTTL = 24 * time.Hour
)

// LoadConfig reads config from env with sensible defaults.
// You can override with AUTH_ISSUER, AUTH_SECRET and AUTH_TOKEN_TTL.
func LoadConfig() Config {
	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		// development fallback only; production deployments set AUTH_SECRET
		secret = "healthnet-dev-secret"
	}
	ttl := DefaultTokenTTL
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}
	return Config{
		Issuer:   issuer,
		Secret:   secret,
		TokenTTL: ttl,
	}
}
