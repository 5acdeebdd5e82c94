package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Principal holds identity extracted from a validated token.
type Principal struct {
	UserID   string
	Username string
	Role     string
	// LinkedID is the patient or doctor record owned by this user, resolved
	// once at login time. Empty for roles without a linked record.
	LinkedID string
	Claims   jwt.MapClaims
}

var (
	ErrNoToken       = errors.New("no token provided")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid issuer")
	ErrMissingSub    = errors.New("missing sub claim")
)

// Verifier issues and verifies session tokens. Tokens are signed locally
// with HS256; there is no external identity provider.
type Verifier struct {
	cfg Config
}

// NewVerifier constructs a verifier from config.
func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

// IssueToken mints a session token for an authenticated principal.
func (v *Verifier) IssueToken(pr *Principal) (string, error) {
	now := jwt.TimeFunc()
	claims := jwt.MapClaims{
		"sub":      pr.UserID,
		"username": pr.Username,
		"role":     pr.Role,
		"iss":      v.cfg.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(v.cfg.TokenTTL).Unix(),
	}
	if pr.LinkedID != "" {
		claims["linked_id"] = pr.LinkedID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(v.cfg.Secret))
}

// ParseAndVerifyToken verifies a bearer token, validates issuer/exp and returns Principal.
func (v *Verifier) ParseAndVerifyToken(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	tokenString = strings.TrimSpace(tokenString)
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(v.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	// issuer
	if iss, _ := claims["iss"].(string); iss != v.cfg.Issuer {
		return nil, ErrInvalidIssuer
	}
	// exp
	if !claims.VerifyExpiresAt(jwt.TimeFunc().Unix(), true) {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSub
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	linkedID, _ := claims["linked_id"].(string)

	return &Principal{
		UserID:   sub,
		Username: username,
		Role:     role,
		LinkedID: linkedID,
		Claims:   claims,
	}, nil
}

// Expiry reports when a token issued now would expire. Handlers include it in
// login responses so clients can schedule re-authentication.
func (v *Verifier) Expiry() time.Time {
	return jwt.TimeFunc().Add(v.cfg.TokenTTL)
}
