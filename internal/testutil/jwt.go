package testutil

import (
	"testing"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/auth"
)

const testSecret = "test-secret-not-for-production"

// NewTestVerifier creates a verifier backed by a fixed test secret.
func NewTestVerifier(t *testing.T) *auth.Verifier {
	t.Helper()

	return auth.NewVerifier(auth.Config{
		Issuer:   auth.DefaultIssuer,
		Secret:   testSecret,
		TokenTTL: time.Hour,
	})
}

// IssueTestToken signs a token for the given role through the test verifier.
func IssueTestToken(t *testing.T, ver *auth.Verifier, username, role, linkedID string) string {
	t.Helper()

	token, err := ver.IssueToken(&auth.Principal{
		UserID:   "test-user-" + username,
		Username: username,
		Role:     role,
		LinkedID: linkedID,
	})
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}
