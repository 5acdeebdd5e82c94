package identity

import (
	"context"

	"github.com/healthnet-hms/clinic-service/internal/auth"
)

// ServiceInterface defines the contract for the identity service
type ServiceInterface interface {
	Authenticate(ctx context.Context, req LoginRequest) (*Session, error)
	CreateAccount(ctx context.Context, req SignupRequest) (*User, error)
	CurrentUser(ctx context.Context, principal *auth.Principal) (*User, error)
	BootstrapAdmin(ctx context.Context) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
