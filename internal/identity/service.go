package identity

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/healthnet-hms/clinic-service/internal/auth"
)

// ActivityRecorder appends best-effort entries to the activity feed.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, detail string)
}

type Service struct {
	repo     RepositoryInterface
	verifier *auth.Verifier
	activity ActivityRecorder
}

func NewService(repo RepositoryInterface, verifier *auth.Verifier, activity ActivityRecorder) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		activity: activity,
	}
}

// Authenticate verifies credentials and opens a session. Unknown-username and
// wrong-password failures return the same error after comparable work, so the
// response does not reveal which half was wrong.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			auth.BurnPasswordCheck(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	linkedID, err := s.repo.FindLinkedID(ctx, user.Role, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve linked record: %w", err)
	}

	principal := &auth.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		LinkedID: linkedID,
	}

	token, err := s.verifier.IssueToken(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, user.Username, "user.login", "")
	}

	return &Session{
		Token:     token,
		ExpiresAt: s.verifier.Expiry(),
		User:      user,
		LinkedID:  linkedID,
		Landing:   LandingForRole(user.Role),
	}, nil
}

// CreateAccount registers a new user. Non-Admin roles must name an existing
// patient/doctor/staff record which becomes linked to the account.
func (s *Service) CreateAccount(ctx context.Context, req SignupRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
	}

	// Create and link atomically: a signup naming a missing person record
	// must not leave an account behind.
	if req.LinkedID != "" {
		if err := s.repo.CreateLinked(ctx, user, req.LinkedID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	if s.activity != nil {
		s.activity.Record(ctx, user.Username, "user.signup", fmt.Sprintf("role=%s", user.Role))
	}

	return user, nil
}

// CurrentUser resolves the account behind a principal, for the session echo
// endpoint used by views to re-check their role guard.
func (s *Service) CurrentUser(ctx context.Context, principal *auth.Principal) (*User, error) {
	user, err := s.repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Bootstrap default admin credentials, matching the first-run state the
// desktop application seeded.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// BootstrapAdmin creates the default administrator account when no user named
// "admin" exists yet. Called once at startup.
func (s *Service) BootstrapAdmin(ctx context.Context) error {
	_, err := s.repo.GetByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check for default admin: %w", err)
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &User{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Role:         RoleAdmin,
		FullName:     "System Administrator",
		Email:        "admin@healthnet.com",
		Phone:        "1234567890",
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Println("✓ Default admin user created")
	return nil
}
