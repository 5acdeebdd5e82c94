package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/auth"
)

// mockRepository implements RepositoryInterface for testing
type mockRepository struct {
	createFunc        func(ctx context.Context, user *User) error
	createLinkedFunc  func(ctx context.Context, user *User, linkedID string) error
	getByUsernameFunc func(ctx context.Context, username string) (*User, error)
	getByIDFunc       func(ctx context.Context, id string) (*User, error)
	findLinkedIDFunc  func(ctx context.Context, role, userID string) (string, error)
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "user-new"
	return nil
}

func (m *mockRepository) CreateLinked(ctx context.Context, user *User, linkedID string) error {
	if m.createLinkedFunc != nil {
		return m.createLinkedFunc(ctx, user, linkedID)
	}
	user.ID = "user-new"
	return nil
}

func (m *mockRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) FindLinkedID(ctx context.Context, role, userID string) (string, error) {
	if m.findLinkedIDFunc != nil {
		return m.findLinkedIDFunc(ctx, role, userID)
	}
	return "", nil
}

type recordedActivity struct {
	actor  string
	action string
	detail string
}

type mockActivity struct {
	entries []recordedActivity
}

func (m *mockActivity) Record(ctx context.Context, actor, action, detail string) {
	m.entries = append(m.entries, recordedActivity{actor: actor, action: action, detail: detail})
}

func testVerifier() *auth.Verifier {
	return auth.NewVerifier(auth.Config{
		Issuer:   auth.DefaultIssuer,
		Secret:   "identity-test-secret",
		TokenTTL: time.Hour,
	})
}

func storedUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return &User{
		ID:           "user-123",
		Username:     "drjones",
		PasswordHash: hash,
		Role:         RoleDoctor,
		FullName:     "Sarah Jones",
	}
}

// TestAuthenticate_Success tests login with correct credentials
func TestAuthenticate_Success(t *testing.T) {
	user := storedUser(t, "secret99")
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			if username != "drjones" {
				t.Errorf("Expected lookup for 'drjones', got '%s'", username)
			}
			return user, nil
		},
		findLinkedIDFunc: func(ctx context.Context, role, userID string) (string, error) {
			return "doc-77", nil
		},
	}
	activity := &mockActivity{}
	verifier := testVerifier()
	service := NewService(repo, verifier, activity)

	session, err := service.Authenticate(context.Background(), LoginRequest{
		Username: "drjones",
		Password: "secret99",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.User.ID != "user-123" {
		t.Errorf("Expected user 'user-123', got '%s'", session.User.ID)
	}
	if session.LinkedID != "doc-77" {
		t.Errorf("Expected linked id 'doc-77', got '%s'", session.LinkedID)
	}
	if session.Landing != LandingDoctor {
		t.Errorf("Expected landing '%s', got '%s'", LandingDoctor, session.Landing)
	}

	principal, err := verifier.ParseAndVerifyToken(session.Token)
	if err != nil {
		t.Fatalf("Session token did not verify: %v", err)
	}
	if principal.UserID != "user-123" || principal.Role != RoleDoctor || principal.LinkedID != "doc-77" {
		t.Errorf("Token claims mismatch: %+v", principal)
	}

	if len(activity.entries) != 1 || activity.entries[0].action != "user.login" {
		t.Errorf("Expected one user.login activity entry, got %+v", activity.entries)
	}
}

// TestAuthenticate_WrongPassword tests that a bad password yields the generic
// credential error
func TestAuthenticate_WrongPassword(t *testing.T) {
	user := storedUser(t, "secret99")
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}
	service := NewService(repo, testVerifier(), nil)

	_, err := service.Authenticate(context.Background(), LoginRequest{
		Username: "drjones",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// TestAuthenticate_UnknownUser tests that an unknown username yields the same
// generic credential error as a bad password
func TestAuthenticate_UnknownUser(t *testing.T) {
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return nil, ErrUserNotFound
		},
	}
	service := NewService(repo, testVerifier(), nil)

	_, err := service.Authenticate(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// TestCreateAccount_Success tests signup with a linked doctor record
func TestCreateAccount_Success(t *testing.T) {
	var linkedID string
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) error {
			t.Error("Expected linked signup to use CreateLinked, not Create")
			return nil
		},
		createLinkedFunc: func(ctx context.Context, user *User, id string) error {
			user.ID = "user-456"
			linkedID = id
			return nil
		},
	}
	activity := &mockActivity{}
	service := NewService(repo, testVerifier(), activity)

	user, err := service.CreateAccount(context.Background(), SignupRequest{
		Username:        "drjones",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Role:            RoleDoctor,
		FullName:        "Sarah Jones",
		LinkedID:        "doc-77",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID != "user-456" {
		t.Errorf("Expected id 'user-456', got '%s'", user.ID)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret99" {
		t.Error("Expected password to be stored hashed")
	}
	if linkedID != "doc-77" {
		t.Errorf("Expected link to doc-77, got %q", linkedID)
	}
	if len(activity.entries) != 1 || activity.entries[0].action != "user.signup" {
		t.Errorf("Expected one user.signup activity entry, got %+v", activity.entries)
	}
}

// TestCreateAccount_ValidationErrors tests the signup validation rules
func TestCreateAccount_ValidationErrors(t *testing.T) {
	valid := SignupRequest{
		Username:        "drjones",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Role:            RoleDoctor,
		FullName:        "Sarah Jones",
		LinkedID:        "doc-77",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr error
	}{
		{
			name:    "short username",
			mutate:  func(r *SignupRequest) { r.Username = "ab" },
			wantErr: ErrUsernameTooShort,
		},
		{
			name:    "short password",
			mutate:  func(r *SignupRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" },
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "password mismatch",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "different" },
			wantErr: ErrPasswordMismatch,
		},
		{
			name:    "missing full name",
			mutate:  func(r *SignupRequest) { r.FullName = "" },
			wantErr: ErrMissingFullName,
		},
		{
			name:    "unknown role",
			mutate:  func(r *SignupRequest) { r.Role = "Superuser" },
			wantErr: ErrInvalidRole,
		},
		{
			name:    "non-admin without linked record",
			mutate:  func(r *SignupRequest) { r.LinkedID = "" },
			wantErr: ErrMissingLinkedRecord,
		},
	}

	service := NewService(&mockRepository{}, testVerifier(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := service.CreateAccount(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestCreateAccount_AdminNeedsNoLink tests that Admin accounts skip the
// linked-record requirement and the link step
func TestCreateAccount_AdminNeedsNoLink(t *testing.T) {
	linked := false
	repo := &mockRepository{
		createLinkedFunc: func(ctx context.Context, user *User, id string) error {
			linked = true
			return nil
		},
	}
	service := NewService(repo, testVerifier(), nil)

	_, err := service.CreateAccount(context.Background(), SignupRequest{
		Username:        "sysop",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Role:            RoleAdmin,
		FullName:        "Site Operator",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if linked {
		t.Error("Expected no link for Admin account")
	}
}

// TestCreateAccount_MissingLinkTarget tests that a signup naming a person
// record that does not exist fails without persisting the account
func TestCreateAccount_MissingLinkTarget(t *testing.T) {
	persisted := 0
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) error {
			persisted++
			return nil
		},
		createLinkedFunc: func(ctx context.Context, user *User, id string) error {
			return ErrLinkedRecordNotFound
		},
	}
	service := NewService(repo, testVerifier(), nil)

	_, err := service.CreateAccount(context.Background(), SignupRequest{
		Username:        "nursejane",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Role:            RoleNurse,
		FullName:        "Jane Poole",
		LinkedID:        "no-such-staff-record",
	})
	if !errors.Is(err, ErrLinkedRecordNotFound) {
		t.Fatalf("Expected ErrLinkedRecordNotFound, got %v", err)
	}
	if persisted != 0 {
		t.Errorf("Expected no user row persisted on failed link, got %d", persisted)
	}
}

// TestCreateAccount_DuplicateUsername tests that a taken username surfaces
// the repository error
func TestCreateAccount_DuplicateUsername(t *testing.T) {
	repo := &mockRepository{
		createLinkedFunc: func(ctx context.Context, user *User, id string) error {
			return ErrDuplicateUsername
		},
	}
	service := NewService(repo, testVerifier(), nil)

	_, err := service.CreateAccount(context.Background(), SignupRequest{
		Username:        "drjones",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Role:            RoleDoctor,
		FullName:        "Sarah Jones",
		LinkedID:        "doc-77",
	})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("Expected ErrDuplicateUsername, got %v", err)
	}
}

// TestBootstrapAdmin_CreatesWhenMissing tests first-run admin seeding
func TestBootstrapAdmin_CreatesWhenMissing(t *testing.T) {
	var created *User
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return nil, ErrUserNotFound
		},
		createFunc: func(ctx context.Context, user *User) error {
			created = user
			user.ID = "user-admin"
			return nil
		},
	}
	service := NewService(repo, testVerifier(), nil)

	if err := service.BootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created == nil {
		t.Fatal("Expected admin account to be created")
	}
	if created.Username != "admin" || created.Role != RoleAdmin {
		t.Errorf("Expected admin/Admin account, got %s/%s", created.Username, created.Role)
	}
	if !auth.VerifyPassword(created.PasswordHash, "admin123") {
		t.Error("Expected default admin password to verify")
	}
}

// TestBootstrapAdmin_SkipsWhenPresent tests that an existing admin account is
// left alone
func TestBootstrapAdmin_SkipsWhenPresent(t *testing.T) {
	repo := &mockRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*User, error) {
			return &User{ID: "user-admin", Username: "admin", Role: RoleAdmin}, nil
		},
		createFunc: func(ctx context.Context, user *User) error {
			t.Error("Expected no create call for existing admin")
			return nil
		},
	}
	service := NewService(repo, testVerifier(), nil)

	if err := service.BootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

// TestLandingForRole tests the role to landing view mapping
func TestLandingForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleAdmin, LandingAdmin},
		{RoleDoctor, LandingDoctor},
		{RolePatient, LandingPatient},
		{RoleNurse, LandingDashboard},
		{RoleStaff, LandingDashboard},
	}
	for _, tt := range tests {
		if got := LandingForRole(tt.role); got != tt.want {
			t.Errorf("LandingForRole(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}
