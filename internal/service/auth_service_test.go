package service

import (
	"context"
	"testing"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"
	"github.com/aukdevgh/project-backend/internal/token"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService(userRepo repository.UserRepository) AuthService {
	access := token.NewManager("test-access-secret", 15*time.Minute)
	refresh := token.NewManager("test-refresh-secret", 7*24*time.Hour)
	return NewAuthService(userRepo, access, refresh)
}

// Property: registration never stores plaintext passwords
func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(name string, email string, password string) bool {
			userRepo := newMockUserRepository()
			service := newTestAuthService(userRepo)
			ctx := context.Background()

			user, _, err := service.Register(ctx, name, email, password)
			if err != nil {
				// If registration fails, skip this test case
				return true
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for email %s", email)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: Password hash does not verify: %v", err)
				return false
			}

			stored, err := userRepo.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("FAIL: Could not find stored user: %v", err)
				return false
			}
			return stored.PasswordHash == user.PasswordHash
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: a refresh token rotates into a fresh valid pair
func TestProperty_RefreshRotatesTokenPair(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("refresh yields a new pair carrying the same identity", prop.ForAll(
		func(name string, email string, password string) bool {
			userRepo := newMockUserRepository()
			access := token.NewManager("test-access-secret", 15*time.Minute)
			refresh := token.NewManager("test-refresh-secret", 7*24*time.Hour)
			service := NewAuthService(userRepo, access, refresh)
			ctx := context.Background()

			user, pair, err := service.Register(ctx, name, email, password)
			if err != nil {
				return true // Skip if registration fails
			}

			rotated, err := service.Refresh(ctx, pair.Refresh)
			if err != nil {
				t.Logf("FAIL: Refresh failed: %v", err)
				return false
			}

			claims, err := access.Verify(rotated.Access)
			if err != nil {
				t.Logf("FAIL: Rotated access token invalid: %v", err)
				return false
			}
			if claims.UserID != user.ID.String() || claims.Email != email {
				t.Logf("FAIL: Claims mismatch: %+v", claims)
				return false
			}

			refreshClaims, err := refresh.Verify(rotated.Refresh)
			if err != nil {
				t.Logf("FAIL: Rotated refresh token invalid: %v", err)
				return false
			}
			return refreshClaims.UserID == user.ID.String()
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(userRepo)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, _, err := service.Register(ctx, "Ada Again", "ada@example.com", "different-pass")
	if err != repository.ErrUserAlreadyExists {
		t.Errorf("duplicate registration returned %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(userRepo)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "Ada", "ada@example.com", "password123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, _, err := service.Login(ctx, "ada@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("wrong password returned %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "password123"); err != ErrInvalidCredentials {
		t.Errorf("unknown email returned %v, want ErrInvalidCredentials", err)
	}

	user, pair, err := service.Login(ctx, "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if user.Email != "ada@example.com" || pair.Access == "" || pair.Refresh == "" {
		t.Errorf("login returned user %+v, pair %+v", user, pair)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(userRepo)
	ctx := context.Background()

	_, pair, err := service.Register(ctx, "Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// The two token classes are signed with independent secrets, so an
	// access token must never pass a refresh check.
	if _, err := service.Refresh(ctx, pair.Access); err != ErrInvalidToken {
		t.Errorf("access token accepted as refresh token: %v", err)
	}

	if _, err := service.Refresh(ctx, "garbage"); err != ErrInvalidToken {
		t.Errorf("garbage token returned %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(userRepo)
	ctx := context.Background()

	_, pair, err := service.Register(ctx, "Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	delete(userRepo.users, "ada@example.com")

	if _, err := service.Refresh(ctx, pair.Refresh); err != ErrInvalidToken {
		t.Errorf("refresh for a deleted user returned %v, want ErrInvalidToken", err)
	}
}

func TestGetUserByID(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestAuthService(userRepo)
	ctx := context.Background()

	registered, _, err := service.Register(ctx, "Ada", "ada@example.com", "password123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, err := service.GetUserByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("user = %+v", user)
	}

	if _, err := service.GetUserByID(ctx, uuid.New()); err != repository.ErrUserNotFound {
		t.Errorf("unknown id returned %v, want ErrUserNotFound", err)
	}
}
