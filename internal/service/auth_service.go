package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"
	"github.com/aukdevgh/project-backend/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenPair is the access/refresh credential pair issued on login, register,
// and refresh. The TTLs drive the cookie lifetimes.
type TokenPair struct {
	Access     string
	Refresh    string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	accessTokens  token.Issuer
	refreshTokens token.IssuerVerifier
}

// NewAuthService creates a new instance of AuthService. The two token
// managers hold the independent access and refresh signing secrets.
func NewAuthService(
	userRepo repository.UserRepository,
	accessTokens token.Issuer,
	refreshTokens token.IssuerVerifier,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		accessTokens:  accessTokens,
		refreshTokens: refreshTokens,
	}
}

// Register creates a new user account with a hashed password and logs it in
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, TokenPair, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, TokenPair{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, TokenPair{}, repository.ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	return user, pair, nil
}

// Login authenticates a user and issues a fresh token pair
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and rotates the whole pair. The new
// tokens carry the identity recovered from the refresh token, re-checked
// against the user store.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.refreshTokens.Verify(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issuePair(user)
}

// GetUserByID retrieves a user by ID
func (s *authService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) issuePair(user *domain.User) (TokenPair, error) {
	claims := token.Claims{UserID: user.ID.String(), Email: user.Email}

	access, err := s.accessTokens.Issue(claims)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.refreshTokens.Issue(claims)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return TokenPair{
		Access:     access,
		Refresh:    refresh,
		AccessTTL:  s.accessTokens.TTL(),
		RefreshTTL: s.refreshTokens.TTL(),
	}, nil
}
