package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/termbase/termbase/internal/auth"
	"github.com/termbase/termbase/internal/cache"
	"github.com/termbase/termbase/internal/metrics"
	"github.com/termbase/termbase/internal/model"
	"github.com/termbase/termbase/internal/repository"
)

const minPasswordLength = 8

// AccountService handles sign-up, sign-in, and sign-out.
type AccountService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.Repository, c *cache.Cache, sessionTTL time.Duration, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:       repo,
		cache:      c,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// SignUpInput defines input for account creation.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignInInput defines input for credential sign-in.
type SignInInput struct {
	Email    string
	Password string
}

// SessionInfo is a freshly issued login session. Token is shown to
// the client exactly once.
type SessionInfo struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// ClientInfo carries transport metadata stored alongside a session.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// SignUp creates a user with an argon2id-hashed password and issues a
// first session. A taken email surfaces as a field-level validation
// error, matching how the form renders it.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput, client ClientInfo) (info *SessionInfo, err error) {
	defer func() { s.metrics.RecordOperation("auth.signup", outcome(err)) }()

	if fields := validateSignUp(input); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, invalid("email", "email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueSession(ctx, user, client)
}

// SignIn verifies credentials and issues a new session. Unknown email
// and wrong password fail identically.
func (s *AccountService) SignIn(ctx context.Context, input SignInInput, client ClientInfo) (info *SessionInfo, err error) {
	defer func() { s.metrics.RecordOperation("auth.signin", outcome(err)) }()

	if input.Email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user, client)
}

// SignOut deletes the session and drops its cached identity so the
// token stops resolving immediately, not at cache expiry.
func (s *AccountService) SignOut(ctx context.Context, token string) (err error) {
	defer func() { s.metrics.RecordOperation("auth.signout", outcome(err)) }()

	if token == "" {
		return ErrUnauthenticated
	}

	if err = s.repo.DeleteSessionByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("delete session: %w", err)
	}

	// Cache invalidation is best-effort; the DB row is already gone
	// and the cache entry has a short TTL regardless.
	_ = s.cache.DeleteIdentity(ctx, auth.HashToken(token))

	return nil
}

// issueSession creates a session row and returns the raw token.
func (s *AccountService) issueSession(ctx context.Context, user *model.User, client ClientInfo) (*SessionInfo, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		ID:        auth.NewSessionID(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		CreatedAt: now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &SessionInfo{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

// validateSignUp collects field-level violations for sign-up input.
func validateSignUp(input SignUpInput) map[string]string {
	fields := make(map[string]string)

	if input.Name == "" {
		fields["name"] = "name is required"
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email[1:], "@") || strings.HasSuffix(email, "@") {
		fields["email"] = "email must be a valid address"
	}

	if len(input.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
