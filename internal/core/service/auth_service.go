package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/pkg/metrics"
)

// AuthService implements registration, login and account lookups.
type AuthService struct {
	repo   ports.AccountRepository
	tokens ports.TokenService
	cost   int
	log    zerolog.Logger
	now    func() time.Time

	// dummyHash is compared against when a login email is unknown so both
	// failure branches spend the same bcrypt time.
	dummyHash []byte
}

func NewAuthService(repo ports.AccountRepository, tokens ports.TokenService, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("inventory-api-dummy-password"), bcryptCost)
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		cost:      bcryptCost,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Register creates an account and returns it together with a fresh token.
// Uniqueness of email and username is left to the repository's unique
// indexes; there is no lookup before the insert.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (token string, account *domain.Account, err error) {
	defer func() { countAttempt("register", err) }()

	if !s.tokens.Configured() {
		s.log.Error().Msg("JWT secret is not configured")
		return "", nil, domain.ErrSigningSecretMissing
	}

	username = domain.NormalizeUsername(username)
	email = domain.NormalizeEmail(email)

	verr := &domain.ValidationError{}
	if username == "" {
		verr.Add("username", "Username is required")
	}
	if email == "" {
		verr.Add("email", "Please include a valid email")
	}
	if password == "" {
		verr.Add("password", "Password is required")
	}
	if err := verr.OrNil(); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return "", nil, err
	}

	token, err = s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("account registered")
	return token, created, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error) {
	defer func() { countAttempt("login", err) }()

	if !s.tokens.Configured() {
		s.log.Error().Msg("JWT secret is not configured")
		return "", nil, domain.ErrSigningSecretMissing
	}

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err = s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if account == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Debug().Str("reason", "email_not_found").Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	if !s.VerifyPassword(account, password) {
		s.log.Debug().Str("reason", "password_mismatch").Str("account_id", account.ID).Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err = s.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func countAttempt(operation string, err error) {
	var verr *domain.ValidationError
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCredentials), errors.As(err, &verr):
		result = "invalid"
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateUsername):
		result = "duplicate"
	default:
		result = "error"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}

// VerifyPassword reports whether candidate matches the account's stored hash.
func (s *AuthService) VerifyPassword(account *domain.Account, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(candidate)) == nil
}

// CurrentAccount loads the account behind a verified token.
func (s *AuthService) CurrentAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	account, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return false, err
	}
	return account == nil, nil
}

func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	account, err := s.repo.FindByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return false, err
	}
	return account == nil, nil
}
