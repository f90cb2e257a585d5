package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 7 * 24 * time.Hour

type tokenUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. Tokens are stateless
// and cannot be revoked before they expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

func (s *TokenService) Configured() bool {
	return len(s.secret) > 0
}

// Issue returns a signed token for account, valid for TokenTTL.
func (s *TokenService) Issue(account *domain.Account) (string, error) {
	if !s.Configured() {
		return "", domain.ErrSigningSecretMissing
	}

	now := s.now()
	claims := tokenClaims{
		User: tokenUser{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claims.
// Expiry is reported as domain.ErrTokenExpired; every other failure as
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	if !s.Configured() {
		return nil, domain.ErrSigningSecretMissing
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.User.ID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		ID:       claims.User.ID,
		Username: claims.User.Username,
		Email:    claims.User.Email,
	}, nil
}
