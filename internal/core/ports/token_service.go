package ports

import "github.com/stockroom/inventory-api/internal/core/domain"

// TokenVerifier decodes bearer tokens. It is all the auth middleware needs.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	TokenVerifier
	Issue(account *domain.Account) (string, error)
	// Configured reports whether a signing secret is present.
	Configured() bool
}
