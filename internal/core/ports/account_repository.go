package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// AccountRepository persists accounts. Email and username uniqueness is
// enforced by the store itself: Create returns domain.ErrDuplicateEmail or
// domain.ErrDuplicateUsername on collision.
//
// The Find methods return (nil, nil) when no account matches.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}
