package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	CurrentAccount(ctx context.Context, id string) (*domain.Account, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}
