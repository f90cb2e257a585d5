package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/pkg/metrics"
)

const (
	// TokenHeader carries the bearer token on protected routes.
	TokenHeader = "x-auth-token"

	claimsKey = "claims"
)

// Auth verifies the token in TokenHeader and stores the decoded claims in the
// request context. Every rejection ends the request before next runs with one
// of domain.ErrMissingToken, ErrTokenExpired, ErrTokenInvalid or
// ErrSigningSecretMissing, rendered by the central error handler.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
			if raw == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			claims, err := tokens.Verify(raw)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrSigningSecretMissing):
				metrics.TokenRejectionsTotal.WithLabelValues("unconfigured").Inc()
				return err
			case errors.Is(err, domain.ErrTokenExpired):
				metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
				return domain.ErrTokenExpired
			default:
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrTokenInvalid
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil when the request did
// not pass through it.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}
