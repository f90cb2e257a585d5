package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/middleware"
	"github.com/stockroom/inventory-api/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. A missing or
// anonymous identity means the route was mounted without the gate; reject
// with 401 rather than run an unscoped query.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication token")
	}
	return claims, nil
}
