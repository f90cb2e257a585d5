package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/api/handler"
	"github.com/stockroom/inventory-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally, exposing the detail only when
//     exposeDetail is set.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, exposeDetail)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, exposeDetail bool) (int, handler.ErrorResponse) {
	// Echo's own errors (bind failures, 401 from the auth gate, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		names := verr.FieldNames()
		body := handler.ErrorResponse{Errors: make([]handler.FieldError, 0, len(names))}
		msgs := make([]string, 0, len(names))
		for _, name := range names {
			body.Errors = append(body.Errors, handler.FieldError{Field: name, Message: verr.Fields[name]})
			msgs = append(msgs, verr.Fields[name])
		}
		body.Message = strings.Join(msgs, ", ")
		return http.StatusBadRequest, body
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, handler.ErrorResponse{Message: "A user with this email already exists", Field: "email"}
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusBadRequest, handler.ErrorResponse{Message: "This username is already taken", Field: "username"}
	case errors.Is(err, domain.ErrDuplicateInventoryID):
		return http.StatusBadRequest, handler.ErrorResponse{Message: "Inventory ID already exists", Field: "inventoryId"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, handler.ErrorResponse{Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "Token has expired, please login again"}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "No authentication token, access denied"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "Invalid authentication token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorResponse{Message: "Not authorized to modify this item"}
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Message: "User not found"}
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Message: "Inventory item not found"}
	case errors.Is(err, domain.ErrSigningSecretMissing):
		log.Error().Str("path", c.Path()).Msg("JWT secret is not configured")
		return http.StatusInternalServerError, handler.ErrorResponse{Message: "Server configuration error"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	body := handler.ErrorResponse{Message: "Server error"}
	if exposeDetail {
		body.Error = err.Error()
	}
	return http.StatusInternalServerError, body
}
