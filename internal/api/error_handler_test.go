package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/api/handler"
	"github.com/stockroom/inventory-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error, exposeDetail bool) (int, handler.ErrorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop(), exposeDetail)(err, c)

	var body handler.ErrorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
		field   string
	}{
		{"duplicate email", domain.ErrDuplicateEmail, 400, "A user with this email already exists", "email"},
		{"duplicate username", fmt.Errorf("insert: %w", domain.ErrDuplicateUsername), 400, "This username is already taken", "username"},
		{"duplicate inventory id", domain.ErrDuplicateInventoryID, 400, "Inventory ID already exists", "inventoryId"},
		{"invalid credentials", domain.ErrInvalidCredentials, 400, "Invalid email or password", ""},
		{"missing token", domain.ErrMissingToken, 401, "No authentication token, access denied", ""},
		{"expired", domain.ErrTokenExpired, 401, "Token has expired, please login again", ""},
		{"invalid token", domain.ErrTokenInvalid, 401, "Invalid authentication token", ""},
		{"forbidden", domain.ErrForbidden, 403, "Not authorized to modify this item", ""},
		{"account missing", domain.ErrAccountNotFound, 404, "User not found", ""},
		{"record missing", domain.ErrRecordNotFound, 404, "Inventory item not found", ""},
		{"secret missing", domain.ErrSigningSecretMissing, 500, "Server configuration error", ""},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "No authentication token, access denied"), 401, "No authentication token, access denied", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := runErrorHandler(t, tt.err, false)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			if body.Success {
				t.Fatal("success must be false")
			}
			if body.Message != tt.message || body.Field != tt.field {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("productName", "Product name is required")
	verr.Add("costUnit", "Cost per unit must be a positive number")

	code, body := runErrorHandler(t, verr, false)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(body.Errors) != 2 || body.Errors[0].Field != "costUnit" || body.Errors[1].Field != "productName" {
		t.Fatalf("unexpected errors: %+v", body.Errors)
	}
	if body.Message != "Cost per unit must be a positive number, Product name is required" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	cause := errors.New("mongo: connection reset")

	code, body := runErrorHandler(t, cause, false)
	if code != http.StatusInternalServerError || body.Message != "Server error" || body.Error != "" {
		t.Fatalf("unexpected response %d: %+v", code, body)
	}

	_, body = runErrorHandler(t, cause, true)
	if body.Error != "mongo: connection reset" {
		t.Fatalf("expected detail in development, got %+v", body)
	}
}
