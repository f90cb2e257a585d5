package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, account, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Registration successful!",
		Token:   token,
		User:    toUserResponse(account),
	})
}

// Login authenticates by email and password and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		User:    toUserResponse(account),
	})
}

// Verify returns the account behind the request's token.
//
// @Summary      Verify token
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	account, err := h.authService.CurrentAccount(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Success: true, User: toUserResponse(account)})
}

// CheckEmail reports whether an email is still free.
//
// @Summary      Check email availability
// @Tags         auth
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  availabilityResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /check-email/{email} [get]
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := c.Param("email")
	available, err := h.authService.EmailAvailable(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Success: true, Available: available, Email: email})
}

// CheckUsername reports whether a username is still free.
//
// @Summary      Check username availability
// @Tags         auth
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  availabilityResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /check-username/{username} [get]
func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := c.Param("username")
	available, err := h.authService.UsernameAvailable(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Success: true, Available: available, Username: username})
}
