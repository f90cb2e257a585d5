package domain

import "errors"

var (
	ErrMissingToken = errors.New("no authentication token, access denied")
	ErrTokenExpired = errors.New("token has expired, please login again")
	ErrTokenInvalid = errors.New("invalid authentication token")

	// ErrSigningSecretMissing is a configuration fault: no token is ever
	// issued or accepted without a signing secret.
	ErrSigningSecretMissing = errors.New("server configuration error")
)

// Claims is the identity carried inside a bearer token.
type Claims struct {
	ID       string
	Username string
	Email    string
}
