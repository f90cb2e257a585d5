package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
	ErrDuplicateUsername  = errors.New("this username is already taken")
	ErrAccountNotFound    = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is the owner of inventory records. PasswordHash never leaves the
// service boundary; the transport layer renders only the public fields.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims and lowercases an email so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims surrounding whitespace. Usernames stay case-sensitive.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
