package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Helix 401 body
type GetUserUnauthorized struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type ValidateTokenInvalid struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

var (
	ErrUnauthorized  = errors.New("twitch api unauthorized")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenNotFound = errors.New("token not found")

	ErrDeliveryForbidden   = errors.New("delivery forbidden")
	ErrDeliveryUnavailable = errors.New("delivery service unavailable")

	ErrUserNotFound     = errors.New("user not found")
	ErrStreamNotLive    = errors.New("stream not live")
	ErrTemplateNotFound = errors.New("template not found")

	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleForbidden = errors.New("role management forbidden")
)

// AuthError is returned when the token endpoint rejects the client credentials
// or cannot be reached. StatusCode is zero for transport failures.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("twitch auth failed with status code %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("twitch auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ConfigurationError lists every missing setting found during validation.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %v", e.Missing)
}
