// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrNotEntitled   = errors.New("capability not available on this plan")
	ErrQuotaExceeded = errors.New("daily limit exceeded")
	ErrUpstream      = errors.New("upstream provider error")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(
		ErrUnauthorized,
		message,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"access token has expired",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"access token is invalid",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		fmt.Sprintf("%s already exists", field),
		http.StatusConflict,
		"DUPLICATE",
	)
}

// NotEntitledError marks a capability that the caller's plan does not
// include at all, as opposed to one whose daily allowance is spent.
func NotEntitledError(capability string) *AppError {
	return NewAppError(
		ErrNotEntitled,
		fmt.Sprintf(
			"capability %q is not available on your plan, upgrade to PRO to unlock it",
			capability,
		),
		http.StatusForbidden,
		"PLAN_UPGRADE_REQUIRED",
	)
}

// QuotaExceededError marks a capability whose daily allowance is spent.
// The window resets at UTC midnight.
func QuotaExceededError(capability string, ceiling int) *AppError {
	return NewAppError(
		ErrQuotaExceeded,
		fmt.Sprintf(
			"daily limit of %d for %q reached, try again tomorrow or upgrade to PRO",
			ceiling,
			capability,
		),
		http.StatusTooManyRequests,
		"DAILY_LIMIT_EXCEEDED",
	)
}

func UpstreamError(provider string, err error) *AppError {
	return NewAppError(
		fmt.Errorf("%w: %w", ErrUpstream, err),
		fmt.Sprintf("%s request failed: %v", provider, err),
		http.StatusBadGateway,
		"UPSTREAM_PROVIDER_ERROR",
	)
}
