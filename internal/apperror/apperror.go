package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited     = errors.New("rate limited")
	ErrNotFound        = errors.New("not found")
	ErrFetchFailed     = errors.New("fetch failed")
	ErrStale           = errors.New("stale view")
	ErrValidation      = errors.New("validation error")
	ErrNoActiveProfile = errors.New("no active profile")
)

// AppError carries a sentinel for classification and a message safe to show users
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func RateLimited() *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: "GitHub API rate limit exceeded. Please try again later.",
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// FetchFailed describes a failed secondary fetch; cause may be nil
func FetchFailed(resource string, cause error) *AppError {
	message := fmt.Sprintf("failed to load %s", resource)
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &AppError{
		Err:     ErrFetchFailed,
		Message: message,
	}
}

func Stale(key string) *AppError {
	return &AppError{
		Err:     ErrStale,
		Message: fmt.Sprintf("view for %s was replaced by a newer one", key),
	}
}

func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

func NoActiveProfile() *AppError {
	return &AppError{
		Err:     ErrNoActiveProfile,
		Message: "search for a profile first",
	}
}
