package apperror

import (
	"errors"
	"net/http"
)

// Response is the JSON body of every error response
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var statuses = []struct {
	sentinel error
	status   int
	kind     string
}{
	{ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{ErrNotFound, http.StatusNotFound, "not_found"},
	{ErrValidation, http.StatusBadRequest, "validation_error"},
	{ErrStale, http.StatusConflict, "stale"},
	{ErrNoActiveProfile, http.StatusConflict, "no_active_profile"},
	{ErrFetchFailed, http.StatusBadGateway, "fetch_failed"},
}

// HTTPStatus maps err to a status code and response body.
// Errors outside the taxonomy become a 500 with a generic message.
func HTTPStatus(err error) (int, Response) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		for _, s := range statuses {
			if errors.Is(appErr, s.sentinel) {
				return s.status, Response{Error: s.kind, Message: appErr.Message}
			}
		}
	}
	return http.StatusInternalServerError, Response{
		Error:   "internal_error",
		Message: "An unexpected error occurred",
	}
}
