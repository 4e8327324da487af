package remote

import (
	"errors"
	"fmt"
)

var ErrEmptyID = errors.New("student id is empty")

// APIError is returned when the backend answers with a non-2xx status.
// Response is nil when the body was not a JSON operation response.
type APIError struct {
	StatusCode int
	Response   *OperationResponse
}

func (e *APIError) Error() string {
	if text := e.Response.Text(); text != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, text)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
