package askmap

import "fmt"

// APIError is a non-2xx response from the askmap API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("askmap: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("askmap: http %d", e.StatusCode)
}
