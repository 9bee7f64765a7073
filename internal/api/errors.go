package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport failures where no HTTP response was received
	ErrNetwork = errors.New("network failure")

	// ErrMalformedResponse is returned when a response body is not the expected envelope
	ErrMalformedResponse = errors.New("malformed response")
)

// DefaultErrorMessage is used when the backend rejects a request without a message
const DefaultErrorMessage = "An error occurred"

// ServerError is returned for every non-2xx response
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == 404
}

// UserMessage turns any client error into the single line shown in a notification
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var se *ServerError
	switch {
	case errors.As(err, &se):
		return se.Message
	case errors.Is(err, ErrNetwork):
		return "Could not reach the server"
	case errors.Is(err, ErrMalformedResponse):
		return "Unexpected response from the server"
	default:
		return err.Error()
	}
}
