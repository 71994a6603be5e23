package remote

import (
	"errors"
	"fmt"
)

// ErrEndpointRequired is returned when the client has no endpoint configured.
var ErrEndpointRequired = errors.New("remote: endpoint is required")

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote: %s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("remote: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}
