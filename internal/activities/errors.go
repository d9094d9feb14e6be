package activities

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse reports a response body that does not match the API
// contract.
var ErrMalformedResponse = errors.New("malformed activities response")

// APIError is a non-2xx response that carried a decodable JSON body.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error renders the status and detail.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("activities api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("activities api: %d %s", e.StatusCode, e.Detail)
}

// AsAPIError unwraps an APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr == nil {
		return nil, false
	}
	return apiErr, true
}
