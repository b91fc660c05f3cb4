package gql

import "fmt"

// ConfigError reports an invalid client configuration. It is returned
// from NewClient only, never from the request path.
type ConfigError struct {
	message string
}

func newConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

func (e *ConfigError) Error() string {
	return e.message
}

// HTTPError carries a non-2xx response verbatim. The body is kept as
// raw text even when it happens to be JSON.
type HTTPError struct {
	StatusText string `json:"statusText"`
	Body       string `json:"body"`
	Status     int    `json:"status"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d (%s)", e.Status, e.StatusText)
}
