// Package netx holds helpers shared by the outbound HTTP clients.
package netx

import (
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response ends up in the error text.
const maxErrorBody = 512

// StatusError reports a response whose status code was not accepted.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s; body: %s", e.Status, e.Body)
}

// Transient reports whether retrying the request may succeed.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// ReadBody reads the whole response body when the status is 200 OK. Any
// other status yields a *StatusError carrying the start of the body.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	return io.ReadAll(resp.Body)
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
