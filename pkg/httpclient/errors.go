package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodyBytes bounds how much of an error response body is kept.
const maxErrorBodyBytes = 2048

// ResponseError describes a non-2xx response from an external API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// ReadResponseError drains up to maxErrorBodyBytes of the response body and
// returns a ResponseError. The caller keeps ownership of resp.Body.
func ReadResponseError(resp *http.Response) *ResponseError {
	var body string
	if resp.Body != nil {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if err == nil {
			body = strings.TrimSpace(string(raw))
		}
	}
	return &ResponseError{StatusCode: resp.StatusCode, Body: body}
}

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsClientError reports whether the status code is in the 4xx range.
// Client errors indicate a malformed request and are never retried.
func IsClientError(statusCode int) bool {
	return statusCode >= 400 && statusCode < 500
}
