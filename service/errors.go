package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoBaseURL is returned by New when no service URL is configured.
	ErrNoBaseURL = errors.New("service: base URL is required")
	// ErrDecode wraps malformed response bodies.
	ErrDecode = errors.New("service: malformed response")
)

// StatusError reports a non-2xx response. Message carries the server's
// {"error": ...} text when present.
type StatusError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Path, e.StatusCode, msg)
}

// IsStatus reports whether err carries a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func statusError(path string, code int, body []byte) *StatusError {
	msg := ""
	if gjson.ValidBytes(body) {
		msg = gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "detail").String()
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
	}
	return &StatusError{Path: path, StatusCode: code, Message: msg}
}
