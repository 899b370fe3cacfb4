package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable means the server could not be reached or did not
	// answer in time.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the server rejected the session. Any response
	// body accompanying the status is ignored.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports server-side field validation failures.
// Fields maps a server field name to one or more messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
