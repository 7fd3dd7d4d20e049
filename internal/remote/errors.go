package remote

import (
	"fmt"
	"net/http"

	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// StatusError describes a failed backend call.
// Kind is one of the persistence taxonomy errors; Cause is the transport error, if any.
type StatusError struct {
	Op         string
	StatusCode int
	Kind       error
	Cause      error
}

func (e *StatusError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %v (HTTP %d)", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap lets errors.Is match both the taxonomy kind and the transport cause
func (e *StatusError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// classify maps an HTTP status to the taxonomy. retry reports whether another
// attempt may succeed.
func classify(status int) (kind error, retry bool) {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return persistence.ErrAuth, false
	case status == http.StatusNotFound:
		return persistence.ErrNotFound, false
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return persistence.ErrConnectivity, true
	case status >= 500:
		return persistence.ErrConnectivity, true
	default:
		return persistence.ErrRejected, false
	}
}
