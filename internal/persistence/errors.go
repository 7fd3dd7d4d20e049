package persistence

import "errors"

// Error taxonomy shared by every adapter
var (
	// ErrConnectivity is a transient network or backend failure
	ErrConnectivity = errors.New("backend unreachable")

	// ErrAuth means the credentials are invalid or the session expired.
	// It is never retried.
	ErrAuth = errors.New("authentication required")

	// ErrNotFound means the snippet no longer exists in the backend
	ErrNotFound = errors.New("snippet not found")

	// ErrRejected means the backend refused the request payload
	ErrRejected = errors.New("request rejected by backend")
)

// IsAuth reports whether err is an authentication failure
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsNotFound reports whether err is a missing snippet
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConnectivity reports whether err is a transient backend failure
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}
