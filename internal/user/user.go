// Package user picks the name offered when logging in to the remote backend.
package user

import (
	"os"
	"os/user"
	"strings"
)

// EnvUser overrides the operating system account name
const EnvUser = "SNIPBOARD_USER"

// LoginName returns the username to log in with when none is given:
// the last username used on this board, then $SNIPBOARD_USER, then the
// operating system account. It returns "" when none is known.
func LoginName(previous string) string {
	if name := strings.TrimSpace(previous); name != "" {
		return name
	}
	if name := strings.TrimSpace(os.Getenv(EnvUser)); name != "" {
		return name
	}
	return systemUsername()
}

// systemUsername asks the OS first and falls back to $USER
func systemUsername() string {
	if current, err := user.Current(); err == nil && current.Username != "" {
		return current.Username
	}
	return os.Getenv("USER")
}
