package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PersistenceMode selects where snippets are stored
type PersistenceMode string

const (
	ModeLocal  PersistenceMode = "local"
	ModeRemote PersistenceMode = "remote"
)

// ParseMode parses a persistence mode, accepting the legacy names of the original
// settings record ("localStorage", "api").
func ParseMode(s string) (PersistenceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "localstorage":
		return ModeLocal, nil
	case "remote", "api":
		return ModeRemote, nil
	}
	return "", fmt.Errorf("%w: %q (must be: local, remote)", ErrUnknownMode, s)
}

// BoardSettings is everything the board persists besides the snippets.
// Passwords are never part of it.
type BoardSettings struct {
	ColumnTitles []string        `json:"column_titles"`
	Mode         PersistenceMode `json:"persistence_type"`
	Endpoint     string          `json:"endpoint,omitempty"`
	Username     string          `json:"username,omitempty"`
	Session      *Session        `json:"session,omitempty"`
}

// DefaultSettings returns the settings of a fresh board
func DefaultSettings() BoardSettings {
	return BoardSettings{
		ColumnTitles: DefaultColumnTitles(),
		Mode:         ModeLocal,
	}
}

// ApplyDefaults fills missing fields
func (s *BoardSettings) ApplyDefaults() {
	if len(s.ColumnTitles) == 0 {
		s.ColumnTitles = DefaultColumnTitles()
	}
	if mode, err := ParseMode(string(s.Mode)); err == nil {
		s.Mode = mode
	} else {
		s.Mode = ModeLocal
	}
}

// Clone returns a deep copy
func (s BoardSettings) Clone() BoardSettings {
	out := s
	out.ColumnTitles = slices.Clone(s.ColumnTitles)
	if s.Session != nil {
		session := *s.Session
		out.Session = &session
	}
	return out
}

// DefaultColumn returns the landing column for new snippets
func (s BoardSettings) DefaultColumn() string {
	if len(s.ColumnTitles) == 0 {
		return ""
	}
	return s.ColumnTitles[0]
}

// HasColumn reports whether title is one of the board's columns
func (s BoardSettings) HasColumn(title string) bool {
	return slices.Contains(s.ColumnTitles, title)
}

// Session is an authenticated remote session
type Session struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	ValidUntil time.Time `json:"valid_until"`
}

// Valid reports whether the session can still be used at now
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ValidUntil.IsZero() || now.Before(s.ValidUntil)
}
