// Package clipboard reads and writes snippet code through the system clipboard
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed
var ErrUnavailable = errors.New("system clipboard is unavailable")

// Clipboard is a text clipboard
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the clipboard of the desktop session
type System struct{}

// ReadAll implements Clipboard
func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

// WriteAll implements Clipboard
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns a clipboard holding text
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadAll implements Clipboard
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteAll implements Clipboard
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
