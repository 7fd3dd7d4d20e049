package board

// State is the load lifecycle of the board
type State int

const (
	// StateIdle is a board that has never been loaded
	StateIdle State = iota
	// StateLoading is a load in flight
	StateLoading
	// StateReady is a loaded board
	StateReady
	// StateError is a board whose last load or commit failed
	StateError
	// StateUnauthenticated is a remote board without a usable session
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Interactive reports whether snippets may be moved and edited in this state
func (s State) Interactive() bool {
	return s == StateReady || s == StateError
}
