package t2048

import (
	"errors"
	"fmt"
)

// Kind classifies errors returned by the simulation.
type Kind string

const (
	// KindConfig marks invalid rules. Reported at session creation, never mid-game.
	KindConfig Kind = "config"
	// KindInvalidArgument marks a bad command or snapshot. Session state is left unchanged.
	KindInvalidArgument Kind = "invalid_argument"
)

// Error is a classified simulation error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("t2048: %s: %s", e.Kind, e.Message)
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from any error. Returns "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
