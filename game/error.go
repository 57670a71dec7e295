package game

import "errors"

type (
	// Kind classifies rule rejections so transports can map them to status codes.
	Kind int

	// Error is a rule rejection.  Its message is safe to show players, unlike
	// operational errors, which may leak internals.
	Error struct {
		// Kind classifies the rejection.
		Kind Kind
		// Message is the player-facing text.
		Message string
	}
)

const (
	_ Kind = iota
	// NotFound rejections reference games that do not exist.
	NotFound
	// Forbidden rejections are requests by players who may not act.
	Forbidden
	// Conflict rejections are requests that do not fit the game's current state.
	Conflict
	// InvalidInput rejections are moves that break the rules.
	InvalidInput
)

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// ErrorKind returns the kind of the rule rejection wrapped in the error.
// The bool reports whether the error is a rule rejection at all.
func ErrorKind(err error) (Kind, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func invalidInput(message string) error {
	return Error{
		Kind:    InvalidInput,
		Message: message,
	}
}
