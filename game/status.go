package game

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a game.
type Status int

const (
	_ Status = iota
	// Waiting is the status of a game that is accepting players and has not started.
	Waiting
	// Active is the status of a game that has started and is accepting moves.
	Active
	// Finished is the status of a game that has ended.  No more moves are accepted.
	Finished
)

// String returns the display value for the status.
func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Finished:
		return "finished"
	}
	return "?"
}

// ParseStatus converts the string into a status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "waiting":
		return Waiting, nil
	case "active":
		return Active, nil
	case "finished":
		return Finished, nil
	}
	return 0, fmt.Errorf("unknown game status: %q", s)
}

// MarshalJSON implements the encoding/json.Marshaler interface to marshal statuses into strings.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the encoding/json.Unmarshaler interface to unmarshal statuses from strings.
func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s2, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = s2
	return nil
}
