package tile

import (
	"encoding/json"
	"errors"
	"unicode"
	"unicode/utf8"
)

// MarshalJSON implements the encoding/json.Marshaler interface to marshal letters into strings.
func (l Letter) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements the encoding/json.Unmarshaler interface to unmarshal letters from strings.
// Lower-case letters are canonicalized to upper case.
func (l *Letter) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if utf8.RuneCountInString(s) != 1 {
		return errors.New("letter must be a single character: " + s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	l2, err := NewLetter(unicode.ToUpper(r))
	if err != nil {
		return err
	}
	*l = l2
	return nil
}
