package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer holds a user's response to an exercise: either a single string or
// a list of strings (multi-select semantics). It keeps whichever arity it was
// created with. An absent answer is a nil *Answer.
type Answer struct {
	text   string
	values []string
	multi  bool
}

// TextAnswer returns a single-string answer.
func TextAnswer(s string) Answer {
	return Answer{text: s}
}

// ListAnswer returns a multi-value answer. Called with no values it yields an empty list.
func ListAnswer(values ...string) Answer {
	cp := make([]string, len(values))
	copy(cp, values)
	return Answer{values: cp, multi: true}
}

// IsList reports whether the answer carries list arity.
func (a Answer) IsList() bool { return a.multi }

// Text returns the single-string value. A list answer is joined with ", ".
func (a Answer) Text() string {
	if a.multi {
		return strings.Join(a.values, ", ")
	}
	return a.text
}

// Values returns a copy of the list value. A non-empty text answer yields a
// one-element list, an empty text answer an empty list.
func (a Answer) Values() []string {
	if !a.multi {
		if a.text == "" {
			return []string{}
		}
		return []string{a.text}
	}
	cp := make([]string, len(a.values))
	copy(cp, a.values)
	return cp
}

// Equal compares value and arity.
func (a Answer) Equal(b Answer) bool {
	if a.multi != b.multi {
		return false
	}
	if !a.multi {
		return a.text == b.text
	}
	if len(a.values) != len(b.values) {
		return false
	}
	for i := range a.values {
		if a.values[i] != b.values[i] {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to a copy of a, for assignment to optional fields.
func (a Answer) Ptr() *Answer {
	cp := a
	if a.multi {
		cp.values = a.Values()
	}
	return &cp
}

// MarshalJSON encodes a text answer as a JSON string and a list answer as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.text)
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("answer must be a string or an array of strings")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return fmt.Errorf("answer list must contain only strings: %w", err)
		}
		*a = ListAnswer(values...)
		return nil
	default:
		return fmt.Errorf("answer must be a string or an array of strings, got %s", string(trimmed))
	}
}
