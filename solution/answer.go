package solution

import (
	"encoding/json"
	"fmt"
)

// Answer is the optional result of one puzzle part. The zero value is
// absent, which is how an unimplemented part is reported.
type Answer[T any] struct {
	value T
	ok    bool
}

// Some returns a present Answer holding v.
func Some[T any](v T) Answer[T] {
	return Answer[T]{value: v, ok: true}
}

// None returns an absent Answer.
func None[T any]() Answer[T] {
	return Answer[T]{}
}

// Get returns the held value and whether it is present.
func (a Answer[T]) Get() (T, bool) {
	return a.value, a.ok
}

// Present reports whether a value was computed.
func (a Answer[T]) Present() bool {
	return a.ok
}

// OrElse returns the held value, or fallback when absent.
func (a Answer[T]) OrElse(fallback T) T {
	if a.ok {
		return a.value
	}
	return fallback
}

// String renders the value with %v, or UnimplementedText when absent.
func (a Answer[T]) String() string {
	if !a.ok {
		return UnimplementedText
	}
	return fmt.Sprintf("%v", a.value)
}

// MarshalJSON encodes an absent answer as null.
func (a Answer[T]) MarshalJSON() ([]byte, error) {
	if !a.ok {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON decodes null as absent.
func (a *Answer[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Answer[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Some(v)
	return nil
}

// MarshalYAML encodes an absent answer as null.
func (a Answer[T]) MarshalYAML() (any, error) {
	if !a.ok {
		return nil, nil
	}
	return a.value, nil
}

// formatAnswer erases the answer type for reports.
func formatAnswer[T any](a Answer[T]) Answer[string] {
	v, ok := a.Get()
	if !ok {
		return None[string]()
	}
	return Some(fmt.Sprintf("%v", v))
}
