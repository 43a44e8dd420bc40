// Package nullable carries partial-update values that tell "not sent" apart
// from an explicit null.
package nullable

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is unset until a request names the field. A named field is either
// null (Ptr returns nil) or holds a value.
type Value[T any] struct {
	set   bool
	value *T
}

func Of[T any](v T) Value[T] {
	return Value[T]{set: true, value: &v}
}

func Null[T any]() Value[T] {
	return Value[T]{set: true}
}

// Set reports whether the field was present.
func (n Value[T]) Set() bool {
	return n.set
}

// Ptr returns the value, nil when absent or null.
func (n Value[T]) Ptr() *T {
	if n.value == nil {
		return nil
	}
	v := *n.value
	return &v
}

// Interface feeds the request validator: nil when absent or null, the plain
// value otherwise.
func (n Value[T]) Interface() any {
	if n.value == nil {
		return nil
	}
	return *n.value
}

func (n *Value[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value = &v
	return nil
}

func (n Value[T]) MarshalJSON() ([]byte, error) {
	if n.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.value)
}

// UnmarshalParam binds form and multipart fields. Forms cannot send null,
// so an empty field counts as one.
func (n *Value[T]) UnmarshalParam(param string) error {
	n.set = true
	if param == "" {
		n.value = nil
		return nil
	}

	var v T
	switch p := any(&v).(type) {
	case *string:
		*p = param
	case *uint:
		u, err := strconv.ParseUint(param, 10, 0)
		if err != nil {
			return err
		}
		*p = uint(u)
	default:
		if err := json.Unmarshal([]byte(param), &v); err != nil {
			return err
		}
	}
	n.value = &v
	return nil
}
