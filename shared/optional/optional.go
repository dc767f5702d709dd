// Package optional provides a JSON field wrapper that distinguishes an absent
// field from an explicit null and from a concrete value.
//
//	type Patch struct {
//		Title optional.Field[string] `json:"title"`
//	}
//
// After decoding {"title": null}, Title.Set is true and Title.Null is true.
// After decoding {}, Title.Set is false.
package optional

import "encoding/json"

type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a present, non-null field.
func Of[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true

	if string(data) == "null" {
		var zero T

		f.Null = true
		f.Value = zero

		return nil
	}

	f.Null = false

	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}

	return json.Marshal(f.Value)
}

// Ptr returns nil for absent or null fields, otherwise a pointer to a copy of the value.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}

	value := f.Value

	return &value
}

// Any returns the value to store: nil for an explicit null, the value otherwise.
func (f Field[T]) Any() any {
	if f.Null {
		return nil
	}

	return f.Value
}
