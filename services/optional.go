package services

import "encoding/json"

// Optional distinguishes the three states a field of a partial update can be
// in: absent from the payload, present with a value, or present with an
// explicit null. The zero value means absent; after unmarshaling Set is true
// and Value is nil when the field was null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Some builds an Optional holding a value
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: &value}
}

// Null builds an Optional explicitly set to null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
