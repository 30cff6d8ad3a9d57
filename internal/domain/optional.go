package domain

import "encoding/json"

// Optional distinguishes a field that was left out of a request from one that
// was sent with its zero value. JSON null is treated as absent.
type Optional[T any] struct {
	Value   T
	Present bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		var zero T
		o.Value, o.Present = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Present = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
