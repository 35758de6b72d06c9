package configs

import (
	"errors"
	"iter"
)

// Lookup decodes the value at path in the first file defining it. ok is
// false if no file defines path.
func Lookup[T any](loader Loader, path string) (value T, ok bool, err error) {
	err = loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	return value, true, nil
}

// First is Lookup returning the zero value for missing paths. Decode
// errors panic.
func First[T any](loader Loader, path string) T {
	value, _, err := Lookup[T](loader, path)
	if err != nil {
		panic(err)
	}
	return value
}

// All decodes the value at path in every file defining it, in load order.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(err)
			}
			if !yield(v) {
				return
			}
		}
	}
}
