package excs

import (
	"errors"
	"fmt"
)

// Code identifies a raised error. NoCode means nothing is pending.
type Code int

const NoCode Code = 0

var (
	ErrZeroCode     = errors.New("zero code raised")
	ErrNoFrame      = errors.New("no protected block")
	ErrHookReturned = errors.New("terminate hook returned")
	ErrUncaught     = errors.New("uncaught exception")
)

func (c Code) String() string {
	return fmt.Sprintf("code(%d)", int(c))
}
