package helper

import "fmt"

// Error wraps an error with the action that failed
type Error struct {
	Action string
	Err    error
}

// NewError wraps err with the action that produced it.
// It returns nil if err is nil.
func NewError(action string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Action: action,
		Err:    err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
