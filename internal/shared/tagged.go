package shared

import "fmt"

type taggedError struct {
	class error
	msg   string
}

func (e *taggedError) Error() string { return e.msg }

func (e *taggedError) Unwrap() error { return e.class }

// Tagged builds an error whose message is client-facing and which matches
// class under errors.Is. Services use it to attach resource detail to the
// sentinel classes above without leaking internals.
func Tagged(class error, format string, args ...any) error {
	return &taggedError{class: class, msg: fmt.Sprintf(format, args...)}
}
