package gateway

import (
	"github.com/pkg/errors"
)

var (
	//ErrTransport indicates network, DNS or TLS failure
	ErrTransport = errors.New("transport failure")
	//ErrAuthentication indicates failed login
	ErrAuthentication = errors.New("authentication failure")
	//ErrUpload indicates failed job submission
	ErrUpload = errors.New("upload failure")
	//ErrRequest indicates a failed status or result call
	ErrRequest = errors.New("request failure")
)

//Error keeps the failure kind together with the underlying cause
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

//Unwrap makes both the kind and the cause visible to errors.Is
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

func newErrorf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}
