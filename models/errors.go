package models

import "fmt"

type ErrorValidation struct {
	Message string
	Fields  map[string]string
}

func (e ErrorValidation) Error() string { return e.Message }

type ErrorReference struct {
	Message string
}

func (e ErrorReference) Error() string { return e.Message }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

// ErrorInternalServer wraps a failure whose detail must not reach the client.
type ErrorInternalServer struct {
	Message string
	Err     error
}

func (e ErrorInternalServer) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e ErrorInternalServer) Unwrap() error { return e.Err }

func NotFound(entity string) error {
	return ErrorNotFound{Message: entity + " not found"}
}

func Internal(message string, err error) error {
	return ErrorInternalServer{Message: message, Err: err}
}
