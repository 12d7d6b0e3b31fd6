package hexmesh

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every parameter validation error.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes a rejected generation parameter.
type ParamError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func invalidParam(param string, value interface{}, reason string) error {
	return &ParamError{Param: param, Value: fmt.Sprint(value), Reason: reason}
}
