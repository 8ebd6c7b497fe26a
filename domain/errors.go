package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every *InvalidArgumentError with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports which parameter violated its constraint.
type InvalidArgumentError struct {
	Param  string
	Reason string
}

func NewInvalidArgumentError(param, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Param: param, Reason: reason}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Param, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
