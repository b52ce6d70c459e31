package domain

import (
	"errors"
	"fmt"
)

// ErrComponentNotFound is returned when an expression resolves to nothing
// and HintIgnoreNoResult is not set.
var ErrComponentNotFound = errors.New("component not found")

// ErrInvalidExpression is returned when an expression violates the grammar.
var ErrInvalidExpression = errors.New("invalid search expression")

// ErrViewNotFound is returned when a view ID cannot be found in a store or loader.
var ErrViewNotFound = errors.New("view not found")

// NotFoundError reports the command that produced no component.
type NotFoundError struct {
	Expression string
	Command    string
}

func (e *NotFoundError) Error() string {
	if e.Command == "" || e.Command == e.Expression {
		return fmt.Sprintf("cannot find component for expression %q", e.Expression)
	}
	return fmt.Sprintf("cannot find component for expression %q (command %q)", e.Expression, e.Command)
}

func (e *NotFoundError) Unwrap() error {
	return ErrComponentNotFound
}

// InvalidExpressionError reports a grammar violation. Hints never suppress it.
type InvalidExpressionError struct {
	Expression string
	Reason     string
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid search expression %q: %s", e.Expression, e.Reason)
}

func (e *InvalidExpressionError) Unwrap() error {
	return ErrInvalidExpression
}
