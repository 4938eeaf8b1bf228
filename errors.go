package simplex

import (
	"errors"
	"fmt"
	"strings"
)

// Base errors of the coercion and hydration engines. Every typed error below
// unwraps to one of them.
var (
	ErrNonStringKey         = errors.New("unable to map non-string key")
	ErrNullNotAllowed       = errors.New("unable to set null value")
	ErrCastFailure          = errors.New("unable to cast value")
	ErrUnionCastFailure     = errors.New("unable to cast value to any union member")
	ErrUnsupportedTypeShape = errors.New("unsupported type shape")
)

// Errors for malformed calls and sources
var (
	ErrInvalidTarget      = errors.New("target must be a non-nil pointer to a struct")
	ErrNilSource          = errors.New("source cannot be nil")
	ErrUnsupportedSource  = errors.New("unsupported source type")
	ErrInvalidJSON        = errors.New("invalid JSON document")
	ErrInvalidYAML        = errors.New("invalid YAML document")
	ErrFieldNotFound      = errors.New("field not found")
	ErrUnsupportedShapeOf = errors.New("unable to derive a shape from value")
)

// NonStringKeyError is returned when a source key is not a string.
type NonStringKeyError struct {
	Key any
}

func (e *NonStringKeyError) Error() string {
	return fmt.Sprintf("%s: %v (%T)", ErrNonStringKey, e.Key, e.Key)
}

func (e *NonStringKeyError) Unwrap() error { return ErrNonStringKey }

// NullNotAllowedError is returned when null is supplied for a field whose
// declared type does not permit it.
type NullNotAllowedError struct {
	Field string
	Type  string
}

func (e *NullNotAllowedError) Error() string {
	return fmt.Sprintf("%s to field %s of type '%s'", ErrNullNotAllowed, e.Field, e.Type)
}

func (e *NullNotAllowedError) Unwrap() error { return ErrNullNotAllowed }

// CastError is returned when a value cannot be converted to the declared
// type of a field. Cause holds the underlying conversion error.
type CastError struct {
	Field string
	From  string
	To    string
	Cause error
}

func (e *CastError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("unable to cast '%s' to '%s' for field %s", e.From, e.To, e.Field)
	}
	return fmt.Sprintf("unable to cast '%s' to '%s' for field %s: %v", e.From, e.To, e.Field, e.Cause)
}

func (e *CastError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCastFailure}
	}
	return []error{ErrCastFailure, e.Cause}
}

// UnionCastError is returned when no member of a union accepts a value.
// Attempts holds the error of every member in declaration order.
type UnionCastError struct {
	Field      string
	From       string
	Candidates []string
	Attempts   []error
}

func (e *UnionCastError) Error() string {
	return fmt.Sprintf(
		"unable to cast '%s' to '%s' for field %s",
		e.From, strings.Join(e.Candidates, UnionTypeDelimiter), e.Field,
	)
}

func (e *UnionCastError) Unwrap() error { return ErrUnionCastFailure }

// UnsupportedTypeShapeError is returned for declared types the engine cannot
// satisfy, such as intersections.
type UnsupportedTypeShapeError struct {
	Field string
	Shape string
}

func (e *UnsupportedTypeShapeError) Error() string {
	return fmt.Sprintf("%s: unable to deserialize %s types (field %s)", ErrUnsupportedTypeShape, e.Shape, e.Field)
}

func (e *UnsupportedTypeShapeError) Unwrap() error { return ErrUnsupportedTypeShape }
