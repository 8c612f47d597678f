package model

import (
	"errors"
	"fmt"
)

// ErrSchema is the kind of every schema failure; match with errors.Is.
var ErrSchema = errors.New("schema error")

// SchemaError reports a required input column that is absent from the source.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: required field %q is missing", e.Field)
}

// Unwrap lets errors.Is(err, ErrSchema) match.
func (e *SchemaError) Unwrap() error { return ErrSchema }
