/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

// Package gqlerrors holds the SchemaError and OperationError families of
// the engine (syntax errors are parser.SyntaxError) and the response
// envelope all three families are rendered into. Location/Path follow the same JSON shape the
// wider GraphQL Go ecosystem uses (github.com/vektah/gqlparser/v2's
// gqlerror package), so a caller already used to that shape sees nothing
// surprising here; graphlark does not import gqlparser itself because the
// parser it ships is the bit-exact one this engine exists to provide.
package gqlerrors

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Location is a 1-based line/column pointing at the offending token.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Path is a field-path segment list (string for a field name, int for a
// list index), serialized as a flat JSON array.
type Path []interface{}

// Error is one entry in a Response's "errors" array.
type Error struct {
	Message   string     `json:"message"`
	Path      Path       `json:"path,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// SchemaError reports a type-system build failure: unknown named type,
// duplicate type name, extension of a missing type, or NonNull(NonNull(_)).
type SchemaError struct {
	TypeName string
	Detail   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on %q: %s", e.TypeName, e.Detail)
}

// NewSchemaError wraps detail with pkg/errors so callers can recover the
// concrete *SchemaError with errors.As after it crosses a package boundary.
func NewSchemaError(typeName, detail string) error {
	return errors.WithStack(&SchemaError{TypeName: typeName, Detail: detail})
}

// OperationError reports a variable/argument coercion failure, a non-null
// violation, or an unknown enum value, encountered while running one
// operation. Location and Path locate it in the envelope.
type OperationError struct {
	Message  string
	Path     Path
	Location *Location
	// Terminal marks variable-coercion failures: the whole operation's
	// data becomes null rather than just the offending field.
	Terminal bool
}

func (e *OperationError) Error() string {
	return e.Message
}

// NewOperationError builds a non-terminal, field-localized error.
func NewOperationError(message string, path Path, loc *Location) error {
	return errors.WithStack(&OperationError{Message: message, Path: path, Location: loc})
}

// NewTerminalOperationError builds a pre-execution, operation-wide error
// (variable coercion failures per §4.4).
func NewTerminalOperationError(message string, loc *Location) error {
	return errors.WithStack(&OperationError{Message: message, Location: loc, Terminal: true})
}

// AsOperationError recovers an *OperationError from a possibly-wrapped err.
func AsOperationError(err error) (*OperationError, bool) {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// AsSchemaError recovers a *SchemaError from a possibly-wrapped err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ToError renders any of the three error families (or a plain error) into
// the envelope's Error shape.
func ToError(err error) *Error {
	if oe, ok := AsOperationError(err); ok {
		e := &Error{Message: oe.Message, Path: oe.Path}
		if oe.Location != nil {
			e.Locations = []Location{*oe.Location}
		}
		return e
	}
	if se, ok := AsSchemaError(err); ok {
		return &Error{Message: se.Error()}
	}
	return &Error{Message: err.Error()}
}

// Response is the external envelope of §6: `{"data":..., "errors":[...]}`.
// MarshalJSON omits the "errors" key entirely when Errors is empty.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []*Error        `json:"errors,omitempty"`
}

// MarshalJSON implements a custom encoder so an empty (non-nil but
// zero-length) Errors slice still omits the key, matching `omitempty`'s
// treatment of nil exactly even when callers built the slice with `append`
// to a nil starting point that ended up never appended to.
func (r Response) MarshalJSON() ([]byte, error) {
	type alias struct {
		Data   json.RawMessage `json:"data"`
		Errors []*Error        `json:"errors,omitempty"`
	}
	a := alias{Data: r.Data}
	if len(r.Errors) > 0 {
		a.Errors = r.Errors
	}
	return json.Marshal(a)
}
