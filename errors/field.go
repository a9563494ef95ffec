package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of the model or message field that err is about.
// A nil err results in nil. Nested fields use the dot notation with
// element indexes for lists, for example Seats.2 or Config.StreamTarget.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds a field error to errorsOrNil. Nothing is added when
// fieldErrOrNil is nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
	}
	return fmt.Sprintf("field %q: %s", err.field, err.parent)
}

func (err *fieldError) Cause() error  { return err.parent }
func (err *fieldError) Field() string { return err.field }

type fielder interface {
	Field() string
}

// FieldErrors returns all errors created with Field for the given name,
// searching through wrapped and appended errors.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(found, err)
		}
		switch e := err.(type) {
		case unpacker:
			for _, child := range e.Unpack() {
				found = append(found, FieldErrors(child, fieldName)...)
			}
			return found
		case causer:
			err = e.Cause()
		default:
			return found
		}
	}
	return found
}
