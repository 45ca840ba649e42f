package models

import (
	"errors"
	"strings"
)

// FieldError is one rejected field of a stream or message.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// ValidationErrors collects the field errors of one record. A nil or empty
// list means the record is valid.
type ValidationErrors []FieldError

// check records err against field. Nil errors are ignored.
func (v *ValidationErrors) check(field string, err error) {
	if err == nil {
		return
	}
	*v = append(*v, FieldError{Field: field, Reason: err.Error(), Err: err})
}

// require records reason against field when ok is false.
func (v *ValidationErrors) require(ok bool, field, reason string) {
	if !ok {
		*v = append(*v, FieldError{Field: field, Reason: reason})
	}
}

// Err returns the list as an error, or nil when nothing was rejected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "record is valid"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Is matches the sentinel behind any field error, so callers can test for
// ErrInvalidTopicName and friends through the aggregate.
func (v ValidationErrors) Is(target error) bool {
	for _, fe := range v {
		if fe.Err != nil && errors.Is(fe.Err, target) {
			return true
		}
	}
	return false
}

// Fields lists the rejected field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, len(v))
	for i, fe := range v {
		fields[i] = fe.Field
	}
	return fields
}
