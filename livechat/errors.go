package livechat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySequence is returned when a sequence that must hold at least one
// element is built from zero elements.
var ErrEmptySequence = errors.New("expected a non-empty sequence")

// DecodeError is the only error returned by DecodeInitial and DecodeUpdate.
// It carries the document that failed so callers can log or replay it.
type DecodeError struct {
	JSON string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("couldn't extract data from json. Reason: %v,\njson: %s", e.Err, e.JSON)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SyntaxError means the document is not valid JSON.
type SyntaxError struct {
	Reason string
}

func (e *SyntaxError) Error() string {
	return "invalid json: " + e.Reason
}

// MissingFieldError reports a required key that is absent.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Path)
}

// DuplicateFieldError reports a key that appears more than once in the same
// object.
type DuplicateFieldError struct {
	Path string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field `%s`", e.Path)
}

// TypeError reports a value of the wrong JSON type or out of range for its
// target type.
type TypeError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("invalid type at `%s`: expected %s, got %s", e.Path, e.Want, e.Got)
}

// CoercionError reports a numeric field encoded as a string that does not
// parse as its target type.
type CoercionError struct {
	Path string
	Raw  string
	Type string
	Err  error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("can't parse `%s` value %q as %s: %v", e.Path, e.Raw, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// EmptySequenceError reports an array documented as non-empty that has no
// elements.
type EmptySequenceError struct {
	Path string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("expected non-empty sequence at `%s`", e.Path)
}

func (e *EmptySequenceError) Unwrap() error {
	return ErrEmptySequence
}

// AmbiguousVariantError reports that more than one mutually exclusive key is
// present.
type AmbiguousVariantError struct {
	Path string
	Kind string
	Keys []string
}

func (e *AmbiguousVariantError) Error() string {
	var conflict string
	if len(e.Keys) == 2 {
		conflict = fmt.Sprintf("both `%s` and `%s` are present", e.Keys[0], e.Keys[1])
	} else {
		conflict = fmt.Sprintf("`%s` are all present", strings.Join(e.Keys, "`, `"))
	}
	return fmt.Sprintf("ambiguous %s at `%s`: %s", e.Kind, e.Path, conflict)
}

// UnsupportedVariantError reports that none of the known keys is present.
type UnsupportedVariantError struct {
	Path  string
	Kind  string
	Known []string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported %s at `%s`: none of the known keys present, only the following are supported: [%s]",
		e.Kind, e.Path, strings.Join(e.Known, ", "))
}

// ContentError reports an invalid combination of fields in a message run.
type ContentError struct {
	Path   string
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("invalid message run at `%s`: %s", e.Path, e.Reason)
}

// UnknownValueError reports a string enum value outside the known set.
type UnknownValueError struct {
	Path  string
	Value string
	Known []string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown value %q at `%s`, expected one of [%s]", e.Value, e.Path, strings.Join(e.Known, ", "))
}
