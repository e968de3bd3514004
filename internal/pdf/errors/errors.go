package errors

import (
	stderrors "errors"
	"fmt"
)

// ParseKind categorizes failures raised while building a Document from raw bytes
type ParseKind int

const (
	// ParseMalformed indicates the file's structure could not be understood:
	// missing header, unlocatable trailer or root object, or an unparseable
	// page tree.
	ParseMalformed ParseKind = iota

	// ParseUnsupported indicates the file is structurally valid but uses a
	// feature this engine refuses to process, currently encryption.
	ParseUnsupported
)

// String returns the string representation of the ParseKind
func (k ParseKind) String() string {
	switch k {
	case ParseMalformed:
		return "MALFORMED"
	case ParseUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

// ParseError reports why a PDF could not be parsed into a Document
type ParseError struct {
	Kind    ParseKind `json:"kind"`
	Message string    `json:"message"`
	Offset  int64     `json:"offset,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind.String(), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Kind.String(), e.Message)
}

// NewParseError creates a ParseError of the given kind
func NewParseError(kind ParseKind, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: message,
	}
}

// WithOffset records the byte offset at which parsing failed
func (e *ParseError) WithOffset(offset int64) *ParseError {
	e.Offset = offset
	return e
}

// WithDetail attaches additional context to the error
func (e *ParseError) WithDetail(detail string) *ParseError {
	e.Detail = detail
	return e
}

// WrapParseError wraps a lower-level error as a ParseError of the given kind
func WrapParseError(kind ParseKind, err error) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: err.Error(),
	}
}

// AsParseError unwraps err to a *ParseError if one is in its chain
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// SerializeKind categorizes failures raised while re-emitting a Document
type SerializeKind int

const (
	// SerializeObjectGraphBroken indicates a referenced object id has no
	// entry in the object table. The redaction engine never deletes objects
	// without updating referents, so reaching this means an internal
	// invariant was violated.
	SerializeObjectGraphBroken SerializeKind = iota
)

// String returns the string representation of the SerializeKind
func (k SerializeKind) String() string {
	switch k {
	case SerializeObjectGraphBroken:
		return "OBJECT_GRAPH_BROKEN"
	default:
		return "UNKNOWN"
	}
}

// SerializeError reports why a mutated Document could not be written back out
type SerializeError struct {
	Kind      SerializeKind `json:"kind"`
	Message   string        `json:"message"`
	ObjectNum int64         `json:"object_num,omitempty"`
	GenNum    int64         `json:"generation_num,omitempty"`
}

// Error implements the error interface
func (e *SerializeError) Error() string {
	if e.ObjectNum != 0 || e.GenNum != 0 {
		return fmt.Sprintf("[%s] %s (object %d %d)", e.Kind.String(), e.Message, e.ObjectNum, e.GenNum)
	}
	return fmt.Sprintf("[%s] %s", e.Kind.String(), e.Message)
}

// NewSerializeError creates a SerializeError of the given kind
func NewSerializeError(kind SerializeKind, message string) *SerializeError {
	return &SerializeError{
		Kind:    kind,
		Message: message,
	}
}

// WithObject records which object reference broke serialization
func (e *SerializeError) WithObject(objNum, genNum int64) *SerializeError {
	e.ObjectNum = objNum
	e.GenNum = genNum
	return e
}

// AsSerializeError unwraps err to a *SerializeError if one is in its chain
func AsSerializeError(err error) (*SerializeError, bool) {
	var se *SerializeError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}
