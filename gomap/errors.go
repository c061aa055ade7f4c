package gomap

import "fmt"

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	KindTypeMismatch ErrorKind = iota
	KindMissingField
	KindNumericOverflow
	KindUnknownVariant
	KindBadTarget
)

func (k ErrorKind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type mismatch"
	case KindMissingField:
		return "missing field"
	case KindNumericOverflow:
		return "numeric overflow"
	case KindUnknownVariant:
		return "unknown variant"
	case KindBadTarget:
		return "bad target"
	}
	return "unknown error kind"
}

// MarshalError represents an error during marshaling.
type MarshalError struct {
	FieldPath string // Field path (e.g., "person.address.street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during unmarshaling. Kind says what
// went wrong and FieldPath where, so callers can locate malformed data.
type UnmarshalError struct {
	FieldPath string
	Kind      ErrorKind
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s: %s", e.FieldPath, e.Kind, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s: %s", e.Kind, e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}
