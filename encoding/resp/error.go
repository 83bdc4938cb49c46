package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotComplete indicates the buffer ends before a full frame, read more bytes and retry
	ErrNotComplete = errors.New("frame is not complete")

	// ErrInvalidFrame is a structural violation not covered by the other kinds
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrInvalidFrameType means an unknown prefix or an unexpected nested frame type
	ErrInvalidFrameType = errors.New("invalid frame type")

	// ErrInvalidFrameLength means a length or count header failed validation
	ErrInvalidFrameLength = errors.New("invalid frame length")

	// ErrParseInt means an integer payload could not be parsed
	ErrParseInt = errors.New("parse int error")

	// ErrParseFloat means a double payload could not be parsed
	ErrParseFloat = errors.New("parse float error")

	// ErrFrameTooLarge is returned by Reader when an incomplete frame outgrows the buffer limit
	ErrFrameTooLarge = errors.New("frame too large")
)

// FrameError describes a protocol violation. Kind is one of the sentinel errors
// above and Err, if any, is the underlying cause.
type FrameError struct {
	Kind   error
	Detail string
	Err    error
}

func (e *FrameError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *FrameError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsNotComplete reports whether err only asks for more bytes
func IsNotComplete(err error) bool {
	return errors.Is(err, ErrNotComplete)
}

func invalidType(got byte, want string) error {
	return &FrameError{Kind: ErrInvalidFrameType, Detail: fmt.Sprintf("expect %s, got %q", want, got)}
}

func invalidLength(header []byte, err error) error {
	return &FrameError{Kind: ErrInvalidFrameLength, Detail: fmt.Sprintf("header %q", header), Err: err}
}

func invalidFrame(format string, args ...interface{}) error {
	return &FrameError{Kind: ErrInvalidFrame, Detail: fmt.Sprintf(format, args...)}
}
