package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for an empty track list, a bad initial
	// index, or navigation before a session was started.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange is returned by Select for an index outside the list.
	ErrOutOfRange = errors.New("index out of range")
	// ErrSourceUnreadable is returned when a locator cannot be opened.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrDecoderFailure is returned when the decoder refuses the stream or
	// fails while playing it.
	ErrDecoderFailure = errors.New("decoder failure")
	// ErrClosed is returned by a session after Close.
	ErrClosed = errors.New("session closed")
)

// NoSongsMessage is shown when a session is started on an empty list.
const NoSongsMessage = "No songs available"

// Error describes a failed session or transport operation.
type Error struct {
	Op      string
	Locator string
	Err     error
}

func (e *Error) Error() string {
	if e.Locator == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func opError(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)}
}
