package rules

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rules error. See Error.
type ErrorKind uint8

const (
	// InvalidFen: malformed FEN serialization. No state changes.
	InvalidFen ErrorKind = iota
	// InvalidMask: mask referenced empty squares, too many changes, or an
	// unrecognizable change pattern. State is untouched.
	InvalidMask
	// IllegalMove: geometry, blocking, capture, castling, king-safety, or
	// promotion-protocol violation. State is untouched.
	IllegalMove
	// PendingPromotion: observation attempted while a promotion is
	// outstanding.
	PendingPromotion
	// InvalidSquare: malformed algebraic coordinate.
	InvalidSquare
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFen:
		return "invalid FEN"
	case InvalidMask:
		return "invalid mask"
	case IllegalMove:
		return "illegal move"
	case PendingPromotion:
		return "promotion pending"
	case InvalidSquare:
		return "invalid square"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every fallible operation in this
// package. Kind lets callers switch on the taxonomy from spec.md §7
// (InvalidFen/InvalidMask/IllegalMove/PendingPromotion/Square) via
// errors.Is against the sentinel values below, without parsing messages.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Msg)
}

// Is reports whether target is the sentinel for e's Kind, so callers can
// write errors.Is(err, rules.ErrPendingPromotion) etc.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for errors.Is checks against a specific kind, ignoring
// message text.
var (
	ErrInvalidFen       = &Error{Kind: InvalidFen}
	ErrInvalidMask      = &Error{Kind: InvalidMask}
	ErrIllegalMove      = &Error{Kind: IllegalMove}
	ErrPendingPromotion = &Error{Kind: PendingPromotion}
	ErrInvalidSquare    = &Error{Kind: InvalidSquare}
)
