package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can map it to a response without
// inspecting messages.
type Kind string

const (
	KindNotFound               Kind = "not_found"
	KindInvalid                Kind = "invalid"
	KindInvalidTiming          Kind = "invalid_timing"
	KindOutsideBusinessHours   Kind = "outside_business_hours"
	KindClosedDay              Kind = "closed_day"
	KindCapacityExceeded       Kind = "capacity_exceeded"
	KindSlotConflict           Kind = "slot_conflict"
	KindAlreadyCancelled       Kind = "already_cancelled"
	KindTerminalStateViolation Kind = "terminal_state_violation"
	KindDuplicateKey           Kind = "duplicate_key"
	KindHasActiveReservations  Kind = "has_active_reservations"
)

// parents lists the broader kinds a kind also satisfies under errors.Is.
var parents = map[Kind]Kind{
	KindOutsideBusinessHours: KindInvalidTiming,
	KindClosedDay:            KindInvalidTiming,
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind, or of a kind this
// one specialises.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	for k := e.Kind; k != ""; k = parents[k] {
		if k == t.Kind {
			return true
		}
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrInvalid                = &Error{Kind: KindInvalid}
	ErrInvalidTiming          = &Error{Kind: KindInvalidTiming}
	ErrOutsideBusinessHours   = &Error{Kind: KindOutsideBusinessHours}
	ErrClosedDay              = &Error{Kind: KindClosedDay}
	ErrCapacityExceeded       = &Error{Kind: KindCapacityExceeded}
	ErrSlotConflict           = &Error{Kind: KindSlotConflict}
	ErrAlreadyCancelled       = &Error{Kind: KindAlreadyCancelled}
	ErrTerminalStateViolation = &Error{Kind: KindTerminalStateViolation}
	ErrDuplicateKey           = &Error{Kind: KindDuplicateKey}
	ErrHasActiveReservations  = &Error{Kind: KindHasActiveReservations}
)

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Invalid(format string, args ...interface{}) *Error {
	return New(KindInvalid, format, args...)
}

// KindOf returns the kind carried by err, or "" for infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
