// Package apperr carries the failure taxonomy shared by the downstream client,
// the reply publisher and the dispatch layer. Classification happens at the
// edges; the fulfillment saga itself never wraps or reclassifies errors.
package apperr

import "errors"

// TransientError marks a connectivity-class failure: retried inside the client,
// and once retries are exhausted the message is held for redelivery.
type TransientError struct {
	Err error
}

func Transient(err error) *TransientError {
	return &TransientError{Err: err}
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// TerminalError marks a definitive downstream rejection, never retried.
type TerminalError struct {
	Err error
}

func Terminal(err error) *TerminalError {
	return &TerminalError{Err: err}
}

func (e *TerminalError) Error() string {
	return e.Err.Error()
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// MalformedError marks an inbound message that failed validation.
type MalformedError struct {
	Reason string
}

func Malformed(reason string) *MalformedError {
	return &MalformedError{Reason: reason}
}

func (e *MalformedError) Error() string {
	return e.Reason
}

// IsTransient reports whether err is classified transient anywhere in its chain.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsTerminal reports whether err is classified terminal anywhere in its chain.
func IsTerminal(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}

// IsMalformed reports whether err is a message validation failure.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}
