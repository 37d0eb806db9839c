// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

import "fmt"

// All failures in this package are scoped to the single operation that
// raised them. There is no fatal error class: a closed port can be
// reopened, a rejected query can be resent, an unrecognized command can
// be followed by a valid one. Callers branch on error type with
// errors.As, not on message text.

// PortClosedError is returned by Write and ReadLine when the session is
// closed. The session itself stays usable: Open permits retrying.
type PortClosedError struct {
	Op string // "write" or "read"
}

func (e *PortClosedError) Error() string {
	return fmt.Sprintf("cinder: cannot %s, connection is not open", e.Op)
}

// RejectReason says why the instrument refused a query.
type RejectReason int

const (
	RejectNonASCII RejectReason = iota // a character above code point 127
	RejectOverflow                     // query longer than the input buffer
)

// String returns a human-readable description of the reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNonASCII:
		return "non-ASCII character in query"
	case RejectOverflow:
		return fmt.Sprintf("query exceeds %d-character input buffer", MaxQueryLen)
	default:
		return "rejected"
	}
}

// InputError is returned by Write when the query violates a transport
// constraint. The accumulated input buffer is discarded; the caller must
// resend the command from scratch.
type InputError struct {
	Reason RejectReason
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cinder: invalid input query: %s", e.Reason)
}

// CommandError is the simulated instrument's own error condition: the
// query passed transport validation but matched no command pattern. The
// real instrument answers "ERROR 19: CAN'T DO IT" here.
type CommandError struct {
	Query string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("cinder: error 19: unrecognized command %q", e.Query)
}
