// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

import "time"

// Session emulates a line-oriented serial connection to the simulated
// instrument. It owns connection state and the input/output buffers and
// delegates all protocol semantics to a Responder.
//
// The output side is a queue of complete newline-terminated records, not
// a flat byte stream: responses are only ever appended whole, so a
// non-empty output buffer always holds at least one full line and
// ReadLine never has to deal with a partial record.
//
// A Session is meant for a single caller. It does no internal locking,
// and its simulated waits genuinely block, matching synchronous serial
// I/O. Concurrent Write/ReadLine from multiple goroutines is undefined.
type Session struct {
	name      string
	baud      int
	timeout   time.Duration
	responder *Responder
	input     []byte
	output    []string
	open      bool
	sleep     SleepFunc
}

// Option configures a Session.
type Option func(*Session)

// WithBaudRate sets the pretend line speed. It is cosmetic, like on the
// real tty: the simulation does not pace bytes.
func WithBaudRate(baud int) Option {
	return func(s *Session) { s.baud = baud }
}

// WithTimeout sets how long ReadLine blocks when no response is queued.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithSleep replaces the blocking sleep used for both the read timeout
// and the responder's simulated latency, so tests run without delay.
func WithSleep(fn SleepFunc) Option {
	return func(s *Session) {
		s.sleep = fn
		s.responder.sleep = fn
	}
}

// WithResponder substitutes a pre-configured responder, e.g. one with a
// seeded random source.
func WithResponder(r *Responder) Option {
	return func(s *Session) { s.responder = r }
}

// NewSession opens a simulated connection on the named port. The port
// name is carried for display only; any string will do. The session is
// constructed already open.
func NewSession(port string, opts ...Option) *Session {
	s := &Session{
		name:      port,
		baud:      DefaultBaudRate,
		timeout:   DefaultReadTimeout,
		responder: NewResponder(),
		open:      true,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the port identifier the session was opened with.
func (s *Session) Name() string { return s.name }

// BaudRate returns the configured pretend line speed.
func (s *Session) BaudRate() int { return s.baud }

// IsOpen reports whether the connection is open.
func (s *Session) IsOpen() bool { return s.open }

// Open marks the connection open. Idempotent, always permitted.
func (s *Session) Open() { s.open = true }

// Close marks the connection closed. Idempotent, always permitted.
// Buffers are kept: reopening resumes where the session left off.
func (s *Session) Close() { s.open = false }

// Responder exposes the protocol engine behind this session.
func (s *Session) Responder() *Responder { return s.responder }

// Write sends query text to the simulated instrument. The text is
// accumulated into the input buffer and the whole buffer is offered to
// the responder. Whatever the outcome, the input buffer is cleared
// before Write returns: unconsumed input never survives across calls.
//
// An accepted query is dispatched immediately; its response, if any, is
// queued for ReadLine. A rejected query returns an InputError, and a
// query matching no command returns a CommandError with nothing queued.
func (s *Session) Write(query string) error {
	if !s.open {
		return &PortClosedError{Op: "write"}
	}
	s.input = append(s.input, query...)
	if !s.responder.Accept(s.input) {
		reason := rejectReason(s.input)
		s.input = s.input[:0]
		return &InputError{Reason: reason}
	}
	s.input = s.input[:0]
	resp, err := s.responder.Respond()
	if err != nil {
		return err
	}
	if resp != "" {
		s.output = append(s.output, resp)
	}
	return nil
}

// ReadLine returns the oldest queued response, including its newline
// terminator. Responses drain in the order their queries were written.
// With nothing queued, ReadLine blocks for the configured timeout and
// then returns the empty string, like a real serial read timing out.
func (s *Session) ReadLine() (string, error) {
	if !s.open {
		return "", &PortClosedError{Op: "read"}
	}
	if len(s.output) > 0 {
		rec := s.output[0]
		s.output = s.output[1:]
		return rec, nil
	}
	s.sleep(s.timeout)
	return "", nil
}
