// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

import (
	"math/rand"
	"regexp"
	"time"
)

// SleepFunc blocks the caller for the given duration. The default is
// time.Sleep; tests inject a no-op to run deterministically without
// giving up the blocking contract in production.
type SleepFunc func(time.Duration)

type opKind int

const (
	opQuery opKind = iota // read a field, answer "<value>\n"
	opSet                 // store capture group 1 into a field, answer nothing
)

// command binds an anchored pattern to a tagged operation on one field.
// Operations are deliberately not closures: a (kind, field) pair is
// trivially testable and exhaustively enumerable.
type command struct {
	pattern *regexp.Regexp
	kind    opKind
	field   Field
}

// newCommandTable returns the instrument's command language. The slice
// order is the dispatch order: patterns are tried top to bottom and the
// first match wins, so ordering is part of the protocol contract.
func newCommandTable() []command {
	return []command{
		{pattern: regexp.MustCompile(`^CAL \?`), kind: opQuery, field: FieldCalibration},
		{pattern: regexp.MustCompile(`^CAL (\d+[.]\d*)`), kind: opSet, field: FieldCalibration},
		{pattern: regexp.MustCompile(`^TEMP`), kind: opQuery, field: FieldTemperature},
		{pattern: regexp.MustCompile(`^RAD`), kind: opQuery, field: FieldRadiance},
		{pattern: regexp.MustCompile(`^UNIT \?`), kind: opQuery, field: FieldUnit},
		{pattern: regexp.MustCompile(`^UNIT ([KCF])`), kind: opSet, field: FieldUnit},
	}
}

// Responder implements the instrument side of the Cinder protocol:
// transport-constraint validation, command dispatch and response
// formatting. It knows nothing about buffering or connection state.
type Responder struct {
	state   *DeviceState
	table   []command
	pending []byte
	sleep   SleepFunc
	rng     *rand.Rand
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithResponderSleep replaces the latency sleep function.
func WithResponderSleep(fn SleepFunc) ResponderOption {
	return func(r *Responder) { r.sleep = fn }
}

// WithResponderRand replaces the latency random source.
func WithResponderRand(rng *rand.Rand) ResponderOption {
	return func(r *Responder) { r.rng = rng }
}

// NewResponder creates a responder with power-on instrument state.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		state: NewDeviceState(),
		table: newCommandTable(),
		sleep: time.Sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State exposes the simulated instrument state, mainly for assertions
// and for UIs that display the instrument's configuration.
func (r *Responder) State() *DeviceState {
	return r.state
}

// latency picks a uniformly distributed simulated response delay.
func (r *Responder) latency() time.Duration {
	ms := MinLatencyMs + r.rng.Intn(MaxLatencyMs-MinLatencyMs+1)
	return time.Duration(ms) * time.Millisecond
}

// Accept validates a proposed query against the instrument's transport
// constraints: 7-bit ASCII only (checked first, rejecting on the first
// offending character) and at most MaxQueryLen characters. The simulated
// line latency is incurred before evaluation, whatever the outcome.
//
// On success the query becomes the pending query for Respond. On
// rejection the pending query is left empty.
func (r *Responder) Accept(query []byte) bool {
	r.sleep(r.latency())
	r.pending = r.pending[:0]
	for _, c := range query {
		if c > MaxCharCode {
			return false
		}
	}
	if len(query) > MaxQueryLen {
		return false
	}
	r.pending = append(r.pending, query...)
	return true
}

// Respond dispatches the pending query through the command table and
// returns the instrument's answer. Query operations answer the field's
// raw text plus a newline terminator; set operations store capture group
// 1 verbatim and answer the empty string.
//
// Matching is anchored at the start of the query but a pattern may match
// a prefix, silently ignoring trailing characters. That laxity is how
// the real instrument behaves (the line terminator itself is trailing
// content) and is preserved for compatibility, not a feature to extend.
func (r *Responder) Respond() (string, error) {
	query := string(r.pending)
	for _, cmd := range r.table {
		m := cmd.pattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		switch cmd.kind {
		case opQuery:
			return r.state.Value(cmd.field) + "\n", nil
		case opSet:
			r.state.SetValue(cmd.field, m[1])
			return "", nil
		}
	}
	return "", &CommandError{Query: query}
}

// rejectReason reports which transport constraint a rejected query
// violated, for error reporting. Mirrors the Accept checks in order.
func rejectReason(query []byte) RejectReason {
	for _, c := range query {
		if c > MaxCharCode {
			return RejectNonASCII
		}
	}
	return RejectOverflow
}
