// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestSession returns an open session with all blocking waits
// replaced by no-ops.
func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithSleep(func(time.Duration) {})}, opts...)
	return NewSession("sim0", opts...)
}

func TestSession_Defaults(t *testing.T) {
	s := NewSession("/dev/ttyUSB0")
	require.True(t, s.IsOpen(), "a session is constructed already open")
	require.Equal(t, "/dev/ttyUSB0", s.Name())
	require.Equal(t, DefaultBaudRate, s.BaudRate())
}

func TestSession_Options(t *testing.T) {
	s := NewSession("sim0", WithBaudRate(115200), WithTimeout(50*time.Millisecond))
	require.Equal(t, 115200, s.BaudRate())
	require.Equal(t, 50*time.Millisecond, s.timeout)
}

func TestSession_Interrogation(t *testing.T) {
	s := newTestSession(t)

	queries := []string{"CAL ?\n", "TEMP\n", "RAD\n", "UNIT ?\n"}
	expected := []string{"2.0\n", "25.0\n", "0.0\n", "C\n"}

	for i, query := range queries {
		require.NoError(t, s.Write(query))
		resp, err := s.ReadLine()
		require.NoError(t, err)
		require.Equal(t, expected[i], resp, "query %q", query)
	}
}

func TestSession_SetCommandsQueueNothing(t *testing.T) {
	s := newTestSession(t)

	for _, query := range []string{"CAL 1.56\n", "UNIT K\n"} {
		require.NoError(t, s.Write(query))
		resp, err := s.ReadLine()
		require.NoError(t, err)
		require.Empty(t, resp, "set command %q must not queue a response", query)
	}
}

func TestSession_AggregationFIFO(t *testing.T) {
	s := newTestSession(t)

	// Several writes queue their responses in call order; reads drain
	// them one complete line at a time.
	for _, query := range []string{"CAL 3.14\n", "CAL ?\n", "UNIT ?\n", "UNIT F\n", "UNIT ?\n"} {
		require.NoError(t, s.Write(query))
	}

	for _, expected := range []string{"3.14\n", "C\n", "F\n"} {
		resp, err := s.ReadLine()
		require.NoError(t, err)
		require.Equal(t, expected, resp)
	}

	// Queue drained: back to timeout behavior.
	resp, err := s.ReadLine()
	require.NoError(t, err)
	require.Empty(t, resp)
}

func TestSession_SetCommandsMutateInstrumentState(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Write("UNIT F\n"))
	require.NoError(t, s.Write("CAL 1.56\n"))

	state := s.Responder().State()
	require.Equal(t, "F", state.Value(FieldUnit))
	require.Equal(t, "1.56", state.Value(FieldCalibration))
}

func TestSession_NonASCIIRejected(t *testing.T) {
	s := newTestSession(t)

	err := s.Write("TÉMP\n")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	require.Equal(t, RejectNonASCII, inputErr.Reason)

	// The input buffer was discarded, so a follow-up command starts
	// from scratch and succeeds.
	require.NoError(t, s.Write("TEMP\n"))
	resp, err := s.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "25.0\n", resp)
}

func TestSession_OverflowRejected(t *testing.T) {
	s := newTestSession(t)

	long := make([]byte, MaxQueryLen+1)
	for i := range long {
		long[i] = 'A'
	}

	err := s.Write(string(long))
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	require.Equal(t, RejectOverflow, inputErr.Reason)
}

func TestSession_UnrecognizedCommand(t *testing.T) {
	s := newTestSession(t)

	err := s.Write("CAL\n")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)

	// No partial response ever reaches the output queue on failure.
	resp, err := s.ReadLine()
	require.NoError(t, err)
	require.Empty(t, resp)
}

func TestSession_ClosedConnection(t *testing.T) {
	s := newTestSession(t)
	s.Close()
	require.False(t, s.IsOpen())

	var closedErr *PortClosedError
	require.ErrorAs(t, s.Write("TEMP\n"), &closedErr)

	_, err := s.ReadLine()
	require.ErrorAs(t, err, &closedErr)

	// Failures are scoped to the operation, not the session.
	s.Open()
	require.True(t, s.IsOpen())
	require.NoError(t, s.Write("TEMP\n"))
}

func TestSession_OpenCloseIdempotent(t *testing.T) {
	s := newTestSession(t)
	s.Close()
	s.Close()
	require.False(t, s.IsOpen())
	s.Open()
	s.Open()
	require.True(t, s.IsOpen())
}

func TestSession_ReadTimeoutBlocksAndReturnsEmpty(t *testing.T) {
	var slept []time.Duration
	s := NewSession("sim0",
		WithSleep(func(d time.Duration) { slept = append(slept, d) }),
		WithTimeout(75*time.Millisecond),
	)

	resp, err := s.ReadLine()
	require.NoError(t, err)
	require.Empty(t, resp)
	require.Equal(t, []time.Duration{75 * time.Millisecond}, slept,
		"empty read must block for exactly the configured timeout")
}

func TestSession_WriteIncursSimulatedLatency(t *testing.T) {
	var slept []time.Duration
	s := NewSession("sim0", WithSleep(func(d time.Duration) { slept = append(slept, d) }))

	require.NoError(t, s.Write("TEMP\n"))
	require.Len(t, slept, 1)
	require.GreaterOrEqual(t, slept[0], time.Duration(MinLatencyMs)*time.Millisecond)
	require.LessOrEqual(t, slept[0], time.Duration(MaxLatencyMs)*time.Millisecond)
}

func TestSession_SplitWritesDoNotAccumulate(t *testing.T) {
	// The input buffer is cleared after every Write, accepted or not.
	// "TE" alone is a complete (and unrecognized) query, so sending a
	// command in two halves is two failed commands, not one good one.
	s := newTestSession(t)

	var cmdErr *CommandError
	require.ErrorAs(t, s.Write("TE"), &cmdErr)
	require.Equal(t, "TE", cmdErr.Query)

	require.ErrorAs(t, s.Write("MP\n"), &cmdErr)
	require.Equal(t, "MP\n", cmdErr.Query)
}

func TestSession_ErrorTypesAreDistinguishable(t *testing.T) {
	s := newTestSession(t)

	rejected := s.Write(string(make([]byte, MaxQueryLen+1)))
	unrecognized := s.Write("BOGUS\n")
	s.Close()
	closed := s.Write("TEMP\n")

	var inputErr *InputError
	var cmdErr *CommandError
	var closedErr *PortClosedError

	require.ErrorAs(t, rejected, &inputErr)
	require.False(t, errors.As(rejected, &cmdErr))

	require.ErrorAs(t, unrecognized, &cmdErr)
	require.False(t, errors.As(unrecognized, &inputErr))

	require.ErrorAs(t, closed, &closedErr)
}
