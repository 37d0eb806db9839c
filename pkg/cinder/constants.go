// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

// Package cinder provides a software simulation of a KT-class infrared
// pyrometer speaking the Cinder ASCII command language.
//
// Cinder is a line-oriented query/response protocol: the host sends one
// ASCII command per line and the instrument answers with a single
// newline-terminated value, or with nothing at all for set commands.
// This package implements the instrument side of that exchange so serial
// drivers can be exercised without hardware: a Responder holds the
// simulated instrument state and command table, and a Session layers
// input/output buffering, connection state and timing on top of it.
//
// See the Cinder specification at origin/documentation/source/specifications/cinder/
package cinder

import "time"

// Instrument-side transport limits
const (
	MaxQueryLen = 40  // size of the instrument's input buffer, in characters
	MaxCharCode = 127 // the instrument only accepts 7-bit ASCII
)

// Simulated response latency bounds. Every query, accepted or not, costs
// a uniformly distributed delay in this range at millisecond granularity.
const (
	MinLatencyMs = 50
	MaxLatencyMs = 500
)

// Power-on instrument state
const (
	DefaultTemperature = "25.0"
	DefaultRadiance    = "0.0"
	DefaultUnit        = "C"
	DefaultCalibration = "2.0"
)

// Session defaults
const (
	DefaultBaudRate    = 9600
	DefaultReadTimeout = 200 * time.Millisecond
)
