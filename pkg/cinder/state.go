// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

// Field identifies one readable/writable value of the simulated instrument.
type Field int

const (
	FieldTemperature Field = iota
	FieldRadiance
	FieldUnit
	FieldCalibration
)

// String returns a short lowercase name for the field.
func (f Field) String() string {
	switch f {
	case FieldTemperature:
		return "temperature"
	case FieldRadiance:
		return "radiance"
	case FieldUnit:
		return "unit"
	case FieldCalibration:
		return "calibration"
	default:
		return "unknown"
	}
}

// DeviceState holds the simulated instrument's current readings and
// configuration. Numeric values are kept as raw decimal text exactly as
// received on the wire: the real instrument echoes values back verbatim,
// so the simulation must never parse and reformat them.
type DeviceState struct {
	temperature string
	radiance    string
	unit        string // always one of "C", "K", "F"
	calibration string
}

// NewDeviceState returns instrument state at power-on defaults.
func NewDeviceState() *DeviceState {
	return &DeviceState{
		temperature: DefaultTemperature,
		radiance:    DefaultRadiance,
		unit:        DefaultUnit,
		calibration: DefaultCalibration,
	}
}

// Value returns the current raw text of the given field.
func (s *DeviceState) Value(f Field) string {
	switch f {
	case FieldTemperature:
		return s.temperature
	case FieldRadiance:
		return s.radiance
	case FieldUnit:
		return s.unit
	case FieldCalibration:
		return s.calibration
	default:
		return ""
	}
}

// SetValue stores raw command text into the given field, verbatim.
// Validation happens at the command table: by the time a set operation
// reaches here the captured text has already matched the command's
// argument pattern.
func (s *DeviceState) SetValue(f Field, raw string) {
	switch f {
	case FieldTemperature:
		s.temperature = raw
	case FieldRadiance:
		s.radiance = raw
	case FieldUnit:
		s.unit = raw
	case FieldCalibration:
		s.calibration = raw
	}
}
