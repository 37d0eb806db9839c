// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kaz Walker, Thermoquad

package cinder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Exchange is one recorded query/response round trip. Fields are keyed
// by small integers on the wire, matching the CBOR conventions used
// elsewhere in the Thermoquad tooling.
type Exchange struct {
	Timestamp time.Time `cbor:"0,keyasint"`
	Query     string    `cbor:"1,keyasint"`
	Response  string    `cbor:"2,keyasint"`
	Error     string    `cbor:"3,keyasint,omitempty"`
}

// Recorder appends CBOR-encoded exchanges to a writer, producing a
// transcript of a driver session that can be replayed or inspected
// offline.
type Recorder struct {
	enc *cbor.Encoder
}

// NewRecorder creates a transcript recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: cbor.NewEncoder(w)}
}

// Record appends one exchange to the transcript.
func (r *Recorder) Record(ex Exchange) error {
	if err := r.enc.Encode(ex); err != nil {
		return fmt.Errorf("cinder: failed to encode exchange: %w", err)
	}
	return nil
}

// ReadTranscript decodes every exchange from a transcript stream until
// end of input.
func ReadTranscript(rd io.Reader) ([]Exchange, error) {
	dec := cbor.NewDecoder(rd)
	var exchanges []Exchange
	for {
		var ex Exchange
		if err := dec.Decode(&ex); err != nil {
			if errors.Is(err, io.EOF) {
				return exchanges, nil
			}
			return exchanges, fmt.Errorf("cinder: failed to decode exchange %d: %w", len(exchanges), err)
		}
		exchanges = append(exchanges, ex)
	}
}
