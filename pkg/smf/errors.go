package smf

import (
	"errors"
	"fmt"
)

// Sentinel errors for syntactic/structural failures. ErrUnderflow and
// ErrMissingField are reached through the typed UnderflowError and
// MissingFieldError via Unwrap; the others are returned as they are.
var (
	// ErrUnderflow is the sentinel behind every UnderflowError. Use
	// errors.Is(err, ErrUnderflow) to detect a bounded read that ran past
	// the end of the buffer.
	ErrUnderflow = errors.New("smf: buffer underflow")

	// ErrBadChunkType names a track chunk whose 4-byte type tag is not
	// "MTrk". Parse does not return it: on such a chunk it stops reading
	// further tracks and returns the tracks decoded so far with a nil error.
	ErrBadChunkType = errors.New("smf: bad chunk type")

	// ErrNoRunningStatus is returned when a data byte (high bit clear) is
	// encountered before any status byte has been seen in the track.
	ErrNoRunningStatus = errors.New("smf: data byte with no running status")

	// ErrMissingField is returned by the encoder (through MissingFieldError)
	// when it is handed an event type it does not know how to serialize.
	ErrMissingField = errors.New("smf: missing required field")

	// ErrInvalidNoteName is returned by noteToMidi when a name cannot be
	// parsed as scientific pitch notation.
	ErrInvalidNoteName = errors.New("smf: invalid note name")

	// ErrMidiValueRange is returned when a MIDI value falls outside 0..127.
	ErrMidiValueRange = errors.New("smf: midi value out of range")
)

// UnderflowError reports a bounded read that requested more bytes than the
// cursor had remaining.
type UnderflowError struct {
	Requested int
	Available int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("smf: buffer underflow: requested %d bytes, %d available", e.Requested, e.Available)
}

func (e *UnderflowError) Unwrap() error { return ErrUnderflow }

func underflow(requested, available int) error {
	return &UnderflowError{Requested: requested, Available: available}
}

// MissingFieldError reports a field the encoder needed but did not find on
// the event being serialized.
type MissingFieldError struct {
	EventLabel string
	Field      string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("smf: encoding %s: missing field %q", e.EventLabel, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func missingField(eventLabel, field string) error {
	return &MissingFieldError{EventLabel: eventLabel, Field: field}
}
