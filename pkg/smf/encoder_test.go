package smf

import "testing"

func TestEncodeTempoEventBytes(t *testing.T) {
	ev := tempoEvent(120)
	if ev.Tempo != 500000 {
		t.Fatalf("tempoEvent(120).Tempo = %d, want 500000", ev.Tempo)
	}
	ev.SetDelta(0)

	c := NewWriteCursor()
	if err := encodeEvent(c, ev); err != nil {
		t.Fatalf("encodeEvent error: %v", err)
	}
	want := []byte{0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}
	if !bytesEqual(c.Bytes(), want) {
		t.Fatalf("encoded tempo event = %v, want %v", c.Bytes(), want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &File{
		Format:     1,
		TrackCount: 1,
		TimeDivision: Ppq(480),
		Tracks: []Track{
			{Events: []Event{
				&SetTempoEvent{MetaBase: MetaBase{EventBase: EventBase{DeltaTime: 0}, DeclaredLength: 3}, Tempo: 500000, BPM: 120},
				&NoteOnEvent{EventBase: EventBase{DeltaTime: 0}, Channel: 0, Note: 60, Velocity: 100},
				&NoteOffEvent{EventBase: EventBase{DeltaTime: 240}, Channel: 0, Note: 60, Velocity: 0},
				&EndOfTrackEvent{MetaBase: MetaBase{EventBase: EventBase{DeltaTime: 0}}},
			}},
		},
	}

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	decoded, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse(Encode(...)) error: %v", err)
	}

	if decoded.Format != original.Format || decoded.TrackCount != original.TrackCount {
		t.Fatalf("header mismatch: got %+v", decoded)
	}
	if len(decoded.Tracks) != 1 || len(decoded.Tracks[0].Events) != 4 {
		t.Fatalf("unexpected track shape: %+v", decoded.Tracks)
	}
	on, ok := decoded.Tracks[0].Events[1].(*NoteOnEvent)
	if !ok {
		t.Fatalf("expected NoteOnEvent at index 1, got %T", decoded.Tracks[0].Events[1])
	}
	if on.Length != 240 {
		t.Fatalf("round trip lost NoteOn.Length: got %d, want 240", on.Length)
	}
	if decoded.Tracks[0].ChunkLength == 0 {
		t.Fatal("expected encoder to back-patch a nonzero chunk length")
	}
}

func TestEncodeMissingEventTypeErrors(t *testing.T) {
	c := NewWriteCursor()
	err := encodeEvent(c, &unrecognizedEvent{})
	if err == nil {
		t.Fatal("expected error encoding an unrecognized event type")
	}
}

// unrecognizedEvent exists only to exercise the encoder's default branch.
type unrecognizedEvent struct {
	EventBase
}

func (*unrecognizedEvent) EventLabel() string { return "Unrecognized" }
