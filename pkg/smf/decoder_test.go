package smf

import "testing"

func TestParseMinimalEmptyFile(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if f.Format != 0 || f.TrackCount != 1 {
		t.Fatalf("unexpected header: format=%d trackCount=%d", f.Format, f.TrackCount)
	}
	if f.TimeDivision != Ppq(480) {
		t.Fatalf("unexpected time division: %+v", f.TimeDivision)
	}
	if len(f.Tracks) != 1 || len(f.Tracks[0].Events) != 1 {
		t.Fatalf("unexpected tracks: %+v", f.Tracks)
	}
	eot, ok := f.Tracks[0].Events[0].(*EndOfTrackEvent)
	if !ok {
		t.Fatalf("expected EndOfTrackEvent, got %T", f.Tracks[0].Events[0])
	}
	if eot.Delta() != 0 {
		t.Fatalf("expected delta 0, got %d", eot.Delta())
	}
}

func TestParseRunningStatus(t *testing.T) {
	trackBody := []byte{
		0x00, 0x90, 0x3C, 0x40,
		0x00, 0x3E, 0x40,
		0x00, 0x40, 0x40,
		0x00, 0xFF, 0x2F, 0x00,
	}
	data := buildFile(Ppq(480), trackBody)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	track := f.Tracks[0]
	wantNotes := []uint8{0x3C, 0x3E, 0x40}
	var gotNotes []uint8
	for _, e := range track.Events {
		if on, ok := e.(*NoteOnEvent); ok {
			if on.Channel != 0 {
				t.Errorf("expected channel 0, got %d", on.Channel)
			}
			gotNotes = append(gotNotes, on.Note)
		}
	}
	if !uint8SliceEqual(gotNotes, wantNotes) {
		t.Fatalf("notes = %v, want %v", gotNotes, wantNotes)
	}
}

func TestParseNotePairingSetsLength(t *testing.T) {
	trackBody := []byte{
		0x00, 0x90, 0x3C, 0x64, // NoteOn note=60 vel=100 @ delta 0
		0x81, 0x70, 0x80, 0x3C, 0x00, // NoteOff note=60 vel=0 @ delta 240
		0x00, 0xFF, 0x2F, 0x00,
	}
	data := buildFile(Ppq(480), trackBody)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	on, ok := f.Tracks[0].Events[0].(*NoteOnEvent)
	if !ok {
		t.Fatalf("expected NoteOnEvent first, got %T", f.Tracks[0].Events[0])
	}
	if on.Length != 240 {
		t.Fatalf("NoteOn.Length = %d, want 240", on.Length)
	}
}

func TestParseVelocityZeroNoteOnStaysNoteOn(t *testing.T) {
	trackBody := []byte{
		0x00, 0x90, 0x3C, 0x64, // NoteOn note=60 vel=100 @ delta 0
		0x81, 0x70, 0x90, 0x3C, 0x00, // NoteOn note=60 vel=0 @ delta 240 (a running-status Note-Off)
		0x00, 0xFF, 0x2F, 0x00,
	}
	data := buildFile(Ppq(480), trackBody)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	events := f.Tracks[0].Events
	on, ok := events[0].(*NoteOnEvent)
	if !ok {
		t.Fatalf("expected NoteOnEvent first, got %T", events[0])
	}
	if on.Length != 240 {
		t.Fatalf("NoteOn.Length = %d, want 240 (closed by the velocity-0 Note-On)", on.Length)
	}
	closer, ok := events[1].(*NoteOnEvent)
	if !ok {
		t.Fatalf("expected the velocity-0 event to decode as a NoteOnEvent, got %T", events[1])
	}
	if closer.Velocity != 0 {
		t.Fatalf("Velocity = %d, want 0", closer.Velocity)
	}
}

func TestParseSetTempoRecordsDeclaredLength(t *testing.T) {
	trackBody := []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0xFF, 0x2F, 0x00,
	}
	data := buildFile(Ppq(480), trackBody)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	tempo, ok := f.Tracks[0].Events[0].(*SetTempoEvent)
	if !ok {
		t.Fatalf("expected SetTempoEvent, got %T", f.Tracks[0].Events[0])
	}
	if tempo.DeclaredLength != 3 {
		t.Fatalf("DeclaredLength = %d, want 3", tempo.DeclaredLength)
	}
}

func TestParseSequenceNumberNonStandardLengthAdvancesOneByte(t *testing.T) {
	trackBody := []byte{
		0x00, 0xFF, 0x00, 0x01, 0x05, // declared length 1, not 2
		0x00, 0x90, 0x3C, 0x40, // a Note On should still decode correctly after recovery
		0x00, 0xFF, 0x2F, 0x00,
	}
	data := buildFile(Ppq(480), trackBody)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	seq, ok := f.Tracks[0].Events[0].(*SequenceNumberEvent)
	if !ok {
		t.Fatalf("expected SequenceNumberEvent, got %T", f.Tracks[0].Events[0])
	}
	if seq.DeclaredLength != 1 {
		t.Fatalf("DeclaredLength = %d, want 1", seq.DeclaredLength)
	}
	if seq.FallbackLabel == "" {
		t.Fatal("expected a FallbackLabel for a non-standard Sequence Number length")
	}
	on, ok := f.Tracks[0].Events[1].(*NoteOnEvent)
	if !ok {
		t.Fatalf("expected parsing to resynchronize onto the following Note On, got %T", f.Tracks[0].Events[1])
	}
	if on.Note != 0x3C {
		t.Fatalf("Note = %#x, want 0x3C", on.Note)
	}
}

func TestParseBadChunkTagStopsCleanly(t *testing.T) {
	// MThd then a chunk whose type tag is not MTrk.
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		0x58, 0x58, 0x58, 0x58, 0x00, 0x00, 0x00, 0x00,
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(f.Tracks) != 0 {
		t.Fatalf("expected zero tracks after a bad chunk tag, got %d", len(f.Tracks))
	}
}

func TestParseDataByteWithNoRunningStatusFaults(t *testing.T) {
	trackBody := []byte{0x00, 0x3C, 0x40}
	data := buildFile(Ppq(480), trackBody)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for data byte with no running status")
	}
}

// buildFile assembles a minimal one-track SMF byte stream around trackBody.
func buildFile(division TimeDivision, trackBody []byte) []byte {
	c := NewWriteCursor()
	EncodeHeader(c, Header{Format: 0, TrackCount: 1, TimeDivision: division})
	c.WriteAsciiString("MTrk")
	c.WriteU32BE(uint32(len(trackBody)))
	c.WriteBytes(trackBody)
	return c.Bytes()
}

func uint8SliceEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
