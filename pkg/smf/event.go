package smf

// Event is the tagged union every decoded wire event implements. Each
// concrete type below owns exactly one payload shape; dispatch is by type
// switch, never by an inheritance hierarchy. Type switches are not checked
// for exhaustiveness by the compiler; the encoder returns an error for a
// type its switch does not handle.
type Event interface {
	Delta() uint32
	SetDelta(uint32)
	EventLabel() string
}

// EventBase carries the one field every variant shares: the tick delta
// since the previous event in the same track.
type EventBase struct {
	DeltaTime uint32
}

func (e *EventBase) Delta() uint32     { return e.DeltaTime }
func (e *EventBase) SetDelta(v uint32) { e.DeltaTime = v }

// MetaBase carries the fields every Meta event (status 0xFF) shares on top
// of EventBase: the wire-declared payload length, kept even after a fixed-size
// meta type decodes successfully so the validator can flag a non-standard
// declaration the decoder otherwise tolerated.
type MetaBase struct {
	EventBase
	DeclaredLength uint32
}

// Channel voice events (status 0x80-0xEF).

type NoteOffEvent struct {
	EventBase
	Channel  uint8
	Note     uint8
	Velocity uint8
}

func (*NoteOffEvent) EventLabel() string { return "Note Off" }

type NoteOnEvent struct {
	EventBase
	Channel  uint8
	Note     uint8
	Velocity uint8
	// Length is 0 until the decoder meets a Note-Off, or a later Note-On,
	// for the same note in the same track; see NotePairer.
	Length uint32
}

func (*NoteOnEvent) EventLabel() string { return "Note On" }

type PolyAftertouchEvent struct {
	EventBase
	Channel  uint8
	Note     uint8
	Pressure uint8
}

func (*PolyAftertouchEvent) EventLabel() string { return "Polyphonic Aftertouch" }

type ControlChangeEvent struct {
	EventBase
	Channel    uint8
	Controller uint8
	Value      uint8
}

func (*ControlChangeEvent) EventLabel() string { return "Controller Change" }

// ControllerLabel returns the controller table name for e.Controller, or
// a fallback string if the controller number has no standard assignment.
func (e *ControlChangeEvent) ControllerLabel() string {
	return ControllerName(e.Controller)
}

type ProgramChangeEvent struct {
	EventBase
	Channel uint8
	Program uint8
}

func (*ProgramChangeEvent) EventLabel() string { return "Program Change" }

type ChannelPressureEvent struct {
	EventBase
	Channel  uint8
	Pressure uint8
}

func (*ChannelPressureEvent) EventLabel() string { return "Channel Aftertouch" }

type PitchBendEvent struct {
	EventBase
	Channel uint8
	LSB     uint8
	MSB     uint8
	Value14 uint16
}

func (*PitchBendEvent) EventLabel() string { return "Pitch Bend" }

// SystemExclusiveEvent is a manufacturer-framed 0xF0...0xF7 block.
type SystemExclusiveEvent struct {
	EventBase
	ManufacturerID byte
	Data           []byte
}

func (*SystemExclusiveEvent) EventLabel() string { return "System Exclusive" }

// ManufacturerLabel returns the manufacturer table name for e.ManufacturerID,
// or a fallback string if the ID has no standard assignment.
func (e *SystemExclusiveEvent) ManufacturerLabel() string {
	return ManufacturerName(e.ManufacturerID)
}

// SystemCommonKind discriminates the 0xF2-0xF7 common
// messages the decoder groups under one struct shape.
type SystemCommonKind uint8

const (
	SystemCommonSongPositionPointer SystemCommonKind = 0xF2
	SystemCommonSongSelect          SystemCommonKind = 0xF3
	SystemCommonUndefinedF4         SystemCommonKind = 0xF4
	SystemCommonUndefinedF5         SystemCommonKind = 0xF5
	SystemCommonTuneRequest         SystemCommonKind = 0xF6
	SystemCommonEndOfExclusive      SystemCommonKind = 0xF7
)

type SystemCommonEvent struct {
	EventBase
	Kind SystemCommonKind
	Data []byte
}

func (e *SystemCommonEvent) EventLabel() string {
	switch e.Kind {
	case SystemCommonSongPositionPointer:
		return "Song Position Pointer"
	case SystemCommonSongSelect:
		return "Song Select"
	case SystemCommonTuneRequest:
		return "Tune Request"
	case SystemCommonEndOfExclusive:
		return "End of Exclusive"
	default:
		return "Undefined System Common"
	}
}

// SystemRealTimeKind discriminates the 0xF8-0xFE real-time messages.
type SystemRealTimeKind uint8

const (
	SystemRealTimeClock         SystemRealTimeKind = 0xF8
	SystemRealTimeUndefinedF9   SystemRealTimeKind = 0xF9
	SystemRealTimeStart         SystemRealTimeKind = 0xFA
	SystemRealTimeContinue      SystemRealTimeKind = 0xFB
	SystemRealTimeStop          SystemRealTimeKind = 0xFC
	SystemRealTimeUndefinedFD   SystemRealTimeKind = 0xFD
	SystemRealTimeActiveSensing SystemRealTimeKind = 0xFE
)

type SystemRealTimeEvent struct {
	EventBase
	Kind SystemRealTimeKind
	Data []byte
}

func (e *SystemRealTimeEvent) EventLabel() string {
	switch e.Kind {
	case SystemRealTimeClock:
		return "Timing Clock"
	case SystemRealTimeStart:
		return "Start"
	case SystemRealTimeContinue:
		return "Continue"
	case SystemRealTimeStop:
		return "Stop"
	case SystemRealTimeActiveSensing:
		return "Active Sensing"
	default:
		return "Undefined System Real-Time"
	}
}

// Meta events (status 0xFF, discriminated by metaType).

type SequenceNumberEvent struct {
	MetaBase
	Number uint16
	// FallbackLabel is set when the declared length was not 2; Number then
	// holds the track index rather than a decoded sequence number.
	FallbackLabel string
}

func (*SequenceNumberEvent) EventLabel() string { return "Sequence Number" }

// TextEventKind discriminates the nine text-payload meta types 0x01-0x09.
type TextEventKind uint8

const (
	TextEventText           TextEventKind = 0x01
	TextEventCopyright      TextEventKind = 0x02
	TextEventTrackName      TextEventKind = 0x03
	TextEventInstrumentName TextEventKind = 0x04
	TextEventLyrics         TextEventKind = 0x05
	TextEventMarker         TextEventKind = 0x06
	TextEventCuePoint       TextEventKind = 0x07
	TextEventProgramName    TextEventKind = 0x08
	TextEventDeviceName     TextEventKind = 0x09
)

type TextMetaEvent struct {
	MetaBase
	Kind TextEventKind
	Text string
}

func (e *TextMetaEvent) EventLabel() string {
	switch e.Kind {
	case TextEventText:
		return "Text"
	case TextEventCopyright:
		return "Copyright Notice"
	case TextEventTrackName:
		return "Sequence/Track Name"
	case TextEventInstrumentName:
		return "Instrument Name"
	case TextEventLyrics:
		return "Lyrics"
	case TextEventMarker:
		return "Marker"
	case TextEventCuePoint:
		return "Cue Point"
	case TextEventProgramName:
		return "Program Name"
	case TextEventDeviceName:
		return "Device Name"
	default:
		return "Text"
	}
}

type ChannelPrefixEvent struct {
	MetaBase
	Channel uint8
}

func (*ChannelPrefixEvent) EventLabel() string { return "MIDI Channel Prefix" }

type MidiPortEvent struct {
	MetaBase
	Port uint8
}

func (*MidiPortEvent) EventLabel() string { return "MIDI Port" }

type EndOfTrackEvent struct {
	MetaBase
}

func (*EndOfTrackEvent) EventLabel() string { return "End of Track" }

// MLiveTagKind labels the non-standard M-Live tag subtype (metaType 0x4B).
type MLiveTagKind uint8

const (
	MLiveTagGenre    MLiveTagKind = 1
	MLiveTagArtist   MLiveTagKind = 2
	MLiveTagComposer MLiveTagKind = 3
	MLiveTagDuration MLiveTagKind = 4
	MLiveTagBPM      MLiveTagKind = 5
)

type MLiveTagEvent struct {
	MetaBase
	Tag      uint8
	TagValue []byte
}

func (*MLiveTagEvent) EventLabel() string { return "M-Live Tag" }

// TagLabel returns the human name for e.Tag, or "Unknown Tag" if e.Tag is
// not one of the five documented M-Live subtypes.
func (e *MLiveTagEvent) TagLabel() string {
	switch MLiveTagKind(e.Tag) {
	case MLiveTagGenre:
		return "Genre"
	case MLiveTagArtist:
		return "Artist"
	case MLiveTagComposer:
		return "Composer"
	case MLiveTagDuration:
		return "Duration"
	case MLiveTagBPM:
		return "BPM"
	default:
		return "Unknown Tag"
	}
}

type SetTempoEvent struct {
	MetaBase
	Tempo uint32 // microseconds per quarter note
	BPM   uint32
}

func (*SetTempoEvent) EventLabel() string { return "Set Tempo" }

// FrameRate is the typed replacement for the SMPTE offset's floating-point
// frame rate field, per the design note against raw floats.
type FrameRate uint8

const (
	FrameRate24 FrameRate = iota
	FrameRate25
	FrameRate2997
	FrameRate30
)

// Float returns the nominal frames-per-second value, mostly useful for
// display.
func (f FrameRate) Float() float64 {
	switch f {
	case FrameRate24:
		return 24
	case FrameRate25:
		return 25
	case FrameRate2997:
		return 29.97
	case FrameRate30:
		return 30
	default:
		return 0
	}
}

func (f FrameRate) String() string {
	switch f {
	case FrameRate24:
		return "24"
	case FrameRate25:
		return "25"
	case FrameRate2997:
		return "29.97"
	case FrameRate30:
		return "30"
	default:
		return "unknown"
	}
}

type SMPTEOffsetEvent struct {
	MetaBase
	Hour      uint8
	Minute    uint8
	Second    uint8
	Frame     uint8
	SubFrame  uint8
	FrameRate FrameRate
}

func (*SMPTEOffsetEvent) EventLabel() string { return "SMPTE Offset" }

type TimeSignatureEvent struct {
	MetaBase
	Numerator         uint8
	Denominator       uint8
	Metronome         uint8
	ThirtySecondNotes uint8
}

func (*TimeSignatureEvent) EventLabel() string { return "Time Signature" }

// KeySignatureMode is Major or Minor, per byte 1 of a Key Signature meta
// event.
type KeySignatureMode uint8

const (
	KeyModeMajor KeySignatureMode = iota
	KeyModeMinor
)

func (m KeySignatureMode) String() string {
	if m == KeyModeMinor {
		return "Minor"
	}
	return "Major"
}

type KeySignatureEvent struct {
	MetaBase
	KeySignature int8 // -7..7, negative = flats, positive = sharps
	Mode         KeySignatureMode
	KeyName      string
}

func (*KeySignatureEvent) EventLabel() string { return "Key Signature" }

type SequencerSpecificEvent struct {
	MetaBase
	Data []byte
}

func (*SequencerSpecificEvent) EventLabel() string { return "Sequencer Specific" }

type UnknownMetaEvent struct {
	MetaBase
	MetaType byte
	Data     []byte
}

func (*UnknownMetaEvent) EventLabel() string { return "Unknown Meta Event" }

// Track is one MTrk chunk: the raw declared length (informational on
// parse, computed on encode) plus the decoded event sequence.
type Track struct {
	ChunkLength uint32
	Events      []Event
}

// File is the fully decoded representation of an SMF byte stream.
type File struct {
	Format       uint16
	TrackCount   uint16
	TimeDivision TimeDivision
	Tracks       []Track
}
