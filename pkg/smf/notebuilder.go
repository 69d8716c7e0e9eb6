package smf

import (
	"math"
	"sort"
)

// defaultNoteMap is the scientific-pitch-notation table noteToMidi uses
// when the caller does not supply one. It follows standard enharmonic
// equivalence (E# == F, B# == C).
var defaultNoteMap = map[string]uint8{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D": 2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"E#": 5, "F": 5,
	"F#": 6, "Gb": 6,
	"G": 7,
	"G#": 8, "Ab": 8,
	"A": 9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

var defaultNoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteSpec is one note in a NoteBuilder track: a MIDI note number, a
// velocity, and a duration/gap in ticks.
type NoteSpec struct {
	MidiNote uint8
	Velocity uint8
	Length   uint32 // duration in ticks, used to size the Note-Off
	Ticks    uint32 // advance applied to currentTime after this note
}

// TrackSpec is one track's worth of input to ConvertToMidi.
type TrackSpec struct {
	Notes           []NoteSpec
	MetaStringEvents map[byte]string
}

// BuildSpec is the input to ConvertToMidi.
type BuildSpec struct {
	Ppq       uint16
	BPM       uint32 // 0 means no Set-Tempo event is emitted
	Tracks    []TrackSpec
	SkipNotes map[uint8]bool
}

type timedEvent struct {
	absolute uint32
	event    Event
}

// ConvertToMidi assembles a File from a list of notes per track: each
// track's notes advance a fractional quarter-note counter, producing
// paired Note-On/Note-Off events at absolute tick positions that are
// converted to deltas once the track's events are time-sorted.
func ConvertToMidi(spec BuildSpec) *File {
	ppq := spec.Ppq
	if ppq == 0 {
		ppq = 480
	}

	file := &File{
		Format:       1,
		TimeDivision: Ppq(ppq),
	}

	for _, trackSpec := range spec.Tracks {
		var timed []timedEvent

		if spec.BPM != 0 {
			timed = append(timed, timedEvent{absolute: 0, event: tempoEvent(spec.BPM)})
		}
		for metaType, text := range trackSpec.MetaStringEvents {
			timed = append(timed, timedEvent{absolute: 0, event: metaStringEvent(metaType, text)})
		}

		var currentQuarters float64
		for _, note := range trackSpec.Notes {
			if spec.SkipNotes[note.MidiNote] {
				currentQuarters += float64(note.Ticks) / float64(ppq)
				continue
			}
			startTick := uint32(currentQuarters * float64(ppq))
			endTick := startTick + uint32(math.Ceil(float64(note.Length)))
			timed = append(timed, timedEvent{absolute: startTick, event: &NoteOnEvent{
				Channel: 0, Note: note.MidiNote, Velocity: note.Velocity, Length: endTick - startTick,
			}})
			timed = append(timed, timedEvent{absolute: endTick, event: &NoteOffEvent{
				Channel: 0, Note: note.MidiNote, Velocity: 0,
			}})
			currentQuarters += float64(note.Ticks) / float64(ppq)
		}

		lastTick := uint32(0)
		if len(timed) > 0 {
			lastTick = timed[len(timed)-1].absolute
		}
		timed = append(timed, timedEvent{absolute: lastTick, event: endOfTrackEvent()})

		sort.SliceStable(timed, func(i, j int) bool { return timed[i].absolute < timed[j].absolute })

		track := Track{}
		var lastAbsolute uint32
		for _, te := range timed {
			delta := te.absolute - lastAbsolute
			lastAbsolute = te.absolute
			te.event.SetDelta(delta)
			track.Events = append(track.Events, te.event)
		}
		// ChunkLength is the size the track body encodes to, as Encode
		// would back-patch it.
		body := NewWriteCursor()
		for _, e := range track.Events {
			_ = encodeEvent(body, e)
		}
		track.ChunkLength = uint32(len(body.Bytes()))
		file.Tracks = append(file.Tracks, track)
	}

	file.TrackCount = uint16(len(file.Tracks))
	return file
}

// tempoEvent builds a Set-Tempo meta event for bpm, per
// tempo = 60_000_000 / bpm, truncated to an integer.
func tempoEvent(bpm uint32) *SetTempoEvent {
	tempo := uint32(60000000 / bpm)
	return &SetTempoEvent{MetaBase: MetaBase{DeclaredLength: 3}, Tempo: tempo, BPM: bpm}
}

// metaStringEvent builds a text meta event of the given meta type. Its
// declared length tracks the encoded text so a round trip through Validate
// never flags an event this package itself produced.
func metaStringEvent(metaType byte, text string) *TextMetaEvent {
	return &TextMetaEvent{MetaBase: MetaBase{DeclaredLength: uint32(len(text))}, Kind: TextEventKind(metaType), Text: text}
}

// endOfTrackEvent builds a zero-length End-of-Track meta event.
func endOfTrackEvent() *EndOfTrackEvent {
	return &EndOfTrackEvent{}
}

// noteToMidi parses name as scientific pitch notation (e.g. "C4", "F#3")
// and returns its MIDI note number. octaveOffset shifts which octave maps
// to MIDI octave 0; the package default of 2 makes "C4" == 72. noteMap
// overrides the default enharmonic table when non-nil.
func noteToMidi(name string, octaveOffset int, noteMap map[string]uint8) (uint8, error) {
	if noteMap == nil {
		noteMap = defaultNoteMap
	}
	letterEnd := 1
	for letterEnd < len(name) && (name[letterEnd] == '#' || name[letterEnd] == 'b') {
		letterEnd++
	}
	if letterEnd > len(name) {
		return 0, ErrInvalidNoteName
	}
	letter := name[:letterEnd]
	octaveStr := name[letterEnd:]
	if octaveStr == "" {
		return 0, ErrInvalidNoteName
	}
	pitchClass, ok := noteMap[letter]
	if !ok {
		return 0, ErrInvalidNoteName
	}
	octave, err := parseSignedInt(octaveStr)
	if err != nil {
		return 0, ErrInvalidNoteName
	}
	value := int(pitchClass) + (octave+octaveOffset)*12
	if value < 0 || value > 127 {
		return 0, ErrMidiValueRange
	}
	return uint8(value), nil
}

// midiToNote renders a MIDI note number as scientific pitch notation using
// names (defaulting to defaultNoteNames) and octaveOffset (defaulting to
// 2, noteToMidi's inverse).
func midiToNote(value uint8, octaveOffset int, names []string) (string, error) {
	if value > 127 {
		return "", ErrMidiValueRange
	}
	if names == nil {
		names = defaultNoteNames
	}
	octave := int(value)/12 - octaveOffset
	pitchClass := int(value) % 12
	return names[pitchClass] + formatSignedInt(octave), nil
}

func parseSignedInt(s string) (int, error) {
	neg := false
	i := 0
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		i = 1
	}
	if i >= len(s) {
		return 0, ErrInvalidNoteName
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidNoteName
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

func formatSignedInt(n int) string {
	if n >= 0 {
		return itoa(n)
	}
	return "-" + itoa(-n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// UsedNote pairs a MIDI note number with its rendered name, as returned by
// UsedNotes.
type UsedNote struct {
	NoteNumber uint8
	NoteName   string
}

// UsedNotes returns the sorted, deduplicated set of note numbers that
// appear in f as Note-On events with velocity greater than zero.
func UsedNotes(f *File) []UsedNote {
	seen := make(map[uint8]bool)
	for _, track := range f.Tracks {
		for _, event := range track.Events {
			if on, ok := event.(*NoteOnEvent); ok && on.Velocity > 0 {
				seen[on.Note] = true
			}
		}
	}
	notes := make([]uint8, 0, len(seen))
	for note := range seen {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })

	out := make([]UsedNote, 0, len(notes))
	for _, note := range notes {
		name, _ := midiToNote(note, 2, nil)
		out = append(out, UsedNote{NoteNumber: note, NoteName: name})
	}
	return out
}

// NoteToMidi is the exported form of noteToMidi using package defaults.
func NoteToMidi(name string) (uint8, error) { return noteToMidi(name, 2, nil) }

// MidiToNote is the exported form of midiToNote using package defaults.
func MidiToNote(value uint8) (string, error) { return midiToNote(value, 2, nil) }

// TempoEvent is the exported form of tempoEvent.
func TempoEvent(bpm uint32) *SetTempoEvent { return tempoEvent(bpm) }

// MetaStringEvent is the exported form of metaStringEvent.
func MetaStringEvent(metaType byte, text string) *TextMetaEvent { return metaStringEvent(metaType, text) }

// EndOfTrackEventBuilder is the exported form of endOfTrackEvent.
func EndOfTrackEventBuilder() *EndOfTrackEvent { return endOfTrackEvent() }
