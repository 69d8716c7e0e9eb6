package smf

import "fmt"

// Validate runs a single semantic pass over f and returns an ordered list
// of human-readable issue strings. Validation never fails the call: a
// well-formed-but-unconventional file simply accumulates issues, keeping
// semantic checking separate from the decoder's structural failures.
func Validate(f *File) []string {
	var issues []string

	if f.Format > 2 {
		issues = append(issues, fmt.Sprintf("unsupported format %d, expected 0, 1, or 2", f.Format))
	}
	if int(f.TrackCount) != len(f.Tracks) {
		issues = append(issues, fmt.Sprintf("header declares %d tracks but file has %d", f.TrackCount, len(f.Tracks)))
	}

	for i := range f.Tracks {
		issues = append(issues, validateTrack(i, &f.Tracks[i])...)
	}
	return issues
}

func validateTrack(index int, track *Track) []string {
	var issues []string

	if track.ChunkLength == 0 && len(track.Events) != 0 {
		issues = append(issues, fmt.Sprintf("track %d: declared chunk length 0 but has %d events", index, len(track.Events)))
	}
	if track.ChunkLength != 0 && len(track.Events) == 0 {
		issues = append(issues, fmt.Sprintf("track %d: declared nonzero chunk length but has no events", index))
	}

	activeCounts := make(map[uint8]int)
	sawEndOfTrack := 0

	for _, event := range track.Events {
		switch e := event.(type) {
		case *NoteOnEvent:
			if e.Velocity > 0 {
				activeCounts[e.Note]++
			} else {
				if activeCounts[e.Note] <= 0 {
					issues = append(issues, fmt.Sprintf("track %d: Note-Off without active Note-On for note %d", index, e.Note))
				} else {
					activeCounts[e.Note]--
				}
			}
		case *NoteOffEvent:
			if activeCounts[e.Note] <= 0 {
				issues = append(issues, fmt.Sprintf("track %d: Note-Off without active Note-On for note %d", index, e.Note))
			} else {
				activeCounts[e.Note]--
			}
		case *EndOfTrackEvent:
			sawEndOfTrack++
			issues = append(issues, checkDeclaredMetaLength(index, "End of Track", e.DeclaredLength, 0)...)
		case *SequenceNumberEvent:
			if e.FallbackLabel != "" {
				issues = append(issues, fmt.Sprintf("track %d: Sequence Number meta had non-standard length, fell back to %s", index, e.FallbackLabel))
			}
			issues = append(issues, checkDeclaredMetaLength(index, "Sequence Number", e.DeclaredLength, 0, 2)...)
		case *SetTempoEvent:
			issues = append(issues, checkDeclaredMetaLength(index, "Set Tempo", e.DeclaredLength, 3)...)
		case *SMPTEOffsetEvent:
			issues = append(issues, checkDeclaredMetaLength(index, "SMPTE Offset", e.DeclaredLength, 5)...)
		case *TimeSignatureEvent:
			issues = append(issues, checkDeclaredMetaLength(index, "Time Signature", e.DeclaredLength, 4)...)
		case *KeySignatureEvent:
			issues = append(issues, checkDeclaredMetaLength(index, "Key Signature", e.DeclaredLength, 2)...)
		}
	}

	for note, count := range activeCounts {
		if count > 0 {
			issues = append(issues, fmt.Sprintf("track %d: unmatched Note On for note %d", index, note))
		}
	}

	if sawEndOfTrack == 0 {
		issues = append(issues, fmt.Sprintf("track %d: missing End-of-Track meta event", index))
	} else if sawEndOfTrack > 1 {
		issues = append(issues, fmt.Sprintf("track %d: %d End-of-Track meta events, expected exactly one", index, sawEndOfTrack))
	}

	return issues
}

// checkDeclaredMetaLength flags a meta event whose wire-declared payload
// length doesn't match any of the fixed sizes the format mandates for its
// type. The decoder tolerates the mismatch and decodes leniently; this is
// where the mismatch becomes a reported issue instead of a silent pass.
func checkDeclaredMetaLength(index int, name string, declared uint32, want ...uint32) []string {
	for _, w := range want {
		if declared == w {
			return nil
		}
	}
	return []string{fmt.Sprintf("track %d: %s meta declared length %d, expected %s", index, name, declared, wantLengths(want))}
}

func wantLengths(want []uint32) string {
	if len(want) == 1 {
		return fmt.Sprintf("%d", want[0])
	}
	s := ""
	for i, w := range want {
		if i > 0 {
			s += " or "
		}
		s += fmt.Sprintf("%d", w)
	}
	return s
}
