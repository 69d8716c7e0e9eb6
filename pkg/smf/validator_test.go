package smf

import (
	"strings"
	"testing"
)

func TestValidateMissingEndOfTrackAndUnmatchedNote(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 4, Events: []Event{
				&NoteOnEvent{Channel: 0, Note: 60, Velocity: 100},
			}},
		},
	}

	issues := Validate(f)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}
	var sawEndOfTrack, sawUnmatched bool
	for _, issue := range issues {
		if strings.Contains(issue, "End-of-Track") {
			sawEndOfTrack = true
		}
		if strings.Contains(issue, "unmatched Note On for note 60") {
			sawUnmatched = true
		}
	}
	if !sawEndOfTrack || !sawUnmatched {
		t.Fatalf("issues missing expected content: %v", issues)
	}
}

func TestValidateCleanFileHasNoIssues(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 10, Events: []Event{
				&NoteOnEvent{Channel: 0, Note: 60, Velocity: 100},
				&NoteOffEvent{Channel: 0, Note: 60, Velocity: 0},
				&EndOfTrackEvent{},
			}},
		},
	}
	if issues := Validate(f); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateVelocityZeroNoteOnClosesActiveNote(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 10, Events: []Event{
				&NoteOnEvent{Channel: 0, Note: 60, Velocity: 100},
				&NoteOnEvent{Channel: 0, Note: 60, Velocity: 0, Length: 0},
				&EndOfTrackEvent{},
			}},
		},
	}
	if issues := Validate(f); len(issues) != 0 {
		t.Fatalf("expected a velocity-0 Note-On to close out the active Note-On with no issues, got %v", issues)
	}
}

func TestValidateVelocityZeroNoteOnWithoutActiveNoteOn(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 10, Events: []Event{
				&NoteOnEvent{Channel: 0, Note: 60, Velocity: 0},
				&EndOfTrackEvent{},
			}},
		},
	}
	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "Note-Off without active Note-On") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unmatched velocity-0 Note-On to be flagged, got %v", issues)
	}
}

func TestValidateDeclaredMetaLengthMismatch(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 10, Events: []Event{
				&SetTempoEvent{MetaBase: MetaBase{DeclaredLength: 5}, Tempo: 500000, BPM: 120},
				&EndOfTrackEvent{},
			}},
		},
	}
	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "Set Tempo meta declared length 5, expected 3") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Set Tempo declared-length mismatch issue, got %v", issues)
	}
}

func TestValidateDeclaredMetaLengthMatchHasNoIssue(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 10, Events: []Event{
				&SetTempoEvent{MetaBase: MetaBase{DeclaredLength: 3}, Tempo: 500000, BPM: 120},
				&SequenceNumberEvent{MetaBase: MetaBase{DeclaredLength: 0}, FallbackLabel: "Next Track Index"},
				&EndOfTrackEvent{},
			}},
		},
	}
	issues := Validate(f)
	for _, issue := range issues {
		if strings.Contains(issue, "declared length") {
			t.Fatalf("did not expect a declared-length issue for a standard-length meta event, got %v", issues)
		}
	}
}

func TestValidateTrackCountMismatch(t *testing.T) {
	f := &File{Format: 0, TrackCount: 2, Tracks: []Track{{}}}
	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "declares 2 tracks") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected track count mismatch issue, got %v", issues)
	}
}

func TestValidateNoteOffWithoutActiveNoteOn(t *testing.T) {
	f := &File{
		Format:     0,
		TrackCount: 1,
		Tracks: []Track{
			{ChunkLength: 4, Events: []Event{
				&NoteOffEvent{Channel: 0, Note: 72, Velocity: 0},
				&EndOfTrackEvent{},
			}},
		},
	}
	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "Note-Off without active Note-On for note 72") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Note-Off-without-Note-On issue, got %v", issues)
	}
}
