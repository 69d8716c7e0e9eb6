package smf

// activeNote is what the NotePairer remembers about an unmatched Note-On:
// the tick it started at, and a stable index back into the track's events
// slice so the matching Note-Off can back-patch Length without holding a
// pointer that growth could invalidate.
type activeNote struct {
	startTime  uint32
	eventIndex int
}

// notePairer tracks active (unmatched) notes for a single track decode.
// It is owned by Decode for the lifetime of one track and discarded when
// the track ends, per the design note on shared mutable decode state.
type notePairer struct {
	active map[uint8]activeNote
}

func newNotePairer() *notePairer {
	return &notePairer{active: make(map[uint8]activeNote)}
}

func (p *notePairer) onNoteOn(note uint8, startTime uint32, eventIndex int) {
	p.active[note] = activeNote{startTime: startTime, eventIndex: eventIndex}
}

// Parse decodes a complete SMF byte stream into a File. Parsing is
// deliberately lenient on the wire: unknown meta types, non-standard meta
// lengths, and non-MTrk chunks mid-file are tolerated rather than faulted,
// recorded via debugf, and left for the validator to flag semantically.
func Parse(data []byte) (*File, error) {
	c := NewReadCursor(data)
	header, tag, err := DecodeHeader(c)
	if err != nil {
		return nil, err
	}
	if tag != "MThd" {
		debugf("parse: leading chunk tag %q is not MThd, proceeding anyway", tag)
	}

	file := &File{
		Format:       header.Format,
		TrackCount:   header.TrackCount,
		TimeDivision: header.TimeDivision,
	}

	for trackIndex := 0; c.Remaining() > 0; trackIndex++ {
		trackTag, err := c.ReadAsciiString(4)
		if err != nil {
			break
		}
		chunkLength, err := c.ReadU32BE()
		if err != nil {
			break
		}
		if trackTag != "MTrk" {
			debugf("parse: chunk %d has tag %q, not MTrk; stopping track scan", trackIndex, trackTag)
			break
		}
		track, err := decodeTrack(c, trackIndex)
		if err != nil {
			return nil, err
		}
		track.ChunkLength = chunkLength
		file.Tracks = append(file.Tracks, track)
	}
	return file, nil
}

func decodeTrack(c *ByteCursor, trackIndex int) (Track, error) {
	track := Track{}
	pairer := newNotePairer()
	var currentTime uint32
	var runningStatus byte
	haveStatus := false

	for c.Remaining() > 0 {
		delta, err := ReadVLQ(c)
		if err != nil {
			return track, err
		}
		currentTime += delta

		statusByte, err := c.ReadU8()
		if err != nil {
			return track, err
		}
		if statusByte&0x80 != 0 {
			runningStatus = statusByte
			haveStatus = true
		} else {
			if err := c.Rewind(1); err != nil {
				return track, err
			}
			if !haveStatus {
				debugf("parse: track %d: data byte with no running status at pos %d", trackIndex, c.Pos())
				return track, ErrNoRunningStatus
			}
			statusByte = runningStatus
		}

		event, isEndOfTrack, err := decodeEvent(c, statusByte, delta, currentTime, trackIndex, pairer, &track)
		if err != nil {
			return track, err
		}
		if event != nil {
			track.Events = append(track.Events, event)
		}
		if isEndOfTrack {
			break
		}
	}
	return track, nil
}

// decodeEvent decodes a single event whose status byte has already been
// consumed (or resolved via running status). It appends Note-On events to
// track.Events itself so it can hand the NotePairer a stable index; every
// other branch returns its event for the caller to append.
func decodeEvent(c *ByteCursor, statusByte byte, delta, currentTime uint32, trackIndex int, pairer *notePairer, track *Track) (Event, bool, error) {
	base := EventBase{DeltaTime: delta}

	switch {
	case statusByte >= 0x80 && statusByte <= 0xEF:
		kind := statusByte & 0xF0
		channel := statusByte & 0x0F
		switch kind {
		case 0x80:
			note, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			velocity, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			return resolveNoteOff(track, pairer, base, channel, note, velocity, currentTime), false, nil
		case 0x90:
			note, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			velocity, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			closeActiveNote(track, pairer, note, currentTime)
			ev := &NoteOnEvent{EventBase: base, Channel: channel, Note: note, Velocity: velocity}
			track.Events = append(track.Events, ev)
			pairer.onNoteOn(note, currentTime, len(track.Events)-1)
			return nil, false, nil
		case 0xA0:
			note, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			pressure, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			return &PolyAftertouchEvent{EventBase: base, Channel: channel, Note: note, Pressure: pressure}, false, nil
		case 0xB0:
			controller, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			value, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			return &ControlChangeEvent{EventBase: base, Channel: channel, Controller: controller, Value: value}, false, nil
		case 0xC0:
			program, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			return &ProgramChangeEvent{EventBase: base, Channel: channel, Program: program}, false, nil
		case 0xD0:
			pressure, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			return &ChannelPressureEvent{EventBase: base, Channel: channel, Pressure: pressure}, false, nil
		default: // 0xE0 PitchBend
			lsb, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			msb, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			value14 := uint16(msb)<<7 | uint16(lsb)
			return &PitchBendEvent{EventBase: base, Channel: channel, LSB: lsb, MSB: msb, Value14: value14}, false, nil
		}

	case statusByte == 0xF0:
		manufacturerID, err := c.ReadU8()
		if err != nil {
			return nil, false, err
		}
		var data []byte
		for {
			b, err := c.ReadU8()
			if err != nil {
				return nil, false, err
			}
			if b == 0xF7 {
				break
			}
			data = append(data, b)
		}
		return &SystemExclusiveEvent{EventBase: base, ManufacturerID: manufacturerID, Data: data}, false, nil

	case statusByte >= 0xF2 && statusByte <= 0xF6:
		length, err := ReadVLQ(c)
		if err != nil {
			return nil, false, err
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, false, err
		}
		return &SystemCommonEvent{EventBase: base, Kind: SystemCommonKind(statusByte), Data: data}, false, nil

	case statusByte == 0xF7:
		length, err := ReadVLQ(c)
		if err != nil {
			return nil, false, err
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, false, err
		}
		return &SystemCommonEvent{EventBase: base, Kind: SystemCommonEndOfExclusive, Data: data}, false, nil

	case statusByte >= 0xF8 && statusByte <= 0xFE:
		length, err := ReadVLQ(c)
		if err != nil {
			return nil, false, err
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, false, err
		}
		return &SystemRealTimeEvent{EventBase: base, Kind: SystemRealTimeKind(statusByte), Data: data}, false, nil

	case statusByte == 0xFF:
		return decodeMetaEvent(c, base, trackIndex)
	}

	debugf("parse: track %d: unrecognized status byte 0x%02X", trackIndex, statusByte)
	return &UnknownMetaEvent{MetaBase: MetaBase{EventBase: base}, MetaType: statusByte}, false, nil
}

func resolveNoteOff(track *Track, pairer *notePairer, base EventBase, channel, note, velocity uint8, currentTime uint32) Event {
	closeActiveNote(track, pairer, note, currentTime)
	return &NoteOffEvent{EventBase: base, Channel: channel, Note: note, Velocity: velocity}
}

// closeActiveNote back-patches the Length of the active Note-On for note,
// if one is pending, and removes it from the pairer. A real Note-Off and a
// velocity-0 Note-On both route through here; the decoder does not decide
// which one is "semantically" the close, it just records the elapsed time
// and leaves any further reconciliation to the validator.
func closeActiveNote(track *Track, pairer *notePairer, note uint8, currentTime uint32) {
	active, ok := pairer.active[note]
	if !ok {
		return
	}
	if on, isNoteOn := track.Events[active.eventIndex].(*NoteOnEvent); isNoteOn {
		on.Length = currentTime - active.startTime
	}
	delete(pairer.active, note)
}

func decodeMetaEvent(c *ByteCursor, base EventBase, trackIndex int) (Event, bool, error) {
	metaType, err := c.ReadU8()
	if err != nil {
		return nil, false, err
	}
	declaredLength, err := ReadVLQ(c)
	if err != nil {
		return nil, false, err
	}
	meta := MetaBase{EventBase: base, DeclaredLength: declaredLength}

	switch metaType {
	case 0x00:
		if declaredLength != 2 {
			debugf("parse: track %d: Sequence Number meta has length %d, expected 2", trackIndex, declaredLength)
			if err := c.Advance(1); err != nil {
				return nil, false, err
			}
			return &SequenceNumberEvent{MetaBase: meta, Number: uint16(trackIndex), FallbackLabel: "Next Track Index"}, false, nil
		}
		hi, err := c.ReadU8()
		if err != nil {
			return nil, false, err
		}
		lo, err := c.ReadU8()
		if err != nil {
			return nil, false, err
		}
		return &SequenceNumberEvent{MetaBase: meta, Number: uint16(hi)<<8 | uint16(lo)}, false, nil

	case 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09:
		text, err := c.ReadUtf8Zstring(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		return &TextMetaEvent{MetaBase: meta, Kind: TextEventKind(metaType), Text: text}, false, nil

	case 0x20:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		var channel uint8
		if len(data) > 0 {
			channel = data[0]
		}
		return &ChannelPrefixEvent{MetaBase: meta, Channel: channel}, false, nil

	case 0x21:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		var port uint8
		if len(data) > 0 {
			port = data[0]
		}
		return &MidiPortEvent{MetaBase: meta, Port: port}, false, nil

	case 0x2F:
		if declaredLength != 0 {
			debugf("parse: track %d: End of Track meta has nonzero length %d", trackIndex, declaredLength)
		}
		if err := c.Advance(int(declaredLength)); err != nil {
			return nil, false, err
		}
		return &EndOfTrackEvent{MetaBase: meta}, true, nil

	case 0x4B:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		var tag uint8
		var tagValue []byte
		if len(data) > 0 {
			tag = data[0]
			tagValue = data[1:]
		}
		return &MLiveTagEvent{MetaBase: meta, Tag: tag, TagValue: tagValue}, false, nil

	case 0x51:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		var tempo uint32
		if len(data) >= 3 {
			tempo = uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		}
		bpm := tempoToBPM(tempo)
		return &SetTempoEvent{MetaBase: meta, Tempo: tempo, BPM: bpm}, false, nil

	case 0x54:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		if len(data) < 5 {
			return &SMPTEOffsetEvent{MetaBase: meta}, false, nil
		}
		hourByte := data[0]
		return &SMPTEOffsetEvent{
			MetaBase:  meta,
			Hour:      hourByte & 0x1F,
			Minute:    data[1],
			Second:    data[2],
			Frame:     data[3],
			SubFrame:  data[4],
			FrameRate: frameRateFromBits(hourByte >> 5),
		}, false, nil

	case 0x58:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		if len(data) < 4 {
			return &TimeSignatureEvent{MetaBase: meta}, false, nil
		}
		return &TimeSignatureEvent{
			MetaBase:          meta,
			Numerator:         data[0],
			Denominator:       data[1],
			Metronome:         data[2],
			ThirtySecondNotes: data[3],
		}, false, nil

	case 0x59:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		if len(data) < 2 {
			return &KeySignatureEvent{MetaBase: meta}, false, nil
		}
		sf := int8(data[0])
		mode := KeySignatureMode(data[1])
		return &KeySignatureEvent{
			MetaBase:     meta,
			KeySignature: sf,
			Mode:         mode,
			KeyName:      keySignatureName(sf),
		}, false, nil

	case 0x7F:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		return &SequencerSpecificEvent{MetaBase: meta, Data: data}, false, nil

	default:
		data, err := c.ReadBytes(int(declaredLength))
		if err != nil {
			return nil, false, err
		}
		debugf("parse: track %d: unknown meta type 0x%02X, length %d", trackIndex, metaType, declaredLength)
		return &UnknownMetaEvent{MetaBase: meta, MetaType: metaType, Data: data}, false, nil
	}
}

func tempoToBPM(tempo uint32) uint32 {
	if tempo == 0 {
		return 0
	}
	return uint32((60000000.0/float64(tempo))+0.5)
}
