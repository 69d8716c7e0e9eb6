package smf

// Encode serializes f into a complete SMF byte stream. The encoder does
// not perform running-status compression: every event writes its own
// status byte, per the design note that running status is pure parser
// state and not part of the model.
func Encode(f *File) ([]byte, error) {
	c := NewWriteCursor()
	EncodeHeader(c, Header{Format: f.Format, TrackCount: f.TrackCount, TimeDivision: f.TimeDivision})
	for i := range f.Tracks {
		if err := encodeTrack(c, &f.Tracks[i]); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// encodeTrack writes one MTrk chunk, reserving the 4-byte length field and
// back-patching it once the body is known: a per-chunk reserve/patch pair,
// since SMF carries one length field per track.
func encodeTrack(c *ByteCursor, track *Track) error {
	c.WriteAsciiString("MTrk")
	lengthFieldPos := c.Pos()
	c.WriteU32BE(0) // placeholder, patched below
	bodyStart := c.Pos()

	for _, event := range track.Events {
		if err := encodeEvent(c, event); err != nil {
			return err
		}
	}

	bodyEnd := c.Pos()
	track.ChunkLength = uint32(bodyEnd - bodyStart)
	c.Seek(lengthFieldPos)
	c.WriteU32BE(track.ChunkLength)
	c.Seek(bodyEnd)
	return nil
}

func encodeEvent(c *ByteCursor, event Event) error {
	WriteVLQ(c, event.Delta())

	switch e := event.(type) {
	case *NoteOffEvent:
		c.WriteU8(0x80 | e.Channel&0x0F)
		c.WriteU8(e.Note)
		c.WriteU8(e.Velocity)

	case *NoteOnEvent:
		c.WriteU8(0x90 | e.Channel&0x0F)
		c.WriteU8(e.Note)
		c.WriteU8(e.Velocity)

	case *PolyAftertouchEvent:
		c.WriteU8(0xA0 | e.Channel&0x0F)
		c.WriteU8(e.Note)
		c.WriteU8(e.Pressure)

	case *ControlChangeEvent:
		c.WriteU8(0xB0 | e.Channel&0x0F)
		c.WriteU8(e.Controller)
		c.WriteU8(e.Value)

	case *ProgramChangeEvent:
		c.WriteU8(0xC0 | e.Channel&0x0F)
		c.WriteU8(e.Program)

	case *ChannelPressureEvent:
		c.WriteU8(0xD0 | e.Channel&0x0F)
		c.WriteU8(e.Pressure)

	case *PitchBendEvent:
		c.WriteU8(0xE0 | e.Channel&0x0F)
		c.WriteU8(e.LSB)
		c.WriteU8(e.MSB)

	case *SystemExclusiveEvent:
		c.WriteU8(0xF0)
		c.WriteU8(e.ManufacturerID)
		c.WriteBytes(e.Data)
		c.WriteU8(0xF7)

	case *SystemCommonEvent:
		c.WriteU8(byte(e.Kind))
		WriteVLQ(c, uint32(len(e.Data)))
		c.WriteBytes(e.Data)

	case *SystemRealTimeEvent:
		c.WriteU8(byte(e.Kind))
		WriteVLQ(c, uint32(len(e.Data)))
		c.WriteBytes(e.Data)

	case *SequenceNumberEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x00)
		WriteVLQ(c, 2)
		c.WriteU8(byte(e.Number >> 8))
		c.WriteU8(byte(e.Number))

	case *TextMetaEvent:
		c.WriteU8(0xFF)
		c.WriteU8(byte(e.Kind))
		WriteVLQ(c, uint32(len(e.Text)))
		c.WriteAsciiString(e.Text)

	case *ChannelPrefixEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x20)
		WriteVLQ(c, 1)
		c.WriteU8(e.Channel)

	case *MidiPortEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x21)
		WriteVLQ(c, 1)
		c.WriteU8(e.Port)

	case *EndOfTrackEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x2F)
		WriteVLQ(c, 0)

	case *MLiveTagEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x4B)
		WriteVLQ(c, uint32(1+len(e.TagValue)))
		c.WriteU8(e.Tag)
		c.WriteBytes(e.TagValue)

	case *SetTempoEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x51)
		WriteVLQ(c, 3)
		c.WriteU8(byte(e.Tempo >> 16))
		c.WriteU8(byte(e.Tempo >> 8))
		c.WriteU8(byte(e.Tempo))

	case *SMPTEOffsetEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x54)
		WriteVLQ(c, 5)
		c.WriteU8(frameRateBits(e.FrameRate)<<5 | e.Hour&0x1F)
		c.WriteU8(e.Minute)
		c.WriteU8(e.Second)
		c.WriteU8(e.Frame)
		c.WriteU8(e.SubFrame)

	case *TimeSignatureEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x58)
		WriteVLQ(c, 4)
		c.WriteU8(e.Numerator)
		c.WriteU8(e.Denominator)
		c.WriteU8(e.Metronome)
		c.WriteU8(e.ThirtySecondNotes)

	case *KeySignatureEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x59)
		WriteVLQ(c, 2)
		c.WriteU8(byte(e.KeySignature))
		c.WriteU8(byte(e.Mode))

	case *SequencerSpecificEvent:
		c.WriteU8(0xFF)
		c.WriteU8(0x7F)
		WriteVLQ(c, uint32(len(e.Data)))
		c.WriteBytes(e.Data)

	case *UnknownMetaEvent:
		c.WriteU8(0xFF)
		c.WriteU8(e.MetaType)
		WriteVLQ(c, uint32(len(e.Data)))
		c.WriteBytes(e.Data)

	default:
		return missingField(event.EventLabel(), "encoder: unrecognized event type")
	}
	return nil
}
