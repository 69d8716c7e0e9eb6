package smf

// ReadVLQ decodes a MIDI variable-length quantity starting at the cursor's
// current position: each byte contributes its low 7 bits to the result,
// most significant group first, and the high bit of every byte but the
// last is set to signal continuation. The standard caps a VLQ at four
// bytes (28 bits); this reader accepts that range. A truncated track ends
// the loop early rather than faulting: if the cursor runs out before a
// terminating byte appears, ReadVLQ returns whatever groups it had
// accumulated so far with a nil error; the caller's next bounded read
// then reports the underflow.
func ReadVLQ(c *ByteCursor) (uint32, error) {
	var value uint32
	for i := 0; i < 4; i++ {
		b, err := c.ReadU8()
		if err != nil {
			return value, nil
		}
		value = value<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return value, nil
}

// WriteVLQ encodes v as a MIDI variable-length quantity and appends it to
// c. Values up to 0x0FFFFFFF round-trip exactly; larger values are
// truncated to 28 bits by the encoding itself, the same ceiling the format
// imposes on delta-times and meta/sysex lengths.
func WriteVLQ(c *ByteCursor, v uint32) {
	v &= 0x0FFFFFFF
	var groups [4]byte
	n := 0
	groups[0] = byte(v & 0x7f)
	n = 1
	v >>= 7
	for v > 0 {
		groups[n] = byte(v & 0x7f)
		n++
		v >>= 7
	}
	for i := n - 1; i >= 0; i-- {
		b := groups[i]
		if i != 0 {
			b |= 0x80
		}
		c.WriteU8(b)
	}
}

// SizeVLQ returns the number of bytes WriteVLQ would emit for v, useful
// when an encoder needs to know a field's encoded width before it commits
// to a chunk layout.
func SizeVLQ(v uint32) int {
	v &= 0x0FFFFFFF
	n := 1
	v >>= 7
	for v > 0 {
		n++
		v >>= 7
	}
	return n
}
