package smf

import "encoding/binary"

// ByteCursor is a random-access byte buffer with an absolute cursor. A
// reading cursor wraps a fixed slice and every bounded read fails with an
// UnderflowError once the cursor runs past the end. A writing cursor owns
// its own expandable byte vector and grows on demand; the "seeker" is
// in-process, so Seek is infallible and never needs the caller to
// pre-zero a gap.
type ByteCursor struct {
	buf     []byte
	pos     int
	writing bool
}

// NewReadCursor wraps data for sequential, bounded reads. The cursor does
// not copy data.
func NewReadCursor(data []byte) *ByteCursor {
	return &ByteCursor{buf: data}
}

// NewWriteCursor returns a cursor ready to accumulate written bytes.
func NewWriteCursor() *ByteCursor {
	return &ByteCursor{buf: make([]byte, 0, 256), writing: true}
}

// Bytes returns the cursor's full backing buffer (the whole written
// document for a write cursor, or the original input for a read cursor).
func (c *ByteCursor) Bytes() []byte { return c.buf }

// Pos returns the current absolute cursor position.
func (c *ByteCursor) Pos() int { return c.pos }

// Remaining returns the number of bytes between the cursor and the end of
// the buffer. It is never negative.
func (c *ByteCursor) Remaining() int {
	if c.pos >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.pos
}

// Seek moves the absolute cursor to pos. It is infallible: a writing
// cursor may seek anywhere (later writes will grow the buffer as needed),
// and a reading cursor may seek anywhere within the slice it wraps — a
// seek past the end simply makes Remaining report zero.
func (c *ByteCursor) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	c.pos = pos
}

// Advance moves the cursor forward by n bytes without reading.
func (c *ByteCursor) Advance(n int) error {
	if !c.writing && n > c.Remaining() {
		return underflow(n, c.Remaining())
	}
	c.pos += n
	return nil
}

// Rewind moves the cursor backward by n bytes.
func (c *ByteCursor) Rewind(n int) error {
	if n > c.pos {
		return underflow(n, c.pos)
	}
	c.pos -= n
	return nil
}

func (c *ByteCursor) ensureReadable(n int) error {
	if n > c.Remaining() {
		return underflow(n, c.Remaining())
	}
	return nil
}

// ReadU8 reads a single byte.
func (c *ByteCursor) ReadU8() (byte, error) {
	if err := c.ensureReadable(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadU16BE reads a big-endian 16-bit unsigned integer.
func (c *ByteCursor) ReadU16BE() (uint16, error) {
	if err := c.ensureReadable(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// ReadU16LE reads a little-endian 16-bit unsigned integer.
func (c *ByteCursor) ReadU16LE() (uint16, error) {
	if err := c.ensureReadable(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// ReadU24BE reads a big-endian 24-bit unsigned integer into a uint32.
func (c *ByteCursor) ReadU24BE() (uint32, error) {
	if err := c.ensureReadable(3); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos])<<16 | uint32(c.buf[c.pos+1])<<8 | uint32(c.buf[c.pos+2])
	c.pos += 3
	return v, nil
}

// ReadU32BE reads a big-endian 32-bit unsigned integer.
func (c *ByteCursor) ReadU32BE() (uint32, error) {
	if err := c.ensureReadable(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// ReadU32LE reads a little-endian 32-bit unsigned integer.
func (c *ByteCursor) ReadU32LE() (uint32, error) {
	if err := c.ensureReadable(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// ReadBytes reads and returns a copy of the next n bytes.
func (c *ByteCursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	if err := c.ensureReadable(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// ReadAsciiString reads n bytes and returns them verbatim as a string.
func (c *ByteCursor) ReadAsciiString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadUtf8Zstring consumes exactly n bytes and returns the text before the
// first NUL byte among them (all n bytes when there is no NUL).
func (c *ByteCursor) ReadUtf8Zstring(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	for i, v := range b {
		if v == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

func (c *ByteCursor) growTo(end int) {
	if end <= len(c.buf) {
		return
	}
	grown := make([]byte, end)
	copy(grown, c.buf)
	c.buf = grown
}

func (c *ByteCursor) writeAt(p []byte) {
	end := c.pos + len(p)
	c.growTo(end)
	copy(c.buf[c.pos:end], p)
	c.pos = end
}

// WriteU8 writes a single byte.
func (c *ByteCursor) WriteU8(v byte) { c.writeAt([]byte{v}) }

// WriteU16BE writes a big-endian 16-bit unsigned integer.
func (c *ByteCursor) WriteU16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	c.writeAt(b[:])
}

// WriteU32BE writes a big-endian 32-bit unsigned integer.
func (c *ByteCursor) WriteU32BE(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	c.writeAt(b[:])
}

// WriteBytes writes p verbatim.
func (c *ByteCursor) WriteBytes(p []byte) { c.writeAt(p) }

// WriteAsciiString writes s verbatim (no length prefix, no terminator).
func (c *ByteCursor) WriteAsciiString(s string) { c.writeAt([]byte(s)) }
