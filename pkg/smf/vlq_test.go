package smf

import "testing"

func TestWriteVLQEdgeCases(t *testing.T) {
	cases := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tc := range cases {
		c := NewWriteCursor()
		WriteVLQ(c, tc.value)
		got := c.Bytes()
		if !bytesEqual(got, tc.want) {
			t.Errorf("WriteVLQ(%d) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestVLQRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 63, 64, 127, 128, 8191, 8192, 0x1FFFFF, 0x200000, 0x0FFFFFFF}
	for _, v := range values {
		c := NewWriteCursor()
		WriteVLQ(c, v)
		readC := NewReadCursor(c.Bytes())
		got, err := ReadVLQ(readC)
		if err != nil {
			t.Fatalf("ReadVLQ(%d) error: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
		if readC.Pos() != SizeVLQ(v) {
			t.Errorf("round trip %d: consumed %d bytes, SizeVLQ reports %d", v, readC.Pos(), SizeVLQ(v))
		}
	}
}

func TestReadVLQTruncatedReturnsAccumulatedValue(t *testing.T) {
	c := NewReadCursor([]byte{0x81, 0x81})
	got, err := ReadVLQ(c)
	if err != nil {
		t.Fatalf("ReadVLQ on truncated input returned an error: %v", err)
	}
	want := uint32(0x81&0x7f)<<7 | uint32(0x81&0x7f)
	if got != want {
		t.Errorf("ReadVLQ on truncated input = %d, want accumulated %d", got, want)
	}
	if c.Remaining() != 0 {
		t.Errorf("expected the cursor to be fully consumed, %d bytes remain", c.Remaining())
	}
}

func bytesEqual(a, b []byte) bool {
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
