package wire

import (
	"encoding/binary"
	"math"

	"github.com/alkoleft/racclient/racerr"
)

// Cursor decodes protocol records from an in-memory byte slice. Every
// Take* method advances the cursor and returns racerr.Truncated when
// fewer bytes remain than the field requires; no method panics on
// malformed input.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential decoding starting at offset 0.
func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// Remaining reports how many bytes are left to decode.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Pos reports the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) take(n int, field string) ([]byte, error) {
	if c.Remaining() < n {
		return nil, racerr.Truncated(field)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// TakeBytes reads exactly n raw bytes.
func (c *Cursor) TakeBytes(n int) ([]byte, error) { return c.take(n, "bytes") }

// TakeU8 reads a single byte.
func (c *Cursor) TakeU8() (uint8, error) {
	b, err := c.take(1, "u8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// TakeBool reads a single byte, nonzero meaning true.
func (c *Cursor) TakeBool() (bool, error) {
	b, err := c.TakeU8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// TakeU16BE reads a big-endian 16-bit integer.
func (c *Cursor) TakeU16BE() (uint16, error) {
	b, err := c.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// TakeU16LE reads a little-endian 16-bit integer.
func (c *Cursor) TakeU16LE() (uint16, error) {
	b, err := c.take(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// TakeU32BE reads a big-endian 32-bit integer.
func (c *Cursor) TakeU32BE() (uint32, error) {
	b, err := c.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// TakeU32LE reads a little-endian 32-bit integer.
func (c *Cursor) TakeU32LE() (uint32, error) {
	b, err := c.take(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// TakeU64BE reads a big-endian 64-bit integer.
func (c *Cursor) TakeU64BE() (uint64, error) {
	b, err := c.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// TakeU64LE reads a little-endian 64-bit integer.
func (c *Cursor) TakeU64LE() (uint64, error) {
	b, err := c.take(8, "u64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// TakeF64BE reads a big-endian IEEE-754 double.
func (c *Cursor) TakeF64BE() (float64, error) {
	v, err := c.TakeU64BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// TakeI32BEOpt reads a presence-tagged optional 32-bit big-endian
// integer: a single 0x01 byte means present (followed by the value);
// any other tag byte means absent and the tag byte itself is treated
// as having already consumed the field.
func (c *Cursor) TakeI32BEOpt() (int32, bool, error) {
	tag, err := c.TakeU8()
	if err != nil {
		return 0, false, err
	}
	if tag != 0x01 {
		return 0, false, nil
	}
	v, err := c.TakeU32BE()
	if err != nil {
		return 0, false, err
	}
	return int32(v), true, nil
}

// TakeIdentifier reads a 16-byte opaque identifier.
func (c *Cursor) TakeIdentifier() (Identifier, error) {
	b, err := c.take(16, "identifier")
	if err != nil {
		return Identifier{}, err
	}
	var id Identifier
	copy(id[:], b)
	return id, nil
}

// TakeStr8 reads a one-byte length prefix followed by that many bytes
// of UTF-8.
func (c *Cursor) TakeStr8() (string, error) {
	n, err := c.TakeU8()
	if err != nil {
		return "", err
	}
	b, err := c.take(int(n), "str8")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// str8OptMarker is the tag byte that signals the real one-byte length
// follows in the next byte rather than being the first byte itself.
const str8OptMarker = 0x2c

// TakeStr8Opt reads a short string whose length byte may be preceded
// by a tag: the first byte is either the literal length, or, when it
// equals str8OptMarker, a tag saying the real length follows in the
// next byte. Either way the length is a single byte (at most 255), and
// a first byte of 0x2c is always read as the tag, never as a length.
func (c *Cursor) TakeStr8Opt() (string, error) {
	first, err := c.TakeU8()
	if err != nil {
		return "", err
	}
	n := first
	if first == str8OptMarker {
		n, err = c.TakeU8()
		if err != nil {
			return "", err
		}
	}
	b, err := c.take(int(n), "str8_opt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TakeDateTime reads a big-endian 64-bit tick count and decodes it.
// Values below the epoch offset decode as the empty string.
func (c *Cursor) TakeDateTime() (string, error) {
	ticks, err := c.TakeU64BE()
	if err != nil {
		return "", err
	}
	t, ok := DecodeTimestamp(ticks)
	if !ok {
		return "", nil
	}
	return FormatTimestamp(t), nil
}

// TakeDateTimeOpt is an alias of TakeDateTime kept for schema-site
// symmetry with fields that are documented as optional; the wire
// shape is identical — absence is represented by an in-range tick
// value below the epoch offset, not by a separate presence byte.
func (c *Cursor) TakeDateTimeOpt() (string, bool, error) {
	s, err := c.TakeDateTime()
	if err != nil {
		return "", false, err
	}
	return s, s != "", nil
}
